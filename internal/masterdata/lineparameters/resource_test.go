package lineparameters

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/crud"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/parameters"
)

func ptr(f float64) *float64 { return &f }

func TestEmptyValueFallsBackToParameterDefault(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/parameters", r.URL.Path)
		assert.Equal(t, "code:1", r.URL.Query().Get("sort"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"_id": "p1", "code": "LEN", "type": "decimal", "defaultValue": 2.5, "description": "Length"},
				{"_id": "p2", "code": "FRAGILE", "type": "boolean", "defaultValue": true},
			},
			"total": 2, "page": 1, "pages": 1,
		})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	res := NewResource(client, apiclient.NewCollection[parameters.Parameter](client, parameters.ResourceName))

	rows, err := res.Prepare(t.Context(), []LineParameter{
		{ID: "a", ParamCode: "LEN"},
		{ID: "b", ParamCode: "LEN", ParamValue: ptr(4)},
		{ID: "c", ParamCode: "FRAGILE"},
		{ID: "d", ParamCode: "UNKNOWN"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	value := res.Columns[3].Cell
	assert.Equal(t, "2.5 (default)", value(rows[0]))
	assert.Equal(t, "4", value(rows[1]))
	assert.Equal(t, "yes (default)", value(rows[2]))
	assert.Equal(t, "", value(rows[3]))
	assert.EqualValues(t, 1, calls.Load())
}

func TestPrepareSkipsLookupWhenAllValuesSet(t *testing.T) {
	res := NewResource(apiclient.New("http://backend.invalid"), nil)
	rows, err := res.Prepare(t.Context(), []LineParameter{{ParamCode: "LEN", ParamValue: ptr(1)}})
	require.NoError(t, err)
	assert.Nil(t, rows[0].Fallback)
}

func TestDecodeLineParameter(t *testing.T) {
	res := NewResource(apiclient.New("http://backend.invalid"), nil)
	form, err := res.Decode(res.Normalize(url.Values{
		"documentNo":     {"po-001"},
		"documentLineNo": {"10000"},
		"paramCode":      {"len"},
	}))
	require.NoError(t, err)
	assert.Equal(t, Form{DocumentNo: "PO-001", DocumentLineNo: 10000, ParamCode: "LEN"}, form)
	assert.NoError(t, crud.NewValidator().Struct(form))

	body, err := json.Marshal(form)
	require.NoError(t, err)
	assert.JSONEq(t, `{"documentNo":"PO-001","documentLineNo":10000,"paramCode":"LEN","paramValue":null}`, string(body))
}

func TestDecodeRejectsNonNumericLine(t *testing.T) {
	res := NewResource(apiclient.New("http://backend.invalid"), nil)
	_, err := res.Decode(url.Values{"documentLineNo": {"ten"}})
	var fe *crud.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "documentLineNo", fe.Field)
}
