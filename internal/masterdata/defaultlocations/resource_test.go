package defaultlocations

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/crud"
)

func TestDecodeDefaultLocation(t *testing.T) {
	res := NewResource(apiclient.New("http://backend.invalid"))
	form, err := res.Decode(res.Normalize(url.Values{
		"partyType":  {"customer"},
		"partyNo":    {"c-001"},
		"locationNo": {"wh1"},
		"isDefault":  {"true"},
	}))
	require.NoError(t, err)
	assert.Equal(t, Form{PartyType: "customer", PartyNo: "C-001", LocationNo: "WH1", IsDefault: true}, form)
	assert.NoError(t, crud.NewValidator().Struct(form))
}

func TestMissingLocationFailsValidation(t *testing.T) {
	assert.Error(t, crud.NewValidator().Struct(Form{PartyType: "vendor", PartyNo: "V-1"}))
}

func TestCellsRenderPartyLabel(t *testing.T) {
	res := NewResource(apiclient.New("http://backend.invalid"))
	rec := DefaultLocation{PartyType: "vendor", PartyNo: "V-1", LocationNo: "L-1"}
	assert.Equal(t, "Vendor", res.Columns[0].Cell(rec))
	assert.Equal(t, "no", res.Columns[3].Cell(rec))
	assert.Equal(t, "false", res.Values(rec).Get("isDefault"))
}
