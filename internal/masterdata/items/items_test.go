package items

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/selector"
)

func TestItemSourceFeedsSelector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/items", r.URL.Path)
		assert.Equal(t, "no:1", r.URL.Query().Get("sort"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []Item{
				{ID: "1", No: "IT-100", Description: "Steel pipe", VendorName: "Acme"},
				{ID: "2", No: "IT-200", Description: "Copper wire", VendorName: "Globex"},
			},
			"total": 2, "page": 1, "pages": 1,
		})
	}))
	defer srv.Close()

	reg := selector.NewRegistry()
	reg.Register("items", selector.FromCollection(NewCollection(apiclient.New(srv.URL)), 500, "no", Option))

	st, err := reg.Load(t.Context(), "items")
	require.NoError(t, err)
	st.Search("globex")
	assert.Equal(t, []selector.View{{Code: "IT-200", Description: "Copper wire"}}, st.Visible())
	st.Enter()
	opt, ok := st.SelectedOption()
	require.True(t, ok)
	assert.Equal(t, "Globex", opt.Extra)
}
