// Package items reads the item catalogue used by item pickers.
package items

import (
	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/selector"
)

// ResourceName is the backend collection.
const ResourceName = "items"

// Item is a catalogue entry. The console never writes items.
type Item struct {
	ID          string `json:"_id"`
	No          string `json:"no"`
	Description string `json:"description"`
	VendorName  string `json:"vendorName"`
}

// NewCollection returns the backend collection of items.
func NewCollection(client *apiclient.Client) *apiclient.Collection[Item] {
	return apiclient.NewCollection[Item](client, ResourceName)
}

// Option maps an item to a selector option searchable by vendor name.
func Option(it Item) selector.Option {
	return selector.Option{ID: it.ID, Code: it.No, Description: it.Description, Extra: it.VendorName}
}
