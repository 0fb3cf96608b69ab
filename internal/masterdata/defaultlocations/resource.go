// Package defaultlocations defines the default locations page: the
// preferred location of a vendor or customer.
package defaultlocations

import (
	"net/url"
	"strconv"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/crud"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/party"
)

// ResourceName is the backend collection.
const ResourceName = "default-locations"

// DefaultLocation binds a party to a location.
type DefaultLocation struct {
	ID         string `json:"_id"`
	PartyType  string `json:"partyType"`
	PartyNo    string `json:"partyNo"`
	LocationNo string `json:"locationNo"`
	IsDefault  bool   `json:"isDefault"`
}

// Form is the editable part of a DefaultLocation.
type Form struct {
	PartyType  string `form:"partyType" json:"partyType" validate:"required"`
	PartyNo    string `form:"partyNo" json:"partyNo" validate:"required"`
	LocationNo string `form:"locationNo" json:"locationNo" validate:"required"`
	IsDefault  bool   `form:"isDefault" json:"isDefault"`
}

// NewResource describes the default locations page.
func NewResource(client *apiclient.Client) *crud.Resource[DefaultLocation, Form] {
	return &crud.Resource[DefaultLocation, Form]{
		Title:      "Default locations",
		Singular:   "default location",
		Path:       "/default-locations",
		Collection: apiclient.NewCollection[DefaultLocation](client, ResourceName),
		Searchable: true,
		Columns: []crud.Column[DefaultLocation]{
			{Key: "partyType", Label: "Party type", Sortable: true, Cell: func(d DefaultLocation) string { return party.Label(d.PartyType) }},
			{Key: "partyNo", Label: "Party no.", Sortable: true, Cell: func(d DefaultLocation) string { return d.PartyNo }},
			{Key: "locationNo", Label: "Location no.", Sortable: true, Cell: func(d DefaultLocation) string { return d.LocationNo }},
			{Key: "isDefault", Label: "Default", Sortable: true, Cell: func(d DefaultLocation) string { return crud.YesNo(d.IsDefault) }},
		},
		Fields: []crud.Field{
			{Name: "partyType", Label: "Party type", Kind: crud.KindSelect, Required: true, Choices: party.Choices},
			{Name: "partyNo", Label: "Party no.", Kind: crud.KindText, Required: true, Uppercase: true},
			{Name: "locationNo", Label: "Location no.", Kind: crud.KindText, Required: true, Uppercase: true},
			{Name: "isDefault", Label: "Default", Kind: crud.KindCheckbox},
		},
		Filters: []crud.Filter{party.Filter},
		ID:      func(d DefaultLocation) string { return d.ID },
		Detail: func(d DefaultLocation) []crud.DetailRow {
			return []crud.DetailRow{
				{Label: "Party type", Value: party.Label(d.PartyType)},
				{Label: "Party no.", Value: d.PartyNo},
				{Label: "Location no.", Value: d.LocationNo},
				{Label: "Default", Value: crud.YesNo(d.IsDefault)},
			}
		},
		Values: func(d DefaultLocation) url.Values {
			return url.Values{
				"partyType":  {d.PartyType},
				"partyNo":    {d.PartyNo},
				"locationNo": {d.LocationNo},
				"isDefault":  {strconv.FormatBool(d.IsDefault)},
			}
		},
		Decode: func(v url.Values) (Form, error) {
			return Form{
				PartyType:  v.Get("partyType"),
				PartyNo:    v.Get("partyNo"),
				LocationNo: v.Get("locationNo"),
				IsDefault:  crud.Checked(v.Get("isDefault")),
			}, nil
		},
	}
}
