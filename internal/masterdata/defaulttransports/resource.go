// Package defaulttransports defines the default transports page: the
// preferred transport of a vendor or customer.
package defaulttransports

import (
	"net/url"
	"strconv"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/crud"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/party"
)

// ResourceName is the backend collection.
const ResourceName = "default-transports"

// TransportSource is the selector source for transport numbers.
const TransportSource = "transports"

// DefaultTransport binds a party to a transport.
type DefaultTransport struct {
	ID          string `json:"_id"`
	PartyType   string `json:"partyType"`
	PartyNo     string `json:"partyNo"`
	TransportNo string `json:"transportNo"`
	IsDefault   bool   `json:"isDefault"`
}

// Form is the editable part of a DefaultTransport.
type Form struct {
	PartyType   string `form:"partyType" json:"partyType" validate:"required"`
	PartyNo     string `form:"partyNo" json:"partyNo" validate:"required"`
	TransportNo string `form:"transportNo" json:"transportNo" validate:"required"`
	IsDefault   bool   `form:"isDefault" json:"isDefault"`
}

// NewResource describes the default transports page.
func NewResource(client *apiclient.Client) *crud.Resource[DefaultTransport, Form] {
	return &crud.Resource[DefaultTransport, Form]{
		Title:      "Default transports",
		Singular:   "default transport",
		Path:       "/default-transports",
		Collection: apiclient.NewCollection[DefaultTransport](client, ResourceName),
		Searchable: true,
		Columns: []crud.Column[DefaultTransport]{
			{Key: "partyType", Label: "Party type", Sortable: true, Cell: func(d DefaultTransport) string { return party.Label(d.PartyType) }},
			{Key: "partyNo", Label: "Party no.", Sortable: true, Cell: func(d DefaultTransport) string { return d.PartyNo }},
			{Key: "transportNo", Label: "Transport no.", Sortable: true, Cell: func(d DefaultTransport) string { return d.TransportNo }},
			{Key: "isDefault", Label: "Default", Sortable: true, Cell: func(d DefaultTransport) string { return crud.YesNo(d.IsDefault) }},
		},
		Fields: []crud.Field{
			{Name: "partyType", Label: "Party type", Kind: crud.KindSelect, Required: true, Choices: party.Choices},
			{Name: "partyNo", Label: "Party no.", Kind: crud.KindText, Required: true, Uppercase: true},
			{Name: "transportNo", Label: "Transport", Kind: crud.KindSelector, Required: true, Uppercase: true, Source: TransportSource},
			{Name: "isDefault", Label: "Default", Kind: crud.KindCheckbox},
		},
		Filters: []crud.Filter{party.Filter},
		ID:      func(d DefaultTransport) string { return d.ID },
		Detail: func(d DefaultTransport) []crud.DetailRow {
			return []crud.DetailRow{
				{Label: "Party type", Value: party.Label(d.PartyType)},
				{Label: "Party no.", Value: d.PartyNo},
				{Label: "Transport no.", Value: d.TransportNo},
				{Label: "Default", Value: crud.YesNo(d.IsDefault)},
			}
		},
		Values: func(d DefaultTransport) url.Values {
			return url.Values{
				"partyType":   {d.PartyType},
				"partyNo":     {d.PartyNo},
				"transportNo": {d.TransportNo},
				"isDefault":   {strconv.FormatBool(d.IsDefault)},
			}
		},
		Decode: func(v url.Values) (Form, error) {
			return Form{
				PartyType:   v.Get("partyType"),
				PartyNo:     v.Get("partyNo"),
				TransportNo: v.Get("transportNo"),
				IsDefault:   crud.Checked(v.Get("isDefault")),
			}, nil
		},
	}
}
