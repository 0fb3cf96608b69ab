// Package itemparameters defines the default item parameters page: which
// parameters an item carries by default.
package itemparameters

import (
	"net/url"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/crud"
)

// ResourceName is the backend collection.
const ResourceName = "default-item-parameters"

// Selector sources used by the form.
const (
	ItemSource      = "items"
	ParameterSource = "parameters"
)

// DefaultItemParameter binds a parameter to an item.
type DefaultItemParameter struct {
	ID            string `json:"_id"`
	ItemNo        string `json:"itemNo"`
	ParameterCode string `json:"parameterCode"`
}

// Form is the editable part of a DefaultItemParameter.
type Form struct {
	ItemNo        string `form:"itemNo" json:"itemNo" validate:"required"`
	ParameterCode string `form:"parameterCode" json:"parameterCode" validate:"required"`
}

// NewResource describes the default item parameters page.
func NewResource(client *apiclient.Client) *crud.Resource[DefaultItemParameter, Form] {
	return &crud.Resource[DefaultItemParameter, Form]{
		Title:      "Default item parameters",
		Singular:   "default item parameter",
		Path:       "/default-item-parameters",
		Collection: apiclient.NewCollection[DefaultItemParameter](client, ResourceName),
		Searchable: true,
		Columns: []crud.Column[DefaultItemParameter]{
			{Key: "itemNo", Label: "Item no.", Sortable: true, Cell: func(d DefaultItemParameter) string { return d.ItemNo }},
			{Key: "parameterCode", Label: "Parameter", Sortable: true, Cell: func(d DefaultItemParameter) string { return d.ParameterCode }},
		},
		Fields: []crud.Field{
			{Name: "itemNo", Label: "Item", Kind: crud.KindSelector, Required: true, Uppercase: true, Source: ItemSource},
			{Name: "parameterCode", Label: "Parameter", Kind: crud.KindSelector, Required: true, Uppercase: true, Source: ParameterSource},
		},
		ID: func(d DefaultItemParameter) string { return d.ID },
		Detail: func(d DefaultItemParameter) []crud.DetailRow {
			return []crud.DetailRow{
				{Label: "Item no.", Value: d.ItemNo},
				{Label: "Parameter", Value: d.ParameterCode},
			}
		},
		Values: func(d DefaultItemParameter) url.Values {
			return url.Values{"itemNo": {d.ItemNo}, "parameterCode": {d.ParameterCode}}
		},
		Decode: func(v url.Values) (Form, error) {
			return Form{ItemNo: v.Get("itemNo"), ParameterCode: v.Get("parameterCode")}, nil
		},
	}
}
