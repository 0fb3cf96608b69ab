// Package parameters defines the parameters page.
package parameters

import (
	"net/url"
	"strconv"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/crud"
)

// ResourceName is the backend collection.
const ResourceName = "parameters"

// TypeChoices are the selectable parameter types.
var TypeChoices = []crud.Choice{
	{Value: TypeDecimal, Label: "Decimal"},
	{Value: TypeText, Label: "Text"},
	{Value: TypeBoolean, Label: "Boolean"},
}

// NewCollection returns the backend collection of parameters.
func NewCollection(client *apiclient.Client) *apiclient.Collection[Parameter] {
	return apiclient.NewCollection[Parameter](client, ResourceName)
}

// NewResource describes the parameters page.
func NewResource(client *apiclient.Client) *crud.Resource[Parameter, Form] {
	return &crud.Resource[Parameter, Form]{
		Title:      "Parameters",
		Singular:   "parameter",
		Path:       "/parameters",
		Collection: NewCollection(client),
		Searchable: true,
		Columns: []crud.Column[Parameter]{
			{Key: "code", Label: "Code", Sortable: true, Cell: func(p Parameter) string { return p.Code }},
			{Key: "description", Label: "Description", Sortable: true, Cell: func(p Parameter) string { return p.Description }},
			{Key: "type", Label: "Type", Sortable: true, Cell: func(p Parameter) string { return crud.ChoiceLabel(TypeChoices, p.Type) }},
			{Key: "minValue", Label: "Min", Cell: func(p Parameter) string { return p.BoundDisplay(p.MinValue) }},
			{Key: "maxValue", Label: "Max", Cell: func(p Parameter) string { return p.BoundDisplay(p.MaxValue) }},
			{Key: "active", Label: "Active", Sortable: true, Cell: func(p Parameter) string { return crud.YesNo(p.Active) }},
		},
		Fields: []crud.Field{
			{Name: "code", Label: "Code", Kind: crud.KindText, Required: true, Uppercase: true},
			{Name: "description", Label: "Description", Kind: crud.KindText, Required: true},
			{Name: "type", Label: "Type", Kind: crud.KindSelect, Required: true, Choices: TypeChoices},
			{Name: "minValue", Label: "Min value", Kind: crud.KindNumber},
			{Name: "maxValue", Label: "Max value", Kind: crud.KindNumber},
			{Name: "defaultValue", Label: "Default value", Kind: crud.KindText},
			{Name: "active", Label: "Active", Kind: crud.KindCheckbox},
		},
		Filters: []crud.Filter{
			{Key: "type", Label: "Type", Choices: TypeChoices},
			{Key: "active", Label: "Active", Choices: []crud.Choice{{Value: "true", Label: "Yes"}, {Value: "false", Label: "No"}}},
		},
		ID:     func(p Parameter) string { return p.ID },
		Detail: detail,
		Values: values,
		Decode: decode,
	}
}

func detail(p Parameter) []crud.DetailRow {
	return []crud.DetailRow{
		{Label: "Code", Value: p.Code},
		{Label: "Description", Value: p.Description},
		{Label: "Type", Value: crud.ChoiceLabel(TypeChoices, p.Type)},
		{Label: "Min value", Value: p.BoundDisplay(p.MinValue)},
		{Label: "Max value", Value: p.BoundDisplay(p.MaxValue)},
		{Label: "Default value", Value: p.DefaultDisplay()},
		{Label: "Active", Value: crud.YesNo(p.Active)},
	}
}

func values(p Parameter) url.Values {
	v := url.Values{}
	v.Set("code", p.Code)
	v.Set("description", p.Description)
	v.Set("type", p.Type)
	v.Set("minValue", crud.FormatOptionalFloat(p.MinValue))
	v.Set("maxValue", crud.FormatOptionalFloat(p.MaxValue))
	v.Set("defaultValue", formValue(p.Type, p.DefaultValue))
	v.Set("active", strconv.FormatBool(p.Active))
	return v
}

func decode(v url.Values) (Form, error) {
	f := Form{
		Code:         v.Get("code"),
		Description:  v.Get("description"),
		Type:         v.Get("type"),
		DefaultValue: decodeDefault(v.Get("type"), v.Get("defaultValue")),
		Active:       crud.Checked(v.Get("active")),
	}
	if f.Type != TypeDecimal {
		return f, nil
	}
	var err error
	if f.MinValue, err = crud.ParseOptionalFloat("minValue", v.Get("minValue")); err != nil {
		return f, err
	}
	if f.MaxValue, err = crud.ParseOptionalFloat("maxValue", v.Get("maxValue")); err != nil {
		return f, err
	}
	return f, nil
}
