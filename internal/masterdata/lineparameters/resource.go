// Package lineparameters defines the purchase line parameters page.
package lineparameters

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/crud"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/parameters"
)

// ResourceName is the backend collection.
const ResourceName = "purchase-line-parameters"

// ParameterSource is the selector source for parameter codes.
const ParameterSource = "parameters"

const fallbackLimit = 1000

// NewResource describes the purchase line parameters page. params is read
// to show parameter defaults for lines without their own value.
func NewResource(client *apiclient.Client, params *apiclient.Collection[parameters.Parameter]) *crud.Resource[LineParameter, Form] {
	return &crud.Resource[LineParameter, Form]{
		Title:      "Purchase line parameters",
		Singular:   "purchase line parameter",
		Path:       "/purchase-line-parameters",
		Collection: apiclient.NewCollection[LineParameter](client, ResourceName),
		Searchable: true,
		Columns: []crud.Column[LineParameter]{
			{Key: "documentNo", Label: "Document no.", Sortable: true, Cell: func(l LineParameter) string { return l.DocumentNo }},
			{Key: "documentLineNo", Label: "Line", Sortable: true, Cell: func(l LineParameter) string { return strconv.Itoa(l.DocumentLineNo) }},
			{Key: "paramCode", Label: "Parameter", Sortable: true, Cell: func(l LineParameter) string { return l.ParamCode }},
			{Key: "paramValue", Label: "Value", Sortable: true, Cell: valueCell},
		},
		Fields: []crud.Field{
			{Name: "documentNo", Label: "Document no.", Kind: crud.KindText, Required: true, Uppercase: true},
			{Name: "documentLineNo", Label: "Line no.", Kind: crud.KindNumber, Required: true},
			{Name: "paramCode", Label: "Parameter", Kind: crud.KindSelector, Required: true, Uppercase: true, Source: ParameterSource},
			{Name: "paramValue", Label: "Value", Kind: crud.KindNumber},
		},
		ID:      func(l LineParameter) string { return l.ID },
		Detail:  detail,
		Values:  values,
		Decode:  decode,
		Prepare: fallbacks(params),
	}
}

func valueCell(l LineParameter) string {
	v := l.EffectiveValue()
	if l.UsesDefault() && v != "" {
		return v + " (default)"
	}
	return v
}

func detail(l LineParameter) []crud.DetailRow {
	rows := []crud.DetailRow{
		{Label: "Document no.", Value: l.DocumentNo},
		{Label: "Line no.", Value: strconv.Itoa(l.DocumentLineNo)},
		{Label: "Parameter", Value: l.ParamCode},
		{Label: "Value", Value: crud.FormatOptionalFloat(l.ParamValue)},
	}
	if l.Fallback != nil {
		rows = append(rows,
			crud.DetailRow{Label: "Parameter description", Value: l.Fallback.Description},
			crud.DetailRow{Label: "Parameter default", Value: l.Fallback.DefaultDisplay()},
		)
	}
	return rows
}

func values(l LineParameter) url.Values {
	return url.Values{
		"documentNo":     {l.DocumentNo},
		"documentLineNo": {strconv.Itoa(l.DocumentLineNo)},
		"paramCode":      {l.ParamCode},
		"paramValue":     {crud.FormatOptionalFloat(l.ParamValue)},
	}
}

func decode(v url.Values) (Form, error) {
	f := Form{
		DocumentNo: v.Get("documentNo"),
		ParamCode:  v.Get("paramCode"),
	}
	var err error
	if f.DocumentLineNo, err = crud.ParseOptionalInt("documentLineNo", v.Get("documentLineNo")); err != nil {
		return f, err
	}
	if f.ParamValue, err = crud.ParseOptionalFloat("paramValue", v.Get("paramValue")); err != nil {
		return f, err
	}
	return f, nil
}

// fallbacks attaches the referenced parameter to lines that have no value.
func fallbacks(params *apiclient.Collection[parameters.Parameter]) func(context.Context, []LineParameter) ([]LineParameter, error) {
	return func(ctx context.Context, rows []LineParameter) ([]LineParameter, error) {
		needed := false
		for _, l := range rows {
			if l.ParamValue == nil {
				needed = true
				break
			}
		}
		if !needed || params == nil {
			return rows, nil
		}
		page, err := params.List(ctx, apiclient.ListParams{
			Page:  1,
			Limit: fallbackLimit,
			Sort:  apiclient.Sort{Field: "code", Dir: apiclient.SortAsc},
		})
		if err != nil {
			return nil, fmt.Errorf("load parameter defaults: %w", err)
		}
		byCode := make(map[string]parameters.Parameter, len(page.Data))
		for _, p := range page.Data {
			byCode[p.Code] = p
		}
		out := make([]LineParameter, len(rows))
		for i, l := range rows {
			if p, ok := byCode[l.ParamCode]; ok && l.ParamValue == nil {
				l.Fallback = &p
			}
			out[i] = l
		}
		return out, nil
	}
}
