// Package transports defines the transports page.
package transports

import (
	"net/url"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/crud"
)

// ResourceName is the backend collection.
const ResourceName = "transports"

// NewCollection returns the backend collection of transports.
func NewCollection(client *apiclient.Client) *apiclient.Collection[Transport] {
	return apiclient.NewCollection[Transport](client, ResourceName)
}

// NewResource describes the transports page.
func NewResource(client *apiclient.Client) *crud.Resource[Transport, Form] {
	return &crud.Resource[Transport, Form]{
		Title:      "Transports",
		Singular:   "transport",
		Path:       "/transports",
		Collection: NewCollection(client),
		Searchable: true,
		Columns: []crud.Column[Transport]{
			{Key: "transportNo", Label: "Transport no.", Sortable: true, Cell: func(t Transport) string { return t.TransportNo }},
			{Key: "transportName", Label: "Name", Sortable: true, Cell: func(t Transport) string { return t.TransportName }},
			{Key: "driverName", Label: "Driver", Sortable: true, Cell: func(t Transport) string { return t.DriverName }},
			{Key: "driverPhoneNo", Label: "Phone", Cell: func(t Transport) string { return t.DriverPhoneNo }},
		},
		Fields: []crud.Field{
			{Name: "transportNo", Label: "Transport no.", Kind: crud.KindText, Required: true, Uppercase: true},
			{Name: "transportName", Label: "Name", Kind: crud.KindText},
			{Name: "transportId", Label: "Registration", Kind: crud.KindText, Uppercase: true},
			{Name: "driverName", Label: "Driver name", Kind: crud.KindText},
			{Name: "driverId", Label: "Driver ID", Kind: crud.KindText},
			{Name: "driverEmail", Label: "Driver e-mail", Kind: crud.KindEmail},
			{Name: "driverPhoneNo", Label: "Driver phone", Kind: crud.KindText},
		},
		ID:     func(t Transport) string { return t.ID },
		Detail: detail,
		Values: func(t Transport) url.Values {
			return url.Values{
				"transportNo":   {t.TransportNo},
				"transportName": {t.TransportName},
				"transportId":   {t.TransportID},
				"driverName":    {t.DriverName},
				"driverId":      {t.DriverID},
				"driverEmail":   {t.DriverEmail},
				"driverPhoneNo": {t.DriverPhoneNo},
			}
		},
		Decode: func(v url.Values) (Form, error) {
			return Form{
				TransportNo:   v.Get("transportNo"),
				TransportName: v.Get("transportName"),
				TransportID:   v.Get("transportId"),
				DriverName:    v.Get("driverName"),
				DriverID:      v.Get("driverId"),
				DriverEmail:   v.Get("driverEmail"),
				DriverPhoneNo: v.Get("driverPhoneNo"),
			}, nil
		},
	}
}

func detail(t Transport) []crud.DetailRow {
	return []crud.DetailRow{
		{Label: "Transport no.", Value: t.TransportNo},
		{Label: "Name", Value: t.TransportName},
		{Label: "Registration", Value: t.TransportID},
		{Label: "Driver name", Value: t.DriverName},
		{Label: "Driver ID", Value: t.DriverID},
		{Label: "Driver e-mail", Value: t.DriverEmail},
		{Label: "Driver phone", Value: t.DriverPhoneNo},
	}
}
