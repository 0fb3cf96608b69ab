// Package offer builds the printable sales offer: it fetches the offer and
// its lines from the backend, computes totals, lays the document out and
// renders it to PDF for preview and download.
package offer

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a numeric field read leniently: missing, null, empty or
// non-numeric values decode as zero with Valid unset.
type Amount struct {
	decimal.Decimal
	Valid bool
}

// NewAmount builds an Amount from a string, zero when it does not parse.
func NewAmount(s string) Amount {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}
	}
	return Amount{Decimal: d, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*a = NewAmount(s)
		return nil
	}
	if d, err := decimal.NewFromString(string(data)); err == nil {
		*a = Amount{Decimal: d, Valid: true}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Reference identifies the offer to export.
type Reference struct {
	DocumentNo string
}

// Party is the customer the offer is addressed to.
type Party struct {
	No       string `json:"no"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	PostCode string `json:"postCode"`
	City     string `json:"city"`
	Country  string `json:"country"`
	VATNo    string `json:"vatNo"`
	Email    string `json:"email"`
	Phone    string `json:"phoneNo"`
}

// Location is the place goods ship from.
type Location struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	PostCode string `json:"postCode"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// Shipment holds delivery terms.
type Shipment struct {
	Method       string `json:"method"`
	Terms        string `json:"terms"`
	Date         string `json:"date"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Instructions string `json:"instructions"`
}

// Transport is the carrier assigned to the offer.
type Transport struct {
	TransportNo   string `json:"transportNo"`
	TransportName string `json:"transportName"`
	TransportID   string `json:"transportId"`
	DriverName    string `json:"driverName"`
	DriverPhoneNo string `json:"driverPhoneNo"`
	DistanceKm    Amount `json:"distanceKm"`
	CostPerKm     Amount `json:"costPerKm"`
}

// Broker is the intermediary on the offer, if any.
type Broker struct {
	No    string `json:"no"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phoneNo"`
}

// Document is the sales offer header.
type Document struct {
	DocumentNo     string    `json:"documentNo"`
	Status         string    `json:"status"`
	DocumentDate   string    `json:"documentDate"`
	ValidUntil     string    `json:"validUntil"`
	RequestedDate  string    `json:"requestedDeliveryDate"`
	CurrencyCode   string    `json:"currencyCode"`
	CurrencyFactor Amount    `json:"currencyFactor"`
	SalesPerson    string    `json:"salesPerson"`
	ExternalRef    string    `json:"externalDocumentNo"`
	CreatedBy      string    `json:"createdBy"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedBy      string    `json:"updatedBy"`
	UpdatedAt      string    `json:"updatedAt"`
	Customer       Party     `json:"customer"`
	Location       Location  `json:"location"`
	Shipment       Shipment  `json:"shipment"`
	Transport      Transport `json:"transport"`
	Broker         Broker    `json:"broker"`
}

// Line is one offered item.
type Line struct {
	DocumentNo    string `json:"documentNo"`
	LineNo        int    `json:"lineNo"`
	ItemNo        string `json:"itemNo"`
	Description   string `json:"description"`
	Quantity      Amount `json:"quantity"`
	UnitOfMeasure string `json:"unitOfMeasure"`
	UnitPrice     Amount `json:"unitPrice"`
	LineValue     Amount `json:"lineValue"`
	TransportCost Amount `json:"transportCost"`
}

// Totals are the aggregates printed under the lines.
type Totals struct {
	Lines     decimal.Decimal
	Transport decimal.Decimal
	Grand     decimal.Decimal
}

// ComputeTotals sums line values and transport costs.
func ComputeTotals(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		t.Lines = t.Lines.Add(l.LineValue.Decimal)
		t.Transport = t.Transport.Add(l.TransportCost.Decimal)
	}
	t.Grand = t.Lines.Add(t.Transport)
	return t
}
