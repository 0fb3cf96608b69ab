package offer

import (
	"strings"

	"golang.org/x/text/language"
)

// Language selects label text and number/date formatting.
type Language string

const (
	English Language = "en"
	Polish  Language = "pl"
)

// Languages lists the supported languages in display order.
var Languages = []Language{English, Polish}

// ParseLanguage maps a tag such as "pl" or "en-GB" to a supported
// language, falling back to def.
func ParseLanguage(raw string, def Language) Language {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return def
	}
	base, _ := tag.Base()
	for _, l := range Languages {
		if base.String() == string(l) {
			return l
		}
	}
	return def
}

// Tag returns the BCP 47 tag of the language.
func (l Language) Tag() language.Tag {
	if l == Polish {
		return language.Polish
	}
	return language.English
}

// Name is the language name in that language.
func (l Language) Name() string {
	if l == Polish {
		return "Polski"
	}
	return "English"
}

// Labels are the fixed texts of the printed offer.
type Labels struct {
	Title string

	DocumentNo     string
	Status         string
	DocumentDate   string
	ValidUntil     string
	RequestedDate  string
	Currency       string
	CurrencyFactor string
	SalesPerson    string
	ExternalRef    string

	Audit     string
	CreatedBy string
	CreatedAt string
	UpdatedBy string
	UpdatedAt string

	Party     string
	Location  string
	Shipment  string
	Transport string
	Broker    string

	No       string
	Name     string
	Code     string
	Address  string
	PostCode string
	City     string
	Country  string
	VATNo    string
	Email    string
	Phone    string

	Method       string
	Terms        string
	ShipmentDate string
	Instructions string

	TransportNo string
	Vehicle     string
	Driver      string
	DriverPhone string
	Distance    string
	CostPerKm   string

	Lines         string
	LineNo        string
	ItemNo        string
	Description   string
	Quantity      string
	UnitOfMeasure string
	UnitPrice     string
	LineValue     string
	TransportCost string

	SumLines     string
	SumTransport string
	GrandTotal   string

	Page string
}

var labels = map[Language]Labels{
	English: {
		Title:          "Sales offer",
		DocumentNo:     "Offer no.",
		Status:         "Status",
		DocumentDate:   "Offer date",
		ValidUntil:     "Valid until",
		RequestedDate:  "Requested delivery",
		Currency:       "Currency",
		CurrencyFactor: "Currency factor",
		SalesPerson:    "Salesperson",
		ExternalRef:    "Your reference",
		Audit:          "Document history",
		CreatedBy:      "Created by",
		CreatedAt:      "Created at",
		UpdatedBy:      "Modified by",
		UpdatedAt:      "Modified at",
		Party:          "Customer",
		Location:       "Location",
		Shipment:       "Shipment",
		Transport:      "Transport",
		Broker:         "Broker",
		No:             "No.",
		Name:           "Name",
		Code:           "Code",
		Address:        "Address",
		PostCode:       "Post code",
		City:           "City",
		Country:        "Country",
		VATNo:          "VAT no.",
		Email:          "E-mail",
		Phone:          "Phone",
		Method:         "Shipment method",
		Terms:          "Delivery terms",
		ShipmentDate:   "Shipment date",
		Instructions:   "Instructions",
		TransportNo:    "Transport no.",
		Vehicle:        "Vehicle",
		Driver:         "Driver",
		DriverPhone:    "Driver phone",
		Distance:       "Distance (km)",
		CostPerKm:      "Cost per km",
		Lines:          "Lines",
		LineNo:         "Line",
		ItemNo:         "Item no.",
		Description:    "Description",
		Quantity:       "Quantity",
		UnitOfMeasure:  "Unit",
		UnitPrice:      "Unit price",
		LineValue:      "Line value",
		TransportCost:  "Transport cost",
		SumLines:       "Total lines",
		SumTransport:   "Total transport",
		GrandTotal:     "Grand total",
		Page:           "Page {current} of {total}",
	},
	Polish: {
		Title:          "Oferta sprzedaży",
		DocumentNo:     "Nr oferty",
		Status:         "Status",
		DocumentDate:   "Data oferty",
		ValidUntil:     "Ważna do",
		RequestedDate:  "Żądana data dostawy",
		Currency:       "Waluta",
		CurrencyFactor: "Kurs waluty",
		SalesPerson:    "Handlowiec",
		ExternalRef:    "Wasz numer",
		Audit:          "Historia dokumentu",
		CreatedBy:      "Utworzył",
		CreatedAt:      "Data utworzenia",
		UpdatedBy:      "Zmodyfikował",
		UpdatedAt:      "Data modyfikacji",
		Party:          "Klient",
		Location:       "Lokalizacja",
		Shipment:       "Wysyłka",
		Transport:      "Transport",
		Broker:         "Pośrednik",
		No:             "Nr",
		Name:           "Nazwa",
		Code:           "Kod",
		Address:        "Adres",
		PostCode:       "Kod pocztowy",
		City:           "Miasto",
		Country:        "Kraj",
		VATNo:          "NIP",
		Email:          "E-mail",
		Phone:          "Telefon",
		Method:         "Metoda wysyłki",
		Terms:          "Warunki dostawy",
		ShipmentDate:   "Data wysyłki",
		Instructions:   "Instrukcje",
		TransportNo:    "Nr transportu",
		Vehicle:        "Pojazd",
		Driver:         "Kierowca",
		DriverPhone:    "Telefon kierowcy",
		Distance:       "Odległość (km)",
		CostPerKm:      "Koszt za km",
		Lines:          "Pozycje",
		LineNo:         "Poz.",
		ItemNo:         "Nr towaru",
		Description:    "Opis",
		Quantity:       "Ilość",
		UnitOfMeasure:  "J.m.",
		UnitPrice:      "Cena jedn.",
		LineValue:      "Wartość",
		TransportCost:  "Koszt transportu",
		SumLines:       "Suma pozycji",
		SumTransport:   "Suma transportu",
		GrandTotal:     "Razem",
		Page:           "Strona {current} z {total}",
	},
}

// LabelsFor returns the label table of l, English when unknown.
func LabelsFor(l Language) Labels {
	if t, ok := labels[l]; ok {
		return t
	}
	return labels[English]
}
