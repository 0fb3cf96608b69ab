// Package party holds the party types shared by default assignment pages.
package party

import "github.com/odyssey-erp/trade-admin/internal/crud"

const (
	Vendor   = "vendor"
	Customer = "customer"
)

// Choices lists the selectable party types.
var Choices = []crud.Choice{
	{Value: Vendor, Label: "Vendor"},
	{Value: Customer, Label: "Customer"},
}

// Filter narrows a default assignment list by party type.
var Filter = crud.Filter{Key: "partyType", Label: "Party type", Choices: Choices}

// Label renders a party type.
func Label(t string) string {
	return crud.ChoiceLabel(Choices, t)
}
