package lineparameters

import (
	"github.com/odyssey-erp/trade-admin/internal/crud"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/parameters"
)

// LineParameter overrides a parameter on one purchase document line.
type LineParameter struct {
	ID             string   `json:"_id"`
	DocumentNo     string   `json:"documentNo"`
	DocumentLineNo int      `json:"documentLineNo"`
	ParamCode      string   `json:"paramCode"`
	ParamValue     *float64 `json:"paramValue"`

	// Fallback is the referenced parameter, filled before display.
	Fallback *parameters.Parameter `json:"-"`
}

// Form is the editable part of a LineParameter.
type Form struct {
	DocumentNo     string   `form:"documentNo" json:"documentNo" validate:"required"`
	DocumentLineNo int      `form:"documentLineNo" json:"documentLineNo" validate:"required"`
	ParamCode      string   `form:"paramCode" json:"paramCode" validate:"required"`
	ParamValue     *float64 `form:"paramValue" json:"paramValue"`
}

// EffectiveValue is the stored value, or the parameter default when the
// line carries none.
func (l LineParameter) EffectiveValue() string {
	if l.ParamValue != nil {
		return crud.FormatFloat(*l.ParamValue)
	}
	if l.Fallback != nil {
		return l.Fallback.DefaultDisplay()
	}
	return ""
}

// UsesDefault reports whether EffectiveValue comes from the parameter.
func (l LineParameter) UsesDefault() bool {
	return l.ParamValue == nil && l.Fallback != nil
}
