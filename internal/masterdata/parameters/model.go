package parameters

import (
	"strconv"
	"strings"

	"github.com/odyssey-erp/trade-admin/internal/crud"
	"github.com/odyssey-erp/trade-admin/internal/selector"
)

// Parameter types.
const (
	TypeDecimal = "decimal"
	TypeText    = "text"
	TypeBoolean = "boolean"
)

// Parameter is a typed named configuration value.
type Parameter struct {
	ID           string   `json:"_id"`
	Code         string   `json:"code"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	MinValue     *float64 `json:"minValue"`
	MaxValue     *float64 `json:"maxValue"`
	DefaultValue any      `json:"defaultValue"`
	Active       bool     `json:"active"`
}

// Form is the editable part of a Parameter.
type Form struct {
	Code         string   `form:"code" json:"code" validate:"required"`
	Description  string   `form:"description" json:"description" validate:"required"`
	Type         string   `form:"type" json:"type" validate:"required"`
	MinValue     *float64 `form:"minValue" json:"minValue"`
	MaxValue     *float64 `form:"maxValue" json:"maxValue"`
	DefaultValue any      `form:"defaultValue" json:"defaultValue"`
	Active       bool     `form:"active" json:"active"`
}

// IsDecimal reports whether bounds apply to the parameter.
func (p Parameter) IsDecimal() bool {
	return p.Type == TypeDecimal
}

// BoundDisplay renders a min or max value. Decimal parameters show "0"
// when the bound is unset; other types have no bounds and show nothing.
func (p Parameter) BoundDisplay(v *float64) string {
	if !p.IsDecimal() {
		return ""
	}
	if v == nil {
		return "0"
	}
	return crud.FormatFloat(*v)
}

// DefaultDisplay renders the default value according to the type.
func (p Parameter) DefaultDisplay() string {
	return FormatValue(p.Type, p.DefaultValue)
}

// FormatValue renders a parameter value of type typ.
func FormatValue(typ string, v any) string {
	switch val := v.(type) {
	case nil:
		if typ == TypeDecimal {
			return "0"
		}
		return ""
	case bool:
		return crud.YesNo(val)
	case float64:
		if typ == TypeBoolean {
			return crud.YesNo(val != 0)
		}
		return crud.FormatFloat(val)
	case string:
		if typ == TypeBoolean {
			return crud.YesNo(crud.Checked(val))
		}
		return val
	default:
		return ""
	}
}

// decodeDefault converts the submitted default to the JSON type matching
// the parameter type. Decimal input that does not parse is sent as typed
// so the backend can reject it with its own message.
func decodeDefault(typ, raw string) any {
	raw = strings.TrimSpace(raw)
	switch typ {
	case TypeBoolean:
		return crud.Checked(raw)
	case TypeDecimal:
		if raw == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64); err == nil {
			return f
		}
		return raw
	default:
		if raw == "" {
			return nil
		}
		return raw
	}
}

// formValue renders a default for the edit form.
func formValue(typ string, v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if typ == TypeBoolean {
			return strconv.FormatBool(val != 0)
		}
		return crud.FormatFloat(val)
	case string:
		return val
	default:
		return ""
	}
}

// Option maps a parameter to a selector option.
func Option(p Parameter) selector.Option {
	return selector.Option{ID: p.ID, Code: p.Code, Description: p.Description, Extra: p.Type}
}
