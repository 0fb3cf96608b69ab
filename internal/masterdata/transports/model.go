package transports

import "github.com/odyssey-erp/trade-admin/internal/selector"

// Transport is a carrier with its driver contact details.
type Transport struct {
	ID            string `json:"_id"`
	TransportNo   string `json:"transportNo"`
	TransportName string `json:"transportName"`
	TransportID   string `json:"transportId"`
	DriverName    string `json:"driverName"`
	DriverID      string `json:"driverId"`
	DriverEmail   string `json:"driverEmail"`
	DriverPhoneNo string `json:"driverPhoneNo"`
}

// Form is the editable part of a Transport.
type Form struct {
	TransportNo   string `form:"transportNo" json:"transportNo" validate:"required"`
	TransportName string `form:"transportName" json:"transportName"`
	TransportID   string `form:"transportId" json:"transportId"`
	DriverName    string `form:"driverName" json:"driverName"`
	DriverID      string `form:"driverId" json:"driverId"`
	DriverEmail   string `form:"driverEmail" json:"driverEmail"`
	DriverPhoneNo string `form:"driverPhoneNo" json:"driverPhoneNo"`
}

// Option maps a transport to a selector option. The driver name is
// searchable without being shown.
func Option(t Transport) selector.Option {
	return selector.Option{
		ID:          t.ID,
		Code:        t.TransportNo,
		Description: t.TransportName,
		Extra:       t.DriverName,
	}
}
