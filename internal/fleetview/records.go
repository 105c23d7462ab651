package fleetview

import (
	"time"

	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
)

// Per-entity status priority for group ordering.
var (
	VehicleStatusOrder = []string{
		models.VehicleAvailable,
		models.VehicleInTransit,
		models.VehicleMaintenance,
		models.VehicleInactive,
	}
	DriverStatusOrder = []string{
		models.DriverActive,
		models.DriverInactive,
	}
	MaintenanceStatusOrder = []string{
		models.MaintenancePending,
		models.MaintenanceInProgress,
		models.MaintenanceCompleted,
		models.MaintenanceRejected,
	}
	OrderStatusOrder = []string{
		models.OrderDraft,
		models.OrderAwaiting,
		models.OrderInTransit,
		models.OrderCompleted,
		models.OrderCancelled,
	}
)

// DefaultExpand is the default expand/collapse policy: operational and
// date groups open, inactive/terminal groups collapsed. "Completed" is
// the same label for tickets and orders, so one case covers both.
func DefaultExpand(key string) bool {
	switch key {
	case models.VehicleInactive,
		models.MaintenanceCompleted,
		models.MaintenanceRejected,
		models.OrderCancelled:
		return false
	}
	return true
}

// VehicleRecord adapts a fleet document for the grouping engine.
type VehicleRecord struct {
	models.Vehicle
}

func (r VehicleRecord) Key() string { return r.ID }

func (r VehicleRecord) StatusLabel() string {
	if r.Status == "" {
		return models.VehicleAvailable
	}
	return r.Status
}

func (r VehicleRecord) DateKey() string { return "" }

func (r VehicleRecord) SearchFields() []string {
	return []string{r.Plate, r.Brand, r.Type, r.Model, r.Customer}
}

// Alert flags a vehicle whose tax or insurance is expired or inside the
// warning window. Inactive vehicles never alert.
func (r VehicleRecord) Alert(now time.Time) bool {
	if r.StatusLabel() == models.VehicleInactive {
		return false
	}
	return anyDateAlert(now, r.TaxExpiry, r.InsuranceExpiry)
}

// DriverRecord adapts a driver document.
type DriverRecord struct {
	models.Driver
}

func (r DriverRecord) Key() string { return r.ID }

func (r DriverRecord) StatusLabel() string {
	if r.Status == "" {
		return models.DriverActive
	}
	return r.Status
}

func (r DriverRecord) DateKey() string { return "" }

func (r DriverRecord) SearchFields() []string {
	return []string{r.EmpID, r.Name, r.Phone, r.LicenseNumber, r.IDCard}
}

func (r DriverRecord) Alert(now time.Time) bool {
	if r.StatusLabel() == models.DriverInactive {
		return false
	}
	return anyDateAlert(now, r.LicenseExpiry, r.IDCardExpiry)
}

// MaintenanceRecord adapts a maintenance ticket.
type MaintenanceRecord struct {
	models.MaintenanceTicket
}

func (r MaintenanceRecord) Key() string { return r.ID }

func (r MaintenanceRecord) StatusLabel() string {
	if r.Status == "" {
		return models.MaintenancePending
	}
	return r.Status
}

func (r MaintenanceRecord) DateKey() string { return r.RequestDate }

func (r MaintenanceRecord) SearchFields() []string {
	return []string{r.JobID, r.TruckPlate, r.Issue, r.DriverName, r.Type}
}

func (r MaintenanceRecord) Alert(time.Time) bool { return false }

// OrderRecord adapts a shipment order.
type OrderRecord struct {
	models.Order
}

func (r OrderRecord) Key() string { return r.ID }

func (r OrderRecord) StatusLabel() string {
	if r.Status == "" {
		return models.OrderDraft
	}
	return r.Status
}

func (r OrderRecord) DateKey() string { return r.Date }

func (r OrderRecord) SearchFields() []string {
	return []string{
		r.JobID, r.Customer, r.TruckPlate, r.TrailerPlate, r.DriverName,
		r.Origin, r.Destination, r.DocNumber, r.ECDNumber,
	}
}

func (r OrderRecord) Alert(time.Time) bool { return false }

func anyDateAlert(now time.Time, dates ...string) bool {
	for _, d := range dates {
		switch Classify(d, now, DefaultLookaheadMonths) {
		case StatusWarning, StatusExpired:
			return true
		}
	}
	return false
}

// VehicleRecords wraps a fleet snapshot for DeriveView.
func VehicleRecords(vehicles []models.Vehicle) []Record {
	out := make([]Record, len(vehicles))
	for i, v := range vehicles {
		out[i] = VehicleRecord{v}
	}
	return out
}

// DriverRecords wraps a driver snapshot.
func DriverRecords(drivers []models.Driver) []Record {
	out := make([]Record, len(drivers))
	for i, d := range drivers {
		out[i] = DriverRecord{d}
	}
	return out
}

// MaintenanceRecords wraps a ticket snapshot.
func MaintenanceRecords(tickets []models.MaintenanceTicket) []Record {
	out := make([]Record, len(tickets))
	for i, t := range tickets {
		out[i] = MaintenanceRecord{t}
	}
	return out
}

// OrderRecords wraps an order snapshot.
func OrderRecords(orders []models.Order) []Record {
	out := make([]Record, len(orders))
	for i, o := range orders {
		out[i] = OrderRecord{o}
	}
	return out
}
