package models

import "time"

// Maintenance ticket state machine:
// Pending -> In Progress -> Completed (requires cost)
// Pending -> Rejected (terminal)
const (
	MaintenancePending    = "Pending"
	MaintenanceInProgress = "In Progress"
	MaintenanceCompleted  = "Completed"
	MaintenanceRejected   = "Rejected"
)

const (
	PriorityNormal   = "Normal"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// MaintenanceTicket is a repair/PM request. TruckPlate is a display
// snapshot taken at creation time, not kept in sync with the fleet
// document. DriverName is free text, not a reference.
type MaintenanceTicket struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	JobID         string    `bson:"jobId" json:"jobId"`
	TruckID       string    `bson:"truckId" json:"truckId"`
	TruckPlate    string    `bson:"truckPlate,omitempty" json:"truckPlate"`
	Type          string    `bson:"type,omitempty" json:"type"`
	Priority      string    `bson:"priority,omitempty" json:"priority"`
	Issue         string    `bson:"issue,omitempty" json:"issue"`
	DriverName    string    `bson:"driverName,omitempty" json:"driverName"`
	PhotoURL      string    `bson:"photoUrl,omitempty" json:"photoUrl"`
	Status        string    `bson:"status,omitempty" json:"status"`
	RequestDate   string    `bson:"requestDate,omitempty" json:"requestDate"`
	ApprovedDate  string    `bson:"approvedDate,omitempty" json:"approvedDate"`
	CompletedDate string    `bson:"completedDate,omitempty" json:"completedDate"`
	RejectedDate  string    `bson:"rejectedDate,omitempty" json:"rejectedDate"`
	Cost          float64   `bson:"cost,omitempty" json:"cost"`
	FinishNote    string    `bson:"finishNote,omitempty" json:"finishNote"`
	CreatedAt     time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}
