package models

import "time"

// Vehicle statuses, in dashboard display order.
const (
	VehicleAvailable   = "Available"
	VehicleInTransit   = "In Transit"
	VehicleMaintenance = "Maintenance"
	VehicleInactive    = "Inactive"
)

// Vehicle is a truck or trailer in the fleet collection. The plate is the
// human key but the system does not guarantee its uniqueness; the document
// id does that. Expiry fields are calendar-day strings (YYYY-MM-DD).
type Vehicle struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	Plate           string    `bson:"plate" json:"plate"`
	Type            string    `bson:"type,omitempty" json:"type"`
	Brand           string    `bson:"brand,omitempty" json:"brand"`
	Model           string    `bson:"model,omitempty" json:"model"`
	Mileage         string    `bson:"mileage,omitempty" json:"mileage"`
	TaxExpiry       string    `bson:"taxExpiry,omitempty" json:"taxExpiry"`
	InsuranceExpiry string    `bson:"insuranceExpiry,omitempty" json:"insuranceExpiry"`
	Status          string    `bson:"status,omitempty" json:"status"`
	PhotoURL        string    `bson:"photoUrl,omitempty" json:"photoUrl"`
	Customer        string    `bson:"customer,omitempty" json:"customer"`
	CreatedAt       time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}
