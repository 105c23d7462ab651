package models

import "time"

// Order state machine:
// Draft -> Awaiting Acceptance (dispatch, fires driver notification)
//       -> In Transit -> Completed
// any non-terminal -> Cancelled
const (
	OrderDraft     = "Draft"
	OrderAwaiting  = "Awaiting Acceptance"
	OrderInTransit = "In Transit"
	OrderCompleted = "Completed"
	OrderCancelled = "Cancelled"
)

// Order is a shipment job. TruckPlate/TrailerPlate and the driver fields
// are display snapshots denormalized at creation/assignment time; the live
// fleet and driver documents stay the source of truth. The on-site fields
// (doc number, weights, gate times, ECD) are appended by a later edit pass
// at the factory gate.
type Order struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	JobID         string    `bson:"jobId" json:"jobId"`
	Date          string    `bson:"date,omitempty" json:"date"`
	SlotTime      string    `bson:"slotTime,omitempty" json:"slotTime"`
	FactoryCall   string    `bson:"factoryCall,omitempty" json:"factoryCall"`
	Customer      string    `bson:"customer,omitempty" json:"customer"`
	Origin        string    `bson:"origin,omitempty" json:"origin"`
	Destination   string    `bson:"destination,omitempty" json:"destination"`
	LoadingType   string    `bson:"loadingType,omitempty" json:"loadingType"`
	TruckID       string    `bson:"truckId,omitempty" json:"truckId"`
	TruckPlate    string    `bson:"truckPlate,omitempty" json:"truckPlate"`
	TrailerID     string    `bson:"trailerId,omitempty" json:"trailerId"`
	TrailerPlate  string    `bson:"trailerPlate,omitempty" json:"trailerPlate"`
	DriverID      string    `bson:"driverId,omitempty" json:"driverId"`
	DriverName    string    `bson:"driverName,omitempty" json:"driverName"`
	DriverLineID  string    `bson:"driverLineId,omitempty" json:"driverLineId"`
	Status        string    `bson:"status,omitempty" json:"status"`
	DocNumber     string    `bson:"docNumber,omitempty" json:"docNumber"`
	TruckWeight   string    `bson:"truckWeight,omitempty" json:"truckWeight"`
	CargoWeight   string    `bson:"cargoWeight,omitempty" json:"cargoWeight"`
	GateIn        string    `bson:"gateIn,omitempty" json:"gateIn"`
	GateOut       string    `bson:"gateOut,omitempty" json:"gateOut"`
	ECDNumber     string    `bson:"ecdNumber,omitempty" json:"ecdNumber"`
	CompletedDate string    `bson:"completedDate,omitempty" json:"completedDate"`
	CreatedAt     time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// Terminal reports whether the order can no longer change state.
func (o Order) Terminal() bool {
	return o.Status == OrderCompleted || o.Status == OrderCancelled
}
