package models

import "time"

// TrainingCourse is a picklist entry for the driver training matrix.
type TrainingCourse struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}
