package models

import "time"

const (
	DriverActive   = "Active"
	DriverInactive = "Inactive"
)

// Thai commercial license classes.
const (
	LicenseT2 = "ท.2"
	LicenseT3 = "ท.3"
	LicenseT4 = "ท.4"
)

// Driver is an employee document. EmpID is a generated sequential code
// (SIT-000001, ...). Training holds course names copied from the
// training_courses picklist at save time; renaming a course later does not
// cascade into existing driver documents.
type Driver struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	EmpID         string    `bson:"empId" json:"empId"`
	Name          string    `bson:"name" json:"name"`
	IDCard        string    `bson:"idCard,omitempty" json:"idCard"`
	BirthDate     string    `bson:"birthDate,omitempty" json:"birthDate"`
	IDCardExpiry  string    `bson:"idCardExpiry,omitempty" json:"idCardExpiry"`
	LicenseNumber string    `bson:"licenseNumber,omitempty" json:"licenseNumber"`
	LicenseType   string    `bson:"licenseType,omitempty" json:"licenseType"`
	LicenseExpiry string    `bson:"licenseExpiry,omitempty" json:"licenseExpiry"`
	Phone         string    `bson:"phone,omitempty" json:"phone"`
	LineID        string    `bson:"lineId,omitempty" json:"lineId"`
	StartDate     string    `bson:"startDate,omitempty" json:"startDate"`
	Status        string    `bson:"status,omitempty" json:"status"`
	Training      []string  `bson:"training,omitempty" json:"training"`
	PhotoURL      string    `bson:"photoUrl,omitempty" json:"photoUrl"`
	CreatedAt     time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}
