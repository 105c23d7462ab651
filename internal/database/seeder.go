package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/siriassis-creator/Sit-logistics-app/internal/fleetview"
	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

// ErrAlreadySeeded reports that the fleet already has data. Seeding is a
// one-shot bootstrap for empty installs, never a reset.
var ErrAlreadySeeded = errors.New("database already has fleet data")

// SeedDemoData inserts a small Thai demo fleet and driver roster.
func SeedDemoData(ctx context.Context, st store.Store) error {
	count, err := st.Count(ctx, "fleet")
	if err != nil {
		return fmt.Errorf("count fleet: %w", err)
	}
	if count > 0 {
		return ErrAlreadySeeded
	}

	now := time.Now()
	vehicles := []models.Vehicle{
		{Plate: "70-1234", Type: "หัวลาก 10 ล้อ", Brand: "HINO", Customer: "SCG", Status: models.VehicleAvailable, CreatedAt: now},
		{Plate: "71-5678", Type: "หางพื้นเรียบ", Brand: "PANUS", Customer: "Nestle", Status: models.VehicleInTransit, CreatedAt: now},
		{Plate: "72-9012", Type: "หัวลาก 10 ล้อ", Brand: "ISUZU", Customer: "PTT", Status: models.VehicleMaintenance, CreatedAt: now},
	}
	for _, v := range vehicles {
		if _, err := st.Create(ctx, "fleet", v); err != nil {
			return fmt.Errorf("seed fleet: %w", err)
		}
	}

	drivers := []models.Driver{
		{
			Name:        "สมชาย ใจดี",
			Phone:       "081-111-2222",
			LicenseType: models.LicenseT4,
			Status:      models.DriverActive,
			Training:    []string{"การขับขี่เชิงป้องกัน", "สินค้าอันตราย"},
			CreatedAt:   now,
		},
		{
			Name:        "วิชัย มุ่งมั่น",
			Phone:       "089-999-8888",
			LicenseType: models.LicenseT3,
			Status:      models.DriverActive,
			Training:    []string{"การปฐมพยาบาล"},
			CreatedAt:   now,
		},
	}
	codes := []string{}
	for _, d := range drivers {
		d.EmpID = fleetview.NextCode(codes, "SIT-", 6)
		codes = append(codes, d.EmpID)
		if _, err := st.Create(ctx, "drivers", d); err != nil {
			return fmt.Errorf("seed drivers: %w", err)
		}
	}

	return nil
}
