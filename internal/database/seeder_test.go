package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

func TestSeedDemoData(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, SeedDemoData(ctx, mem))

	var vehicles []models.Vehicle
	require.NoError(t, mem.List(ctx, "fleet", &vehicles))
	require.Len(t, vehicles, 3)
	assert.Equal(t, "70-1234", vehicles[0].Plate)

	var drivers []models.Driver
	require.NoError(t, mem.List(ctx, "drivers", &drivers))
	require.Len(t, drivers, 2)
	assert.Equal(t, "SIT-000001", drivers[0].EmpID)
	assert.Equal(t, "SIT-000002", drivers[1].EmpID)
	assert.Equal(t, models.DriverActive, drivers[0].Status)
}

func TestSeedDemoDataRefusesNonEmptyFleet(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	_, err := mem.Create(ctx, "fleet", models.Vehicle{Plate: "99-9999"})
	require.NoError(t, err)

	assert.ErrorIs(t, SeedDemoData(ctx, mem), ErrAlreadySeeded)

	count, err := mem.Count(ctx, "fleet")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
