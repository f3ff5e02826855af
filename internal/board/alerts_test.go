package board

import (
	"testing"
	"time"

	"go-logistics-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAlertsLowStock(t *testing.T) {
	snap := testSnapshot(t) // 2 Hopped Cider kegs at tax-zone, 1 Dry Cider at warehouse-1

	alerts := ComputeAlerts(snap, AlertConfig{DefaultLowStock: 2, Now: fixedNow})

	// Only the warehouse group (quantity 1) is below the threshold of 2.
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertLowStock, alerts[0].Type)
	assert.Equal(t, SeverityMedium, alerts[0].Severity)
	assert.Equal(t, "Dry Cider", alerts[0].ProductName)
	assert.Equal(t, "warehouse-1", alerts[0].LocationID)
}

func TestComputeAlertsPerProductThreshold(t *testing.T) {
	snap := testSnapshot(t)

	alerts := ComputeAlerts(snap, AlertConfig{
		DefaultLowStock: 0, // disabled globally
		LowStock:        map[string]int{"Hopped Cider": 5},
		Now:             fixedNow,
	})

	require.Len(t, alerts, 1)
	assert.Equal(t, "Hopped Cider", alerts[0].ProductName)
	assert.Equal(t, "tax-zone", alerts[0].LocationID)
}

func TestComputeAlertsCapacityExceeded(t *testing.T) {
	containers := []*model.Container{
		keg("keg-1", "Hopped Cider", "B-2024-045", "truck-1", model.StatusLoaded),
		keg("keg-2", "Hopped Cider", "B-2024-045", "truck-1", model.StatusLoaded),
	}
	snap, err := NewSnapshot(testLocations(), containers)
	require.NoError(t, err)

	alerts := ComputeAlerts(snap, AlertConfig{Now: fixedNow})

	require.Len(t, alerts, 1)
	assert.Equal(t, AlertCapacityExceeded, alerts[0].Type)
	assert.Equal(t, SeverityHigh, alerts[0].Severity)
	assert.Equal(t, "truck-1", alerts[0].LocationID)
}

func TestComputeAlertsOverdueReturn(t *testing.T) {
	due := fixedNow().AddDate(0, 0, -3)
	overdue := keg("keg-1", "Hopped Cider", "B-2024-038", "customer-1", model.StatusDelivered)
	overdue.DueAt = &due

	// Delivered but no due date: never overdue.
	noDue := keg("keg-2", "Hopped Cider", "B-2024-038", "customer-1", model.StatusDelivered)

	// Due in the future.
	future := fixedNow().AddDate(0, 0, 14)
	onTime := keg("keg-3", "Hopped Cider", "B-2024-038", "customer-1", model.StatusDelivered)
	onTime.DueAt = &future

	snap, err := NewSnapshot(testLocations(), []*model.Container{overdue, noDue, onTime})
	require.NoError(t, err)

	alerts := ComputeAlerts(snap, AlertConfig{Now: fixedNow})

	require.Len(t, alerts, 1)
	assert.Equal(t, AlertOverdueReturn, alerts[0].Type)
	assert.Equal(t, SeverityHigh, alerts[0].Severity)
	assert.Equal(t, "overdue:keg-1", alerts[0].ID)
}

// High severity sorts first even when discovered later; within a
// severity, discovery order (location, then group) is preserved.
func TestComputeAlertsOrdering(t *testing.T) {
	containers := []*model.Container{
		keg("keg-1", "Hopped Cider", "B-2024-045", "tax-zone", model.StatusPending),
		keg("keg-2", "Dry Cider", "B-2024-041", "warehouse-1", model.StatusApproved),
		keg("keg-3", "Hopped Cider", "B-2024-045", "truck-1", model.StatusLoaded),
		keg("keg-4", "Hopped Cider", "B-2024-045", "truck-1", model.StatusLoaded),
	}
	snap, err := NewSnapshot(testLocations(), containers)
	require.NoError(t, err)

	alerts := ComputeAlerts(snap, AlertConfig{DefaultLowStock: 2, Now: fixedNow})

	// truck-1 capacity (high) first, then low-stock at tax-zone before
	// warehouse-1 (board order).
	require.Len(t, alerts, 3)
	assert.Equal(t, AlertCapacityExceeded, alerts[0].Type)
	assert.Equal(t, "tax-zone", alerts[1].LocationID)
	assert.Equal(t, "warehouse-1", alerts[2].LocationID)
}

func TestComputeAlertsIsDeterministic(t *testing.T) {
	snap := testSnapshot(t)
	cfg := AlertConfig{DefaultLowStock: 3, Now: fixedNow}

	first := ComputeAlerts(snap, cfg)
	second := ComputeAlerts(snap, cfg)
	assert.Equal(t, first, second)
}

func TestComputeAlertsDefaultsClock(t *testing.T) {
	due := time.Now().AddDate(0, 0, -1)
	overdue := keg("keg-1", "Hopped Cider", "B-2024-038", "customer-1", model.StatusDelivered)
	overdue.DueAt = &due

	snap, err := NewSnapshot(testLocations(), []*model.Container{overdue})
	require.NoError(t, err)

	alerts := ComputeAlerts(snap, AlertConfig{})
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertOverdueReturn, alerts[0].Type)
}
