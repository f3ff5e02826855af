package board

import (
	"encoding/json"
	"testing"
	"time"

	"go-logistics-ws/internal/model"

	"github.com/stretchr/testify/require"
)

// ── Fixtures ────────────────────────────────────────────────────────────────

func capInt(n int) *int { return &n }

func testLocations() []model.Location {
	return []model.Location{
		{ID: "tax-zone", Name: "Bonded Tax Storage", Type: model.LocationTax},
		{ID: "warehouse-1", Name: "Finished Goods Warehouse", Type: model.LocationWarehouse},
		{ID: "truck-1", Name: "Delivery Truck 1", Type: model.LocationTruck, Capacity: capInt(2)},
		{ID: "customer-1", Name: "Brasserie du Port", Type: model.LocationCustomer},
		{ID: "cleaning-bay", Name: "Returns & Cleaning Bay", Type: model.LocationCleaning},
	}
}

func keg(id, product, batch, locationID string, status model.ContainerStatus) *model.Container {
	return &model.Container{
		ID:            id,
		ProductName:   product,
		BatchID:       batch,
		ContainerType: model.ContainerKeg,
		Status:        status,
		LocationID:    locationID,
	}
}

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	containers := []*model.Container{
		keg("keg-1", "Hopped Cider", "B-2024-045", "tax-zone", model.StatusApproved),
		keg("keg-2", "Hopped Cider", "B-2024-045", "tax-zone", model.StatusPending),
		keg("keg-3", "Dry Cider", "B-2024-041", "warehouse-1", model.StatusApproved),
	}
	snap, err := NewSnapshot(testLocations(), containers)
	require.NoError(t, err)
	return snap
}

// digest serializes the full board so tests can assert "nothing moved".
func digest(t *testing.T, s *Snapshot) string {
	t.Helper()
	b, err := json.Marshal(s.Locations())
	require.NoError(t, err)
	return string(b)
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}
