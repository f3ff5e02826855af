package board

import (
	"testing"

	"go-logistics-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshotDerivesGroups(t *testing.T) {
	snap := testSnapshot(t)

	tax, ok := snap.Location("tax-zone")
	require.True(t, ok)
	require.Len(t, tax.Groups, 1)
	assert.Equal(t, "Hopped Cider", tax.Groups[0].ProductName)
	assert.Equal(t, 2, tax.Groups[0].Quantity())
	assert.Equal(t, 2, tax.Occupancy())

	warehouse, _ := snap.Location("warehouse-1")
	require.Len(t, warehouse.Groups, 1)
	assert.Equal(t, 1, warehouse.Groups[0].Quantity())

	assert.Equal(t, 3, snap.TotalContainers())
}

func TestNewSnapshotRejectsUnknownLocation(t *testing.T) {
	containers := []*model.Container{keg("keg-1", "Hopped Cider", "B-2024-045", "nowhere", model.StatusPending)}
	_, err := NewSnapshot(testLocations(), containers)
	require.ErrorIs(t, err, ErrLocationNotFound)
}

func TestFindContainer(t *testing.T) {
	snap := testSnapshot(t)

	c, loc, err := snap.FindContainer("keg-2")
	require.NoError(t, err)
	assert.Equal(t, "keg-2", c.ID)
	assert.Equal(t, "tax-zone", loc.Location.ID)

	_, _, err = snap.FindContainer("keg-99")
	require.ErrorIs(t, err, ErrContainerNotFound)
}

// An approved keg moves from bonded storage to a truck: the source group
// shrinks, the destination grows a fresh group of quantity 1.
func TestApplyMoveBetweenLocations(t *testing.T) {
	snap := testSnapshot(t)

	require.NoError(t, snap.ApplyMove("keg-1", "tax-zone", "truck-1"))

	tax, _ := snap.Location("tax-zone")
	require.Len(t, tax.Groups, 1)
	assert.Equal(t, 1, tax.Groups[0].Quantity())

	truck, _ := snap.Location("truck-1")
	require.Len(t, truck.Groups, 1)
	assert.Equal(t, "Hopped Cider", truck.Groups[0].ProductName)
	assert.Equal(t, model.ContainerKeg, truck.Groups[0].ContainerType)
	assert.Equal(t, 1, truck.Groups[0].Quantity())

	c, loc, err := snap.FindContainer("keg-1")
	require.NoError(t, err)
	assert.Equal(t, "truck-1", c.LocationID)
	assert.Equal(t, "truck-1", loc.Location.ID)
}

func TestApplyMoveDeletesEmptyGroup(t *testing.T) {
	snap := testSnapshot(t)

	require.NoError(t, snap.ApplyMove("keg-3", "warehouse-1", "truck-1"))

	warehouse, _ := snap.Location("warehouse-1")
	assert.Empty(t, warehouse.Groups, "a group at quantity 0 must be removed")
}

func TestApplyMoveSameLocationIsNoOp(t *testing.T) {
	snap := testSnapshot(t)
	before := digest(t, snap)

	require.NoError(t, snap.ApplyMove("keg-1", "tax-zone", "tax-zone"))

	assert.Equal(t, before, digest(t, snap))
}

func TestApplyMoveFailuresLeaveBoardUntouched(t *testing.T) {
	snap := testSnapshot(t)
	before := digest(t, snap)

	err := snap.ApplyMove("keg-99", "tax-zone", "truck-1")
	require.ErrorIs(t, err, ErrContainerNotFound)

	err = snap.ApplyMove("keg-1", "tax-zone", "nowhere")
	require.ErrorIs(t, err, ErrLocationNotFound)

	// Container exists, but not at the named source.
	err = snap.ApplyMove("keg-1", "warehouse-1", "truck-1")
	require.ErrorIs(t, err, ErrContainerNotFound)

	assert.Equal(t, before, digest(t, snap))
}

func TestAddContainersUnknownLocationMutatesNothing(t *testing.T) {
	snap := testSnapshot(t)
	before := digest(t, snap)

	err := snap.AddContainers([]*model.Container{
		keg("keg-10", "Hopped Cider", "B-2024-045", "tax-zone", model.StatusPending),
		keg("keg-11", "Hopped Cider", "B-2024-045", "nowhere", model.StatusPending),
	})
	require.ErrorIs(t, err, ErrLocationNotFound)
	assert.Equal(t, before, digest(t, snap))
}

// Group quantities per location always add up to the containers that
// claim to live there, and moves conserve the board-wide total.
func TestInvariantsAcrossMoves(t *testing.T) {
	snap := testSnapshot(t)

	moves := []struct{ id, from, to string }{
		{"keg-1", "tax-zone", "truck-1"},
		{"keg-3", "warehouse-1", "truck-1"},
		{"keg-1", "truck-1", "customer-1"},
		{"keg-1", "customer-1", "cleaning-bay"},
	}
	for _, m := range moves {
		require.NoError(t, snap.ApplyMove(m.id, m.from, m.to))
		assert.Equal(t, 3, snap.TotalContainers())

		for _, ls := range snap.Locations() {
			sum := 0
			for _, g := range ls.Groups {
				assert.Equal(t, g.Quantity(), len(g.Containers))
				for _, c := range g.Containers {
					assert.Equal(t, ls.Location.ID, c.LocationID)
				}
				sum += g.Quantity()
			}
			assert.Equal(t, ls.Occupancy(), sum)
		}
	}
}

func TestStatusAfterArrival(t *testing.T) {
	assert.Equal(t, model.StatusLoaded, StatusAfterArrival(model.LocationTruck, model.StatusApproved))
	assert.Equal(t, model.StatusDelivered, StatusAfterArrival(model.LocationCustomer, model.StatusLoaded))
	assert.Equal(t, model.StatusReturned, StatusAfterArrival(model.LocationCleaning, model.StatusDelivered))
	assert.Equal(t, model.StatusApproved, StatusAfterArrival(model.LocationWarehouse, model.StatusApproved))
	assert.Equal(t, model.StatusPending, StatusAfterArrival(model.LocationTax, model.StatusPending))
}
