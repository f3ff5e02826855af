package board

import (
	"encoding/json"
	"testing"

	"go-logistics-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsMalformedInput(t *testing.T) {
	snap := testSnapshot(t)
	tax, _ := snap.Location("tax-zone")
	truck, _ := snap.Location("truck-1")

	_, err := Validate(nil, tax, truck)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Validate(keg("keg-1", "Hopped Cider", "B-2024-045", "tax-zone", model.StatusApproved), nil, truck)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Validate(&model.Container{}, tax, truck)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateSameLocationIsIdempotentSuccess(t *testing.T) {
	snap := testSnapshot(t)
	tax, _ := snap.Location("tax-zone")
	c, _, _ := snap.FindContainer("keg-1")

	v, err := Validate(c, tax, tax)
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.True(t, v.NoOp)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
}

// Over the wire a verdict always carries errors and warnings as arrays,
// even when both are empty.
func TestValidateVerdictMarshalsStableShape(t *testing.T) {
	snap := testSnapshot(t)
	tax, _ := snap.Location("tax-zone")
	truck, _ := snap.Location("truck-1")
	c, _, _ := snap.FindContainer("keg-1")

	clean, err := Validate(c, tax, truck)
	require.NoError(t, err)
	noop, err := Validate(c, tax, tax)
	require.NoError(t, err)

	for _, v := range []Verdict{clean, noop} {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"errors":[]`)
		assert.Contains(t, string(b), `"warnings":[]`)
	}
}

// A truck with 2/2 pallet slots refuses a third container.
func TestValidateCapacityRule(t *testing.T) {
	containers := []*model.Container{
		keg("keg-1", "Hopped Cider", "B-2024-045", "truck-1", model.StatusLoaded),
		keg("keg-2", "Hopped Cider", "B-2024-045", "truck-1", model.StatusLoaded),
		keg("keg-3", "Dry Cider", "B-2024-041", "warehouse-1", model.StatusApproved),
	}
	snap, err := NewSnapshot(testLocations(), containers)
	require.NoError(t, err)

	warehouse, _ := snap.Location("warehouse-1")
	truck, _ := snap.Location("truck-1")
	c, _, _ := snap.FindContainer("keg-3")

	v, err := Validate(c, warehouse, truck)
	require.NoError(t, err)
	assert.False(t, v.Valid)
	require.Len(t, v.Errors, 1)
	assert.Contains(t, v.Errors[0], "capacity")

	// Validation alone never mutates.
	assert.Equal(t, 2, truck.Occupancy())
}

func TestValidatePendingCannotLoad(t *testing.T) {
	snap := testSnapshot(t)
	tax, _ := snap.Location("tax-zone")
	truck, _ := snap.Location("truck-1")
	c, _, _ := snap.FindContainer("keg-2") // still pending

	v, err := Validate(c, tax, truck)
	require.NoError(t, err)
	assert.False(t, v.Valid)
	require.Len(t, v.Errors, 1)
	assert.Equal(t, "must be approved before loading", v.Errors[0])
}

func TestValidateApprovedCanLoad(t *testing.T) {
	snap := testSnapshot(t)
	tax, _ := snap.Location("tax-zone")
	truck, _ := snap.Location("truck-1")
	c, _, _ := snap.FindContainer("keg-1") // approved

	v, err := Validate(c, tax, truck)
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
}

// Returning an undelivered keg is allowed but flagged.
func TestValidateEarlyReturnWarns(t *testing.T) {
	snap := testSnapshot(t)
	tax, _ := snap.Location("tax-zone")
	cleaning, _ := snap.Location("cleaning-bay")
	c, _, _ := snap.FindContainer("keg-1") // approved, not delivered

	v, err := Validate(c, tax, cleaning)
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
	require.Len(t, v.Warnings, 1)
	assert.Equal(t, "returning a container not yet delivered", v.Warnings[0])
}

func TestValidateDeliveredKegReturnsCleanly(t *testing.T) {
	containers := []*model.Container{
		keg("keg-1", "Hopped Cider", "B-2024-045", "customer-1", model.StatusDelivered),
	}
	snap, err := NewSnapshot(testLocations(), containers)
	require.NoError(t, err)

	customer, _ := snap.Location("customer-1")
	cleaning, _ := snap.Location("cleaning-bay")
	c, _, _ := snap.FindContainer("keg-1")

	v, err := Validate(c, customer, cleaning)
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Warnings)
}
