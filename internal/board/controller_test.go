package board

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-logistics-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notification struct {
	title   string
	message string
	kind    NotifyKind
}

// recorder captures everything the controller pushes outward.
type recorder struct {
	notifications []notification
	alertBatches  [][]Alert
	moves         []MoveRecord
	persistErr    error
}

func (r *recorder) config() Config {
	return Config{
		Now:          fixedNow,
		ReturnWindow: 7 * 24 * time.Hour,
		Persist: func(rec MoveRecord) error {
			if r.persistErr != nil {
				return r.persistErr
			}
			r.moves = append(r.moves, rec)
			return nil
		},
		OnAlertsChanged: func(alerts []Alert) {
			r.alertBatches = append(r.alertBatches, alerts)
		},
		OnNotify: func(title, message string, kind NotifyKind) {
			r.notifications = append(r.notifications, notification{title, message, kind})
		},
	}
}

func testController(t *testing.T) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewController(testSnapshot(t), rec.config()), rec
}

// An approved keg rides from bonded storage onto a truck: board mutates,
// the move is persisted, alerts recompute, a success notification fires.
func TestControllerMoveSucceeds(t *testing.T) {
	ctl, rec := testController(t)

	v, err := ctl.RecordMove("keg-1", "truck-1")
	require.NoError(t, err)
	assert.True(t, v.Valid)

	c, loc, err := ctl.FindContainer("keg-1")
	require.NoError(t, err)
	assert.Equal(t, "truck-1", loc.Location.ID)
	assert.Equal(t, model.StatusLoaded, c.Status)

	require.Len(t, rec.moves, 1)
	assert.Equal(t, MoveRecord{
		ContainerID:    "keg-1",
		FromLocationID: "tax-zone",
		ToLocationID:   "truck-1",
		ProductName:    "Hopped Cider",
		ContainerType:  model.ContainerKeg,
		StatusAfter:    model.StatusLoaded,
	}, rec.moves[0])

	require.Len(t, rec.alertBatches, 1)
	require.Len(t, rec.notifications, 1)
	assert.Equal(t, "Container moved", rec.notifications[0].title)
	assert.Equal(t, NotifySuccess, rec.notifications[0].kind)
}

// A pending keg dragged to a truck is blocked: verdict carries the error
// and absolutely nothing changes.
func TestControllerBlockedMoveMutatesNothing(t *testing.T) {
	ctl, rec := testController(t)
	before := digest(t, ctl.snap)
	alertsBefore := ctl.Alerts()

	v, err := ctl.RecordMove("keg-2", "truck-1")
	require.NoError(t, err)
	assert.False(t, v.Valid)
	require.Len(t, v.Errors, 1)
	assert.Equal(t, "must be approved before loading", v.Errors[0])

	assert.Equal(t, before, digest(t, ctl.snap))
	assert.Equal(t, alertsBefore, ctl.Alerts())
	assert.Empty(t, rec.moves)
	assert.Empty(t, rec.alertBatches)

	require.Len(t, rec.notifications, 1)
	assert.Equal(t, "Move blocked", rec.notifications[0].title)
	assert.Equal(t, NotifyError, rec.notifications[0].kind)
}

// Dropping a container where it already sits leaves the whole snapshot,
// including alerts, unchanged. No notifications, no persistence.
func TestControllerSameLocationMoveIsIdempotent(t *testing.T) {
	ctl, rec := testController(t)
	before := digest(t, ctl.snap)
	alertsBefore := ctl.Alerts()

	v, err := ctl.RecordMove("keg-1", "tax-zone")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.True(t, v.NoOp)

	assert.Equal(t, before, digest(t, ctl.snap))
	assert.Equal(t, alertsBefore, ctl.Alerts())
	assert.Empty(t, rec.moves)
	assert.Empty(t, rec.notifications)
}

// States handed out for rendering are decoupled from the live board:
// moves and approvals after the read do not show through them.
func TestControllerLocationsReturnsIndependentCopy(t *testing.T) {
	ctl, _ := testController(t)

	locs := ctl.Locations()
	before, err := json.Marshal(locs)
	require.NoError(t, err)

	v, err := ctl.RecordMove("keg-1", "truck-1")
	require.NoError(t, err)
	require.True(t, v.Valid)
	require.NoError(t, ctl.Approve("keg-2"))

	after, err := json.Marshal(locs)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	// A fresh read sees both mutations.
	c, loc, err := ctl.FindContainer("keg-1")
	require.NoError(t, err)
	assert.Equal(t, "truck-1", loc.Location.ID)
	assert.Equal(t, model.StatusLoaded, c.Status)
}

func TestControllerDragDropFlow(t *testing.T) {
	ctl, _ := testController(t)

	require.NoError(t, ctl.BeginDrag("keg-1"))
	v, err := ctl.Drop("truck-1")
	require.NoError(t, err)
	assert.True(t, v.Valid)

	// The drag is consumed; a second drop has nothing in flight.
	_, err = ctl.Drop("truck-1")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestControllerCancelDrag(t *testing.T) {
	ctl, rec := testController(t)
	before := digest(t, ctl.snap)

	require.NoError(t, ctl.BeginDrag("keg-1"))
	ctl.CancelDrag()

	_, err := ctl.Drop("truck-1")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, before, digest(t, ctl.snap))
	assert.Empty(t, rec.notifications)
}

func TestControllerBeginDragUnknownContainer(t *testing.T) {
	ctl, _ := testController(t)
	require.ErrorIs(t, ctl.BeginDrag("keg-99"), ErrContainerNotFound)
}

// A failing persistence hook aborts the move before the board mutates.
func TestControllerPersistFailureAborts(t *testing.T) {
	ctl, rec := testController(t)
	rec.persistErr = errors.New("db down")
	before := digest(t, ctl.snap)

	_, err := ctl.RecordMove("keg-1", "truck-1")
	require.Error(t, err)
	assert.Equal(t, before, digest(t, ctl.snap))

	c, _, _ := ctl.FindContainer("keg-1")
	assert.Equal(t, model.StatusApproved, c.Status)
}

// Delivery to a customer stamps the return due date.
func TestControllerDeliverySetsDueDate(t *testing.T) {
	ctl, rec := testController(t)

	v, err := ctl.RecordMove("keg-1", "customer-1")
	require.NoError(t, err)
	assert.True(t, v.Valid)

	c, _, _ := ctl.FindContainer("keg-1")
	assert.Equal(t, model.StatusDelivered, c.Status)
	require.NotNil(t, c.DueAt)
	assert.Equal(t, fixedNow().Add(7*24*time.Hour), *c.DueAt)

	require.Len(t, rec.moves, 1)
	require.NotNil(t, rec.moves[0].DueAt)
}

// Early return of an undelivered keg goes through with a warning, then
// the usual success notification.
func TestControllerWarningMoveApplies(t *testing.T) {
	ctl, rec := testController(t)

	v, err := ctl.RecordMove("keg-1", "cleaning-bay")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	require.Len(t, v.Warnings, 1)

	c, loc, _ := ctl.FindContainer("keg-1")
	assert.Equal(t, "cleaning-bay", loc.Location.ID)
	assert.Equal(t, model.StatusReturned, c.Status)

	require.Len(t, rec.notifications, 2)
	assert.Equal(t, NotifyWarning, rec.notifications[0].kind)
	assert.Equal(t, "returning a container not yet delivered", rec.notifications[0].message)
	assert.Equal(t, NotifySuccess, rec.notifications[1].kind)
}

// Adding 5 cases of a product with no existing group at the destination
// creates one group of quantity 5 with distinct IDs.
func TestControllerAddContainers(t *testing.T) {
	ctl, rec := testController(t)

	containers, err := ctl.AddContainers(AddRequest{
		ProductID:     "dry-cider",
		ProductName:   "Dry Cider",
		ContainerType: model.ContainerCase,
		Quantity:      5,
		LocationID:    "warehouse-1",
		BatchID:       "B-2024-050",
	})
	require.NoError(t, err)
	require.Len(t, containers, 5)

	seen := map[string]bool{}
	for _, c := range containers {
		assert.False(t, seen[c.ID], "container IDs must be distinct")
		seen[c.ID] = true
		assert.Equal(t, model.StatusPending, c.Status)
		assert.Equal(t, "B-2024-050", c.BatchID)
	}

	warehouse, _ := ctl.snap.Location("warehouse-1")
	g, _ := warehouse.findGroup("Dry Cider", model.ContainerCase)
	require.NotNil(t, g)
	assert.Equal(t, 5, g.Quantity())
	assert.Equal(t, 8, ctl.TotalContainers())

	require.Len(t, rec.alertBatches, 1)
	require.Len(t, rec.notifications, 1)
	assert.Equal(t, "Containers added", rec.notifications[0].title)
}

func TestControllerAddContainersRejectsBadInput(t *testing.T) {
	ctl, rec := testController(t)
	before := digest(t, ctl.snap)

	cases := []AddRequest{
		{ProductName: "", ContainerType: model.ContainerCase, Quantity: 1, LocationID: "warehouse-1"},
		{ProductName: "Dry Cider", ContainerType: model.ContainerCase, Quantity: 0, LocationID: "warehouse-1"},
		{ProductName: "Dry Cider", ContainerType: model.ContainerCase, Quantity: -2, LocationID: "warehouse-1"},
		{ProductName: "Dry Cider", ContainerType: model.ContainerCase, Quantity: 1, LocationID: ""},
	}
	for _, req := range cases {
		_, err := ctl.AddContainers(req)
		require.ErrorIs(t, err, ErrInvalidInput)
	}

	_, err := ctl.AddContainers(AddRequest{ProductName: "Dry Cider", ContainerType: model.ContainerCase, Quantity: 1, LocationID: "nowhere"})
	require.ErrorIs(t, err, ErrLocationNotFound)

	assert.Equal(t, before, digest(t, ctl.snap))
	assert.Empty(t, rec.notifications)
}

// A manual add can push a location over capacity; the very next alert
// recomputation reports it.
func TestControllerAddCrossingCapacityRaisesAlert(t *testing.T) {
	ctl, rec := testController(t)

	_, err := ctl.AddContainers(AddRequest{
		ProductName:   "Hopped Cider",
		ContainerType: model.ContainerKeg,
		Quantity:      2,
		LocationID:    "truck-1", // capacity 2
	})
	require.NoError(t, err)

	var capacityAlert *Alert
	for _, a := range ctl.Alerts() {
		if a.Type == AlertCapacityExceeded && a.LocationID == "truck-1" {
			capacityAlert = &a
			break
		}
	}
	require.NotNil(t, capacityAlert)
	assert.Equal(t, SeverityHigh, capacityAlert.Severity)
	require.NotEmpty(t, rec.alertBatches)
}

func TestControllerApprove(t *testing.T) {
	ctl, _ := testController(t)

	// Blocked while pending.
	v, err := ctl.RecordMove("keg-2", "truck-1")
	require.NoError(t, err)
	assert.False(t, v.Valid)

	require.NoError(t, ctl.Approve("keg-2"))
	c, _, _ := ctl.FindContainer("keg-2")
	assert.Equal(t, model.StatusApproved, c.Status)

	// Approving twice is an input error, not a silent success.
	require.ErrorIs(t, ctl.Approve("keg-2"), ErrInvalidInput)

	v, err = ctl.RecordMove("keg-2", "truck-1")
	require.NoError(t, err)
	assert.True(t, v.Valid)
}

func TestControllerConservation(t *testing.T) {
	ctl, _ := testController(t)
	total := ctl.TotalContainers()

	steps := []struct{ id, to string }{
		{"keg-1", "truck-1"},
		{"keg-1", "customer-1"},
		{"keg-1", "cleaning-bay"},
		{"keg-3", "truck-1"},
	}
	for _, st := range steps {
		v, err := ctl.RecordMove(st.id, st.to)
		require.NoError(t, err)
		require.True(t, v.Valid)
		assert.Equal(t, total, ctl.TotalContainers())
	}
}
