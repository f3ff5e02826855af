package board

import (
	"fmt"
	"time"

	"go-logistics-ws/internal/model"
)

type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyWarning NotifyKind = "warning"
	NotifyError   NotifyKind = "error"
)

// MoveRecord describes one validated move, handed to the persistence
// hook before the in-memory board is touched.
type MoveRecord struct {
	ContainerID    string
	FromLocationID string
	ToLocationID   string
	ProductName    string
	ContainerType  model.ContainerType
	StatusAfter    model.ContainerStatus
	DueAt          *time.Time
}

// AddRequest is the manual add-containers operation input.
type AddRequest struct {
	ProductID     string
	ProductName   string
	ContainerType model.ContainerType
	Quantity      int
	LocationID    string
	BatchID       string
}

// Config wires a Controller to its surroundings. All hooks and callbacks
// are optional; a zero Config yields a self-contained in-memory board.
type Config struct {
	Alerts AlertConfig

	// ReturnWindow sets DueAt when a container is delivered to a
	// customer. Zero disables due dates.
	ReturnWindow time.Duration

	// Now defaults to time.Now. Injected so container IDs and due
	// dates are deterministic under test.
	Now func() time.Time

	// Persist hooks run between a valid verdict and the in-memory
	// mutation; an error aborts the operation with no board change.
	Persist       func(MoveRecord) error
	PersistAdd    func([]*model.Container) error
	PersistStatus func(containerID string, status model.ContainerStatus) error

	OnAlertsChanged func([]Alert)
	OnNotify        func(title, message string, kind NotifyKind)
}

// Controller is the single mutator of the canonical board. It runs the
// drag state machine, applies the validator's verdict, mutates the
// snapshot and triggers alert recomputation and notifications. It is not
// safe for concurrent use; callers serialize access (one interaction is
// handled start to finish before the next begins).
type Controller struct {
	snap   *Snapshot
	cfg    Config
	alerts []Alert
	drag   *dragState
}

type dragState struct {
	containerID    string
	productName    string
	containerType  model.ContainerType
	fromLocationID string
}

func NewController(snap *Snapshot, cfg Config) *Controller {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Alerts.Now == nil {
		cfg.Alerts.Now = cfg.Now
	}
	ctl := &Controller{snap: snap, cfg: cfg}
	ctl.alerts = ComputeAlerts(snap, cfg.Alerts)
	return ctl
}

// Locations returns a deep copy of the board for rendering. Callers may
// hold or marshal the result while later interactions mutate the board.
func (ctl *Controller) Locations() []*LocationState { return ctl.snap.CloneLocations() }

// Alerts returns the alert list as of the last mutation.
func (ctl *Controller) Alerts() []Alert {
	out := make([]Alert, len(ctl.alerts))
	copy(out, ctl.alerts)
	return out
}

// FindContainer locates a container anywhere on the board.
func (ctl *Controller) FindContainer(id string) (*model.Container, *LocationState, error) {
	return ctl.snap.FindContainer(id)
}

// TotalContainers reports the board-wide container count.
func (ctl *Controller) TotalContainers() int { return ctl.snap.TotalContainers() }

// BeginDrag records the drag origin. A second BeginDrag replaces the
// first, matching how a pointer can only drag one card at a time.
func (ctl *Controller) BeginDrag(containerID string) error {
	c, src, err := ctl.snap.FindContainer(containerID)
	if err != nil {
		return err
	}
	ctl.drag = &dragState{
		containerID:    c.ID,
		productName:    c.ProductName,
		containerType:  c.ContainerType,
		fromLocationID: src.Location.ID,
	}
	return nil
}

// CancelDrag ends a drag without a drop: no mutation, no notification.
func (ctl *Controller) CancelDrag() { ctl.drag = nil }

// Drop completes the in-flight drag at the given location.
func (ctl *Controller) Drop(toLocationID string) (Verdict, error) {
	if ctl.drag == nil {
		return Verdict{}, fmt.Errorf("%w: no drag in progress", ErrInvalidInput)
	}
	containerID := ctl.drag.containerID
	ctl.drag = nil
	return ctl.move(containerID, toLocationID)
}

// RecordMove performs a move without the drag ceremony (the inbound API
// surface for non-pointer callers).
func (ctl *Controller) RecordMove(containerID, toLocationID string) (Verdict, error) {
	if containerID == "" || toLocationID == "" {
		return Verdict{}, fmt.Errorf("%w: missing container or location id", ErrInvalidInput)
	}
	return ctl.move(containerID, toLocationID)
}

func (ctl *Controller) move(containerID, toLocationID string) (Verdict, error) {
	c, src, err := ctl.snap.FindContainer(containerID)
	if err != nil {
		return Verdict{}, err
	}
	dst, ok := ctl.snap.Location(toLocationID)
	if !ok {
		return Verdict{}, fmt.Errorf("%w: %s", ErrLocationNotFound, toLocationID)
	}

	v, err := Validate(c, src, dst)
	if err != nil {
		return Verdict{}, err
	}
	if v.NoOp {
		return v, nil
	}
	if !v.Valid {
		ctl.notify("Move blocked", v.Errors[0], NotifyError)
		return v, nil
	}

	statusAfter := StatusAfterArrival(dst.Location.Type, c.Status)
	var dueAt *time.Time
	if dst.Location.Type == model.LocationCustomer && ctl.cfg.ReturnWindow > 0 {
		due := ctl.cfg.Now().Add(ctl.cfg.ReturnWindow)
		dueAt = &due
	}

	rec := MoveRecord{
		ContainerID:    c.ID,
		FromLocationID: src.Location.ID,
		ToLocationID:   dst.Location.ID,
		ProductName:    c.ProductName,
		ContainerType:  c.ContainerType,
		StatusAfter:    statusAfter,
		DueAt:          dueAt,
	}
	if ctl.cfg.Persist != nil {
		if err := ctl.cfg.Persist(rec); err != nil {
			ctl.notify("Move failed", "move could not be saved", NotifyError)
			return Verdict{}, err
		}
	}

	if err := ctl.snap.ApplyMove(c.ID, rec.FromLocationID, rec.ToLocationID); err != nil {
		return Verdict{}, err
	}
	c.Status = statusAfter
	if dueAt != nil {
		c.DueAt = dueAt
	}

	ctl.refreshAlerts()
	for _, w := range v.Warnings {
		ctl.notify("Move warning", w, NotifyWarning)
	}
	ctl.notify("Container moved",
		fmt.Sprintf("%s %s moved to %s", c.ProductName, c.ContainerType, dst.Location.Name),
		NotifySuccess)
	return v, nil
}

// AddContainers inserts quantity new containers of one product into the
// target location's matching group, creating the group if absent.
// Invalid input is rejected before any mutation.
func (ctl *Controller) AddContainers(req AddRequest) ([]*model.Container, error) {
	if req.ProductName == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if req.LocationID == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	dst, ok := ctl.snap.Location(req.LocationID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, req.LocationID)
	}

	ts := ctl.cfg.Now().Unix()
	containers := make([]*model.Container, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		containers = append(containers, &model.Container{
			ID:            fmt.Sprintf("%s-%d-%d", req.ContainerType, ts, i),
			ProductID:     req.ProductID,
			ProductName:   req.ProductName,
			BatchID:       req.BatchID,
			ContainerType: req.ContainerType,
			Status:        model.StatusPending,
			LocationID:    req.LocationID,
			Deposit:       model.DefaultDeposit(req.ContainerType),
		})
	}

	if ctl.cfg.PersistAdd != nil {
		if err := ctl.cfg.PersistAdd(containers); err != nil {
			return nil, err
		}
	}
	if err := ctl.snap.AddContainers(containers); err != nil {
		return nil, err
	}

	ctl.refreshAlerts()
	ctl.notify("Containers added",
		fmt.Sprintf("%d %s of %s added to %s", req.Quantity, req.ContainerType, req.ProductName, dst.Location.Name),
		NotifySuccess)
	return containers, nil
}

// Approve advances a pending container to approved so it can be loaded.
func (ctl *Controller) Approve(containerID string) error {
	c, _, err := ctl.snap.FindContainer(containerID)
	if err != nil {
		return err
	}
	if c.Status != model.StatusPending {
		return fmt.Errorf("%w: only pending containers can be approved", ErrInvalidInput)
	}
	if ctl.cfg.PersistStatus != nil {
		if err := ctl.cfg.PersistStatus(c.ID, model.StatusApproved); err != nil {
			return err
		}
	}
	c.Status = model.StatusApproved
	ctl.refreshAlerts()
	ctl.notify("Container approved",
		fmt.Sprintf("%s %s approved for loading", c.ProductName, c.ContainerType),
		NotifySuccess)
	return nil
}

func (ctl *Controller) refreshAlerts() {
	ctl.alerts = ComputeAlerts(ctl.snap, ctl.cfg.Alerts)
	if ctl.cfg.OnAlertsChanged != nil {
		ctl.cfg.OnAlertsChanged(ctl.Alerts())
	}
}

func (ctl *Controller) notify(title, message string, kind NotifyKind) {
	if ctl.cfg.OnNotify != nil {
		ctl.cfg.OnNotify(title, message, kind)
	}
}
