package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-logistics-ws/internal/board"
	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/repository"
	"go-logistics-ws/internal/ws"
	"go-logistics-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrContainerNotOnBoard = errors.New("container not on board")

// AddContainersRequest is the manual-add input from the API surface.
type AddContainersRequest struct {
	ProductID     string              `json:"product_id"`
	ProductName   string              `json:"product_name" validate:"required"`
	ContainerType model.ContainerType `json:"container_type" validate:"required,oneof=keg case bottle can"`
	Quantity      int                 `json:"quantity" validate:"required,gt=0"`
	LocationID    string              `json:"location_id" validate:"required"`
	BatchID       string              `json:"batch_id"`
}

// MoveRequest is the inbound move intent.
type MoveRequest struct {
	ContainerID  string `json:"container_id" validate:"required"`
	ToLocationID string `json:"to_location_id" validate:"required"`
}

// BoardOptions carries the configurable knobs of the alert rules.
type BoardOptions struct {
	LowStockThreshold int
	LowStockOverrides map[string]int
	ReturnWindow      time.Duration
}

type LogisticsService interface {
	RecordMove(req *MoveRequest, userID, userName string) (board.Verdict, error)
	AddContainers(req *AddContainersRequest, userID, userName string) ([]*model.Container, error)
	ApproveContainer(containerID, userID, userName string) error
	GetLocations() []*board.LocationState
	GetAlerts() []board.Alert
	GetContainer(id string) (*model.Container, error)
	GetAllMovements() ([]model.Movement, error)
	GetMovementByID(id uuid.UUID) (*model.Movement, error)
	GetMovementsForContainer(containerID string) ([]model.Movement, error)
}

type logisticsService struct {
	ctl           *board.Controller
	containerRepo repository.ContainerRepository
	locationRepo  repository.LocationRepository
	movementRepo  repository.MovementRepository
	db            *gorm.DB
	wsHub         *ws.Hub

	// mu serializes board interactions: one operation runs start to
	// finish before the next begins, which is the only mutual exclusion
	// the controller relies on.
	mu sync.Mutex

	// actor identifies the user behind the operation currently holding
	// mu; persist hooks and notifications read it.
	actorID   string
	actorName string
}

func NewLogisticsService(
	cRepo repository.ContainerRepository,
	lRepo repository.LocationRepository,
	mRepo repository.MovementRepository,
	db *gorm.DB,
	hub *ws.Hub,
	opts BoardOptions,
) (LogisticsService, error) {
	s := &logisticsService{
		containerRepo: cRepo,
		locationRepo:  lRepo,
		movementRepo:  mRepo,
		db:            db,
		wsHub:         hub,
	}

	// Load the board once at boot; from here the in-memory snapshot is
	// canonical and the DB trails it move by move.
	locations, err := lRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	records, err := cRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load containers: %w", err)
	}
	containers := make([]*model.Container, len(records))
	for i := range records {
		containers[i] = &records[i]
	}

	snap, err := board.NewSnapshot(locations, containers)
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}

	s.ctl = board.NewController(snap, board.Config{
		Alerts: board.AlertConfig{
			DefaultLowStock: opts.LowStockThreshold,
			LowStock:        opts.LowStockOverrides,
		},
		ReturnWindow:    opts.ReturnWindow,
		Persist:         s.persistMove,
		PersistAdd:      s.persistAdd,
		PersistStatus:   s.persistStatus,
		OnAlertsChanged: s.broadcastAlerts,
		OnNotify:        s.broadcastNotification,
	})
	return s, nil
}

func (s *logisticsService) RecordMove(req *MoveRequest, userID, userName string) (board.Verdict, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return board.Verdict{}, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.actorID, s.actorName = userID, userName

	return s.ctl.RecordMove(req.ContainerID, req.ToLocationID)
}

func (s *logisticsService) AddContainers(req *AddContainersRequest, userID, userName string) ([]*model.Container, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.actorID, s.actorName = userID, userName

	return s.ctl.AddContainers(board.AddRequest{
		ProductID:     req.ProductID,
		ProductName:   req.ProductName,
		ContainerType: req.ContainerType,
		Quantity:      req.Quantity,
		LocationID:    req.LocationID,
		BatchID:       req.BatchID,
	})
}

func (s *logisticsService) ApproveContainer(containerID, userID, userName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actorID, s.actorName = userID, userName

	return s.ctl.Approve(containerID)
}

// GetLocations returns an independent copy of the board, taken while
// holding mu. Handlers marshal it after the lock is released.
func (s *logisticsService) GetLocations() []*board.LocationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctl.Locations()
}

func (s *logisticsService) GetAlerts() []board.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctl.Alerts()
}

func (s *logisticsService) GetContainer(id string) (*model.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, _, err := s.ctl.FindContainer(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrContainerNotOnBoard, id)
	}
	out := *c
	if c.DueAt != nil {
		due := *c.DueAt
		out.DueAt = &due
	}
	return &out, nil
}

func (s *logisticsService) GetAllMovements() ([]model.Movement, error) {
	return s.movementRepo.FindAll()
}

func (s *logisticsService) GetMovementByID(id uuid.UUID) (*model.Movement, error) {
	return s.movementRepo.FindByID(id)
}

func (s *logisticsService) GetMovementsForContainer(containerID string) ([]model.Movement, error) {
	return s.movementRepo.FindByContainer(containerID)
}

// persistMove writes the placement change and the movement audit row in
// one transaction, before the in-memory board mutates. A failure here
// leaves both DB and board unchanged.
func (s *logisticsService) persistMove(rec board.MoveRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		placement := model.Container{
			ID:         rec.ContainerID,
			LocationID: rec.ToLocationID,
			Status:     rec.StatusAfter,
			DueAt:      rec.DueAt,
		}
		if err := s.containerRepo.UpdatePlacement(tx, placement, s.actorID); err != nil {
			return err
		}

		movement := &model.Movement{
			ContainerID:    rec.ContainerID,
			FromLocationID: rec.FromLocationID,
			ToLocationID:   rec.ToLocationID,
			ProductName:    rec.ProductName,
			ContainerType:  rec.ContainerType,
			StatusAfter:    rec.StatusAfter,
		}
		movement.CreatedBy = s.actorID
		movement.UpdatedBy = s.actorID
		if s.actorID != "" {
			actorID := s.actorID
			movement.CreatedByUserID = &actorID
		}
		return s.movementRepo.Create(tx, movement)
	})
}

func (s *logisticsService) persistAdd(containers []*model.Container) error {
	for _, c := range containers {
		c.CreatedBy = s.actorID
		c.UpdatedBy = s.actorID
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.containerRepo.CreateBatch(tx, containers)
	})
}

func (s *logisticsService) persistStatus(containerID string, status model.ContainerStatus) error {
	return s.containerRepo.UpdateStatus(s.db, containerID, status, s.actorID)
}

func (s *logisticsService) broadcastAlerts(alerts []board.Alert) {
	if s.wsHub == nil {
		return
	}
	payload := map[string]interface{}{
		"type":   "alerts_changed",
		"alerts": alerts,
	}
	msg, _ := json.Marshal(payload)
	go func() { s.wsHub.Broadcast <- msg }()
}

func (s *logisticsService) broadcastNotification(title, message string, kind board.NotifyKind) {
	if s.wsHub == nil {
		return
	}
	payload := map[string]interface{}{
		"type":    "notification",
		"kind":    kind,
		"title":   title,
		"message": message,
		"user": map[string]interface{}{
			"id":   s.actorID,
			"name": s.actorName,
		},
	}
	msg, _ := json.Marshal(payload)
	go func() { s.wsHub.Broadcast <- msg }()
}
