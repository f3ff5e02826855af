package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContainerType string

const (
	ContainerKeg    ContainerType = "keg"
	ContainerCase   ContainerType = "case"
	ContainerBottle ContainerType = "bottle"
	ContainerCan    ContainerType = "can"
)

type ContainerStatus string

const (
	StatusPending   ContainerStatus = "pending"
	StatusApproved  ContainerStatus = "approved"
	StatusLoaded    ContainerStatus = "loaded"
	StatusInTransit ContainerStatus = "in-transit"
	StatusDelivered ContainerStatus = "delivered"
	StatusReturned  ContainerStatus = "returned"
)

// statusOrder reflects the lifecycle stage ordering:
// tax -> production -> packaging -> delivery -> restaurant -> returns
var statusOrder = map[ContainerStatus]int{
	StatusPending:   0,
	StatusApproved:  1,
	StatusLoaded:    2,
	StatusInTransit: 3,
	StatusDelivered: 4,
	StatusReturned:  5,
}

// AtLeast reports whether s has reached stage other in the lifecycle.
func (s ContainerStatus) AtLeast(other ContainerStatus) bool {
	return statusOrder[s] >= statusOrder[other]
}

// Container is a single trackable unit (keg, case, bottle, can).
// IDs are plain strings ("keg-1693526400-0") generated by the board
// controller, not UUIDs, so they stay readable on the board.
type Container struct {
	ID            string          `gorm:"type:varchar(64);primaryKey" json:"id" validate:"required"`
	ProductID     string          `gorm:"type:varchar(64);index" json:"product_id"`
	ProductName   string          `gorm:"type:varchar(255);not null" json:"product_name" validate:"required"`
	BatchID       string          `gorm:"type:varchar(64);index" json:"batch_id"`
	ContainerType ContainerType   `gorm:"type:varchar(10);not null" json:"container_type" validate:"required,oneof=keg case bottle can"`
	Status        ContainerStatus `gorm:"type:varchar(12);not null;default:'pending'" json:"status"`
	LocationID    string          `gorm:"type:varchar(64);not null;index" json:"location_id" validate:"required"`
	Location      *Location       `gorm:"foreignKey:LocationID" json:"location,omitempty" validate:"-"`

	// Deposit charged to the customer while they hold the container.
	Deposit decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"deposit"`

	// DueAt is set when the container is delivered; a delivered container
	// past DueAt raises an overdue-return alert.
	DueAt *time.Time `json:"due_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
}

// DefaultDeposit returns the standard deposit amount for a container type.
func DefaultDeposit(t ContainerType) decimal.Decimal {
	switch t {
	case ContainerKeg:
		return decimal.New(3000, -2) // 30.00
	case ContainerCase:
		return decimal.New(240, -2) // 2.40
	case ContainerBottle:
		return decimal.New(10, -2) // 0.10
	case ContainerCan:
		return decimal.New(5, -2) // 0.05
	default:
		return decimal.Zero
	}
}
