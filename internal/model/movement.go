package model

// Movement is the persisted audit record of one container move between
// locations. The board itself is in-memory; movements are what survive.
type Movement struct {
	BaseModel
	ContainerID string     `gorm:"type:varchar(64);not null;index" json:"container_id" validate:"required"`
	Container   *Container `gorm:"foreignKey:ContainerID" json:"container,omitempty" validate:"-"`

	FromLocationID string `gorm:"type:varchar(64);not null" json:"from_location_id" validate:"required"`
	ToLocationID   string `gorm:"type:varchar(64);not null" json:"to_location_id" validate:"required"`

	// Denormalized snapshot of what moved, so the audit trail stays
	// readable even if the container record changes later.
	ProductName   string          `gorm:"type:varchar(255)" json:"product_name"`
	ContainerType ContainerType   `gorm:"type:varchar(10)" json:"container_type"`
	StatusAfter   ContainerStatus `gorm:"type:varchar(12)" json:"status_after"`

	Note string `json:"note"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty" validate:"-"`
}
