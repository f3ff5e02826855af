package model

import "time"

type LocationType string

const (
	LocationWarehouse  LocationType = "warehouse"
	LocationTruck      LocationType = "truck"
	LocationCustomer   LocationType = "customer"
	LocationProduction LocationType = "production"
	LocationCleaning   LocationType = "cleaning"
	LocationTax        LocationType = "tax"
)

// Location is a place a container can reside. IDs are slugs ("truck-1",
// "tax-zone") so they read naturally on the board and in move requests.
type Location struct {
	ID   string       `gorm:"type:varchar(64);primaryKey" json:"id" validate:"required"`
	Name string       `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Type LocationType `gorm:"type:varchar(12);not null" json:"type" validate:"required,oneof=warehouse truck customer production cleaning tax"`

	// Capacity is a ceiling on containers held here; meaning depends on
	// type (pallet slots for trucks, bonded slots for tax storage). Nil
	// means unlimited.
	Capacity *int `json:"capacity,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func capOf(n int) *int { return &n }

// DefaultLocations is the seed board: the lifecycle stations a cidery
// runs containers through (tax -> production -> packaging -> delivery ->
// customer -> returns).
var DefaultLocations = []Location{
	{ID: "tax-zone", Name: "Bonded Tax Storage", Type: LocationTax, Capacity: capOf(200)},
	{ID: "production-floor", Name: "Production Floor", Type: LocationProduction},
	{ID: "packaging-line", Name: "Packaging Line", Type: LocationWarehouse, Capacity: capOf(150)},
	{ID: "warehouse-1", Name: "Finished Goods Warehouse", Type: LocationWarehouse, Capacity: capOf(500)},
	{ID: "truck-1", Name: "Delivery Truck 1", Type: LocationTruck, Capacity: capOf(24)},
	{ID: "truck-2", Name: "Delivery Truck 2", Type: LocationTruck, Capacity: capOf(24)},
	{ID: "customer-brasserie", Name: "Brasserie du Port", Type: LocationCustomer},
	{ID: "customer-taproom", Name: "Old Mill Taproom", Type: LocationCustomer},
	{ID: "cleaning-bay", Name: "Returns & Cleaning Bay", Type: LocationCleaning, Capacity: capOf(100)},
}
