package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "container:move"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Move Container"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Board management
	{Code: "location:view", Name: "View Locations"},
	{Code: "alert:view", Name: "View Alerts"},
	{Code: "container:create", Name: "Add Containers"},
	{Code: "container:move", Name: "Move Container"},
	{Code: "container:approve", Name: "Approve Container"},
	// Movement audit trail
	{Code: "movement:view", Name: "View Movements"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}
