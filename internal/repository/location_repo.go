package repository

import (
	"go-logistics-ws/internal/model"

	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(location *model.Location) error
	FindAll() ([]model.Location, error)
	FindByID(id string) (*model.Location, error)
	SeedDefaults() error
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db}
}

func (r *locationRepo) Create(location *model.Location) error {
	return r.db.Create(location).Error
}

func (r *locationRepo) FindAll() ([]model.Location, error) {
	var locations []model.Location
	err := r.db.Order("created_at ASC, id ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) FindByID(id string) (*model.Location, error) {
	var location model.Location
	err := r.db.First(&location, "id = ?", id).Error
	return &location, err
}

// SeedDefaults inserts the default lifecycle stations if missing.
func (r *locationRepo) SeedDefaults() error {
	for _, loc := range model.DefaultLocations {
		var existing model.Location
		if err := r.db.First(&existing, "id = ?", loc.ID).Error; err == nil {
			continue
		}
		if err := r.db.Create(&loc).Error; err != nil {
			return err
		}
	}
	return nil
}
