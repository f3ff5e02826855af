package repository

import (
	"go-logistics-ws/internal/model"

	"gorm.io/gorm"
)

type ContainerRepository interface {
	Create(container *model.Container) error
	CreateBatch(tx *gorm.DB, containers []*model.Container) error
	FindAll() ([]model.Container, error)
	FindByID(id string) (*model.Container, error)
	FindByBatch(batchID string) ([]model.Container, error)
	UpdatePlacement(tx *gorm.DB, rec model.Container, updatedBy string) error
	UpdateStatus(tx *gorm.DB, id string, status model.ContainerStatus, updatedBy string) error
}

type containerRepo struct {
	db *gorm.DB
}

func NewContainerRepo(db *gorm.DB) ContainerRepository {
	return &containerRepo{db}
}

func (r *containerRepo) Create(container *model.Container) error {
	return r.db.Create(container).Error
}

// CreateBatch menerima *gorm.DB (tx) agar satu operasi add berjalan atomic
func (r *containerRepo) CreateBatch(tx *gorm.DB, containers []*model.Container) error {
	return tx.Create(containers).Error
}

func (r *containerRepo) FindAll() ([]model.Container, error) {
	var containers []model.Container
	err := r.db.Order("created_at ASC, id ASC").Find(&containers).Error
	return containers, err
}

func (r *containerRepo) FindByID(id string) (*model.Container, error) {
	var container model.Container
	err := r.db.Preload("Location").First(&container, "id = ?", id).Error
	return &container, err
}

func (r *containerRepo) FindByBatch(batchID string) ([]model.Container, error) {
	var containers []model.Container
	err := r.db.Where("batch_id = ?", batchID).Order("id ASC").Find(&containers).Error
	return containers, err
}

// UpdatePlacement writes the post-move location/status/due-date in one
// statement; runs inside the caller's transaction.
func (r *containerRepo) UpdatePlacement(tx *gorm.DB, rec model.Container, updatedBy string) error {
	return tx.Model(&model.Container{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"location_id": rec.LocationID,
			"status":      rec.Status,
			"due_at":      rec.DueAt,
			"updated_by":  updatedBy,
		}).Error
}

func (r *containerRepo) UpdateStatus(tx *gorm.DB, id string, status model.ContainerStatus, updatedBy string) error {
	return tx.Model(&model.Container{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}
