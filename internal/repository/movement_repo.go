package repository

import (
	"time"

	"go-logistics-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MovementRepository interface {
	Create(tx *gorm.DB, movement *model.Movement) error
	FindAll() ([]model.Movement, error)
	FindByID(id uuid.UUID) (*model.Movement, error)
	FindByContainer(containerID string) ([]model.Movement, error)
	GetDailyFlow(startDate, endDate time.Time) ([]DailyFlowData, error)
	GetBoardStats() (*BoardStats, error)
}

// DailyFlowData untuk chart data: deliveries vs returns per hari
type DailyFlowData struct {
	Date       string `json:"date"`
	Deliveries int    `json:"deliveries"`
	Returns    int    `json:"returns"`
}

// BoardStats untuk overview stats
type BoardStats struct {
	TotalContainers     int64           `json:"total_containers"`
	DeliveredCount      int64           `json:"delivered_count"`
	PendingCount        int64           `json:"pending_count"`
	OutstandingDeposits decimal.Decimal `json:"outstanding_deposits"`
}

type movementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepository {
	return &movementRepo{db}
}

// Create menerima *gorm.DB (tx) agar log gerakan ikut transaksi move
func (r *movementRepo) Create(tx *gorm.DB, movement *model.Movement) error {
	return tx.Create(movement).Error
}

func (r *movementRepo) FindAll() ([]model.Movement, error) {
	var movements []model.Movement
	err := r.db.Preload("Container").Preload("CreatedByUser").Order("created_at DESC").Find(&movements).Error
	return movements, err
}

func (r *movementRepo) FindByID(id uuid.UUID) (*model.Movement, error) {
	var movement model.Movement
	err := r.db.Preload("Container").Preload("CreatedByUser").First(&movement, "id = ?", id).Error
	return &movement, err
}

func (r *movementRepo) FindByContainer(containerID string) ([]model.Movement, error) {
	var movements []model.Movement
	err := r.db.Where("container_id = ?", containerID).Order("created_at ASC").Find(&movements).Error
	return movements, err
}

func (r *movementRepo) GetDailyFlow(startDate, endDate time.Time) ([]DailyFlowData, error) {
	var results []DailyFlowData

	// Aggregate movements per hari: arrivals at customers vs arrivals at cleaning
	rows, err := r.db.Model(&model.Movement{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN status_after = 'delivered' THEN 1 ELSE 0 END), 0) as deliveries,
			COALESCE(SUM(CASE WHEN status_after = 'returned' THEN 1 ELSE 0 END), 0) as returns
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyFlowData
		if err := rows.Scan(&data.Date, &data.Deliveries, &data.Returns); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *movementRepo) GetBoardStats() (*BoardStats, error) {
	var stats BoardStats

	r.db.Model(&model.Container{}).Count(&stats.TotalContainers)
	r.db.Model(&model.Container{}).Where("status = ?", model.StatusDelivered).Count(&stats.DeliveredCount)
	r.db.Model(&model.Container{}).Where("status = ?", model.StatusPending).Count(&stats.PendingCount)

	// Deposits still out with customers
	r.db.Model(&model.Container{}).
		Joins("JOIN locations ON locations.id = containers.location_id").
		Where("locations.type = ?", model.LocationCustomer).
		Select("COALESCE(SUM(containers.deposit), 0)").
		Scan(&stats.OutstandingDeposits)

	return &stats, nil
}
