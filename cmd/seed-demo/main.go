package main

import (
	"fmt"
	"log"
	"time"

	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/repository"
	"go-logistics-ws/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds a demo board: pending kegs in bonded storage, finished cases in
// the warehouse, and a couple of delivered kegs already overdue so the
// alert panel has something to show.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Location{}, &model.Container{}, &model.Movement{})

	locationRepo := repository.NewLocationRepo(db)
	if err := locationRepo.SeedDefaults(); err != nil {
		log.Fatalf("❌ Failed to seed locations: %v", err)
	}

	now := time.Now()
	overdue := now.AddDate(0, 0, -3)

	var containers []*model.Container

	// Fresh batch waiting for excise approval in bonded storage
	for i := 0; i < 8; i++ {
		containers = append(containers, demoContainer(
			fmt.Sprintf("keg-%d-%d", now.Unix(), i),
			"hopped-cider", "Hopped Cider", "B-2024-045",
			model.ContainerKeg, model.StatusPending, "tax-zone", nil,
		))
	}

	// Finished cases in the warehouse
	for i := 0; i < 12; i++ {
		containers = append(containers, demoContainer(
			fmt.Sprintf("case-%d-%d", now.Unix(), i),
			"dry-cider", "Dry Cider", "B-2024-041",
			model.ContainerCase, model.StatusApproved, "warehouse-1", nil,
		))
	}

	// Delivered kegs past their return window
	for i := 0; i < 2; i++ {
		containers = append(containers, demoContainer(
			fmt.Sprintf("keg-%d-%d", now.Unix(), 100+i),
			"hopped-cider", "Hopped Cider", "B-2024-038",
			model.ContainerKeg, model.StatusDelivered, "customer-brasserie", &overdue,
		))
	}

	for _, c := range containers {
		if err := db.Create(c).Error; err != nil {
			log.Fatalf("❌ Failed to insert container %s: %v", c.ID, err)
		}
	}

	log.Printf("✅ Seeded %d demo containers across the board", len(containers))
}

func demoContainer(id, productID, productName, batchID string,
	t model.ContainerType, status model.ContainerStatus, locationID string, dueAt *time.Time) *model.Container {
	return &model.Container{
		ID:            id,
		ProductID:     productID,
		ProductName:   productName,
		BatchID:       batchID,
		ContainerType: t,
		Status:        status,
		LocationID:    locationID,
		Deposit:       model.DefaultDeposit(t),
		DueAt:         dueAt,
		CreatedBy:     "system",
		UpdatedBy:     "system",
	}
}
