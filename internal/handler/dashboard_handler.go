package handler

import (
	"strconv"

	"go-logistics-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDailyFlow returns delivery/return flow data for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetDailyFlow(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetDailyFlow(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch daily flow"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetBoardStats returns overview statistics
func (h *DashboardHandler) GetBoardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetBoardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch board stats"})
	}

	return c.JSON(stats)
}
