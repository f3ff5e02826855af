package handler

import (
	"errors"

	"go-logistics-ws/internal/board"
	"go-logistics-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LogisticsHandler struct {
	service service.LogisticsService
}

func NewLogisticsHandler(s service.LogisticsService) *LogisticsHandler {
	return &LogisticsHandler{service: s}
}

// Helper untuk ambil User Info dari JWT Context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// GetLocations returns the full board: every location with its product groups
func (h *LogisticsHandler) GetLocations(c *fiber.Ctx) error {
	return c.JSON(h.service.GetLocations())
}

// GetAlerts returns the current derived alert list
func (h *LogisticsHandler) GetAlerts(c *fiber.Ctx) error {
	return c.JSON(h.service.GetAlerts())
}

func (h *LogisticsHandler) GetContainer(c *fiber.Ctx) error {
	container, err := h.service.GetContainer(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Container not found"})
	}
	return c.JSON(container)
}

// RecordMove applies a move intent. A blocked move is a 200 with
// valid:false, not an error status; only malformed input gets a 4xx.
func (h *LogisticsHandler) RecordMove(c *fiber.Ctx) error {
	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	verdict, err := h.service.RecordMove(&req, getUserID(c), getUserName(c))
	if err != nil {
		if errors.Is(err, board.ErrContainerNotFound) || errors.Is(err, board.ErrLocationNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"verdict": verdict})
}

func (h *LogisticsHandler) AddContainers(c *fiber.Ctx) error {
	var req service.AddContainersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	containers, err := h.service.AddContainers(&req, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Containers added", "data": containers})
}

func (h *LogisticsHandler) ApproveContainer(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.ApproveContainer(id, getUserID(c), getUserName(c)); err != nil {
		if errors.Is(err, board.ErrContainerNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Container approved"})
}

func (h *LogisticsHandler) GetMovements(c *fiber.Ctx) error {
	if containerID := c.Query("container_id"); containerID != "" {
		movements, err := h.service.GetMovementsForContainer(containerID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(movements)
	}

	movements, err := h.service.GetAllMovements()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(movements)
}

func (h *LogisticsHandler) GetMovement(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid movement ID"})
	}

	movement, err := h.service.GetMovementByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Movement not found"})
	}
	return c.JSON(movement)
}
