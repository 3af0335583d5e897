package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"image-service/internal/models"
	"image-service/internal/repository"
)

// HistoryLister is the read side of the upload history.
type HistoryLister interface {
	ListRecent(limit int) ([]models.HistoryEntry, error)
}

// HistoryHandler defines the handler for the upload history endpoint.
type HistoryHandler struct {
	Repo HistoryLister
}

// NewHistoryHandler creates a new HistoryHandler over the given repository.
func NewHistoryHandler(repo HistoryLister) *HistoryHandler {
	return &HistoryHandler{Repo: repo}
}

// ListHistory handles GET /history to list recent uploads, newest first.
// @Summary List upload history
// @Description Returns the most recent upload records, capped at 100
// @Tags history
// @Produce json
// @Success 200 {array} models.HistoryEntry "Recent uploads, newest first"
// @Failure 500 {object} map[string]interface{} "Read failure"
// @Router /history [get]
func (h *HistoryHandler) ListHistory(c *fiber.Ctx) error {
	entries, err := h.Repo.ListRecent(repository.HistoryCap)
	if err != nil {
		log.Printf("Error listing history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": err.Error(),
		})
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return c.JSON(entries)
}
