package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
)

const BlobNotFoundError = "blob not found"

// BlobFetcher loads stored blob bytes, typically through a cache.
type BlobFetcher interface {
	Fetch(ctx context.Context, name string) (data []byte, contentType string, err error)
}

// BlobHandler serves previously stored uploads by name.
type BlobHandler struct {
	Blobs BlobFetcher
}

// NewBlobHandler creates a new BlobHandler over the given fetcher.
func NewBlobHandler(blobs BlobFetcher) *BlobHandler {
	return &BlobHandler{Blobs: blobs}
}

// GetBlob handles GET /uploads/:name to stream a stored image.
// @Summary Download a stored upload
// @Description Streams the bytes of a previously uploaded image
// @Tags uploads
// @Produce application/octet-stream
// @Param name path string true "Stored blob name"
// @Success 200 {file} binary "Image bytes"
// @Failure 404 {object} map[string]interface{} "Unknown blob"
// @Router /uploads/{name} [get]
func (h *BlobHandler) GetBlob(c *fiber.Ctx) error {
	name := c.Params("name")
	data, contentType, err := h.Blobs.Fetch(c.Context(), name)
	if err != nil {
		log.Printf("Blob not found: %s (%v)", name, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "error": BlobNotFoundError,
		})
	}
	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Status(fiber.StatusOK).Send(data)
}
