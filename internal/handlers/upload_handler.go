package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"image-service/internal/classifier"
	"image-service/internal/services"
)

const NoFileError = "No file uploaded"
const ClassificationError = "Classification failed"

// UploadPipeline is the part of the upload service the handler drives.
type UploadPipeline interface {
	Upload(ctx context.Context, req services.UploadRequest) (*services.UploadResult, error)
	UploadArchive(ctx context.Context, archivePath string, annotation, location string, createdAt time.Time) ([]services.BatchItemResult, error)
}

// UploadRecorder counts finished upload requests by outcome.
type UploadRecorder interface {
	RecordUpload(outcome string)
}

// UploadHandler defines handlers for the image upload endpoints.
type UploadHandler struct {
	Pipeline UploadPipeline
	Recorder UploadRecorder
}

// NewUploadHandler creates a new UploadHandler with the given pipeline.
func NewUploadHandler(pipeline UploadPipeline, recorder UploadRecorder) *UploadHandler {
	return &UploadHandler{Pipeline: pipeline, Recorder: recorder}
}

// UploadImage handles POST /upload to classify and store a single image.
// @Summary Upload and classify an image
// @Description Stores the image, forwards it to the classification service and persists the result
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Param annotation formData string false "Free-form annotation"
// @Param location formData string false "Capture location"
// @Param date formData string false "Capture time (RFC3339, defaults to now)"
// @Success 201 {object} map[string]interface{} "Classification result"
// @Failure 400 {object} map[string]interface{} "No file uploaded"
// @Failure 502 {object} map[string]interface{} "Classification service unavailable"
// @Router /upload [post]
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		log.Printf("Upload rejected, no file payload: %v", err)
		h.Recorder.RecordUpload("rejected")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": NoFileError,
		})
	}
	log.Printf("Processing upload: %s (%d bytes), IP: %s", fileHeader.Filename, fileHeader.Size, c.IP())

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "failed to read file: " + err.Error(),
		})
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "failed to read file: " + err.Error(),
		})
	}

	result, err := h.Pipeline.Upload(c.Context(), services.UploadRequest{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		Annotation:  c.FormValue("annotation"),
		Location:    c.FormValue("location"),
		CreatedAt:   parseDate(c.FormValue("date")),
	})
	if err != nil {
		var clsErr *classifier.Error
		if errors.As(err, &clsErr) {
			log.Printf("Classification failed for %s: %v", fileHeader.Filename, clsErr)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false, "error": ClassificationError,
			})
		}
		log.Printf("Upload failed for %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": err.Error(),
		})
	}

	log.Printf("Successfully classified %s as %q", result.ImageURL, result.Label)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"imageUrl": result.ImageURL,
		"label":    result.Label,
		"features": result.Features,
	})
}

// UploadBatch handles POST /upload/batch to classify every image inside a
// zip archive.
// @Summary Upload a zip archive of images
// @Description Extracts the archive and runs the upload pipeline per contained image
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param archive formData file true "Zip archive of images"
// @Param annotation formData string false "Free-form annotation applied to all images"
// @Param location formData string false "Capture location applied to all images"
// @Success 200 {object} map[string]interface{} "Per-file results"
// @Failure 400 {object} map[string]interface{} "Missing or unsupported archive"
// @Router /upload/batch [post]
func (h *UploadHandler) UploadBatch(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("archive")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "No archive uploaded",
		})
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".zip") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "only zip archives are supported",
		})
	}
	log.Printf("Processing batch upload: %s (%d bytes), IP: %s", fileHeader.Filename, fileHeader.Size, c.IP())

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "failed to read archive: " + err.Error(),
		})
	}
	tempArchive, err := os.CreateTemp("", "batch-*.zip")
	if err != nil {
		src.Close()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": err.Error(),
		})
	}
	tempPath := tempArchive.Name()
	defer os.Remove(tempPath)
	_, err = io.Copy(tempArchive, src)
	tempArchive.Close()
	src.Close()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": "failed to write archive: " + err.Error(),
		})
	}

	results, err := h.Pipeline.UploadArchive(c.Context(), tempPath,
		c.FormValue("annotation"), c.FormValue("location"), parseDate(c.FormValue("date")))
	if err != nil {
		log.Printf("Batch upload failed for %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": err.Error(),
		})
	}
	log.Printf("Batch upload finished: %s, %d files", fileHeader.Filename, len(results))
	return c.JSON(fiber.Map{"success": true, "results": results})
}

// parseDate interprets the optional client-supplied capture time. Absent
// or unparseable values default to now.
func parseDate(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Now()
	}
	return t
}
