package services

import (
	"bytes"
	"context"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"image-service/internal/classifier"
	"image-service/internal/extraction"
	"image-service/internal/metrics"
	"image-service/internal/models"
	"image-service/internal/repository"
)

// BlobStore is the durable store for uploaded image bytes.
type BlobStore interface {
	Put(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (name string, publicPath string, err error)
}

// Classifier labels a stored image and returns its feature set.
type Classifier interface {
	Classify(ctx context.Context, imageName string, image io.Reader) (*classifier.Result, error)
}

// UploadRequest carries one validated image upload through the pipeline.
// The handler has already established that a file payload is present.
type UploadRequest struct {
	Filename    string
	ContentType string
	Data        []byte
	Annotation  string
	Location    string
	CreatedAt   time.Time
}

// UploadResult is what the client gets back on success. Features is the
// classifier's object echoed verbatim.
type UploadResult struct {
	ImageURL string
	Label    string
	Features map[string]any
}

// UploadService sequences blob storage, classification and persistence for
// one upload. Classification failure fails the request; persistence
// failure after a successful classification is absorbed and logged, since
// storage durability is not the contract the client is waiting on.
type UploadService struct {
	Blobs       BlobStore
	Classifier  Classifier
	FeatureRepo repository.FeatureRepository
	HistoryRepo repository.HistoryRepository
	Metrics     *metrics.Metrics
}

// NewUploadService creates an UploadService with the given collaborators.
func NewUploadService(blobs BlobStore, cls Classifier, features repository.FeatureRepository, history repository.HistoryRepository, m *metrics.Metrics) *UploadService {
	return &UploadService{
		Blobs:       blobs,
		Classifier:  cls,
		FeatureRepo: features,
		HistoryRepo: history,
		Metrics:     m,
	}
}

// Upload runs the pipeline for one image. The returned error is a
// *classifier.Error when the classification call failed; the handler maps
// that to a 502. Blobs stored before a failed classification are kept.
func (s *UploadService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	name, publicPath, err := s.Blobs.Put(ctx, req.Filename, req.ContentType, bytes.NewReader(req.Data), int64(len(req.Data)))
	if err != nil {
		s.Metrics.RecordUpload("store_failed")
		return nil, errors.Wrap(err, "blob store write failed")
	}

	start := time.Now()
	result, err := s.Classifier.Classify(ctx, name, bytes.NewReader(req.Data))
	s.Metrics.ObserveClassification(time.Since(start).Seconds())
	if err != nil {
		s.Metrics.RecordUpload("classify_failed")
		return nil, err
	}

	// Classification has succeeded; nothing past this point may fail the
	// request. The feature and history rows are two independent writes,
	// and a failed feature insert must not skip the history insert.
	when := req.CreatedAt
	if when.IsZero() {
		when = time.Now()
	}

	feature := s.projectFeatures(publicPath, result, when)
	var imageID *uuid.UUID
	if err := s.FeatureRepo.CreateFeature(feature); err != nil {
		log.Printf("feature insert failed for %s: %v", publicPath, err)
		s.Metrics.RecordPersistFailure()
	} else {
		imageID = &feature.ID
	}

	entry := &models.HistoryEntry{
		ID:         uuid.New(),
		ImageID:    imageID,
		Path:       publicPath,
		Label:      result.Label,
		Annotation: req.Annotation,
		Location:   req.Location,
		CreatedAt:  when,
	}
	if err := s.HistoryRepo.CreateHistory(entry); err != nil {
		log.Printf("history insert failed for %s: %v", publicPath, err)
		s.Metrics.RecordPersistFailure()
	}

	s.Metrics.RecordUpload("accepted")
	return &UploadResult{
		ImageURL: publicPath,
		Label:    result.Label,
		Features: result.Features,
	}, nil
}

// projectFeatures maps the classifier's feature object onto the stored
// row. Sizes are rounded to whole kilobytes before storage; the rounding
// is one-way and not recoverable. Missing fields stay at their zero
// values, partial feature sets are accepted as-is.
func (s *UploadService) projectFeatures(publicPath string, result *classifier.Result, when time.Time) *models.ImageFeature {
	feature := &models.ImageFeature{
		ID:        uuid.New(),
		Path:      publicPath,
		CreatedAt: when,
	}
	if v, ok := result.FloatFeature("size_kb"); ok {
		feature.FileSizeKB = int(math.Round(v))
	}
	if v, ok := result.FloatFeature("width"); ok {
		feature.Width = int(v)
	}
	if v, ok := result.FloatFeature("height"); ok {
		feature.Height = int(v)
	}
	if v, ok := result.FloatFeature("avg_r"); ok {
		feature.MeanR = &v
	}
	if v, ok := result.FloatFeature("avg_g"); ok {
		feature.MeanG = &v
	}
	if v, ok := result.FloatFeature("avg_b"); ok {
		feature.MeanB = &v
	}
	return feature
}

// BatchItemResult reports the outcome of one file inside a batch upload.
type BatchItemResult struct {
	Filename string         `json:"filename"`
	Success  bool           `json:"success"`
	ImageURL string         `json:"imageUrl,omitempty"`
	Label    string         `json:"label,omitempty"`
	Features map[string]any `json:"features,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// UploadArchive extracts a stored zip archive and runs the upload pipeline
// for every contained image. A failed file does not abort the rest.
func (s *UploadService) UploadArchive(ctx context.Context, archivePath string, annotation, location string, createdAt time.Time) ([]BatchItemResult, error) {
	imagePaths, destDir, err := extraction.ExtractImages(ctx, archivePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract archive")
	}
	defer os.RemoveAll(destDir)

	results := make([]BatchItemResult, 0, len(imagePaths))
	for _, imagePath := range imagePaths {
		filename := filepath.Base(imagePath)
		data, err := os.ReadFile(imagePath)
		if err != nil {
			results = append(results, BatchItemResult{Filename: filename, Error: err.Error()})
			continue
		}
		res, err := s.Upload(ctx, UploadRequest{
			Filename:    filename,
			ContentType: "application/octet-stream",
			Data:        data,
			Annotation:  annotation,
			Location:    location,
			CreatedAt:   createdAt,
		})
		if err != nil {
			results = append(results, BatchItemResult{Filename: filename, Error: err.Error()})
			continue
		}
		results = append(results, BatchItemResult{
			Filename: filename,
			Success:  true,
			ImageURL: res.ImageURL,
			Label:    res.Label,
			Features: res.Features,
		})
	}
	return results, nil
}
