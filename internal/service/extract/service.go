package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Suds666/IMG2TXT/internal/domain"
	"github.com/Suds666/IMG2TXT/internal/ocr"
	"github.com/Suds666/IMG2TXT/internal/repository"
	"github.com/Suds666/IMG2TXT/internal/upload"
)

// Storer persists an incoming file and can remove it again.
type Storer interface {
	Save(file io.Reader, originalName string) (upload.Saved, error)
	Remove(path string) error
}

// Service runs the upload, recognize, persist pipeline.
type Service struct {
	uploads Storer
	engine  ocr.Engine
	images  repository.ImageRepository
	logger  *slog.Logger
}

// New constructs a Service.
func New(uploads Storer, engine ocr.Engine, images repository.ImageRepository, logger *slog.Logger) Service {
	return Service{uploads: uploads, engine: engine, images: images, logger: logger}
}

// Process stores the uploaded file, runs OCR on it, and records the
// extracted text under the original filename. The on-disk file is kept
// after a successful run; if the database insert fails the file is
// removed so a failed request leaves nothing behind.
func (s Service) Process(ctx context.Context, file io.Reader, originalName string) (string, error) {
	saved, err := s.uploads.Save(file, originalName)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	text, err := s.engine.Recognize(ctx, saved.Path)
	if err != nil {
		return "", fmt.Errorf("recognize %s: %w", saved.OriginalName, err)
	}

	image := &domain.ExtractedImage{
		ID:            uuid.NewString(),
		Filename:      saved.OriginalName,
		ExtractedText: text,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.images.CreateImage(ctx, image); err != nil {
		if rmErr := s.uploads.Remove(saved.Path); rmErr != nil {
			s.logger.Warn("orphaned upload left on disk", "path", saved.Path, "error", rmErr)
		}
		return "", fmt.Errorf("persist extraction: %w", err)
	}

	s.logger.Info("image processed", "image_id", image.ID, "filename", image.Filename)
	return text, nil
}
