package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Config carries the fixed recognition parameters handed to tesseract.
// Values are passed through unchanged.
type Config struct {
	Language    string
	PageSegMode int
	EngineMode  int
}

// Tesseract implements Engine using the gosseract client. A fresh client
// is created per call and closed when recognition finishes.
type Tesseract struct {
	cfg           Config
	clientFactory func() *gosseract.Client
}

// NewTesseract constructs a Tesseract-backed OCR engine.
func NewTesseract(cfg Config) *Tesseract {
	return &Tesseract{cfg: cfg, clientFactory: gosseract.NewClient}
}

// Recognize runs OCR on the image at path and returns the extracted text.
func (t *Tesseract) Recognize(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	c := t.clientFactory()
	defer c.Close()

	if err := c.SetImage(path); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if t.cfg.Language != "" {
		if err := c.SetLanguage(t.cfg.Language); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	if err := c.SetPageSegMode(gosseract.PageSegMode(t.cfg.PageSegMode)); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := c.SetVariable(gosseract.SettableVariable("tessedit_ocr_engine_mode"), fmt.Sprint(t.cfg.EngineMode)); err != nil {
		return "", fmt.Errorf("set engine mode: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
