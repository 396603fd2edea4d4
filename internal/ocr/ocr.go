package ocr

import "context"

// Engine recognizes text in an image file.
type Engine interface {
	Recognize(ctx context.Context, path string) (string, error)
}
