package domain

import "time"

// ExtractedImage records the OCR output for one processed upload.
// Filename is the name the client supplied, not the generated
// on-disk name.
type ExtractedImage struct {
	ID            string
	Filename      string
	ExtractedText string
	CreatedAt     time.Time
}
