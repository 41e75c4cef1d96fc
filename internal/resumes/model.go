package resumes

import "time"

// Resume represents an uploaded resume with its extracted text.
type Resume struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	FileName      string    `json:"fileName"`
	MimeType      string    `json:"mimeType"`
	ExtractedText string    `json:"-"`
	TextLength    int       `json:"textLength"`
	CreatedAt     time.Time `json:"createdAt"`
}
