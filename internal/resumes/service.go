package resumes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fitscan-backend/internal/extract"
)

// maxUploadBytes bounds resume uploads. Resumes are small documents.
const maxUploadBytes = 5 << 20

// ErrTooLarge indicates the upload exceeds the size bound.
var ErrTooLarge = errors.New("file too large")

// Service contains business logic for resume uploads.
type Service struct {
	Repo Repo
}

// Upload extracts text from the payload and stores the resume.
func (s *Service) Upload(ctx context.Context, userID, fileName, mimeType string, data []byte) (Resume, error) {
	if userID == "" {
		return Resume{}, errors.New("userID is required")
	}
	if len(data) == 0 {
		return Resume{}, errors.New("file is empty")
	}
	if len(data) > maxUploadBytes {
		return Resume{}, ErrTooLarge
	}

	text, err := extract.TextFromBytes(data, mimeType, fileName)
	if err != nil {
		return Resume{}, fmt.Errorf("extract resume text: %w", err)
	}

	resume := Resume{
		ID:            uuid.NewString(),
		UserID:        userID,
		FileName:      fileName,
		MimeType:      mimeType,
		ExtractedText: text,
		TextLength:    len(text),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// List returns the user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
