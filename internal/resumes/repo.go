package resumes

import "context"

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	// GetText returns the extracted plain text of a resume, failing with
	// ErrNotFound or ErrEmptyContent.
	GetText(ctx context.Context, userID, resumeID string) (string, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
}
