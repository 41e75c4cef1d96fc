package resumes

import "errors"

var (
	// ErrNotFound indicates no resume with the given id belongs to the user.
	ErrNotFound = errors.New("resume not found")
	// ErrEmptyContent indicates the resume exists but no text was extracted.
	ErrEmptyContent = errors.New("resume has no extracted text")
)
