package ingestion

import "errors"

var (
	// ErrScoreRepositoryRequired is returned when a score repository is not provided.
	ErrScoreRepositoryRequired = errors.New("score repository required")
)
