package repository

import "errors"

// Sentinel kinds for draft-state errors.
var (
	ErrUnknownCandidate = errors.New("candidate not in pool")
	ErrAlreadyDrafted   = errors.New("candidate already drafted")
	ErrEmptyDraft       = errors.New("no picks to undo")
	ErrDuplicateID      = errors.New("duplicate candidate id in pool")
)
