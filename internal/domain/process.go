package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportProcess records the state of one end-to-end import run.
type ImportProcess struct {
	ID        uuid.UUID
	ModelID   uuid.UUID
	Status    ProcessStatus
	Errored   bool
	Warnings  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExportProcess records the state of one export run.
type ExportProcess struct {
	ID          uuid.UUID
	ModelID     uuid.UUID
	Status      ProcessStatus
	Errored     bool
	DownloadURL string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProcessState is the partial update applied to an import or export
// process when a run finishes.
type ProcessState struct {
	Status      ProcessStatus
	Errored     bool
	Warnings    bool
	DownloadURL string
}
