package interfaces

import (
	"context"

	"github.com/kelexine/winwatch/pkg/domain/model"
)

// DetectionUseCase defines the release detection run
type DetectionUseCase interface {
	// Detect executes one full detection run: fetch, classify, dedup,
	// record, expand, persist, notify.
	Detect(ctx context.Context) (*model.DetectionResult, error)

	// Status returns a read-only summary of the persisted ledger.
	Status(ctx context.Context) (*model.LedgerStatus, error)
}
