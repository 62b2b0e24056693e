package interfaces

import (
	"context"

	"github.com/kelexine/winwatch/pkg/domain/model"
)

// LedgerStore persists the detection ledger. Load on an empty backend
// returns an empty state, not an error. Save must be atomic: a failed save
// never leaves a torn state visible to the next Load.
type LedgerStore interface {
	Load(ctx context.Context) (*model.LedgerState, error)
	Save(ctx context.Context, state *model.LedgerState) error
}
