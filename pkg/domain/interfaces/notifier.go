package interfaces

import (
	"context"

	"github.com/kelexine/winwatch/pkg/domain/model"
)

// ReleaseNotifier announces one newly detected release (issue, chat message).
// Notifiers run after the ledger is persisted and are best-effort: a delivery
// failure is logged but does not fail the run.
type ReleaseNotifier interface {
	NotifyNewRelease(ctx context.Context, release *model.ClassifiedRelease) error
}
