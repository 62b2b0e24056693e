package async

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch executes a handler asynchronously with panic recovery. The
// handler runs on a fresh background context (the caller's cancellation must
// not abort it) that preserves the logger and stamps the given run ID on
// every log record, so a triggered detection run can be traced end to end.
// Returns the run ID, generating one when runID is empty.
func Dispatch(ctx context.Context, runID string, handler func(ctx context.Context) error) string {
	if runID == "" {
		runID = uuid.NewString()
	}

	newCtx := backgroundContext(ctx, runID)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(newCtx).Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()),
				)
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("error in async handler", "error", err)
		}
	}()

	return runID
}

// backgroundContext detaches from the caller's cancellation while keeping
// the logger, annotated with the run ID.
func backgroundContext(ctx context.Context, runID string) context.Context {
	logger := ctxlog.From(ctx).With(slog.String("run_id", runID))
	return ctxlog.With(context.Background(), logger)
}
