package interfaces

import (
	"context"

	"github.com/kelexine/winwatch/pkg/domain/model"
)

// ReleaseFetcher queries the upstream release index for candidate builds,
// already filtered to supported architecture and channels. An empty list is
// a valid outcome; errors carry types.ErrTagFetch.
type ReleaseFetcher interface {
	FetchCandidates(ctx context.Context) ([]model.Release, error)
}
