package usecase

import (
	"context"
	"time"

	"github.com/kelexine/winwatch/pkg/domain/interfaces"
	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type detection struct {
	fetcher   interfaces.ReleaseFetcher
	store     interfaces.LedgerStore
	matrixCfg *MatrixConfig
	notifiers []interfaces.ReleaseNotifier
	now       func() time.Time
}

// DetectionOption configures the detection use case.
type DetectionOption func(*detection)

// WithNotifiers registers release notifiers, invoked once per new release
// after the ledger is persisted.
func WithNotifiers(notifiers ...interfaces.ReleaseNotifier) DetectionOption {
	return func(d *detection) {
		d.notifiers = append(d.notifiers, notifiers...)
	}
}

// WithClock overrides the time source, used by tests to pin timestamps.
func WithClock(now func() time.Time) DetectionOption {
	return func(d *detection) {
		d.now = now
	}
}

// NewDetection creates the detection use case. The matrix configuration is
// validated here so bad tables fail at startup, not mid-run.
func NewDetection(fetcher interfaces.ReleaseFetcher, store interfaces.LedgerStore, matrixCfg *MatrixConfig, opts ...DetectionOption) (interfaces.DetectionUseCase, error) {
	if matrixCfg == nil {
		matrixCfg = DefaultMatrixConfig()
	}
	if err := matrixCfg.Validate(); err != nil {
		return nil, err
	}

	d := &detection{
		fetcher:   fetcher,
		store:     store,
		matrixCfg: matrixCfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Detect executes one full detection run. The ledger is loaded once, mutated
// in memory, and persisted atomically at the end; any failure before the
// save leaves the persisted state exactly as loaded.
func (d *detection) Detect(ctx context.Context) (*model.DetectionResult, error) {
	logger := ctxlog.From(ctx)

	state, err := d.store.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load ledger")
	}

	logger.Info("Ledger loaded",
		"tracked_builds", len(state.Builds),
		"check_count", state.CheckCount,
	)

	candidates, err := d.fetcher.FetchCandidates(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch release candidates")
	}

	logger.Info("Fetched release candidates", "count", len(candidates))

	now := d.now()
	var newReleases []model.ClassifiedRelease

	for i := range candidates {
		release := candidates[i]
		version, stage := Classify(release.Title, release.BuildNumber)

		if state.Contains(release.BuildID) {
			logger.Debug("Build already tracked",
				"build_id", release.BuildID,
				"build_number", release.BuildNumber,
			)
			continue
		}

		// Unknown releases are recorded too: the dedup ledger must not
		// re-surface them on every later run.
		state.Record(&release, version, now)
		newReleases = append(newReleases, model.ClassifiedRelease{
			Release: release,
			Version: version,
			Stage:   stage,
		})

		logger.Info("New release detected",
			"build_id", release.BuildID,
			"build_number", release.BuildNumber,
			"version", version,
			"stage", stage,
			"title", release.Title,
		)
	}

	matrix := GenerateMatrix(d.matrixCfg, newReleases)

	state.Finalize(now)
	if err := d.store.Save(ctx, state); err != nil {
		return nil, goerr.Wrap(err, "failed to persist ledger")
	}

	d.notify(ctx, newReleases)

	result := &model.DetectionResult{
		NewReleases: newReleases,
		Matrix:      matrix,
		HasNew:      len(newReleases) > 0,
		CheckCount:  state.CheckCount,
		CheckedAt:   now,
	}

	logger.Info("Detection run complete",
		"new_releases", len(result.NewReleases),
		"matrix_jobs", len(result.Matrix.Include),
		"check_count", result.CheckCount,
	)

	return result, nil
}

// Status returns a read-only summary of the persisted ledger.
func (d *detection) Status(ctx context.Context) (*model.LedgerStatus, error) {
	state, err := d.store.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load ledger")
	}

	return &model.LedgerStatus{
		TrackedBuilds: len(state.Builds),
		CheckCount:    state.CheckCount,
		LastCheck:     state.LastCheck,
		ByVersion:     state.CountByVersion(),
	}, nil
}

// notify runs after the ledger is persisted and is best-effort: the builds
// are already recorded, so a failed delivery must not fail the run.
func (d *detection) notify(ctx context.Context, releases []model.ClassifiedRelease) {
	logger := ctxlog.From(ctx)

	for i := range releases {
		for _, notifier := range d.notifiers {
			if err := notifier.NotifyNewRelease(ctx, &releases[i]); err != nil {
				logger.Warn("Failed to deliver release notification",
					"error", err,
					"build_id", releases[i].BuildID,
				)
			}
		}
	}
}
