package model

// BuildJob is a single cell of the expanded build matrix, consumed by the
// downstream CI layer as one parallel job.
type BuildJob struct {
	Version     VersionLabel `json:"version"`
	BuildNumber string       `json:"build"`
	ISOURL      string       `json:"iso_url"`
	BuildType   string       `json:"build_type"`
	Edition     int          `json:"edition"`
	EditionName string       `json:"edition_name"`
	// Title is the CI job display name and an idempotency hint for the
	// downstream pipeline. It is not globally unique across channels that
	// share a version/build pair.
	Title string `json:"title"`
}

// BuildMatrix wraps the job list in the shape GitHub Actions expects for a
// matrix strategy ("include" key).
type BuildMatrix struct {
	Include []BuildJob `json:"include"`
}
