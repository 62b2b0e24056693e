package model

import "time"

// DetectionResult is the outcome of one detection run.
type DetectionResult struct {
	// NewReleases lists builds first seen in this run, in fetch order,
	// including releases classified as Unknown. One issue/notification is
	// produced per entry here, never per matrix job.
	NewReleases []ClassifiedRelease `json:"new_releases"`

	// Matrix is the cartesian expansion of the new releases that carry a
	// known version label.
	Matrix BuildMatrix `json:"releases_matrix"`

	HasNew     bool      `json:"has_new"`
	CheckCount int       `json:"check_count"`
	CheckedAt  time.Time `json:"checked_at"`
}
