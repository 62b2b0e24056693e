package model

import "time"

// HealthStatus represents the health check status
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// LedgerStatus is the read-only ledger summary served by the status API.
type LedgerStatus struct {
	TrackedBuilds int                  `json:"tracked_builds"`
	CheckCount    int                  `json:"check_count"`
	LastCheck     time.Time            `json:"last_check"`
	ByVersion     map[VersionLabel]int `json:"by_version"`
}
