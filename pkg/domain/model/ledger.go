package model

import "time"

// LedgerEntry is the persistent record of a detected build. Fields are set
// once on first detection and never mutated; re-detecting the same BuildID
// is a no-op even when the upstream title has changed.
type LedgerEntry struct {
	BuildID      string       `json:"build_id" firestore:"build_id"`
	BuildNumber  string       `json:"build_number" firestore:"build_number"`
	Version      VersionLabel `json:"version" firestore:"version"`
	Title        string       `json:"title" firestore:"title"`
	ISOURL       string       `json:"iso_url" firestore:"iso_url"`
	DetectedDate time.Time    `json:"detected_date" firestore:"detected_date"`
	Architecture string       `json:"architecture" firestore:"architecture"`
	Channel      string       `json:"channel" firestore:"channel"`
}

// LedgerState is the full dedup/bookkeeping state. It is loaded once at the
// start of a run, mutated in memory, and persisted atomically at the end;
// a failed run never persists partial mutations.
type LedgerState struct {
	Builds     map[string]*LedgerEntry `json:"builds"`
	LastCheck  time.Time               `json:"last_check"`
	CheckCount int                     `json:"check_count"`
}

// NewLedgerState returns an empty state, the canonical first-run value.
func NewLedgerState() *LedgerState {
	return &LedgerState{
		Builds: map[string]*LedgerEntry{},
	}
}

// Contains reports whether the build has been seen in a previous run.
func (s *LedgerState) Contains(buildID string) bool {
	_, ok := s.Builds[buildID]
	return ok
}

// Record inserts a ledger entry for the release if absent, stamping now as
// the first-seen time. If the build is already tracked the existing entry is
// returned untouched and inserted reports false.
func (s *LedgerState) Record(release *Release, version VersionLabel, now time.Time) (entry *LedgerEntry, inserted bool) {
	if existing, ok := s.Builds[release.BuildID]; ok {
		return existing, false
	}

	if s.Builds == nil {
		s.Builds = map[string]*LedgerEntry{}
	}

	entry = &LedgerEntry{
		BuildID:      release.BuildID,
		BuildNumber:  release.BuildNumber,
		Version:      version,
		Title:        release.Title,
		ISOURL:       release.ISOURL,
		DetectedDate: now,
		Architecture: release.Architecture,
		Channel:      release.Channel,
	}
	s.Builds[release.BuildID] = entry
	return entry, true
}

// Finalize stamps the check bookkeeping for the current run. It runs
// unconditionally, including on runs that detected nothing new.
func (s *LedgerState) Finalize(now time.Time) {
	s.LastCheck = now
	s.CheckCount++
}

// CountByVersion returns how many tracked builds carry each version label.
func (s *LedgerState) CountByVersion() map[VersionLabel]int {
	counts := map[VersionLabel]int{}
	for _, entry := range s.Builds {
		counts[entry.Version]++
	}
	return counts
}
