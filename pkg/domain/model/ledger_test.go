package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/kelexine/winwatch/pkg/domain/model"
)

func TestLedgerStateRecordIdempotent(t *testing.T) {
	state := model.NewLedgerState()
	firstSeen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := firstSeen.Add(48 * time.Hour)

	release := &model.Release{
		BuildID:      "abc",
		BuildNumber:  "26100.7462",
		Title:        "Windows 11, version 24H2",
		Architecture: model.ArchAMD64,
		Channel:      model.ChannelRetail,
		ISOURL:       "https://example.com/iso",
	}

	entry, inserted := state.Record(release, model.Version24H2, firstSeen)
	gt.True(t, inserted)
	gt.Equal(t, entry.DetectedDate, firstSeen)
	gt.True(t, state.Contains("abc"))

	// Second record with changed fields is a no-op returning the original
	changed := *release
	changed.Title = "Windows 11 24H2 (retitled)"
	second, inserted := state.Record(&changed, model.Version24H2, later)
	gt.True(t, !inserted)
	gt.Equal(t, second.Title, "Windows 11, version 24H2")
	gt.Equal(t, second.DetectedDate, firstSeen)
	gt.Equal(t, len(state.Builds), 1)
}

func TestLedgerStateFinalize(t *testing.T) {
	state := model.NewLedgerState()
	gt.Equal(t, state.CheckCount, 0)

	t1 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	state.Finalize(t1)
	gt.Equal(t, state.CheckCount, 1)
	gt.Equal(t, state.LastCheck, t1)

	// Increments by exactly one per call, even with no new builds
	state.Finalize(t2)
	gt.Equal(t, state.CheckCount, 2)
	gt.Equal(t, state.LastCheck, t2)
}

func TestLedgerStateCountByVersion(t *testing.T) {
	state := model.NewLedgerState()
	now := time.Now()

	for i, version := range []model.VersionLabel{
		model.Version24H2, model.Version24H2, model.VersionUnknown,
	} {
		state.Record(&model.Release{BuildID: string(rune('a' + i))}, version, now)
	}

	counts := state.CountByVersion()
	gt.Equal(t, counts[model.Version24H2], 2)
	gt.Equal(t, counts[model.VersionUnknown], 1)
}
