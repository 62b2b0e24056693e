package ledger_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/kelexine/winwatch/pkg/infra/ledger"
)

// Requires a Firestore emulator (the client honors FIRESTORE_EMULATOR_HOST
// automatically).
func TestFirestoreStoreRoundTrip(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test%d", time.Now().UnixNano())

	store, err := ledger.NewFirestoreStore(ctx, "winwatch-test", prefix)
	gt.NoError(t, err)

	// First run against a fresh prefix is empty, not an error
	state, err := store.Load(ctx)
	gt.NoError(t, err)
	gt.Equal(t, state.CheckCount, 0)
	gt.Equal(t, len(state.Builds), 0)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	state.Record(&model.Release{
		BuildID:      "abc",
		BuildNumber:  "26100.7462",
		Title:        "Windows 11, version 24H2",
		Architecture: model.ArchAMD64,
		Channel:      model.ChannelRetail,
		ISOURL:       "https://example.com/iso",
	}, model.Version24H2, now)
	state.Finalize(now)

	gt.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx)
	gt.NoError(t, err)
	gt.Equal(t, loaded.CheckCount, 1)
	gt.True(t, loaded.LastCheck.Equal(now))
	gt.Equal(t, len(loaded.Builds), 1)

	entry := loaded.Builds["abc"]
	gt.NotNil(t, entry)
	gt.Equal(t, entry.Version, model.Version24H2)
	gt.Equal(t, entry.Title, "Windows 11, version 24H2")
	gt.True(t, entry.DetectedDate.Equal(now))

	// Save-load of an unchanged state is a fixed point
	gt.NoError(t, store.Save(ctx, loaded))
	again, err := store.Load(ctx)
	gt.NoError(t, err)
	gt.Equal(t, again.CheckCount, loaded.CheckCount)
	gt.Equal(t, len(again.Builds), len(loaded.Builds))
	gt.Equal(t, again.Builds["abc"].DetectedDate, loaded.Builds["abc"].DetectedDate)
}

func TestNewFirestoreStoreRequiresProject(t *testing.T) {
	_, err := ledger.NewFirestoreStore(context.Background(), "", "winwatch")
	gt.Error(t, err)
}
