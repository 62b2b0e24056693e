package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/kelexine/winwatch/pkg/utils/async"
)

func TestDispatchRunsHandler(t *testing.T) {
	done := make(chan struct{})

	runID := async.Dispatch(context.Background(), "", func(ctx context.Context) error {
		close(done)
		return nil
	})

	gt.True(t, runID != "")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}

func TestDispatchKeepsGivenRunID(t *testing.T) {
	done := make(chan struct{})

	runID := async.Dispatch(context.Background(), "run-42", func(ctx context.Context) error {
		close(done)
		return nil
	})

	gt.Equal(t, runID, "run-42")
	<-done
}

func TestDispatchSurvivesCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	async.Dispatch(ctx, "", func(ctx context.Context) error {
		done <- ctx.Err()
		return nil
	})

	select {
	case err := <-done:
		// Handler context is detached from the caller's cancellation
		gt.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	done := make(chan struct{})

	async.Dispatch(context.Background(), "", func(ctx context.Context) error {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
	// Give the recover path a beat; the test passes if nothing crashes the
	// process.
	time.Sleep(10 * time.Millisecond)
}

func TestDispatchLogsHandlerError(t *testing.T) {
	done := make(chan struct{})

	async.Dispatch(context.Background(), "", func(ctx context.Context) error {
		defer close(done)
		return errors.New("handler failed")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}
