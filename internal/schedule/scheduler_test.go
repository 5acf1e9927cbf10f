package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_InvalidSpec(t *testing.T) {
	s := NewScheduler(nil)

	err := s.Start(context.Background(), "not a cron spec", func(context.Context) error {
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
}

func TestStart_ValidSpecAndStop(t *testing.T) {
	s := NewScheduler(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx, "0 6 * * *", func(context.Context) error {
		return nil
	}))

	// double start is rejected
	err := s.Start(ctx, "0 6 * * *", func(context.Context) error { return nil })
	require.Error(t, err)

	s.Stop()
	// idempotent
	s.Stop()
}

func TestRunJob_SkipsOverlappingRuns(t *testing.T) {
	s := NewScheduler(nil)

	started := make(chan struct{})
	release := make(chan struct{})
	var runs int

	go s.runJob(context.Background(), func(context.Context) error {
		runs++
		close(started)
		<-release
		return nil
	})

	<-started
	// second tick while the first run is in flight gets skipped
	s.runJob(context.Background(), func(context.Context) error {
		runs++
		return nil
	})
	close(release)

	assert.Equal(t, 1, runs)
}
