package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartRegistersJobsAndStops(t *testing.T) {
	// The resolver fires on a one-minute interval, so a nil pool is fine
	// here: registration must succeed without the job body running.
	m, err := Start(nil)
	require.NoError(t, err)
	require.NotNil(t, m)

	m.Stop()
}
