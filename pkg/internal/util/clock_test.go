package util_test

import (
	"testing"
	"time"

	"git.solsynth.dev/hypernet/threads/pkg/internal/util"
	"github.com/stretchr/testify/require"
)

func TestStubClock(t *testing.T) {
	clock := util.NewStubClock()
	fixed := time.Date(2024, 11, 2, 4, 48, 32, 0, time.FixedZone("UTC+8", 8*3600))
	clock.SetNow(fixed)

	require.Equal(t, fixed.UTC(), clock.NowUtc())
	require.Equal(t, "2024-11-01T20:48:32Z", util.Timestamp(clock))

	next := clock.Advance(time.Minute)
	require.Equal(t, fixed.UTC().Add(time.Minute), next)
	require.Equal(t, next, clock.NowUtc())
}
