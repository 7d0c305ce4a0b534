package service

import (
	"context"
	"testing"
	"time"

	"microwave/internal/oven"
	"microwave/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCodec_RoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	remnant := oven.Config{DurationSeconds: 30, PowerLevel: 10}

	cases := []struct {
		name string
		in   oven.Session
	}{
		{"empty stopped", oven.Stopped{}},
		{"stopped with remnant", oven.Stopped{Remnant: &remnant, ProgramID: "Pipoca", DisplayChar: "∩"}},
		{"manual heating", oven.Heating{Config: oven.Config{DurationSeconds: 90, PowerLevel: 8}, StartedAt: start}},
		{"program heating", oven.Heating{Config: oven.Config{DurationSeconds: 180, PowerLevel: 7}, StartedAt: start, ProgramID: "Pipoca", DisplayChar: "∩"}},
		{"paused", oven.Paused{Config: oven.Config{DurationSeconds: 60, PowerLevel: 5}, Remaining: 40, ProgramID: "custom-1", DisplayChar: "P"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec := sessionCodec{store: repository.NewMemorySessionStore(0)}
			ctx := context.Background()

			require.NoError(t, codec.Save(ctx, "s", oven.Heating{Config: oven.Config{DurationSeconds: 5, PowerLevel: 1}, StartedAt: start, ProgramID: "x", DisplayChar: "y"}))
			require.NoError(t, codec.Save(ctx, "s", tc.in))

			got, err := codec.Load(ctx, "s")
			require.NoError(t, err)
			assert.Equal(t, tc.in, got)
		})
	}
}

func TestSessionCodec_LoadDegradesInconsistentRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("heating without start time", func(t *testing.T) {
		store := repository.NewMemorySessionStore(0)
		require.NoError(t, store.SetString(ctx, "s", keyMicrowaveState, "HEATING"))
		require.NoError(t, store.SetString(ctx, "s", keyCurrentOven, `{"durationSeconds":30,"powerLevel":5}`))

		got, err := sessionCodec{store: store}.Load(ctx, "s")
		require.NoError(t, err)
		assert.Equal(t, oven.Stopped{Remnant: &oven.Config{DurationSeconds: 30, PowerLevel: 5}}, got)
	})

	t.Run("legacy heating flag", func(t *testing.T) {
		store := repository.NewMemorySessionStore(0)
		require.NoError(t, store.SetString(ctx, "s", keyIsHeating, "true"))
		require.NoError(t, store.SetString(ctx, "s", keyStartTime, "2026-03-01T12:00:00Z"))
		require.NoError(t, store.SetString(ctx, "s", keyCurrentOven, `{"durationSeconds":30,"powerLevel":5}`))

		got, err := sessionCodec{store: store}.Load(ctx, "s")
		require.NoError(t, err)
		assert.Equal(t, "HEATING", got.State())
	})

	t.Run("paused without snapshot", func(t *testing.T) {
		store := repository.NewMemorySessionStore(0)
		require.NoError(t, store.SetString(ctx, "s", keyMicrowaveState, "PAUSED"))

		got, err := sessionCodec{store: store}.Load(ctx, "s")
		require.NoError(t, err)
		p, ok := got.(oven.Paused)
		require.True(t, ok)
		assert.False(t, p.Resumable())
	})

	t.Run("corrupt oven json", func(t *testing.T) {
		store := repository.NewMemorySessionStore(0)
		require.NoError(t, store.SetString(ctx, "s", keyCurrentOven, `{oops`))

		got, err := sessionCodec{store: store}.Load(ctx, "s")
		require.NoError(t, err)
		assert.Equal(t, oven.Stopped{}, got)
	})
}
