package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Streak transitions depend on full days elapsed since the previous
// lastActive: 0 days leaves the streak alone, exactly 1 increments it,
// anything more resets it to 1.
func TestStreakTransitions(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		startStreak int
		gap         time.Duration
		wantStreak  int
	}{
		{"same instant", 5, 0, 5},
		{"same day", 5, 6 * time.Hour, 5},
		{"under a full day", 5, 23 * time.Hour, 5},
		{"exactly one day", 5, 24 * time.Hour, 6},
		{"one day and change", 5, 25 * time.Hour, 6},
		{"two days", 5, 48 * time.Hour, 1},
		{"week gap", 12, 7 * 24 * time.Hour, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			clock := fixedClock(s, base)

			user := mustCreateUser(t, s, "alice")
			s.usersByID[user.ID].StreakCount = tc.startStreak

			test := mustCreateTest(t, s, CreateTestParams{CreatedBy: user.ID})

			*clock = base.Add(tc.gap)
			_, err := s.CompleteTest(test.ID, 80)
			require.NoError(t, err)

			after := s.GetUser(user.ID)
			assert.Equal(t, tc.wantStreak, after.StreakCount)
			assert.Equal(t, base.Add(tc.gap), after.LastActive)
		})
	}
}

// The streak decision uses the lastActive captured before the completion
// overwrites it, so two completions on consecutive days both count.
func TestStreakAcrossConsecutiveDays(t *testing.T) {
	s := NewStore()
	clock := fixedClock(s, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	user := mustCreateUser(t, s, "alice")

	for day := 0; day < 4; day++ {
		*clock = time.Date(2024, 3, 1+day, 9, 0, 0, 0, time.UTC)
		test := mustCreateTest(t, s, CreateTestParams{CreatedBy: user.ID})
		_, err := s.CompleteTest(test.ID, 60)
		require.NoError(t, err)
	}

	// Day one leaves the fresh streak at 0, the next three days add one each.
	assert.Equal(t, 3, s.GetUser(user.ID).StreakCount)
}

func TestStreakUnchangedBySameDayCompletions(t *testing.T) {
	s := NewStore()
	clock := fixedClock(s, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	user := mustCreateUser(t, s, "alice")
	s.usersByID[user.ID].StreakCount = 2

	for i := 0; i < 3; i++ {
		*clock = clock.Add(30 * time.Minute)
		test := mustCreateTest(t, s, CreateTestParams{CreatedBy: user.ID})
		_, err := s.CompleteTest(test.ID, 60)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, s.GetUser(user.ID).StreakCount)
}
