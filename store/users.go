// store/users.go
package store

import (
	"math"
	"sort"
	"strings"

	"studyquest/models"
)

type CreateUserParams struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
}

// UserPatch is a merge patch: nil fields are left untouched. Derived fields
// (points, level, streak) are not patchable; they move only through
// CompleteTest.
type UserPatch struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
}

func (s *Store) CreateUser(params CreateUserParams) (*models.User, error) {
	if strings.TrimSpace(params.Username) == "" {
		return nil, invalid("username", "must not be empty")
	}
	if params.Password == "" {
		return nil, invalid("password", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByUsername[params.Username]; exists {
		return nil, invalid("username", "already taken")
	}

	now := s.now()
	s.userSeq++
	user := &models.User{
		ID:          s.userSeq,
		Username:    params.Username,
		Password:    params.Password,
		Name:        params.Name,
		Email:       params.Email,
		StreakCount: 0,
		Points:      0,
		Level:       1,
		CreatedAt:   now,
		LastActive:  now,
	}
	s.users = append(s.users, user)
	s.usersByID[user.ID] = user
	s.usersByUsername[user.Username] = user

	cp := *user
	return &cp, nil
}

// GetUser returns the user or nil when the id is unknown.
func (s *Store) GetUser(id uint) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[id]
	if !ok {
		return nil
	}
	cp := *user
	return &cp
}

func (s *Store) GetUserByUsername(username string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByUsername[username]
	if !ok {
		return nil
	}
	cp := *user
	return &cp
}

func (s *Store) UpdateUser(id uint, patch UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.usersByID[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Username != nil && *patch.Username != user.Username {
		if strings.TrimSpace(*patch.Username) == "" {
			return nil, invalid("username", "must not be empty")
		}
		if _, exists := s.usersByUsername[*patch.Username]; exists {
			return nil, invalid("username", "already taken")
		}
		delete(s.usersByUsername, user.Username)
		user.Username = *patch.Username
		s.usersByUsername[user.Username] = user
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, invalid("password", "must not be empty")
		}
		user.Password = *patch.Password
	}
	if patch.Name != nil {
		user.Name = patch.Name
	}
	if patch.Email != nil {
		user.Email = patch.Email
	}

	cp := *user
	return &cp, nil
}

// GetLeaderboard returns up to limit users ordered by points descending.
// Ties are broken by user id ascending so ranking is deterministic.
func (s *Store) GetLeaderboard(limit int) []models.LeaderboardEntry {
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked := make([]*models.User, len(s.users))
	copy(ranked, s.users)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].ID < ranked[j].ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]models.LeaderboardEntry, 0, len(ranked))
	for i, user := range ranked {
		entries = append(entries, models.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      user.ID,
			Username:    user.Username,
			Points:      user.Points,
			Level:       user.Level,
			StreakCount: user.StreakCount,
		})
	}
	return entries
}

// Progression returns a summary of the user's gamification state.
func (s *Store) Progression(userID uint) (*models.Progression, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[userID]
	if !ok {
		return nil, ErrNotFound
	}

	completed := 0
	for _, t := range s.tests {
		if t.CreatedBy == userID && t.IsCompleted {
			completed++
		}
	}

	next := pointsForLevel(user.Level + 1)
	floor := pointsForLevel(user.Level)
	progress := 0.0
	if next > floor {
		progress = float64(user.Points-floor) / float64(next-floor) * 100
	}

	return &models.Progression{
		UserID:          user.ID,
		Level:           user.Level,
		Points:          user.Points,
		NextLevelPoints: next,
		ProgressPercent: progress,
		StreakCount:     user.StreakCount,
		TestsCompleted:  completed,
		LastActive:      user.LastActive,
	}, nil
}

// levelForPoints is the coarse monotonic level curve:
// floor(sqrt(points)/10) + 1.
func levelForPoints(points int) int {
	return int(math.Sqrt(float64(points))/10) + 1
}

// pointsForLevel is the inverse boundary: the fewest points that put a user
// at the given level.
func pointsForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * (level - 1) * 100
}
