// store/achievements.go - Achievement rules and awards
package store

import (
	"fmt"
	"strings"

	"studyquest/models"
)

type CreateAchievementParams struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Emoji          string `json:"emoji"`
	RequiredPoints int    `json:"requiredPoints"`
	IsHidden       bool   `json:"isHidden"`
}

func (s *Store) CreateAchievement(params CreateAchievementParams) (*models.Achievement, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, invalid("name", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.achievementsByName[params.Name]; exists {
		return nil, invalid("name", "already taken")
	}

	s.achievementSeq++
	achievement := &models.Achievement{
		ID:             s.achievementSeq,
		Name:           params.Name,
		Description:    params.Description,
		Emoji:          params.Emoji,
		RequiredPoints: params.RequiredPoints,
		IsHidden:       params.IsHidden,
	}
	s.achievements = append(s.achievements, achievement)
	s.achievementsByID[achievement.ID] = achievement
	s.achievementsByName[achievement.Name] = achievement

	cp := *achievement
	return &cp, nil
}

// GetAchievements lists achievements in insertion order. Hidden ones are
// excluded unless explicitly requested.
func (s *Store) GetAchievements(includeHidden bool) []models.Achievement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Achievement, 0, len(s.achievements))
	for _, achievement := range s.achievements {
		if achievement.IsHidden && !includeHidden {
			continue
		}
		out = append(out, *achievement)
	}
	return out
}

// AwardAchievement records the achievement for the user. Awarding an
// already-held achievement is a no-op returning the existing record.
func (s *Store) AwardAchievement(userID, achievementID uint) (*models.UserAchievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usersByID[userID]; !ok {
		return nil, ErrNotFound
	}
	if _, ok := s.achievementsByID[achievementID]; !ok {
		return nil, ErrNotFound
	}

	cp := *s.awardLocked(userID, achievementID)
	return &cp, nil
}

// GetUserAchievements joins the user's awards to their achievement records.
// A dangling achievement reference is a store defect, not an empty result.
func (s *Store) GetUserAchievements(userID uint) ([]models.EarnedAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.EarnedAchievement, 0)
	for _, ua := range s.userAchievements {
		if ua.UserID != userID {
			continue
		}
		achievement, ok := s.achievementsByID[ua.AchievementID]
		if !ok {
			return nil, fmt.Errorf("%w: user achievement %d references missing achievement %d",
				ErrDataIntegrity, ua.ID, ua.AchievementID)
		}
		out = append(out, models.EarnedAchievement{
			Achievement: *achievement,
			EarnedAt:    ua.EarnedAt,
		})
	}
	return out, nil
}

// awardLocked assumes the caller holds the write lock.
func (s *Store) awardLocked(userID, achievementID uint) *models.UserAchievement {
	key := earnedKey{userID: userID, achievementID: achievementID}
	if existing, ok := s.earned[key]; ok {
		return existing
	}

	s.userAchievementSeq++
	ua := &models.UserAchievement{
		ID:            s.userAchievementSeq,
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      s.now(),
	}
	s.userAchievements = append(s.userAchievements, ua)
	s.earned[key] = ua
	return ua
}

// checkAchievements re-evaluates every rule for the user and awards any newly
// qualifying achievement. Rules are independent; one completion can unlock
// several at once. Assumes the caller holds the write lock.
func (s *Store) checkAchievements(user *models.User) {
	completed := 0
	perfectMath := 0
	textbooks := make(map[uint]struct{})

	var mathID uint
	for _, subject := range s.subjects {
		if subject.Name == mathSubjectName {
			mathID = subject.ID
			break
		}
	}

	for _, test := range s.tests {
		if test.CreatedBy != user.ID {
			continue
		}
		// Distinct textbooks count across all of the user's tests,
		// completed or not.
		textbooks[test.TextbookID] = struct{}{}
		if !test.IsCompleted {
			continue
		}
		completed++
		if mathID != 0 && test.SubjectID == mathID && test.Score != nil && *test.Score == 100 {
			perfectMath++
		}
	}

	if completed >= 1 {
		s.awardByName(user.ID, AchGettingStarted)
	}
	if user.StreakCount >= 7 && user.Points >= 50 {
		s.awardByName(user.ID, AchStreakMaster)
	}
	if perfectMath >= 5 && user.Points >= 100 {
		s.awardByName(user.ID, AchMathWizard)
	}
	if len(textbooks) >= 10 && user.Points >= 150 {
		s.awardByName(user.ID, AchBookworm)
	}
	if user.Level >= 10 && user.Points >= 500 {
		s.awardByName(user.ID, AchUltimateScholar)
	}
}

func (s *Store) awardByName(userID uint, name string) {
	achievement, ok := s.achievementsByName[name]
	if !ok {
		return
	}
	s.awardLocked(userID, achievement.ID)
}
