// store/store.go - In-memory progress store
package store

import (
	"sync"
	"time"

	"studyquest/models"
)

// Achievement names the store evaluates after every test completion.
const (
	AchGettingStarted  = "Getting Started"
	AchStreakMaster    = "Streak Master"
	AchMathWizard      = "Math Wizard"
	AchBookworm        = "Bookworm"
	AchUltimateScholar = "Ultimate Scholar"
)

const mathSubjectName = "Mathematics"

// Store owns all domain entities in memory and derives gamification state
// (points, levels, streaks, achievement unlocks) from test completions.
// Lifecycle is process lifetime: no persistence, reset on restart.
//
// Every exported operation is a single atomic unit under one lock, so a
// completion's score set, points award, streak update, level recompute and
// achievement scan can never interleave with another writer.
type Store struct {
	mu sync.RWMutex

	users           []*models.User
	usersByID       map[uint]*models.User
	usersByUsername map[string]*models.User

	subjects      []*models.Subject
	subjectsByID  map[uint]*models.Subject
	textbooks     []*models.Textbook
	textbooksByID map[uint]*models.Textbook

	tests     []*models.Test
	testsByID map[uint]*models.Test

	achievements       []*models.Achievement
	achievementsByID   map[uint]*models.Achievement
	achievementsByName map[string]*models.Achievement

	userAchievements []*models.UserAchievement
	earned           map[earnedKey]*models.UserAchievement

	userSeq            uint
	subjectSeq         uint
	textbookSeq        uint
	testSeq            uint
	achievementSeq     uint
	userAchievementSeq uint

	now func() time.Time
}

type earnedKey struct {
	userID        uint
	achievementID uint
}

// NewStore creates a store seeded with the fixed subject and achievement
// reference data.
func NewStore() *Store {
	s := &Store{
		usersByID:          make(map[uint]*models.User),
		usersByUsername:    make(map[string]*models.User),
		subjectsByID:       make(map[uint]*models.Subject),
		textbooksByID:      make(map[uint]*models.Textbook),
		testsByID:          make(map[uint]*models.Test),
		achievementsByID:   make(map[uint]*models.Achievement),
		achievementsByName: make(map[string]*models.Achievement),
		earned:             make(map[earnedKey]*models.UserAchievement),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	subjects := []models.Subject{
		{Name: mathSubjectName, Emoji: "🔢", ColorHex: "#4F46E5"},
		{Name: "Science", Emoji: "🔬", ColorHex: "#059669"},
		{Name: "History", Emoji: "🏛️", ColorHex: "#B45309"},
		{Name: "English", Emoji: "📖", ColorHex: "#DB2777"},
		{Name: "Geography", Emoji: "🌍", ColorHex: "#0891B2"},
	}
	for _, sub := range subjects {
		s.subjectSeq++
		sub.ID = s.subjectSeq
		stored := sub
		s.subjects = append(s.subjects, &stored)
		s.subjectsByID[stored.ID] = &stored
	}

	achievements := []models.Achievement{
		{Name: AchGettingStarted, Description: "Complete your first test", Emoji: "🚀", RequiredPoints: 10},
		{Name: AchStreakMaster, Description: "Keep a 7-day study streak", Emoji: "🔥", RequiredPoints: 50},
		{Name: AchMathWizard, Description: "Score 100 on five Mathematics tests", Emoji: "🧙", RequiredPoints: 100},
		{Name: AchBookworm, Description: "Study from ten different textbooks", Emoji: "📚", RequiredPoints: 150},
		{Name: AchUltimateScholar, Description: "Reach level 10", Emoji: "🎓", RequiredPoints: 500, IsHidden: true},
	}
	for _, ach := range achievements {
		s.achievementSeq++
		ach.ID = s.achievementSeq
		stored := ach
		s.achievements = append(s.achievements, &stored)
		s.achievementsByID[stored.ID] = &stored
		s.achievementsByName[stored.Name] = &stored
	}
}
