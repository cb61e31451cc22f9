// models/models.go - Core Models
package models

import (
	"time"
)

// Subject is immutable reference data seeded at startup.
type Subject struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	ColorHex string `json:"colorHex"`
}

type Textbook struct {
	ID         uint    `json:"id"`
	Title      string  `json:"title"`
	Author     *string `json:"author,omitempty"`
	SubjectID  uint    `json:"subjectId"`
	GradeLevel *int    `json:"gradeLevel,omitempty"`
	TotalPages *int    `json:"totalPages,omitempty"`
}

// Test is a scheduled study test. It starts pending and transitions to
// completed exactly once; Score is set at that transition and never after.
type Test struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	CreatedBy     uint       `json:"createdBy"`
	SubjectID     uint       `json:"subjectId"`
	TextbookID    uint       `json:"textbookId"`
	PagesFrom     int        `json:"pagesFrom"`
	PagesTo       int        `json:"pagesTo"`
	QuestionCount int        `json:"questionCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	ExamDate      *time.Time `json:"examDate,omitempty"`
	IsCompleted   bool       `json:"isCompleted"`
	Score         *int       `json:"score"`
}

// LeaderboardEntry is a user's position in the points ranking.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"userId"`
	Username    string `json:"username"`
	Points      int    `json:"points"`
	Level       int    `json:"level"`
	StreakCount int    `json:"streakCount"`
}

// Progression summarizes a user's gamification state.
type Progression struct {
	UserID          uint      `json:"userId"`
	Level           int       `json:"level"`
	Points          int       `json:"points"`
	NextLevelPoints int       `json:"nextLevelPoints"`
	ProgressPercent float64   `json:"progressPercent"`
	StreakCount     int       `json:"streakCount"`
	TestsCompleted  int       `json:"testsCompleted"`
	LastActive      time.Time `json:"lastActive"`
}
