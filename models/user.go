// models/user.go
package models

import (
	"time"
)

type User struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Password string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`

	// Progression (derived, mutated only by the store itself)
	StreakCount int `json:"streakCount"`
	Points      int `json:"points"`
	Level       int `json:"level"`

	// Timestamps
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
}

type UserAchievement struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"userId"`
	AchievementID uint      `json:"achievementId"`
	EarnedAt      time.Time `json:"earnedAt"`
}

// EarnedAchievement is the joined view returned for a user's unlocked
// achievements.
type EarnedAchievement struct {
	Achievement
	EarnedAt time.Time `json:"earnedAt"`
}
