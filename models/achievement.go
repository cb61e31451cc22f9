// models/achievement.go
package models

type Achievement struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Emoji          string `json:"emoji"`
	RequiredPoints int    `json:"requiredPoints"`
	IsHidden       bool   `json:"isHidden"`
}
