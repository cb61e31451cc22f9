// store/catalog.go - Subject and textbook reference data
package store

import (
	"strings"

	"studyquest/models"
)

type CreateSubjectParams struct {
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	ColorHex string `json:"colorHex"`
}

type CreateTextbookParams struct {
	Title      string  `json:"title"`
	Author     *string `json:"author"`
	SubjectID  uint    `json:"subjectId"`
	GradeLevel *int    `json:"gradeLevel"`
	TotalPages *int    `json:"totalPages"`
}

func (s *Store) CreateSubject(params CreateSubjectParams) (*models.Subject, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, invalid("name", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.subjectSeq++
	subject := &models.Subject{
		ID:       s.subjectSeq,
		Name:     params.Name,
		Emoji:    params.Emoji,
		ColorHex: params.ColorHex,
	}
	s.subjects = append(s.subjects, subject)
	s.subjectsByID[subject.ID] = subject

	cp := *subject
	return &cp, nil
}

func (s *Store) GetSubject(id uint) *models.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subject, ok := s.subjectsByID[id]
	if !ok {
		return nil
	}
	cp := *subject
	return &cp
}

func (s *Store) GetSubjects() []models.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Subject, 0, len(s.subjects))
	for _, subject := range s.subjects {
		out = append(out, *subject)
	}
	return out
}

func (s *Store) CreateTextbook(params CreateTextbookParams) (*models.Textbook, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, invalid("title", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.textbookSeq++
	textbook := &models.Textbook{
		ID:         s.textbookSeq,
		Title:      params.Title,
		Author:     params.Author,
		SubjectID:  params.SubjectID,
		GradeLevel: params.GradeLevel,
		TotalPages: params.TotalPages,
	}
	s.textbooks = append(s.textbooks, textbook)
	s.textbooksByID[textbook.ID] = textbook

	cp := *textbook
	return &cp, nil
}

func (s *Store) GetTextbook(id uint) *models.Textbook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	textbook, ok := s.textbooksByID[id]
	if !ok {
		return nil
	}
	cp := *textbook
	return &cp
}

// GetTextbooks lists textbooks in insertion order, optionally restricted to
// one subject.
func (s *Store) GetTextbooks(subjectID *uint) []models.Textbook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Textbook, 0, len(s.textbooks))
	for _, textbook := range s.textbooks {
		if subjectID != nil && textbook.SubjectID != *subjectID {
			continue
		}
		out = append(out, *textbook)
	}
	return out
}
