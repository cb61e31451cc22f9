// store/tests.go - Test lifecycle and the completion pipeline
package store

import (
	"strings"
	"time"

	"studyquest/models"
)

type CreateTestParams struct {
	Title         string     `json:"title"`
	CreatedBy     uint       `json:"createdBy"`
	SubjectID     uint       `json:"subjectId"`
	TextbookID    uint       `json:"textbookId"`
	PagesFrom     int        `json:"pagesFrom"`
	PagesTo       int        `json:"pagesTo"`
	QuestionCount int        `json:"questionCount"`
	ExamDate      *time.Time `json:"examDate"`
}

// TestPatch is a merge patch for direct field edits. Completion state and
// score are not patchable; they move only through CompleteTest.
type TestPatch struct {
	Title         *string    `json:"title"`
	SubjectID     *uint      `json:"subjectId"`
	TextbookID    *uint      `json:"textbookId"`
	PagesFrom     *int       `json:"pagesFrom"`
	PagesTo       *int       `json:"pagesTo"`
	QuestionCount *int       `json:"questionCount"`
	ExamDate      *time.Time `json:"examDate"`
}

// TestFilter constrains GetTests; nil fields match everything.
type TestFilter struct {
	CreatedBy *uint
	SubjectID *uint
	Completed *bool
}

func validatePages(from, to int) error {
	if from < 1 {
		return invalid("pagesFrom", "must be at least 1")
	}
	if to < from {
		return invalid("pagesTo", "must not be less than pagesFrom")
	}
	return nil
}

func validateQuestionCount(n int) error {
	if n < 1 || n > 50 {
		return invalid("questionCount", "must be between 1 and 50")
	}
	return nil
}

func (s *Store) CreateTest(params CreateTestParams) (*models.Test, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, invalid("title", "must not be empty")
	}
	if err := validatePages(params.PagesFrom, params.PagesTo); err != nil {
		return nil, err
	}
	if err := validateQuestionCount(params.QuestionCount); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.testSeq++
	test := &models.Test{
		ID:            s.testSeq,
		Title:         params.Title,
		CreatedBy:     params.CreatedBy,
		SubjectID:     params.SubjectID,
		TextbookID:    params.TextbookID,
		PagesFrom:     params.PagesFrom,
		PagesTo:       params.PagesTo,
		QuestionCount: params.QuestionCount,
		CreatedAt:     s.now(),
		ExamDate:      params.ExamDate,
		IsCompleted:   false,
		Score:         nil,
	}
	s.tests = append(s.tests, test)
	s.testsByID[test.ID] = test

	cp := *test
	return &cp, nil
}

func (s *Store) GetTest(id uint) *models.Test {
	s.mu.RLock()
	defer s.mu.RUnlock()

	test, ok := s.testsByID[id]
	if !ok {
		return nil
	}
	cp := *test
	return &cp
}

// GetTests returns matching tests in insertion order.
func (s *Store) GetTests(filter TestFilter) []models.Test {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Test, 0, len(s.tests))
	for _, test := range s.tests {
		if filter.CreatedBy != nil && test.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.SubjectID != nil && test.SubjectID != *filter.SubjectID {
			continue
		}
		if filter.Completed != nil && test.IsCompleted != *filter.Completed {
			continue
		}
		out = append(out, *test)
	}
	return out
}

func (s *Store) UpdateTest(id uint, patch TestPatch) (*models.Test, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	test, ok := s.testsByID[id]
	if !ok {
		return nil, ErrNotFound
	}

	from, to := test.PagesFrom, test.PagesTo
	if patch.PagesFrom != nil {
		from = *patch.PagesFrom
	}
	if patch.PagesTo != nil {
		to = *patch.PagesTo
	}
	if err := validatePages(from, to); err != nil {
		return nil, err
	}
	if patch.QuestionCount != nil {
		if err := validateQuestionCount(*patch.QuestionCount); err != nil {
			return nil, err
		}
		test.QuestionCount = *patch.QuestionCount
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, invalid("title", "must not be empty")
		}
		test.Title = *patch.Title
	}
	if patch.SubjectID != nil {
		test.SubjectID = *patch.SubjectID
	}
	if patch.TextbookID != nil {
		test.TextbookID = *patch.TextbookID
	}
	test.PagesFrom = from
	test.PagesTo = to
	if patch.ExamDate != nil {
		test.ExamDate = patch.ExamDate
	}

	cp := *test
	return &cp, nil
}

// CompleteTest marks the test completed and applies every downstream
// gamification effect in one atomic unit: points award, streak update, level
// recompute, achievement scan. Completion is strictly one-way; a second
// attempt is rejected.
func (s *Store) CompleteTest(id uint, score int) (*models.Test, error) {
	if score < 0 || score > 100 {
		return nil, invalid("score", "must be between 0 and 100")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	test, ok := s.testsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if test.IsCompleted {
		return nil, invalid("score", "test is already completed")
	}

	now := s.now()
	test.IsCompleted = true
	sc := score
	test.Score = &sc

	// Downstream effects are skipped silently when the owner is unknown;
	// the completed test itself still stands.
	user, ok := s.usersByID[test.CreatedBy]
	if !ok {
		cp := *test
		return &cp, nil
	}

	previousActive := user.LastActive
	user.Points += score * 10
	user.LastActive = now

	switch days := int(now.Sub(previousActive).Hours() / 24); {
	case days == 1:
		user.StreakCount++
	case days > 1:
		user.StreakCount = 1
	}

	if level := levelForPoints(user.Points); level > user.Level {
		user.Level = level
	}

	s.checkAchievements(user)

	cp := *test
	return &cp, nil
}
