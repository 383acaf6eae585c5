package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizQuestion_Validate(t *testing.T) {
	valid := func() QuizQuestion {
		return QuizQuestion{
			Prompt:       "What does the kernel scheduler do?",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 2,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*QuizQuestion)
		wantErr bool
	}{
		{"valid question", func(q *QuizQuestion) {}, false},
		{"missing prompt", func(q *QuizQuestion) { q.Prompt = "" }, true},
		{"too few options", func(q *QuizQuestion) { q.Options = q.Options[:3] }, true},
		{"too many options", func(q *QuizQuestion) { q.Options = append(q.Options, "e") }, true},
		{"correct index negative", func(q *QuizQuestion) { q.CorrectIndex = -1 }, true},
		{"correct index past options", func(q *QuizQuestion) { q.CorrectIndex = 4 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateContextSpec(t *testing.T) {
	assert.NoError(t, ValidateContextSpec(ContextSpec{Type: QuizScopeLastMinutes, Value: 10}))
	assert.NoError(t, ValidateContextSpec(ContextSpec{Type: QuizScopeLastChapter, Value: 1}))
	assert.Error(t, ValidateContextSpec(ContextSpec{Type: "minutes", Value: 10}))
	assert.Error(t, ValidateContextSpec(ContextSpec{Type: QuizScopeLastMinutes, Value: 0}))
}

func TestValidateDifficulty(t *testing.T) {
	for _, d := range []string{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		assert.NoError(t, ValidateDifficulty(d))
	}
	assert.Error(t, ValidateDifficulty("impossible"))
}

func TestNormalizeDatesheetItems(t *testing.T) {
	items := NormalizeDatesheetItems([]DatesheetItem{
		{Subject: "  Physics ", ExamDate: " 2026-03-04 ", Syllabus: []string{" Ch-1 ", "", "  "}},
	})
	assert.Equal(t, []DatesheetItem{
		{Subject: "Physics", ExamDate: "2026-03-04", Syllabus: []string{"Ch-1"}},
	}, items)
}
