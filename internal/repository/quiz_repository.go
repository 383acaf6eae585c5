package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/repository/models"
	"github.com/rexdotsh/praxis/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// CreateQuiz inserts a quiz and its questions. The caller wraps this in a
// transaction so a failed question insert never leaves a question-less quiz
// behind.
func (a *QuizDatabaseAdapter) CreateQuiz(ctx context.Context, quiz *domain.Quiz, questions []domain.QuizQuestion) error {
	executor := GetExecutor(ctx, a.db)

	now := time.Now()
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	if quiz.Status == "" {
		quiz.Status = domain.QuizStatusActive
	}

	modelQuiz := toModelQuiz(quiz)
	quizQuery := `INSERT INTO quizzes (
		id, video_id, created_by_user_id, spec_type, spec_value,
		meta_title, meta_description, meta_channel,
		num_questions, choices_count, difficulty, model, status,
		created_at, updated_at
	) VALUES (
		:id, :video_id, :created_by_user_id, :spec_type, :spec_value,
		:meta_title, :meta_description, :meta_channel,
		:num_questions, :choices_count, :difficulty, :model, :status,
		:created_at, :updated_at
	)`
	if _, err := executor.NamedExecContext(ctx, quizQuery, modelQuiz); err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}

	questionQuery := `INSERT INTO quiz_questions (
		id, quiz_id, position, prompt, options_json, correct_index, explanation
	) VALUES (
		:id, :quiz_id, :position, :prompt, :options_json, :correct_index, :explanation
	)`
	for i := range questions {
		q := &questions[i]
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		q.QuizID = quiz.ID
		q.Position = i

		modelQuestion, err := toModelQuizQuestion(q)
		if err != nil {
			return err
		}
		if _, err := executor.NamedExecContext(ctx, questionQuery, modelQuestion); err != nil {
			return fmt.Errorf("failed to insert quiz question %d: %w", i, err)
		}
	}
	return nil
}

func (a *QuizDatabaseAdapter) GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	executor := GetExecutor(ctx, a.db)

	var modelQuiz models.Quiz
	query := `SELECT * FROM quizzes WHERE id = ?`
	if err := executor.GetContext(ctx, &modelQuiz, query, quizID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", quizID, err)
	}
	return toDomainQuiz(&modelQuiz), nil
}

func (a *QuizDatabaseAdapter) GetQuestionsByQuiz(ctx context.Context, quizID string) ([]domain.QuizQuestion, error) {
	executor := GetExecutor(ctx, a.db)

	var modelQuestions []models.QuizQuestion
	query := `SELECT * FROM quiz_questions WHERE quiz_id = ? ORDER BY position ASC`
	if err := executor.SelectContext(ctx, &modelQuestions, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	questions := make([]domain.QuizQuestion, 0, len(modelQuestions))
	for i := range modelQuestions {
		q, err := toDomainQuizQuestion(&modelQuestions[i])
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, nil
}

func (a *QuizDatabaseAdapter) GetQuestion(ctx context.Context, questionID string) (*domain.QuizQuestion, error) {
	executor := GetExecutor(ctx, a.db)

	var modelQuestion models.QuizQuestion
	query := `SELECT * FROM quiz_questions WHERE id = ?`
	if err := executor.GetContext(ctx, &modelQuestion, query, questionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question %s: %w", questionID, err)
	}
	return toDomainQuizQuestion(&modelQuestion)
}

func (a *QuizDatabaseAdapter) CreateSession(ctx context.Context, session *domain.QuizSession) error {
	executor := GetExecutor(ctx, a.db)

	if session.ID == "" {
		session.ID = util.NewULID()
	}
	if session.Status == "" {
		session.Status = domain.SessionStatusInProgress
	}
	if session.StartedAtMs == 0 {
		session.StartedAtMs = time.Now().UnixMilli()
	}

	query := `INSERT INTO quiz_sessions (id, quiz_id, user_id, status, started_at_ms, finished_at_ms)
	          VALUES (:id, :quiz_id, :user_id, :status, :started_at_ms, :finished_at_ms)`
	if _, err := executor.NamedExecContext(ctx, query, toModelQuizSession(session)); err != nil {
		return fmt.Errorf("failed to insert quiz session: %w", err)
	}
	return nil
}

func (a *QuizDatabaseAdapter) GetSession(ctx context.Context, sessionID string) (*domain.QuizSession, error) {
	executor := GetExecutor(ctx, a.db)

	var modelSession models.QuizSession
	query := `SELECT * FROM quiz_sessions WHERE id = ?`
	if err := executor.GetContext(ctx, &modelSession, query, sessionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	return toDomainQuizSession(&modelSession), nil
}

func (a *QuizDatabaseAdapter) FinishSession(ctx context.Context, sessionID string, finishedAtMs int64) error {
	executor := GetExecutor(ctx, a.db)

	query := `UPDATE quiz_sessions SET status = ?, finished_at_ms = ? WHERE id = ?`
	result, err := executor.ExecContext(ctx, query, domain.SessionStatusCompleted, finishedAtMs, sessionID)
	if err != nil {
		return fmt.Errorf("failed to finish session %s: %w", sessionID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for session %s: %w", sessionID, err)
	}
	if rows == 0 {
		return domain.NewSessionNotFoundError(sessionID)
	}
	return nil
}

func (a *QuizDatabaseAdapter) GetAnswersBySession(ctx context.Context, sessionID string) ([]domain.QuizAnswer, error) {
	executor := GetExecutor(ctx, a.db)

	var modelAnswers []models.QuizAnswer
	query := `SELECT * FROM quiz_answers WHERE session_id = ?`
	if err := executor.SelectContext(ctx, &modelAnswers, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to get answers for session %s: %w", sessionID, err)
	}

	answers := make([]domain.QuizAnswer, 0, len(modelAnswers))
	for i := range modelAnswers {
		answers = append(answers, *toDomainQuizAnswer(&modelAnswers[i]))
	}
	return answers, nil
}

// CreateAnswer inserts an answer. Duplicate (session, question) submissions
// are swallowed by the unique index so idempotent re-answers are a no-op.
func (a *QuizDatabaseAdapter) CreateAnswer(ctx context.Context, answer *domain.QuizAnswer) error {
	executor := GetExecutor(ctx, a.db)

	if answer.ID == "" {
		answer.ID = util.NewULID()
	}

	query := `INSERT INTO quiz_answers (id, session_id, question_id, selected_index, is_correct)
	          VALUES (:id, :session_id, :question_id, :selected_index, :is_correct)
	          ON CONFLICT(session_id, question_id) DO NOTHING`
	if _, err := executor.NamedExecContext(ctx, query, toModelQuizAnswer(answer)); err != nil {
		return fmt.Errorf("failed to insert quiz answer: %w", err)
	}
	return nil
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:              q.ID,
		VideoID:         q.VideoID,
		CreatedByUserID: q.CreatedByUserID,
		SpecType:        q.Spec.Type,
		SpecValue:       q.Spec.Value,
		MetaTitle:       q.Meta.Title,
		MetaDescription: util.StringToNullString(q.Meta.Description),
		MetaChannel:     util.StringToNullString(q.Meta.Channel),
		NumQuestions:    q.NumQuestions,
		ChoicesCount:    q.ChoicesCount,
		Difficulty:      q.Difficulty,
		Model:           q.Model,
		Status:          q.Status,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:              m.ID,
		VideoID:         m.VideoID,
		CreatedByUserID: m.CreatedByUserID,
		Spec:            domain.ContextSpec{Type: m.SpecType, Value: m.SpecValue},
		Meta: domain.QuizMeta{
			Title:       m.MetaTitle,
			Description: m.MetaDescription.String,
			Channel:     m.MetaChannel.String,
		},
		NumQuestions: m.NumQuestions,
		ChoicesCount: m.ChoicesCount,
		Difficulty:   m.Difficulty,
		Model:        m.Model,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toModelQuizQuestion(q *domain.QuizQuestion) (*models.QuizQuestion, error) {
	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question options: %w", err)
	}
	return &models.QuizQuestion{
		ID:           q.ID,
		QuizID:       q.QuizID,
		Position:     q.Position,
		Prompt:       q.Prompt,
		OptionsJSON:  string(optionsJSON),
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}, nil
}

func toDomainQuizQuestion(m *models.QuizQuestion) (*domain.QuizQuestion, error) {
	var options []string
	if err := json.Unmarshal([]byte(m.OptionsJSON), &options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options for question %s: %w", m.ID, err)
	}
	return &domain.QuizQuestion{
		ID:           m.ID,
		QuizID:       m.QuizID,
		Position:     m.Position,
		Prompt:       m.Prompt,
		Options:      options,
		CorrectIndex: m.CorrectIndex,
		Explanation:  m.Explanation,
	}, nil
}

func toModelQuizSession(s *domain.QuizSession) *models.QuizSession {
	return &models.QuizSession{
		ID:           s.ID,
		QuizID:       s.QuizID,
		UserID:       s.UserID,
		Status:       s.Status,
		StartedAtMs:  s.StartedAtMs,
		FinishedAtMs: util.Int64ToNullInt64(s.FinishedAtMs),
	}
}

func toDomainQuizSession(m *models.QuizSession) *domain.QuizSession {
	return &domain.QuizSession{
		ID:           m.ID,
		QuizID:       m.QuizID,
		UserID:       m.UserID,
		Status:       m.Status,
		StartedAtMs:  m.StartedAtMs,
		FinishedAtMs: m.FinishedAtMs.Int64,
	}
}

func toModelQuizAnswer(a *domain.QuizAnswer) *models.QuizAnswer {
	return &models.QuizAnswer{
		ID:            a.ID,
		SessionID:     a.SessionID,
		QuestionID:    a.QuestionID,
		SelectedIndex: a.SelectedIndex,
		IsCorrect:     a.IsCorrect,
	}
}

func toDomainQuizAnswer(m *models.QuizAnswer) *domain.QuizAnswer {
	return &domain.QuizAnswer{
		ID:            m.ID,
		SessionID:     m.SessionID,
		QuestionID:    m.QuestionID,
		SelectedIndex: m.SelectedIndex,
		IsCorrect:     m.IsCorrect,
	}
}
