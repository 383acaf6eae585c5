package service

import (
	"context"
	"strings"
	"time"

	"github.com/rexdotsh/praxis/internal/domain"
	"github.com/rexdotsh/praxis/internal/dto"
	"github.com/rexdotsh/praxis/internal/logger"

	"go.uber.org/zap"
)

// QuizService drives the quiz lifecycle: generation, sequential question
// delivery, idempotent answering, and final scoring.
type QuizService interface {
	Generate(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	NextQuestion(ctx context.Context, userID string, req *dto.NextQuestionRequest) (*dto.QuestionView, error)
	SubmitAnswer(ctx context.Context, userID string, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	Finish(ctx context.Context, userID string, req *dto.FinishSessionRequest) (*dto.QuizResultsResponse, error)
	SessionState(ctx context.Context, userID string, sessionID string) (*dto.SessionStateResponse, error)
}

type quizServiceImpl struct {
	repo      domain.QuizRepository
	videoRepo domain.VideoRepository
	generator domain.QuizGenerator
	txManager domain.TransactionManager
}

func NewQuizService(
	repo domain.QuizRepository,
	videoRepo domain.VideoRepository,
	generator domain.QuizGenerator,
	txManager domain.TransactionManager,
) QuizService {
	return &quizServiceImpl{
		repo:      repo,
		videoRepo: videoRepo,
		generator: generator,
		txManager: txManager,
	}
}

// Generate creates a quiz with its questions atomically, then opens a
// session for the caller.
func (s *quizServiceImpl) Generate(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	l := logger.Get()

	if err := validateGenerateRequest(req); err != nil {
		return nil, err
	}

	spec := domain.ContextSpec{Type: scopeFromWire(req.ContextSpec.Type), Value: req.ContextSpec.Value}

	meta := domain.QuizMeta{
		Title:       req.Meta.Title,
		Description: req.Meta.Description,
		Channel:     req.Meta.Channel,
	}
	if meta.Title == "" {
		meta.Title = req.YoutubeID
	}
	if meta.Channel == "" {
		meta.Channel = "Unknown"
	}

	generated, err := s.generator.GenerateQuestions(ctx, domain.QuizGenerationRequest{
		TranscriptExcerpt: req.TranscriptContext,
		ContextSpec:       spec,
		NumQuestions:      req.NumQuestions,
		ChoicesCount:      req.ChoicesCount,
		Difficulty:        req.Difficulty,
		Model:             req.Model,
		Meta:              meta,
	})
	if err != nil {
		return nil, err
	}

	video, err := s.videoRepo.UpsertByYoutubeID(ctx, &domain.Video{
		YoutubeID: req.YoutubeID,
		Title:     meta.Title,
		URL:       "https://www.youtube.com/watch?v=" + req.YoutubeID,
		Channel:   meta.Channel,
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to upsert video", err)
	}

	quiz := &domain.Quiz{
		CreatedByUserID: userID,
		VideoID:         video.ID,
		Spec:            spec,
		Meta:            meta,
		NumQuestions:    req.NumQuestions,
		ChoicesCount:    req.ChoicesCount,
		Difficulty:      req.Difficulty,
		Model:           req.Model,
	}
	questions := make([]domain.QuizQuestion, 0, len(generated))
	for _, g := range generated {
		q := domain.QuizQuestion{
			Prompt:       g.Prompt,
			Options:      g.Options,
			CorrectIndex: g.CorrectIndex,
			Explanation:  g.Explanation,
		}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.CreateQuiz(txCtx, quiz, questions)
	}); err != nil {
		return nil, domain.NewInternalError("failed to persist quiz", err)
	}

	session := &domain.QuizSession{
		QuizID: quiz.ID,
		UserID: userID,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, domain.NewInternalError("failed to create quiz session", err)
	}

	l.Info("Quiz generated",
		zap.String("quizId", quiz.ID),
		zap.String("sessionId", session.ID),
		zap.Int("questions", len(questions)))

	return &dto.GenerateQuizResponse{
		QuizID:    quiz.ID,
		SessionID: session.ID,
		Total:     len(questions),
	}, nil
}

// NextQuestion returns the lowest-position unanswered question, or nil when
// every question has been answered.
func (s *quizServiceImpl) NextQuestion(ctx context.Context, userID string, req *dto.NextQuestionRequest) (*dto.QuestionView, error) {
	session, err := s.ownedSession(ctx, req.SessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.QuizID != req.QuizID {
		return nil, domain.NewInternalError("invalid session", nil)
	}

	questions, err := s.repo.GetQuestionsByQuiz(ctx, session.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load questions", err)
	}
	answers, err := s.repo.GetAnswersBySession(ctx, req.SessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load answers", err)
	}

	answered := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = struct{}{}
	}

	for i, q := range questions {
		if _, ok := answered[q.ID]; ok {
			continue
		}
		return &dto.QuestionView{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
			Index:   i,
			Total:   len(questions),
		}, nil
	}
	return nil, nil
}

// SubmitAnswer records an answer. Re-submitting an answered question
// acknowledges without inserting and reports unchanged progress.
func (s *quizServiceImpl) SubmitAnswer(ctx context.Context, userID string, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	session, err := s.ownedSession(ctx, req.SessionID, userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.repo.GetQuiz(ctx, session.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewInternalError("invalid session", nil)
	}
	if req.SelectedIndex < 0 || req.SelectedIndex >= quiz.ChoicesCount {
		return nil, domain.ValidationErrors{
			domain.NewOutOfRangeError("selectedIndex", req.SelectedIndex, 0, quiz.ChoicesCount-1),
		}
	}

	questions, err := s.repo.GetQuestionsByQuiz(ctx, session.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load questions", err)
	}
	answers, err := s.repo.GetAnswersBySession(ctx, req.SessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load answers", err)
	}

	for _, a := range answers {
		if a.QuestionID == req.QuestionID {
			return &dto.SubmitAnswerResponse{
				Acknowledged: true,
				Progress:     dto.QuizProgress{Answered: len(answers), Total: len(questions)},
			}, nil
		}
	}

	question, err := s.repo.GetQuestion(ctx, req.QuestionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load question", err)
	}
	if question == nil || question.QuizID != session.QuizID {
		return nil, domain.NewInternalError("question not found", nil)
	}

	if err := s.repo.CreateAnswer(ctx, &domain.QuizAnswer{
		SessionID:     req.SessionID,
		QuestionID:    req.QuestionID,
		SelectedIndex: req.SelectedIndex,
		IsCorrect:     req.SelectedIndex == question.CorrectIndex,
	}); err != nil {
		return nil, domain.NewInternalError("failed to record answer", err)
	}

	return &dto.SubmitAnswerResponse{
		Acknowledged: true,
		Progress:     dto.QuizProgress{Answered: len(answers) + 1, Total: len(questions)},
	}, nil
}

// Finish marks the session completed and returns full scoring. Finishing
// with unanswered questions is allowed; those rows carry selectedIndex -1.
func (s *quizServiceImpl) Finish(ctx context.Context, userID string, req *dto.FinishSessionRequest) (*dto.QuizResultsResponse, error) {
	session, err := s.ownedSession(ctx, req.SessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.FinishSession(ctx, req.SessionID, time.Now().UnixMilli()); err != nil {
		return nil, domain.NewInternalError("failed to finish session", err)
	}

	results, err := s.sessionResults(ctx, session)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SessionState returns sanitized questions with the caller's selections.
// Correct indexes are withheld while a session may still be answered.
func (s *quizServiceImpl) SessionState(ctx context.Context, userID string, sessionID string) (*dto.SessionStateResponse, error) {
	session, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	results, err := s.sessionResults(ctx, session)
	if err != nil {
		return nil, err
	}

	questions := make([]dto.SessionQuestion, 0, len(results.Details))
	answered := 0
	for _, d := range results.Details {
		if d.SelectedIndex >= 0 {
			answered++
		}
		questions = append(questions, dto.SessionQuestion{
			QuestionID:    d.QuestionID,
			Prompt:        d.Prompt,
			Options:       d.Options,
			SelectedIndex: d.SelectedIndex,
		})
	}

	return &dto.SessionStateResponse{
		Questions: questions,
		Answered:  answered,
		Total:     results.Total,
	}, nil
}

// ownedSession loads a session and checks ownership. Missing or foreign
// sessions surface as generic internal errors, matching the original's
// route behavior.
func (s *quizServiceImpl) ownedSession(ctx context.Context, sessionID, userID string) (*domain.QuizSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load session", err)
	}
	if session == nil || session.UserID != userID {
		return nil, domain.NewInternalError("invalid session", nil)
	}
	return session, nil
}

func (s *quizServiceImpl) sessionResults(ctx context.Context, session *domain.QuizSession) (*dto.QuizResultsResponse, error) {
	questions, err := s.repo.GetQuestionsByQuiz(ctx, session.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load questions", err)
	}
	answers, err := s.repo.GetAnswersBySession(ctx, session.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load answers", err)
	}

	byQuestion := make(map[string]domain.QuizAnswer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	correct := 0
	details := make([]dto.QuestionResult, 0, len(questions))
	for _, q := range questions {
		selectedIndex := -1
		isCorrect := false
		if a, ok := byQuestion[q.ID]; ok {
			selectedIndex = a.SelectedIndex
			isCorrect = a.IsCorrect
		}
		if isCorrect {
			correct++
		}
		details = append(details, dto.QuestionResult{
			QuestionID:    q.ID,
			Prompt:        q.Prompt,
			Options:       q.Options,
			SelectedIndex: selectedIndex,
			CorrectIndex:  q.CorrectIndex,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	return &dto.QuizResultsResponse{
		Total:   len(questions),
		Correct: correct,
		Details: details,
	}, nil
}

func validateGenerateRequest(req *dto.GenerateQuizRequest) error {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.YoutubeID) == "" {
		errs = append(errs, domain.NewMissingFieldError("youtubeId"))
	}
	if strings.TrimSpace(req.TranscriptContext) == "" {
		errs = append(errs, domain.NewMissingFieldError("transcriptContext"))
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = 5
	}
	if req.NumQuestions < domain.MinQuizQuestions || req.NumQuestions > domain.MaxQuizQuestions {
		errs = append(errs, domain.NewOutOfRangeError("numQuestions", req.NumQuestions, domain.MinQuizQuestions, domain.MaxQuizQuestions))
	}
	if req.ChoicesCount == 0 {
		req.ChoicesCount = domain.QuizChoicesCount
	}
	if req.ChoicesCount != domain.QuizChoicesCount {
		errs = append(errs, domain.NewInvalidFormatError("choicesCount", req.ChoicesCount))
	}
	if req.Difficulty == "" {
		req.Difficulty = domain.DifficultyMedium
	}
	if err := domain.ValidateDifficulty(req.Difficulty); err != nil {
		errs = append(errs, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}
	if err := domain.ValidateContextSpec(domain.ContextSpec{Type: scopeFromWire(req.ContextSpec.Type), Value: req.ContextSpec.Value}); err != nil {
		errs = append(errs, domain.NewInvalidFormatError("contextSpec", req.ContextSpec))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// scopeFromWire maps the client's short scope names onto the stored spec
// types. Already-canonical values pass through.
func scopeFromWire(scope string) string {
	switch scope {
	case "minutes":
		return domain.QuizScopeLastMinutes
	case "chapter":
		return domain.QuizScopeLastChapter
	}
	return scope
}
