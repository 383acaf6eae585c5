package service

import (
	"context"
	"time"

	"github.com/rexdotsh/praxis/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz, questions []domain.QuizQuestion) error {
	args := m.Called(ctx, quiz, questions)
	return args.Error(0)
}

func (m *MockQuizRepository) GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuestionsByQuiz(ctx context.Context, quizID string) ([]domain.QuizQuestion, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizQuestion), args.Error(1)
}

func (m *MockQuizRepository) GetQuestion(ctx context.Context, questionID string) (*domain.QuizQuestion, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizQuestion), args.Error(1)
}

func (m *MockQuizRepository) CreateSession(ctx context.Context, session *domain.QuizSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockQuizRepository) GetSession(ctx context.Context, sessionID string) (*domain.QuizSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizSession), args.Error(1)
}

func (m *MockQuizRepository) FinishSession(ctx context.Context, sessionID string, finishedAtMs int64) error {
	args := m.Called(ctx, sessionID, finishedAtMs)
	return args.Error(0)
}

func (m *MockQuizRepository) GetAnswersBySession(ctx context.Context, sessionID string) ([]domain.QuizAnswer, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizAnswer), args.Error(1)
}

func (m *MockQuizRepository) CreateAnswer(ctx context.Context, answer *domain.QuizAnswer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

// --- MockVideoRepository ---
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) UpsertByYoutubeID(ctx context.Context, video *domain.Video) (*domain.Video, error) {
	args := m.Called(ctx, video)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoRepository) GetByYoutubeID(ctx context.Context, youtubeID string) (*domain.Video, error) {
	args := m.Called(ctx, youtubeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetOrCreateBySubject(ctx context.Context, subject string) (*domain.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- MockSearchRepository ---
type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) CreateSearch(ctx context.Context, search *domain.Search) error {
	args := m.Called(ctx, search)
	return args.Error(0)
}

func (m *MockSearchRepository) CreateSelection(ctx context.Context, selection *domain.Selection) error {
	args := m.Called(ctx, selection)
	return args.Error(0)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuestions(ctx context.Context, req domain.QuizGenerationRequest) ([]domain.GeneratedQuestion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedQuestion), args.Error(1)
}

// --- MockTransactionManager ---
// WithTransaction runs the callback directly; repository mocks do not care
// about executor propagation.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// --- MockTranscriptFetcher ---
type MockTranscriptFetcher struct {
	mock.Mock
}

func (m *MockTranscriptFetcher) FetchTranscript(ctx context.Context, videoIDOrURL string, lang string) ([]domain.TranscriptItem, error) {
	args := m.Called(ctx, videoIDOrURL, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TranscriptItem), args.Error(1)
}

// --- MockChapterGenerator ---
type MockChapterGenerator struct {
	mock.Mock
}

func (m *MockChapterGenerator) GenerateChapters(ctx context.Context, transcript []domain.TranscriptItem, preferredCount int) ([]domain.Chapter, error) {
	args := m.Called(ctx, transcript, preferredCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Chapter), args.Error(1)
}

// --- MockSuggestionGenerator ---
type MockSuggestionGenerator struct {
	mock.Mock
}

func (m *MockSuggestionGenerator) GenerateSuggestions(ctx context.Context, title, description, transcriptSample string) ([]string, error) {
	args := m.Called(ctx, title, description, transcriptSample)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- MockQueryRefiner ---
type MockQueryRefiner struct {
	mock.Mock
}

func (m *MockQueryRefiner) RefineQuery(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

// --- MockVideoSearcher ---
type MockVideoSearcher struct {
	mock.Mock
}

func (m *MockVideoSearcher) Search(ctx context.Context, query string, limit int) ([]domain.SearchCandidate, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchCandidate), args.Error(1)
}

// --- MockCandidateRanker ---
type MockCandidateRanker struct {
	mock.Mock
}

func (m *MockCandidateRanker) RankCandidates(ctx context.Context, refinedQuery string, candidates []domain.SearchCandidate, k int) ([]domain.SearchPick, error) {
	args := m.Called(ctx, refinedQuery, candidates, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchPick), args.Error(1)
}

// --- MockDatesheetParser ---
type MockDatesheetParser struct {
	mock.Mock
}

func (m *MockDatesheetParser) ParseDatesheet(ctx context.Context, urls []string, allowedSubjects []string) (*domain.ParsedDatesheet, error) {
	args := m.Called(ctx, urls, allowedSubjects)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedDatesheet), args.Error(1)
}

// --- MockDatesheetRepository ---
type MockDatesheetRepository struct {
	mock.Mock
}

func (m *MockDatesheetRepository) Create(ctx context.Context, datesheet *domain.Datesheet) error {
	args := m.Called(ctx, datesheet)
	return args.Error(0)
}

func (m *MockDatesheetRepository) ListByUser(ctx context.Context, userID string) ([]domain.Datesheet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Datesheet), args.Error(1)
}

// --- MockChatModel ---
type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
