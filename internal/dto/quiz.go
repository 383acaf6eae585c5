package dto

// ContextSpec is the scope selector on the wire.
type ContextSpec struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// QuizMeta carries optional video metadata with a generation request.
type QuizMeta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Channel     string `json:"channel,omitempty"`
}

// GenerateQuizRequest is the body of POST /api/quiz/generate.
type GenerateQuizRequest struct {
	YoutubeID         string      `json:"youtubeId"`
	Model             string      `json:"model,omitempty"`
	TranscriptContext string      `json:"transcriptContext"`
	ContextSpec       ContextSpec `json:"contextSpec"`
	NumQuestions      int         `json:"numQuestions,omitempty"`
	ChoicesCount      int         `json:"choicesCount,omitempty"`
	Difficulty        string      `json:"difficulty,omitempty"`
	Meta              QuizMeta    `json:"meta,omitempty"`
}

// GenerateQuizResponse is the body of a successful generation.
type GenerateQuizResponse struct {
	QuizID    string `json:"quizId"`
	SessionID string `json:"sessionId"`
	Total     int    `json:"total"`
}

// NextQuestionRequest is the body of POST /api/quiz/next.
type NextQuestionRequest struct {
	SessionID string `json:"sessionId"`
	QuizID    string `json:"quizId"`
}

// QuestionView is the sanitized next-question payload. The _id key matches
// the original client contract.
type QuestionView struct {
	ID      string   `json:"_id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Index   int      `json:"index"`
	Total   int      `json:"total"`
}

// SubmitAnswerRequest is the body of POST /api/quiz/answer.
type SubmitAnswerRequest struct {
	SessionID     string `json:"sessionId"`
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
}

// QuizProgress reports answered-vs-total for a session.
type QuizProgress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// SubmitAnswerResponse is the body of a successful answer submission.
type SubmitAnswerResponse struct {
	Acknowledged bool         `json:"acknowledged"`
	Progress     QuizProgress `json:"progress"`
}

// FinishSessionRequest is the body of POST /api/quiz/finish.
type FinishSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// QuestionResult is one per-question review entry. SelectedIndex is -1 when
// the question was never answered.
type QuestionResult struct {
	QuestionID    string   `json:"questionId"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	SelectedIndex int      `json:"selectedIndex"`
	CorrectIndex  int      `json:"correctIndex"`
	IsCorrect     bool     `json:"isCorrect"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizResultsResponse is the body of a successful finish.
type QuizResultsResponse struct {
	Total   int              `json:"total"`
	Correct int              `json:"correct"`
	Details []QuestionResult `json:"details"`
}

// SessionQuestion is one sanitized entry in the session-state payload.
// CorrectIndex is never exposed here.
type SessionQuestion struct {
	QuestionID    string   `json:"questionId"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	SelectedIndex int      `json:"selectedIndex"`
}

// SessionStateResponse is the body of GET /api/quiz/session.
type SessionStateResponse struct {
	Questions []SessionQuestion `json:"questions"`
	Answered  int               `json:"answered"`
	Total     int               `json:"total"`
}
