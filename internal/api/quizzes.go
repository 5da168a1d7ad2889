package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
)

type quizzesResponse struct {
	Quizzes []Quiz `json:"quizzes"`
}

type quizResponse struct {
	Quiz Quiz `json:"quiz"`
}

// StartResponse is the begin-attempt payload: the server-issued attempt id
// plus the quiz with its selected question subset embedded.
type StartResponse struct {
	AttemptID int64 `json:"attempt_id"`
	Quiz      Quiz  `json:"quiz"`
}

type questionsResponse struct {
	Questions []Question `json:"questions"`
}

type submitRequest struct {
	AttemptID int64              `json:"attempt_id"`
	Answers   []AnswerSubmission `json:"answers"`
}

// SubmitResponse carries the authoritative score; the client never computes
// one locally.
type SubmitResponse struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"total_questions"`
}

type attemptItem struct {
	ID             int64  `json:"id"`
	QuizID         int64  `json:"quiz_id"`
	Quiz           *Quiz  `json:"quiz,omitempty"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	StartedAt      string `json:"started_at"`
	CompletedAt    string `json:"completed_at"`
}

type attemptsResponse struct {
	Attempts []attemptItem `json:"attempts"`
}

func (c *Client) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	var payload quizzesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/quizzes", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Quizzes, nil
}

func (c *Client) GetQuiz(ctx context.Context, quizID int64) (Quiz, error) {
	if quizID <= 0 {
		return Quiz{}, errors.New("quiz id is required")
	}

	var payload quizResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/quizzes/"+formatID(quizID), nil, &payload); err != nil {
		return Quiz{}, err
	}
	return payload.Quiz, nil
}

// StartQuiz begins a new attempt. Each call may issue a fresh attempt id;
// callers must use only the most recently returned one.
func (c *Client) StartQuiz(ctx context.Context, quizID int64) (StartResponse, error) {
	if quizID <= 0 {
		return StartResponse{}, errors.New("quiz id is required")
	}

	var payload StartResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/quizzes/"+formatID(quizID)+"/start", nil, &payload); err != nil {
		return StartResponse{}, err
	}
	return payload, nil
}

// AttemptQuestions is the fallback question fetch for attempts whose start
// response did not embed the question set.
func (c *Client) AttemptQuestions(ctx context.Context, attemptID int64) ([]Question, error) {
	if attemptID <= 0 {
		return nil, errors.New("attempt id is required")
	}

	var payload questionsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/quiz-attempts/"+formatID(attemptID)+"/questions", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Questions, nil
}

func (c *Client) SubmitQuiz(ctx context.Context, quizID, attemptID int64, answers []AnswerSubmission) (SubmitResponse, error) {
	if quizID <= 0 || attemptID <= 0 {
		return SubmitResponse{}, errors.New("quiz id and attempt id are required")
	}

	request := submitRequest{AttemptID: attemptID, Answers: answers}
	var payload SubmitResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/quizzes/"+formatID(quizID)+"/submit", request, &payload); err != nil {
		return SubmitResponse{}, err
	}
	return payload, nil
}

func (c *Client) MyAttempts(ctx context.Context) ([]Attempt, error) {
	var payload attemptsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/my-attempts", nil, &payload); err != nil {
		return nil, err
	}

	attempts := make([]Attempt, 0, len(payload.Attempts))
	for _, item := range payload.Attempts {
		attempt := Attempt{
			ID:             item.ID,
			QuizID:         item.QuizID,
			Score:          item.Score,
			TotalQuestions: item.TotalQuestions,
		}
		if item.Quiz != nil {
			attempt.QuizTitle = item.Quiz.Title
		}
		if item.StartedAt != "" {
			startedAt, err := parseTime(item.StartedAt)
			if err != nil {
				return nil, err
			}
			attempt.StartedAt = startedAt
		}
		if item.CompletedAt != "" {
			completedAt, err := parseTime(item.CompletedAt)
			if err != nil {
				return nil, err
			}
			attempt.CompletedAt = completedAt
		}
		attempts = append(attempts, attempt)
	}
	return attempts, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
