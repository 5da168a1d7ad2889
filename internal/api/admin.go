package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type nameRequest struct {
	Name string `json:"name"`
}

type createQuizRequest struct {
	Title             string `json:"title"`
	CategoryID        int64  `json:"category_id"`
	DifficultyLevelID int64  `json:"difficulty_level_id"`
	TimeLimitMinutes  int    `json:"time_limit_minutes"`
}

type createQuestionRequest struct {
	QuestionText string `json:"question_text"`
}

type createAnswerRequest struct {
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
}

// AttemptReport is one row of the admin attempt listing; unlike the
// user-facing history it names the user who took the quiz.
type AttemptReport struct {
	ID             int64  `json:"id"`
	User           *User  `json:"user,omitempty"`
	Quiz           *Quiz  `json:"quiz,omitempty"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	CompletedAt    string `json:"completed_at"`
}

// AttemptReportPage is the backend's paginated envelope.
type AttemptReportPage struct {
	Data        []AttemptReport `json:"data"`
	CurrentPage int             `json:"current_page"`
	LastPage    int             `json:"last_page"`
	PerPage     int             `json:"per_page"`
	Total       int             `json:"total"`
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var payload []Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/categories", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("category name is required")
	}
	return c.doJSON(ctx, http.MethodPost, "/api/admin/categories", nameRequest{Name: name}, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("category name is required")
	}
	return c.doJSON(ctx, http.MethodPut, "/api/admin/categories/"+formatID(id), nameRequest{Name: name}, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/categories/"+formatID(id), nil, nil)
}

func (c *Client) ListDifficultyLevels(ctx context.Context) ([]DifficultyLevel, error) {
	var payload []DifficultyLevel
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/difficulty-levels", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) CreateDifficultyLevel(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("difficulty name is required")
	}
	return c.doJSON(ctx, http.MethodPost, "/api/admin/difficulty-levels", nameRequest{Name: name}, nil)
}

func (c *Client) UpdateDifficultyLevel(ctx context.Context, id int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("difficulty name is required")
	}
	return c.doJSON(ctx, http.MethodPut, "/api/admin/difficulty-levels/"+formatID(id), nameRequest{Name: name}, nil)
}

func (c *Client) DeleteDifficultyLevel(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/difficulty-levels/"+formatID(id), nil, nil)
}

func (c *Client) ListAdminQuizzes(ctx context.Context) ([]Quiz, error) {
	var payload []Quiz
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/quizzes", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetAdminQuiz returns a quiz with its full question set (admin view).
func (c *Client) GetAdminQuiz(ctx context.Context, quizID int64) (Quiz, error) {
	if quizID <= 0 {
		return Quiz{}, errors.New("quiz id is required")
	}
	var payload Quiz
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/quizzes/"+formatID(quizID), nil, &payload); err != nil {
		return Quiz{}, err
	}
	return payload, nil
}

func (c *Client) CreateQuiz(ctx context.Context, title string, categoryID, difficultyLevelID int64, timeLimitMinutes int) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("quiz title is required")
	}
	if timeLimitMinutes < 1 {
		return errors.New("time limit must be at least 1 minute")
	}
	request := createQuizRequest{
		Title:             title,
		CategoryID:        categoryID,
		DifficultyLevelID: difficultyLevelID,
		TimeLimitMinutes:  timeLimitMinutes,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/admin/quizzes", request, nil)
}

func (c *Client) CreateQuestion(ctx context.Context, quizID int64, questionText string) error {
	if strings.TrimSpace(questionText) == "" {
		return errors.New("question text is required")
	}
	request := createQuestionRequest{QuestionText: questionText}
	return c.doJSON(ctx, http.MethodPost, "/api/admin/quizzes/"+formatID(quizID)+"/questions", request, nil)
}

func (c *Client) DeleteQuestion(ctx context.Context, questionID int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/questions/"+formatID(questionID), nil, nil)
}

func (c *Client) ListAnswers(ctx context.Context, questionID int64) ([]AnswerOption, error) {
	if questionID <= 0 {
		return nil, errors.New("question id is required")
	}
	var payload []AnswerOption
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/questions/"+formatID(questionID)+"/answers", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) CreateAnswer(ctx context.Context, questionID int64, answerText string, isCorrect bool) error {
	if strings.TrimSpace(answerText) == "" {
		return errors.New("answer text is required")
	}
	request := createAnswerRequest{AnswerText: answerText, IsCorrect: isCorrect}
	return c.doJSON(ctx, http.MethodPost, "/api/admin/questions/"+formatID(questionID)+"/answers", request, nil)
}

func (c *Client) DeleteAnswer(ctx context.Context, answerID int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/answers/"+formatID(answerID), nil, nil)
}

func (c *Client) ListAttemptReports(ctx context.Context, page, perPage int) (AttemptReportPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var payload AttemptReportPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/quiz-attempts?"+query.Encode(), nil, &payload); err != nil {
		return AttemptReportPage{}, err
	}
	return payload, nil
}
