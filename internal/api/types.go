package api

import (
	"errors"
	"time"
)

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DifficultyLevel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Quiz is the backend's quiz resource. Questions is populated only by the
// start-attempt and admin-detail responses; list and summary responses leave
// it empty.
type Quiz struct {
	ID               int64            `json:"id"`
	Title            string           `json:"title"`
	Category         *Category        `json:"category,omitempty"`
	DifficultyLevel  *DifficultyLevel `json:"difficulty_level,omitempty"`
	TimeLimitMinutes int              `json:"time_limit_minutes"`
	Questions        []Question       `json:"questions,omitempty"`
}

type Question struct {
	ID           int64          `json:"id"`
	QuestionText string         `json:"question_text"`
	Answers      []AnswerOption `json:"answers,omitempty"`
}

// AnswerOption never carries a correctness flag in attempt responses; the
// admin answer listing is the only place IsCorrect is present.
type AnswerOption struct {
	ID         int64  `json:"id"`
	AnswerText string `json:"answer_text"`
	IsCorrect  *bool  `json:"is_correct,omitempty"`
}

// AnswerSubmission is one entry of the submit payload. A nil AnswerID
// marshals to an explicit null, the canonical "no answer" sentinel: the
// payload always contains one entry per question in the attempt's set.
type AnswerSubmission struct {
	QuestionID int64  `json:"question_id"`
	AnswerID   *int64 `json:"answer_id"`
}

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Attempt struct {
	ID             int64
	QuizID         int64
	QuizTitle      string
	Score          int
	TotalQuestions int
	StartedAt      time.Time
	CompletedAt    time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp: " + value)
}
