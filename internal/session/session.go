// Package session coordinates one timed run through a quiz: attempt
// initiation, per-question answer capture, navigation with validation,
// countdown expiry, and server-scored submission. All scoring authority
// stays with the backend; this package only tracks the in-progress state.
package session

import (
	"context"
	"errors"
	"time"

	"quiz-console/internal/api"
)

// QuestionsPerAttempt is the fixed size of a quiz attempt's question subset.
// A start response with any other (non-empty) count fails initiation.
const QuestionsPerAttempt = 5

type State int

const (
	StateLoading State = iota
	StateActive
	StateSubmitting
	StateFinished
	// StateEmpty is a valid terminal state for a quiz with no questions,
	// distinct from any transport or data error.
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateSubmitting:
		return "submitting"
	case StateFinished:
		return "finished"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingContext means a session was entered without an attempt id
	// and quiz; the caller must go back through initiation.
	ErrMissingContext = errors.New("attempt context missing: start the quiz first")

	// ErrWrongQuestionCount blocks initiation when the backend selects a
	// question subset of the wrong size.
	ErrWrongQuestionCount = errors.New("quiz must have exactly 5 questions")

	// ErrNoSelection is the validation refusal for advancing or submitting
	// while the current question is unanswered. It is local and never sent
	// to the backend.
	ErrNoSelection = errors.New("select an answer before continuing")

	ErrFirstQuestion = errors.New("already at the first question")
	ErrLastQuestion  = errors.New("already at the last question")
	ErrNotActive     = errors.New("session is not active")
	ErrUnknownAnswer = errors.New("answer does not belong to the current question")
)

// Session is the state machine for one in-progress attempt. It is not safe
// for concurrent use; the console drives it from a single goroutine.
type Session struct {
	client    *api.Client
	quizID    int64
	attemptID int64
	quiz      api.Quiz
	questions []api.Question
	index     int
	// selections maps question id to the chosen answer id. Re-selecting
	// overwrites; a question is either answered once or absent.
	selections map[int64]int64
	state      State
	startedAt  time.Time
}

// Resume reconstructs a session from previously obtained attempt context.
// Both the attempt id and a quiz with its question set must be present;
// anything less fails with ErrMissingContext so the caller re-initiates.
func Resume(client *api.Client, attemptID int64, quiz api.Quiz) (*Session, error) {
	if attemptID <= 0 || quiz.ID <= 0 || len(quiz.Questions) == 0 {
		return nil, ErrMissingContext
	}
	return newSession(client, attemptID, quiz, quiz.Questions), nil
}

func newSession(client *api.Client, attemptID int64, quiz api.Quiz, questions []api.Question) *Session {
	return &Session{
		client:     client,
		quizID:     quiz.ID,
		attemptID:  attemptID,
		quiz:       quiz,
		questions:  questions,
		selections: make(map[int64]int64),
		state:      StateActive,
		startedAt:  time.Now(),
	}
}

func (s *Session) State() State     { return s.state }
func (s *Session) AttemptID() int64 { return s.attemptID }
func (s *Session) Quiz() api.Quiz   { return s.quiz }
func (s *Session) Index() int       { return s.index }
func (s *Session) Len() int         { return len(s.questions) }
func (s *Session) IsLast() bool     { return s.index == len(s.questions)-1 }

// TimeLimit is the attempt's countdown start value in seconds.
func (s *Session) TimeLimit() int { return s.quiz.TimeLimitMinutes * 60 }

func (s *Session) Current() api.Question {
	return s.questions[s.index]
}

// Selection reports the recorded answer for the current question.
func (s *Session) Selection() (int64, bool) {
	answerID, ok := s.selections[s.Current().ID]
	return answerID, ok
}

func (s *Session) AnsweredCount() int {
	return len(s.selections)
}

// Select records the answer for the current question, overwriting any prior
// choice. The index never moves on selection.
func (s *Session) Select(answerID int64) error {
	if s.state != StateActive {
		return ErrNotActive
	}
	current := s.Current()
	for _, option := range current.Answers {
		if option.ID == answerID {
			s.selections[current.ID] = answerID
			return nil
		}
	}
	return ErrUnknownAnswer
}

// Advance moves to the next question. It is refused while the current
// question has no recorded selection, and at the last question, where the
// only forward action is Submit.
func (s *Session) Advance() error {
	if s.state != StateActive {
		return ErrNotActive
	}
	if _, ok := s.Selection(); !ok {
		return ErrNoSelection
	}
	if s.IsLast() {
		return ErrLastQuestion
	}
	s.index++
	return nil
}

// Retreat moves to the previous question. It needs no selection and clears
// none.
func (s *Session) Retreat() error {
	if s.state != StateActive {
		return ErrNotActive
	}
	if s.index == 0 {
		return ErrFirstQuestion
	}
	s.index--
	return nil
}

// Answers builds the submission payload: one entry per question in the
// set's fixed order, with an explicit null answer id for any question never
// answered. Partial completion is the backend's concern, not a client error.
func (s *Session) Answers() []api.AnswerSubmission {
	answers := make([]api.AnswerSubmission, 0, len(s.questions))
	for _, question := range s.questions {
		entry := api.AnswerSubmission{QuestionID: question.ID}
		if answerID, ok := s.selections[question.ID]; ok {
			chosen := answerID
			entry.AnswerID = &chosen
		}
		answers = append(answers, entry)
	}
	return answers
}

// Submit sends the attempt for scoring. It is gated the same way as Advance:
// the current question must be answered.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	if s.state != StateActive {
		return Result{}, ErrNotActive
	}
	if _, ok := s.Selection(); !ok {
		return Result{}, ErrNoSelection
	}
	return s.submit(ctx)
}

// SubmitOnTimeout is the countdown-expiry path. It bypasses the selection
// gate: questions answered so far must still be graded even if the current
// one is blank.
func (s *Session) SubmitOnTimeout(ctx context.Context) (Result, error) {
	if s.state != StateActive {
		return Result{}, ErrNotActive
	}
	return s.submit(ctx)
}

func (s *Session) submit(ctx context.Context) (Result, error) {
	s.state = StateSubmitting
	response, err := s.client.SubmitQuiz(ctx, s.quizID, s.attemptID, s.Answers())
	if err != nil {
		// Revert so the caller can retry; nothing is lost.
		s.state = StateActive
		return Result{}, err
	}

	s.state = StateFinished
	return Result{
		Score:     response.Score,
		Total:     response.TotalQuestions,
		QuizTitle: s.quiz.Title,
		TimeSpent: time.Since(s.startedAt).Round(time.Second),
		StartedAt: s.startedAt,
	}, nil
}
