package session

import (
	"context"

	"quiz-console/internal/api"
)

// Begin starts a new attempt for the given quiz. A previously fetched quiz
// summary may be passed to skip the redundant summary fetch; pass nil to
// fetch one.
//
// Begin may be invoked again after a failure or even while an earlier call
// is outstanding elsewhere; each call trusts only the attempt id returned by
// its own start request.
func Begin(ctx context.Context, client *api.Client, quizID int64, summary *api.Quiz) (*Session, error) {
	if summary == nil {
		quiz, err := client.GetQuiz(ctx, quizID)
		if err != nil {
			return nil, err
		}
		summary = &quiz
	}

	start, err := client.StartQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	quiz := start.Quiz
	if quiz.ID == 0 {
		quiz.ID = quizID
	}
	if quiz.Title == "" {
		quiz.Title = summary.Title
	}
	if quiz.TimeLimitMinutes == 0 {
		quiz.TimeLimitMinutes = summary.TimeLimitMinutes
	}

	questions := quiz.Questions
	if len(questions) == 0 {
		// Older backend responses do not embed the subset in the start
		// payload; fall back to the per-attempt fetch.
		questions, err = client.AttemptQuestions(ctx, start.AttemptID)
		if err != nil {
			return nil, err
		}
	}

	if len(questions) == 0 {
		// A quiz with no questions is valid empty data, not a failure.
		s := newSession(client, start.AttemptID, quiz, nil)
		s.state = StateEmpty
		return s, nil
	}
	if len(questions) != QuestionsPerAttempt {
		// Hard gate: a wrong-sized subset must block progression, never
		// silently run a wrong-sized quiz.
		return nil, ErrWrongQuestionCount
	}

	quiz.Questions = questions
	return newSession(client, start.AttemptID, quiz, questions), nil
}
