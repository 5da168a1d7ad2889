package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"quiz-console/internal/localstore"
	"quiz-console/internal/session"
)

// runTake is the quiz-taking screen: start the attempt, then one question at
// a time with numbered options, next/previous navigation, and a countdown
// that auto-submits on expiry even while a prompt is waiting for input.
func (a *App) runTake(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "usage: take <quiz#|quiz_id>")
		return
	}
	quizID, summary, err := a.resolveQuiz(args[1])
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}

	sess, err := session.Begin(ctx, a.client, quizID, summary)
	if err != nil {
		if errors.Is(err, session.ErrWrongQuestionCount) {
			fmt.Fprintln(a.out, "error: this quiz must have exactly 5 questions; it cannot be started")
			return
		}
		a.printError(err)
		return
	}
	if sess.State() == session.StateEmpty {
		fmt.Fprintln(a.out, "No questions available for this quiz.")
		return
	}

	quiz := sess.Quiz()
	fmt.Fprintf(a.out, "\n%s: %d questions, %d minute time limit\n",
		quiz.Title, sess.Len(), quiz.TimeLimitMinutes)

	// Only the expiry callback runs off the main loop; it touches nothing
	// but the channel, so a.out stays single-writer.
	countdown := session.NewCountdown(sess.TimeLimit())
	expired := make(chan struct{})
	countdown.Start(nil, func() { close(expired) })
	defer countdown.Stop()

	for {
		a.renderQuestion(sess, countdown)

		var line string
		select {
		case <-expired:
			fmt.Fprintln(a.out, "\nTime is up, submitting your answers.")
			if !a.finishAttempt(ctx, sess, true) {
				a.retryTimedOutSubmit(ctx, sess)
			}
			return
		case value, ok := <-a.lines:
			if !ok {
				return
			}
			line = strings.ToLower(strings.TrimSpace(value))
		}

		switch line {
		case "":
			continue
		case "n", "next":
			if err := sess.Advance(); err != nil {
				a.printFlowRefusal(err)
			}
		case "p", "prev", "previous":
			if err := sess.Retreat(); err != nil {
				a.printFlowRefusal(err)
			}
		case "submit":
			if done := a.finishAttempt(ctx, sess, false); done {
				return
			}
		case "abort":
			fmt.Fprintln(a.out, "Attempt abandoned.")
			return
		default:
			choice, convErr := strconv.Atoi(line)
			if convErr != nil || choice < 1 || choice > len(sess.Current().Answers) {
				fmt.Fprintf(a.out, "Enter 1-%d to answer, n/p to move, submit, or abort.\n", len(sess.Current().Answers))
				continue
			}
			if err := sess.Select(sess.Current().Answers[choice-1].ID); err != nil {
				a.printFlowRefusal(err)
			}
		}
	}
}

func (a *App) renderQuestion(sess *session.Session, countdown *session.Countdown) {
	question := sess.Current()
	clock := session.FormatClock(countdown.Remaining())
	if countdown.Urgent() {
		clock += " !"
	}

	fmt.Fprintf(a.out, "\nQuestion %d of %d  [time %s]\n", sess.Index()+1, sess.Len(), clock)
	fmt.Fprintf(a.out, "%s\n", question.QuestionText)

	selected, hasSelection := sess.Selection()
	for idx, option := range question.Answers {
		marker := " "
		if hasSelection && option.ID == selected {
			marker = "*"
		}
		fmt.Fprintf(a.out, " %s %d. %s\n", marker, idx+1, option.AnswerText)
	}

	if sess.IsLast() {
		fmt.Fprint(a.out, "[1-n answer, p previous, submit, abort] ")
	} else {
		fmt.Fprint(a.out, "[1-n answer, n next, p previous, submit, abort] ")
	}
}

// retryTimedOutSubmit keeps a timed-out attempt alive after a failed
// auto-submission: the question screen is over, but the session is still
// active and the answers are intact, so the user can retry the submission
// or abandon the attempt.
func (a *App) retryTimedOutSubmit(ctx context.Context, sess *session.Session) {
	for {
		command, ok := a.readLine("[submit to retry, abort to abandon] ")
		if !ok {
			return
		}
		switch strings.ToLower(command) {
		case "submit":
			if a.finishAttempt(ctx, sess, true) {
				return
			}
		case "abort":
			fmt.Fprintln(a.out, "Attempt abandoned.")
			return
		}
	}
}

// printFlowRefusal renders the local validation refusals inline; they never
// reach the backend.
func (a *App) printFlowRefusal(err error) {
	switch {
	case errors.Is(err, session.ErrNoSelection):
		fmt.Fprintln(a.out, "Select an answer before continuing.")
	case errors.Is(err, session.ErrLastQuestion):
		fmt.Fprintln(a.out, "This is the last question; use 'submit'.")
	case errors.Is(err, session.ErrFirstQuestion):
		fmt.Fprintln(a.out, "Already at the first question.")
	default:
		fmt.Fprintln(a.out, err)
	}
}

// finishAttempt submits and, on success, renders the results screen and
// records the attempt locally. Returns false when the session is still
// active (validation refusal or retryable submit failure).
func (a *App) finishAttempt(ctx context.Context, sess *session.Session, timedOut bool) bool {
	var (
		result session.Result
		err    error
	)
	if timedOut {
		result, err = sess.SubmitOnTimeout(ctx)
	} else {
		result, err = sess.Submit(ctx)
	}
	if err != nil {
		if errors.Is(err, session.ErrNoSelection) {
			a.printFlowRefusal(err)
			return false
		}
		fmt.Fprintln(a.out, "Failed to submit quiz.")
		a.printError(err)
		return false
	}

	fmt.Fprintf(a.out, "\n=== %s results ===\n", result.QuizTitle)
	fmt.Fprintf(a.out, "Score: %d/%d (%d%%)\n", result.Score, result.Total, result.Percentage())
	fmt.Fprintf(a.out, "Time spent: %s\n", result.TimeSpent)
	fmt.Fprintln(a.out, "See 'history' for all your attempts.")

	record := localstore.AttemptRecord{
		AttemptID:      sess.AttemptID(),
		QuizID:         sess.Quiz().ID,
		QuizTitle:      result.QuizTitle,
		Score:          result.Score,
		TotalQuestions: result.Total,
		StartedAt:      result.StartedAt,
		CompletedAt:    result.StartedAt.Add(result.TimeSpent),
	}
	if err := a.store.RecordAttempt(ctx, record); err != nil {
		fmt.Fprintf(a.out, "warning: could not record attempt locally: %v\n", err)
	}
	return true
}
