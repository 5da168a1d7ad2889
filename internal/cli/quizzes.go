package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-console/internal/api"
	"quiz-console/internal/localstore"
	"quiz-console/internal/session"
)

// runQuizzes renders the quiz catalogue, optionally filtered by category
// and/or difficulty name, and caches the summaries for "take <n>".
func (a *App) runQuizzes(ctx context.Context, args []string) {
	quizzes, err := a.client.ListQuizzes(ctx)
	if err != nil {
		a.printError(err)
		return
	}

	var categoryFilter, difficultyFilter string
	if len(args) > 1 {
		categoryFilter = strings.ToLower(args[1])
	}
	if len(args) > 2 {
		difficultyFilter = strings.ToLower(args[2])
	}

	filtered := make([]api.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if categoryFilter != "" && (quiz.Category == nil || strings.ToLower(quiz.Category.Name) != categoryFilter) {
			continue
		}
		if difficultyFilter != "" && (quiz.DifficultyLevel == nil || strings.ToLower(quiz.DifficultyLevel.Name) != difficultyFilter) {
			continue
		}
		filtered = append(filtered, quiz)
	}

	a.quizCache = filtered

	if len(filtered) == 0 {
		fmt.Fprintln(a.out, "No quizzes found matching your filters.")
		return
	}

	fmt.Fprintln(a.out, "Available quizzes:")
	for idx, quiz := range filtered {
		category := "-"
		if quiz.Category != nil {
			category = quiz.Category.Name
		}
		difficulty := "-"
		if quiz.DifficultyLevel != nil {
			difficulty = quiz.DifficultyLevel.Name
		}
		fmt.Fprintf(a.out, "%d. %s (category=%s difficulty=%s limit=%dm)\n",
			idx+1, quiz.Title, category, difficulty, quiz.TimeLimitMinutes)
	}
	fmt.Fprintln(a.out, "Start one with: take <number>")
}

// resolveQuiz maps a "take" argument to a quiz id, with the cached summary
// when the argument was a list position.
func (a *App) resolveQuiz(arg string) (int64, *api.Quiz, error) {
	value, err := parseID(arg)
	if err != nil {
		return 0, nil, errors.New("usage: take <quiz#|quiz_id>")
	}

	if value >= 1 && int(value) <= len(a.quizCache) {
		quiz := a.quizCache[value-1]
		return quiz.ID, &quiz, nil
	}
	return value, nil, nil
}

// runHistory shows the attempt history: the backend list when reachable
// (refreshing the local cache), the cache otherwise.
func (a *App) runHistory(ctx context.Context) {
	attempts, err := a.client.MyAttempts(ctx)
	if err != nil {
		if !errors.Is(err, api.ErrServiceUnavailable) {
			a.printError(err)
			return
		}
		a.printCachedHistory(ctx)
		return
	}

	records := make([]localstore.AttemptRecord, 0, len(attempts))
	for _, attempt := range attempts {
		records = append(records, localstore.AttemptRecord{
			AttemptID:      attempt.ID,
			QuizID:         attempt.QuizID,
			QuizTitle:      attempt.QuizTitle,
			Score:          attempt.Score,
			TotalQuestions: attempt.TotalQuestions,
			StartedAt:      attempt.StartedAt,
			CompletedAt:    attempt.CompletedAt,
		})
	}
	if err := a.store.RefreshAttempts(ctx, records); err != nil {
		fmt.Fprintf(a.out, "warning: could not refresh local history: %v\n", err)
	}

	if len(attempts) == 0 {
		fmt.Fprintln(a.out, "You haven't completed any quizzes yet.")
		return
	}

	fmt.Fprintln(a.out, "Quiz history:")
	for idx, attempt := range attempts {
		a.printHistoryRow(idx+1, attempt.QuizTitle, attempt.Score, attempt.TotalQuestions,
			attempt.CompletedAt, attempt.CompletedAt.Sub(attempt.StartedAt))
	}
}

func (a *App) printCachedHistory(ctx context.Context) {
	records, err := a.store.RecentAttempts(ctx, 20)
	if err != nil {
		a.printError(err)
		return
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "Quiz service unavailable and no local history yet.")
		return
	}

	fmt.Fprintln(a.out, "Quiz service unavailable; showing local history:")
	for idx, record := range records {
		a.printHistoryRow(idx+1, record.QuizTitle, record.Score, record.TotalQuestions,
			record.CompletedAt, record.CompletedAt.Sub(record.StartedAt))
	}
}

func (a *App) printHistoryRow(number int, title string, score, total int, completedAt time.Time, spent time.Duration) {
	if title == "" {
		title = "Quiz"
	}
	percentage := session.Result{Score: score, Total: total}.Percentage()
	fmt.Fprintf(a.out, "%d. %s  %d/%d (%d%%)  %s  took %s\n",
		number, title, score, total, percentage,
		completedAt.Format(time.RFC3339), spent.Round(time.Second))
}
