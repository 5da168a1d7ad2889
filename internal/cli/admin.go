package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"quiz-console/internal/session"
)

func (a *App) runCategories(ctx context.Context, args []string) {
	if len(args) == 1 || args[0] == "categories" {
		categories, err := a.client.ListCategories(ctx)
		if err != nil {
			a.printError(err)
			return
		}
		if len(categories) == 0 {
			fmt.Fprintln(a.out, "No categories yet.")
			return
		}
		for _, category := range categories {
			fmt.Fprintf(a.out, "%d. %s\n", category.ID, category.Name)
		}
		return
	}

	switch args[1] {
	case "add":
		if len(args) < 3 {
			fmt.Fprintln(a.out, "usage: category add <name>")
			return
		}
		name := strings.Join(args[2:], " ")
		if err := a.client.CreateCategory(ctx, name); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintf(a.out, "Category %q created.\n", name)
	case "rename":
		if len(args) < 4 {
			fmt.Fprintln(a.out, "usage: category rename <id> <name>")
			return
		}
		id, err := parseID(args[2])
		if err != nil {
			fmt.Fprintf(a.out, "invalid category id: %v\n", err)
			return
		}
		name := strings.Join(args[3:], " ")
		if err := a.client.UpdateCategory(ctx, id, name); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintf(a.out, "Category %d renamed to %q.\n", id, name)
	case "delete":
		if len(args) != 3 {
			fmt.Fprintln(a.out, "usage: category delete <id>")
			return
		}
		id, err := parseID(args[2])
		if err != nil {
			fmt.Fprintf(a.out, "invalid category id: %v\n", err)
			return
		}
		if err := a.client.DeleteCategory(ctx, id); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintf(a.out, "Category %d deleted.\n", id)
	default:
		fmt.Fprintln(a.out, "usage: categories | category add|rename|delete ...")
	}
}

func (a *App) runDifficulties(ctx context.Context, args []string) {
	if len(args) == 1 || args[0] == "difficulties" {
		levels, err := a.client.ListDifficultyLevels(ctx)
		if err != nil {
			a.printError(err)
			return
		}
		if len(levels) == 0 {
			fmt.Fprintln(a.out, "No difficulty levels yet.")
			return
		}
		for _, level := range levels {
			fmt.Fprintf(a.out, "%d. %s\n", level.ID, level.Name)
		}
		return
	}

	switch args[1] {
	case "add":
		if len(args) < 3 {
			fmt.Fprintln(a.out, "usage: difficulty add <name>")
			return
		}
		name := strings.Join(args[2:], " ")
		if err := a.client.CreateDifficultyLevel(ctx, name); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintf(a.out, "Difficulty %q created.\n", name)
	case "rename":
		if len(args) < 4 {
			fmt.Fprintln(a.out, "usage: difficulty rename <id> <name>")
			return
		}
		id, err := parseID(args[2])
		if err != nil {
			fmt.Fprintf(a.out, "invalid difficulty id: %v\n", err)
			return
		}
		name := strings.Join(args[3:], " ")
		if err := a.client.UpdateDifficultyLevel(ctx, id, name); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintf(a.out, "Difficulty %d renamed to %q.\n", id, name)
	case "delete":
		if len(args) != 3 {
			fmt.Fprintln(a.out, "usage: difficulty delete <id>")
			return
		}
		id, err := parseID(args[2])
		if err != nil {
			fmt.Fprintf(a.out, "invalid difficulty id: %v\n", err)
			return
		}
		if err := a.client.DeleteDifficultyLevel(ctx, id); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintf(a.out, "Difficulty %d deleted.\n", id)
	default:
		fmt.Fprintln(a.out, "usage: difficulties | difficulty add|rename|delete ...")
	}
}

// runQuizAdmin creates a quiz from prompted fields, mirroring the admin
// quiz form.
func (a *App) runQuizAdmin(ctx context.Context, args []string) {
	if len(args) != 2 || args[1] != "create" {
		fmt.Fprintln(a.out, "usage: quiz create")
		return
	}

	title, ok := a.readLine("title: ")
	if !ok {
		return
	}
	categoryRaw, ok := a.readLine("category id: ")
	if !ok {
		return
	}
	categoryID, err := parseID(categoryRaw)
	if err != nil {
		fmt.Fprintf(a.out, "invalid category id: %v\n", err)
		return
	}
	difficultyRaw, ok := a.readLine("difficulty id: ")
	if !ok {
		return
	}
	difficultyID, err := parseID(difficultyRaw)
	if err != nil {
		fmt.Fprintf(a.out, "invalid difficulty id: %v\n", err)
		return
	}
	limitRaw, ok := a.readLine("time limit (minutes): ")
	if !ok {
		return
	}
	timeLimit, err := strconv.Atoi(limitRaw)
	if err != nil || timeLimit < 1 || timeLimit > 300 {
		fmt.Fprintln(a.out, "time limit must be 1-300 minutes")
		return
	}

	if err := a.client.CreateQuiz(ctx, title, categoryID, difficultyID, timeLimit); err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintf(a.out, "Quiz %q created. Add at least %d questions before it can be taken.\n",
		title, session.QuestionsPerAttempt)
}

func (a *App) runQuestions(ctx context.Context, args []string) {
	if args[0] == "questions" {
		// Bare "questions" lists the quizzes first so the admin can pick an
		// id by title instead of knowing it up front.
		if len(args) == 1 {
			quizzes, err := a.client.ListAdminQuizzes(ctx)
			if err != nil {
				a.printError(err)
				return
			}
			if len(quizzes) == 0 {
				fmt.Fprintln(a.out, "No quizzes yet. Use 'quiz create' first.")
				return
			}
			fmt.Fprintln(a.out, "Quizzes:")
			for _, quiz := range quizzes {
				category := "-"
				if quiz.Category != nil {
					category = quiz.Category.Name
				}
				fmt.Fprintf(a.out, "%d. %s (category=%s limit=%dm)\n",
					quiz.ID, quiz.Title, category, quiz.TimeLimitMinutes)
			}
			fmt.Fprintln(a.out, "Use 'questions <quiz_id>' to list a quiz's questions.")
			return
		}
		if len(args) != 2 {
			fmt.Fprintln(a.out, "usage: questions [quiz_id]")
			return
		}
		quizID, err := parseID(args[1])
		if err != nil {
			fmt.Fprintf(a.out, "invalid quiz id: %v\n", err)
			return
		}
		quiz, err := a.client.GetAdminQuiz(ctx, quizID)
		if err != nil {
			a.printError(err)
			return
		}
		if len(quiz.Questions) == 0 {
			fmt.Fprintf(a.out, "Quiz %q has no questions yet.\n", quiz.Title)
			return
		}
		fmt.Fprintf(a.out, "Questions in %q:\n", quiz.Title)
		for _, question := range quiz.Questions {
			fmt.Fprintf(a.out, "%d. %s\n", question.ID, question.QuestionText)
		}
		return
	}

	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: question add <quiz_id> | question delete <id>")
		return
	}
	switch args[1] {
	case "add":
		if len(args) != 3 {
			fmt.Fprintln(a.out, "usage: question add <quiz_id>")
			return
		}
		quizID, err := parseID(args[2])
		if err != nil {
			fmt.Fprintf(a.out, "invalid quiz id: %v\n", err)
			return
		}
		text, ok := a.readLine("question text: ")
		if !ok {
			return
		}
		if len(text) < 10 {
			fmt.Fprintln(a.out, "question text must be at least 10 characters")
			return
		}
		if err := a.client.CreateQuestion(ctx, quizID, text); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintln(a.out, "Question added.")
	case "delete":
		if len(args) != 3 {
			fmt.Fprintln(a.out, "usage: question delete <id>")
			return
		}
		id, err := parseID(args[2])
		if err != nil {
			fmt.Fprintf(a.out, "invalid question id: %v\n", err)
			return
		}
		if err := a.client.DeleteQuestion(ctx, id); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintf(a.out, "Question %d deleted.\n", id)
	default:
		fmt.Fprintln(a.out, "usage: question add <quiz_id> | question delete <id>")
	}
}

func (a *App) runAnswers(ctx context.Context, args []string) {
	if args[0] == "answers" {
		if len(args) != 2 {
			fmt.Fprintln(a.out, "usage: answers <question_id>")
			return
		}
		questionID, err := parseID(args[1])
		if err != nil {
			fmt.Fprintf(a.out, "invalid question id: %v\n", err)
			return
		}
		answers, err := a.client.ListAnswers(ctx, questionID)
		if err != nil {
			a.printError(err)
			return
		}
		if len(answers) == 0 {
			fmt.Fprintln(a.out, "No answers yet for this question.")
			return
		}
		for _, answer := range answers {
			marker := " "
			if answer.IsCorrect != nil && *answer.IsCorrect {
				marker = "*"
			}
			fmt.Fprintf(a.out, "%s %d. %s\n", marker, answer.ID, answer.AnswerText)
		}
		return
	}

	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: answer add <question_id> | answer delete <id>")
		return
	}
	switch args[1] {
	case "add":
		if len(args) != 3 {
			fmt.Fprintln(a.out, "usage: answer add <question_id>")
			return
		}
		questionID, err := parseID(args[2])
		if err != nil {
			fmt.Fprintf(a.out, "invalid question id: %v\n", err)
			return
		}
		text, ok := a.readLine("answer text: ")
		if !ok {
			return
		}
		correctRaw, ok := a.readLine("correct? (yes/no): ")
		if !ok {
			return
		}
		correct := correctRaw == "y" || correctRaw == "yes"
		if err := a.client.CreateAnswer(ctx, questionID, text, correct); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintln(a.out, "Answer added.")
	case "delete":
		if len(args) != 3 {
			fmt.Fprintln(a.out, "usage: answer delete <id>")
			return
		}
		id, err := parseID(args[2])
		if err != nil {
			fmt.Fprintf(a.out, "invalid answer id: %v\n", err)
			return
		}
		if err := a.client.DeleteAnswer(ctx, id); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintf(a.out, "Answer %d deleted.\n", id)
	default:
		fmt.Fprintln(a.out, "usage: answer add <question_id> | answer delete <id>")
	}
}

func (a *App) runAttemptReports(ctx context.Context, args []string) {
	page := parsePage(args, 1, 1)
	reports, err := a.client.ListAttemptReports(ctx, page, 10)
	if err != nil {
		a.printError(err)
		return
	}
	if len(reports.Data) == 0 {
		fmt.Fprintln(a.out, "No quiz attempts recorded.")
		return
	}

	fmt.Fprintf(a.out, "Quiz attempts (page %d of %d, %d total):\n",
		reports.CurrentPage, reports.LastPage, reports.Total)
	for _, report := range reports.Data {
		userName := "-"
		if report.User != nil {
			userName = report.User.Name
		}
		quizTitle := "-"
		if report.Quiz != nil {
			quizTitle = report.Quiz.Title
		}
		percentage := session.Result{Score: report.Score, Total: report.TotalQuestions}.Percentage()
		fmt.Fprintf(a.out, "%d. %s on %q: %d/%d (%d%%) at %s\n",
			report.ID, userName, quizTitle, report.Score, report.TotalQuestions,
			percentage, report.CompletedAt)
	}
}
