package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"quiz-console/internal/api"
)

func testQuiz(questionCount int) api.Quiz {
	quiz := api.Quiz{
		ID:               7,
		Title:            "Go Basics",
		TimeLimitMinutes: 10,
	}
	for i := 0; i < questionCount; i++ {
		questionID := int64(100 + i)
		quiz.Questions = append(quiz.Questions, api.Question{
			ID:           questionID,
			QuestionText: "question",
			Answers: []api.AnswerOption{
				{ID: questionID*10 + 1, AnswerText: "a"},
				{ID: questionID*10 + 2, AnswerText: "b"},
				{ID: questionID*10 + 3, AnswerText: "c"},
			},
		})
	}
	return quiz
}

func activeSession(t *testing.T, client *api.Client) *Session {
	t.Helper()
	sess, err := Resume(client, 42, testQuiz(QuestionsPerAttempt))
	require.NoError(t, err)
	require.Equal(t, StateActive, sess.State())
	return sess
}

func TestResumeRequiresFullContext(t *testing.T) {
	quiz := testQuiz(QuestionsPerAttempt)

	_, err := Resume(nil, 0, quiz)
	require.ErrorIs(t, err, ErrMissingContext)

	_, err = Resume(nil, 42, api.Quiz{ID: 7})
	require.ErrorIs(t, err, ErrMissingContext)

	sess, err := Resume(nil, 42, quiz)
	require.NoError(t, err)
	require.Equal(t, int64(42), sess.AttemptID())
}

func TestSelectOverwritesNeverAppends(t *testing.T) {
	sess := activeSession(t, nil)
	question := sess.Current()

	require.NoError(t, sess.Select(question.Answers[0].ID))
	require.NoError(t, sess.Select(question.Answers[2].ID))

	selected, ok := sess.Selection()
	require.True(t, ok)
	require.Equal(t, question.Answers[2].ID, selected)
	require.Equal(t, 1, sess.AnsweredCount())
}

func TestSelectRejectsForeignAnswer(t *testing.T) {
	sess := activeSession(t, nil)
	require.ErrorIs(t, sess.Select(999999), ErrUnknownAnswer)
	require.Equal(t, 0, sess.AnsweredCount())
}

func TestAdvanceRefusedWithoutSelection(t *testing.T) {
	sess := activeSession(t, nil)

	err := sess.Advance()
	require.ErrorIs(t, err, ErrNoSelection)
	require.Equal(t, 0, sess.Index())
}

func TestAdvanceRefusedAtLastQuestion(t *testing.T) {
	sess := activeSession(t, nil)
	for i := 0; i < QuestionsPerAttempt-1; i++ {
		require.NoError(t, sess.Select(sess.Current().Answers[0].ID))
		require.NoError(t, sess.Advance())
	}
	require.True(t, sess.IsLast())

	require.NoError(t, sess.Select(sess.Current().Answers[0].ID))
	require.ErrorIs(t, sess.Advance(), ErrLastQuestion)
	require.Equal(t, QuestionsPerAttempt-1, sess.Index())
}

func TestRetreatNeedsNoSelectionAndClearsNone(t *testing.T) {
	sess := activeSession(t, nil)

	firstAnswer := sess.Current().Answers[1].ID
	require.NoError(t, sess.Select(firstAnswer))
	require.NoError(t, sess.Advance())

	// Current question unanswered; retreat must still be permitted.
	require.NoError(t, sess.Retreat())
	require.Equal(t, 0, sess.Index())

	selected, ok := sess.Selection()
	require.True(t, ok)
	require.Equal(t, firstAnswer, selected)

	require.ErrorIs(t, sess.Retreat(), ErrFirstQuestion)
}

func TestAnswersOneEntryPerQuestionWithNullSentinel(t *testing.T) {
	sess := activeSession(t, nil)

	// Answer the first three questions, leave the last two blank.
	for i := 0; i < 3; i++ {
		require.NoError(t, sess.Select(sess.Current().Answers[0].ID))
		require.NoError(t, sess.Advance())
	}

	answers := sess.Answers()
	require.Len(t, answers, QuestionsPerAttempt)
	for i, entry := range answers {
		require.Equal(t, sess.Quiz().Questions[i].ID, entry.QuestionID, "entries keep the set's fixed order")
		if i < 3 {
			require.NotNil(t, entry.AnswerID)
		} else {
			require.Nil(t, entry.AnswerID)
		}
	}

	// The nil sentinel must marshal to an explicit null, never be omitted.
	encoded, err := json.Marshal(answers[4])
	require.NoError(t, err)
	require.JSONEq(t, `{"question_id":104,"answer_id":null}`, string(encoded))
}

func TestSubmitGatedOnCurrentSelection(t *testing.T) {
	sess := activeSession(t, nil)

	_, err := sess.Submit(context.Background())
	require.ErrorIs(t, err, ErrNoSelection)
	require.Equal(t, StateActive, sess.State())
}

func TestSubmitSuccessIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/quizzes/7/submit", r.URL.Path)

		var body struct {
			AttemptID int64                  `json:"attempt_id"`
			Answers   []api.AnswerSubmission `json:"answers"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, int64(42), body.AttemptID)
		require.Len(t, body.Answers, QuestionsPerAttempt)

		_ = json.NewEncoder(w).Encode(map[string]int{"score": 3, "total_questions": 5})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), nil)
	sess := activeSession(t, client)
	require.NoError(t, sess.Select(sess.Current().Answers[0].ID))

	result, err := sess.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateFinished, sess.State())
	require.Equal(t, 3, result.Score)
	require.Equal(t, 5, result.Total)
	require.Equal(t, "Go Basics", result.QuizTitle)
	require.Equal(t, 60, result.Percentage())
}

func TestSubmitFailureRevertsForRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "scoring failed"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"score": 1, "total_questions": 5})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), nil)
	sess := activeSession(t, client)
	require.NoError(t, sess.Select(sess.Current().Answers[0].ID))

	_, err := sess.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, StateActive, sess.State(), "failed submit reverts for retry")

	selected, ok := sess.Selection()
	require.True(t, ok)
	require.NotZero(t, selected, "selections survive a failed submit")

	_, err = sess.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateFinished, sess.State())
}

func TestTimeoutSubmissionBypassesGate(t *testing.T) {
	var submitted struct {
		Answers []api.AnswerSubmission `json:"answers"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		_ = json.NewEncoder(w).Encode(map[string]int{"score": 3, "total_questions": 5})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), nil)
	sess := activeSession(t, client)

	// Answer the first three questions, then sit unanswered on the fourth
	// when time runs out.
	for i := 0; i < 3; i++ {
		require.NoError(t, sess.Select(sess.Current().Answers[0].ID))
		require.NoError(t, sess.Advance())
	}
	_, hasSelection := sess.Selection()
	require.False(t, hasSelection)

	_, err := sess.SubmitOnTimeout(context.Background())
	require.NoError(t, err, "timeout submission must not hit the selection gate")
	require.Equal(t, StateFinished, sess.State())

	require.Len(t, submitted.Answers, QuestionsPerAttempt)
	for i, entry := range submitted.Answers {
		if i < 3 {
			require.NotNil(t, entry.AnswerID, "answered question %d must be populated", i)
		} else {
			require.Nil(t, entry.AnswerID, "unanswered question %d must carry the null sentinel", i)
		}
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		score, total, want int
	}{
		{0, 0, 0},
		{3, 5, 60},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, tc := range cases {
		got := Result{Score: tc.score, Total: tc.total}.Percentage()
		require.Equal(t, tc.want, got, "score=%d total=%d", tc.score, tc.total)
	}
}
