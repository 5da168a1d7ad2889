package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"quiz-console/internal/api"
)

func startServer(t *testing.T, questionCount int, embedQuestions bool) (*httptest.Server, *int32, *int32) {
	t.Helper()

	var summaryFetches, fallbackFetches int32
	quiz := testQuiz(questionCount)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/quizzes/7", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&summaryFetches, 1)
		summary := quiz
		summary.Questions = nil
		_ = json.NewEncoder(w).Encode(map[string]api.Quiz{"quiz": summary})
	})
	mux.HandleFunc("/api/quizzes/7/start", func(w http.ResponseWriter, _ *http.Request) {
		started := quiz
		if !embedQuestions {
			started.Questions = nil
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"attempt_id": 42,
			"quiz":       started,
		})
	})
	mux.HandleFunc("/api/quiz-attempts/42/questions", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&fallbackFetches, 1)
		_ = json.NewEncoder(w).Encode(map[string]any{"questions": quiz.Questions})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &summaryFetches, &fallbackFetches
}

func TestBeginHappyPath(t *testing.T) {
	server, summaryFetches, _ := startServer(t, QuestionsPerAttempt, true)
	client := api.NewClient(server.URL, server.Client(), nil)

	sess, err := Begin(context.Background(), client, 7, nil)
	require.NoError(t, err)
	require.Equal(t, StateActive, sess.State())
	require.Equal(t, int64(42), sess.AttemptID())
	require.Equal(t, QuestionsPerAttempt, sess.Len())
	require.Equal(t, 600, sess.TimeLimit())
	require.Equal(t, int32(1), atomic.LoadInt32(summaryFetches))
}

func TestBeginSkipsSummaryFetchWhenProvided(t *testing.T) {
	server, summaryFetches, _ := startServer(t, QuestionsPerAttempt, true)
	client := api.NewClient(server.URL, server.Client(), nil)

	summary := testQuiz(0)
	sess, err := Begin(context.Background(), client, 7, &summary)
	require.NoError(t, err)
	require.Equal(t, StateActive, sess.State())
	require.Equal(t, int32(0), atomic.LoadInt32(summaryFetches), "summary must not be re-fetched")
}

func TestBeginWrongQuestionCountBlocks(t *testing.T) {
	server, _, _ := startServer(t, 4, true)
	client := api.NewClient(server.URL, server.Client(), nil)

	sess, err := Begin(context.Background(), client, 7, nil)
	require.ErrorIs(t, err, ErrWrongQuestionCount)
	require.Nil(t, sess, "a wrong-sized subset must never yield a session")
}

func TestBeginFallsBackToAttemptQuestions(t *testing.T) {
	server, _, fallbackFetches := startServer(t, QuestionsPerAttempt, false)
	client := api.NewClient(server.URL, server.Client(), nil)

	sess, err := Begin(context.Background(), client, 7, nil)
	require.NoError(t, err)
	require.Equal(t, StateActive, sess.State())
	require.Equal(t, QuestionsPerAttempt, sess.Len())
	require.Equal(t, int32(1), atomic.LoadInt32(fallbackFetches))
}

func TestBeginEmptyQuestionSetIsEmptyState(t *testing.T) {
	server, _, _ := startServer(t, 0, true)
	client := api.NewClient(server.URL, server.Client(), nil)

	sess, err := Begin(context.Background(), client, 7, nil)
	require.NoError(t, err, "an empty set is valid empty data, not an error")
	require.Equal(t, StateEmpty, sess.State())
}

func TestBeginSurfacesStartFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "no questions configured"})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), nil)
	summary := testQuiz(0)

	_, err := Begin(context.Background(), client, 7, &summary)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "no questions configured", apiErr.Message)
}
