package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"lingo-days/internal/domain"
	"lingo-days/internal/dto"
	"lingo-days/internal/middleware"
	"lingo-days/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLessonRoutes_RequireSession(t *testing.T) {
	ta := newTestApp(t)

	for _, path := range []string{"/api/lessons", "/api/lessons/bulk/initial-data", "/api/lessons/vocabulary/game", "/api/lessons/1"} {
		resp := ta.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestListLessons(t *testing.T) {
	ta := newTestApp(t)
	ta.lessons.On("ListLessons", mock.Anything).Return([]domain.LessonSummary{
		{ID: "l1", Day: 1, Title: "Greetings", VocabularyCount: 10},
		{ID: "l2", Day: 2, Title: "Numbers"},
	}, nil)

	resp := ta.do(t, http.MethodGet, "/api/lessons", "", authHeader())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.LessonListResponse
	decode(t, resp, &body)
	require.Len(t, body.Lessons, 2)
	assert.Equal(t, "Greetings", body.Lessons[0].Title)
}

func TestBulkInitialData_KeysProgressByDay(t *testing.T) {
	ta := newTestApp(t)
	profile := domain.NewProfile(testUserID)
	profile.CurrentDay = 3
	ta.lessons.On("BulkInitialData", mock.Anything, testUserID).Return(&service.BulkData{
		Lessons: []domain.LessonSummary{{ID: "l1", Day: 1}, {ID: "l2", Day: 2}},
		Progress: []domain.LessonProgress{
			{LessonID: "l1", Day: 1, Completed: true, Score: 90, TimeSpent: 12},
			{LessonID: "l2", Day: 2, Answers: json.RawMessage(`{"q1":"a"}`)},
		},
		Profile: profile,
	}, nil)

	resp := ta.do(t, http.MethodGet, "/api/lessons/bulk/initial-data", "", authHeader())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.BulkInitialDataResponse
	decode(t, resp, &body)
	require.Len(t, body.Progress, 2)
	assert.Equal(t, domain.StatusCompleted, body.Progress[1].Status)
	assert.Equal(t, domain.StatusInProgress, body.Progress[2].Status)
	assert.Equal(t, 3, body.Profile.CurrentDay)
	ta.lessons.AssertNotCalled(t, "GetLesson", mock.Anything, mock.Anything, mock.Anything)
}

func TestVocabularyGame(t *testing.T) {
	t.Run("returns words", func(t *testing.T) {
		ta := newTestApp(t)
		ta.lessons.On("VocabularyGame", mock.Anything, testUserID).
			Return(2, []domain.VocabularyItem{{Word: "hola", Translation: "hello"}}, nil)

		resp := ta.do(t, http.MethodGet, "/api/lessons/vocabulary/game", "", authHeader())

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.VocabularyGameResponse
		decode(t, resp, &body)
		assert.Equal(t, 2, body.Day)
		require.Len(t, body.Words, 1)
	})

	t.Run("nothing available", func(t *testing.T) {
		ta := newTestApp(t)
		ta.lessons.On("VocabularyGame", mock.Anything, testUserID).
			Return(0, nil, domain.NewNotFoundError("No vocabulary is available yet"))

		resp := ta.do(t, http.MethodGet, "/api/lessons/vocabulary/game", "", authHeader())

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetLesson(t *testing.T) {
	t.Run("detail without progress", func(t *testing.T) {
		ta := newTestApp(t)
		lesson := &domain.Lesson{ID: "l3", Day: 3, Title: "Food", Content: domain.EmptyContent()}
		lesson.Content.Quiz = []domain.QuizQuestion{{ID: "q1", Type: domain.QuestionTrueFalse, Question: "?", Answer: "true"}}
		ta.lessons.On("GetLesson", mock.Anything, testUserID, 3).Return(lesson, nil, nil)

		resp := ta.do(t, http.MethodGet, "/api/lessons/3", "", authHeader())

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]json.RawMessage
		decode(t, resp, &body)
		assert.JSONEq(t, "null", string(body["progress"]))
		var detail dto.LessonDetail
		require.NoError(t, json.Unmarshal(body["lesson"], &detail))
		assert.Equal(t, "Food", detail.Title)
		require.Len(t, detail.Exercises, 1)
		assert.NotNil(t, detail.Vocabulary)
	})

	t.Run("unknown day", func(t *testing.T) {
		ta := newTestApp(t)
		ta.lessons.On("GetLesson", mock.Anything, testUserID, 7).Return(nil, nil, domain.NewLessonNotFoundError(7))

		resp := ta.do(t, http.MethodGet, "/api/lessons/7", "", authHeader())

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body middleware.ErrorResponse
		decode(t, resp, &body)
		assert.Equal(t, string(domain.CodeLessonNotFound), body.Code)
	})

	t.Run("invalid day parameter", func(t *testing.T) {
		ta := newTestApp(t)

		for path, code := range map[string]domain.ErrorCode{
			"/api/lessons/abc": domain.CodeInvalidFormat,
			"/api/lessons/0":   domain.CodeOutOfRange,
			"/api/lessons/31":  domain.CodeOutOfRange,
		} {
			resp := ta.do(t, http.MethodGet, path, "", authHeader())
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
			var body middleware.ErrorResponse
			decode(t, resp, &body)
			require.Len(t, body.Errors, 1, path)
			assert.Equal(t, code, body.Errors[0].Code, path)
		}
		ta.lessons.AssertNotCalled(t, "GetLesson", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCompleteLesson(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ta := newTestApp(t)
		completedAt := time.Now()
		progress := &domain.LessonProgress{LessonID: "l3", Day: 3, Completed: true, Score: 0, TimeSpent: 15, CompletedAt: &completedAt}
		profile := domain.NewProfile(testUserID)
		profile.CurrentDay = 4
		ta.lessons.On("CompleteLesson", mock.Anything, domain.CompletionInput{
			UserID: testUserID, Day: 3, Score: 0, TimeSpent: 15,
		}).Return(progress, profile, nil)

		resp := ta.do(t, http.MethodPost, "/api/lessons/3/complete", `{"score":0,"timeSpent":15}`, authHeader())

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.CompleteLessonResponse
		decode(t, resp, &body)
		assert.Equal(t, domain.StatusCompleted, body.Progress.Status)
		assert.Equal(t, 4, body.Profile.CurrentDay)
		ta.lessons.AssertExpectations(t)
	})

	t.Run("missing timeSpent", func(t *testing.T) {
		ta := newTestApp(t)

		resp := ta.do(t, http.MethodPost, "/api/lessons/3/complete", `{"score":80}`, authHeader())

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body middleware.ErrorResponse
		decode(t, resp, &body)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "timeSpent", body.Errors[0].Field)
		assert.Equal(t, domain.CodeMissingField, body.Errors[0].Code)
		ta.lessons.AssertNotCalled(t, "CompleteLesson", mock.Anything, mock.Anything)
	})

	t.Run("score out of range", func(t *testing.T) {
		ta := newTestApp(t)
		ta.lessons.On("CompleteLesson", mock.Anything, mock.Anything).
			Return(nil, nil, domain.ValidationErrors{domain.NewOutOfRangeError("score", 150, 0, 100)})

		resp := ta.do(t, http.MethodPost, "/api/lessons/3/complete", `{"score":150,"timeSpent":5}`, authHeader())

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSaveProgress(t *testing.T) {
	t.Run("stores answers", func(t *testing.T) {
		ta := newTestApp(t)
		ta.lessons.On("SaveProgress", mock.Anything, testUserID, 5, json.RawMessage(`{"q1":"b"}`)).Return(nil)

		resp := ta.do(t, http.MethodPost, "/api/lessons/5/save", `{"answers":{"q1":"b"}}`, authHeader())

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.MessageResponse
		decode(t, resp, &body)
		assert.True(t, body.Success)
		ta.lessons.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		ta := newTestApp(t)
		ta.lessons.On("SaveProgress", mock.Anything, testUserID, 5, mock.Anything).
			Return(domain.NewInternalError("failed to save answers", errBoom))

		resp := ta.do(t, http.MethodPost, "/api/lessons/5/save", `{"answers":[]}`, authHeader())

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}
