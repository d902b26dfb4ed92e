package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"lingo-days/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lessonRowColumns = []string{"id", "day", "title", "description", "level", "video_url", "audio_url", "content", "created_at", "updated_at"}

func TestSQLXLessonRepository_GetLessonByDay(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXLessonRepository(db)
	now := time.Now()

	t.Run("decodes content", func(t *testing.T) {
		content := `{"version":1,"vocabulary":[{"word":"hello","translation":"marhaba"}],"quiz":[],"flashcards":[]}`
		rows := sqlmock.NewRows(lessonRowColumns).
			AddRow("l1", 1, "Greetings", "Say hello", "A1", "https://v/1", nil, []byte(content), now, now)
		mock.ExpectQuery(`FROM lessons WHERE day = \$1`).WithArgs(1).WillReturnRows(rows)

		lesson, err := repo.GetLessonByDay(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, lesson)
		assert.Equal(t, "https://v/1", lesson.VideoURL)
		assert.Equal(t, "", lesson.AudioURL)
		require.Len(t, lesson.Content.Vocabulary, 1)
		assert.Equal(t, "hello", lesson.Content.Vocabulary[0].Word)
	})

	t.Run("missing day", func(t *testing.T) {
		mock.ExpectQuery(`FROM lessons WHERE day = \$1`).WithArgs(7).WillReturnError(sql.ErrNoRows)

		lesson, err := repo.GetLessonByDay(context.Background(), 7)
		require.NoError(t, err)
		assert.Nil(t, lesson)
	})

	t.Run("corrupt content", func(t *testing.T) {
		rows := sqlmock.NewRows(lessonRowColumns).
			AddRow("l2", 2, "Broken", "", "A1", nil, nil, []byte(`{"vocabulary":`), now, now)
		mock.ExpectQuery(`FROM lessons WHERE day = \$1`).WithArgs(2).WillReturnRows(rows)

		_, err := repo.GetLessonByDay(context.Background(), 2)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXLessonRepository_GetLessonIDByDay(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXLessonRepository(db)

	mock.ExpectQuery(`SELECT id FROM lessons WHERE day = \$1`).WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("l4"))
	id, err := repo.GetLessonIDByDay(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "l4", id)

	mock.ExpectQuery(`SELECT id FROM lessons WHERE day = \$1`).WithArgs(5).WillReturnError(sql.ErrNoRows)
	id, err = repo.GetLessonIDByDay(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "", id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXLessonRepository_ListLessonSummaries(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXLessonRepository(db)

	rows := sqlmock.NewRows([]string{"id", "day", "title", "description", "level", "video_url", "vocabulary_count", "quiz_count"}).
		AddRow("l1", 1, "Greetings", "", "A1", nil, 5, 3).
		AddRow("l2", 2, "Numbers", "", "A1", "https://v/2", 0, 0)
	mock.ExpectQuery(`jsonb_array_length\(content->'vocabulary'\).* FROM lessons ORDER BY day`).WillReturnRows(rows)

	summaries, err := repo.ListLessonSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 5, summaries[0].VocabularyCount)
	assert.Equal(t, 3, summaries[0].QuizCount)
	assert.Equal(t, "https://v/2", summaries[1].VideoURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXLessonRepository_ListDaysWithVocabulary(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXLessonRepository(db)

	mock.ExpectQuery(`SELECT day FROM lessons WHERE jsonb_array_length`).
		WillReturnRows(sqlmock.NewRows([]string{"day"}).AddRow(1).AddRow(3))

	days, err := repo.ListDaysWithVocabulary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXLessonRepository_UpsertLesson(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXLessonRepository(db)

	t.Run("keeps existing id on conflict", func(t *testing.T) {
		lesson := &domain.Lesson{
			Day:     6,
			Title:   "Food",
			Level:   "A1",
			Content: domain.EmptyContent(),
		}
		mock.ExpectQuery(`INSERT INTO lessons .* ON CONFLICT \(day\) DO UPDATE SET .* RETURNING id`).
			WithArgs(sqlmock.AnyArg(), 6, "Food", "", "A1", sqlmock.AnyArg(), sqlmock.AnyArg(),
				`{"version":1,"vocabulary":[],"quiz":[],"flashcards":[]}`, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("existing-id"))

		require.NoError(t, repo.UpsertLesson(context.Background(), lesson))
		assert.Equal(t, "existing-id", lesson.ID)
	})

	t.Run("invalid content is rejected before the write", func(t *testing.T) {
		lesson := &domain.Lesson{
			Day:   7,
			Title: "Bad",
			Content: domain.LessonContent{
				Version: 1,
				Quiz:    []domain.QuizQuestion{{ID: "q1", Type: domain.QuestionMultipleChoice, Question: "?", Options: []string{"only"}, Answer: "only"}},
			},
		}
		err := repo.UpsertLesson(context.Background(), lesson)
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.CodeInvalidContent, domainErr.Code)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

var profileRowColumns = []string{"user_id", "level", "current_day", "listening_score", "reading_score", "speaking_score", "grammar_score", "total_study_minutes", "streak_days", "last_study_date", "created_at", "updated_at"}

func TestSQLXProfileRepository_GetProfileForUpdate(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXProfileRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(profileRowColumns).
		AddRow("u1", "A1", 4, 6, 2, 2, 1, 45, 3, now, now, now)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM user_profiles WHERE user_id = \$1 FOR UPDATE`).WithArgs("u1").WillReturnRows(rows)
	mock.ExpectCommit()

	var p *domain.Profile
	err := NewTransactionManagerAdapter(db).WithTransaction(context.Background(), func(txCtx context.Context) error {
		var err error
		p, err = repo.GetProfileForUpdate(txCtx, "u1")
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 4, p.CurrentDay)
	assert.Equal(t, 6, p.SkillScore(domain.SkillListening))
	require.NotNil(t, p.LastStudyDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXProfileRepository_GetProfileForUpdate_RequiresTransaction(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXProfileRepository(db)

	_, err := repo.GetProfileForUpdate(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXProfileRepository_UpdateProfile(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXProfileRepository(db)

	p := domain.NewProfile("u1")
	mock.ExpectExec(`UPDATE user_profiles SET`).
		WithArgs("u1", "A1", 1, 0, 0, 0, 0, 0, 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateProfile(context.Background(), p))

	mock.ExpectExec(`UPDATE user_profiles SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateProfile(context.Background(), p)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUserNotFound, domainErr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_CommitsAndRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)
	repo := NewSQLXProgressRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM lesson_progress`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		_, err := repo.DeleteAllForUser(ctx, "u1")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
