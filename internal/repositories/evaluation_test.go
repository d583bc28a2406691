package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-reviewer/internal/models"
)

var evaluationColumns = []string{
	"id", "file_name", "file_content", "job_type", "profession",
	"company_description", "evaluation", "improvements", "stored_file", "created_at",
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	return db, mock
}

func sampleEvaluation() *models.ResumeEvaluation {
	return &models.ResumeEvaluation{
		FileName:           "cv.pdf",
		FileContent:        "Go developer",
		JobType:            "Remoto",
		Profession:         "Engenheiro de Software",
		CompanyDescription: "Fintech",
		Evaluation:         "<p>bom</p>",
		Improvements:       "<p>melhorar</p>",
	}
}

func TestCreateAssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "resume_evaluations"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	eval := sampleEvaluation()
	id, err := repo.Create(context.Background(), eval)

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, eval.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateKeepsProvidedID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "resume_evaluations"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	eval := sampleEvaluation()
	eval.ID = "fixed-id"
	id, err := repo.Create(context.Background(), eval)

	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateIDIsRejected(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "resume_evaluations"`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	eval := sampleEvaluation()
	eval.ID = "taken"
	_, err := repo.Create(context.Background(), eval)

	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluationRepository(db)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(evaluationColumns).
		AddRow("abc", "cv.docx", "texto", "Remoto", "Dev", "Startup", "<p>a</p>", "<p>b</p>", "", created)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "resume_evaluations" WHERE id = $1`)).
		WillReturnRows(rows)

	eval, err := repo.FindByID(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "abc", eval.ID)
	assert.Equal(t, "cv.docx", eval.FileName)
	assert.Equal(t, "Startup", eval.CompanyDescription)
	assert.Equal(t, "<p>b</p>", eval.Improvements)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "resume_evaluations" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(evaluationColumns))

	eval, err := repo.FindByID(context.Background(), "missing")

	assert.Nil(t, eval)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluationRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(evaluationColumns).
		AddRow("1", "a.pdf", "a", "CLT", "Dev", "X", "e1", "i1", "", now).
		AddRow("2", "b.pdf", "b", "PJ", "QA", "Y", "e2", "i2", "", now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "resume_evaluations" ORDER BY created_at ASC`)).
		WillReturnRows(rows)

	evals, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, evals, 2)
	assert.Equal(t, "1", evals[0].ID)
	assert.Equal(t, "2", evals[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryEvaluationRepository()
	ctx := context.Background()

	first := sampleEvaluation()
	id, err := repo.Create(ctx, first)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.FileContent, got.FileContent)
	assert.Equal(t, first.JobType, got.JobType)
	assert.Equal(t, first.Profession, got.Profession)
	assert.Equal(t, first.CompanyDescription, got.CompanyDescription)

	dup := sampleEvaluation()
	dup.ID = id
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	second := sampleEvaluation()
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, 2, repo.Count())
}
