package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"job-scout/internal/models"
)

func mockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db, zap.NewNop()), mock
}

func TestGetCompanyByName_Found(t *testing.T) {
	store, mock := mockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "company_page",
		"cultural_match_rate", "cultural_match_insights", "created_at", "updated_at",
	}).AddRow("c1", "u1", "Acme", "https://linkedin.com/company/acme", nil, nil, now, now)

	mock.ExpectQuery(`SELECT \* FROM companies`).WillReturnRows(rows)

	company, err := store.GetCompanyByName(context.Background(), "u1", "Acme")
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "c1", company.ID)
	assert.Equal(t, "Acme", company.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCompanyByName_NotFound(t *testing.T) {
	store, mock := mockStore(t)

	mock.ExpectQuery(`SELECT \* FROM companies`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	company, err := store.GetCompanyByName(context.Background(), "u1", "Nowhere Inc")
	require.NoError(t, err)
	assert.Nil(t, company)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCompany(t *testing.T) {
	store, mock := mockStore(t)

	mock.ExpectExec(`INSERT INTO "?companies"?`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.CreateCompany(context.Background(), &models.Company{
		ID:     "c1",
		UserID: "u1",
		Name:   "Acme",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertJob(t *testing.T) {
	store, mock := mockStore(t)

	mock.ExpectExec(`INSERT INTO "?jobs"?`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.InsertJob(context.Background(), &models.Job{
		ID:         "j1",
		UserID:     "u1",
		JobTitle:   "Senior PM",
		PostingURL: "https://jobs.example/x",
		Company:    "Acme",
		Status:     models.StatusReview,
		IsLive:     true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateJobStatus(t *testing.T) {
	store, mock := mockStore(t)

	mock.ExpectExec(`UPDATE "?jobs"? SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.UpdateJobStatus(context.Background(), "j1", models.StatusBookmarked)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStampLastRun(t *testing.T) {
	store, mock := mockStore(t)

	mock.ExpectExec(`UPDATE "?job_searches"? SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := store.StampLastRun(context.Background(), []string{"s1", "s2"}, time.Now())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStampLastRun_EmptyNoQuery(t *testing.T) {
	store, mock := mockStore(t)
	require.NoError(t, store.StampLastRun(context.Background(), nil, time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveSearches(t *testing.T) {
	store, mock := mockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "label", "keyword", "location",
		"is_active", "created_at", "updated_at",
	}).
		AddRow("s1", "u1", "PM Berlin", "Product Manager", "Berlin", true, now, now).
		AddRow("s2", "u2", "Data", "Data Engineer", "Remote", true, now, now)

	mock.ExpectQuery(`SELECT \* FROM job_searches`).WillReturnRows(rows)

	searches, err := store.GetActiveSearches(context.Background())
	require.NoError(t, err)
	require.Len(t, searches, 2)
	assert.Equal(t, "Product Manager", searches[0].Keyword)
	assert.NoError(t, mock.ExpectationsWereMet())
}
