package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return newStore(db, "sqlmock"), mock
}

func TestGetTherapistByEmailPropagatesDriverError(t *testing.T) {
	s, mock := newMockStore(t)
	errDisk := errors.New("disk I/O error")

	mock.ExpectQuery("SELECT (.+) FROM therapists WHERE email = ?").
		WithArgs("ada@example.com").
		WillReturnError(errDisk)

	_, err := s.Therapists().GetTherapistByEmail(context.Background(), "ada@example.com")
	require.ErrorIs(t, err, errDisk)
	require.NotErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTherapistMapsUniqueViolation(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO therapists").
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: therapists.email (2067)"))

	err := s.Therapists().CreateTherapist(context.Background(), domain.Therapist{ID: "t1", Email: "ada@example.com"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListScalesScansRows(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"scale_id", "name", "abbreviation", "category", "description",
		"item_count", "min_score", "max_score", "scoring_notes",
	}).AddRow("s1", "Generalized Anxiety Disorder-7", "GAD-7", "anxiety", "", 7, 0, 21, "")

	mock.ExpectQuery("SELECT (.+) FROM assessment_scales WHERE category = \\? ORDER BY category, name").
		WithArgs("anxiety").
		WillReturnRows(rows)

	scales, err := s.Scales().ListScales(context.Background(), "ANXIETY")
	require.NoError(t, err)
	require.Len(t, scales, 1)
	require.Equal(t, "GAD-7", scales[0].Abbreviation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE therapists SET clinic_id").
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	err := s.WithTx(context.Background(), func(tx store.Tx) error {
		return tx.Therapists().SetClinic(context.Background(), "t1", "c1", time.Now())
	})
	require.ErrorContains(t, err, "database is locked")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsWrapsCountFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM therapists").
		WillReturnError(errors.New("no such table: therapists"))

	_, err := s.Analytics().Report(context.Background(), time.Now())
	require.ErrorContains(t, err, "count therapists")
	require.NoError(t, mock.ExpectationsWereMet())
}
