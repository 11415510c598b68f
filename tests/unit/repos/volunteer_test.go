package repos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
	"casahub-backend/internal/repository/postgres"
)

func candidateRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "org_id", "name", "email", "phone_number", "address", "references_note",
		"pipeline_status", "training_complete", "rejection_reason", "user_id", "created_on", "updated_on",
	})
}

func TestVolunteerRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVolunteerRepository(db)
	ctx := context.Background()

	cand := &domain.VolunteerCandidate{
		OrgID:          3,
		Name:           "Jamie Rivera",
		Email:          "jamie.rivera@example.com",
		PipelineStatus: domain.PipelineStatusApplied,
	}

	mock.ExpectQuery("INSERT INTO volunteer_candidates").
		WithArgs(cand.OrgID, cand.Name, cand.Email, cand.PhoneNumber, cand.Address, cand.References,
			cand.PipelineStatus, cand.TrainingComplete, cand.RejectionReason, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	err = repo.Create(ctx, cand)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), cand.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVolunteerRepository(db)
	ctx := context.Background()

	rows := candidateRows().
		AddRow(42, 3, "Jamie Rivera", "jamie.rivera@example.com", "", "", "",
			"training", true, "", nil, time.Now().Format(time.RFC3339), time.Now().Format(time.RFC3339))

	mock.ExpectQuery("SELECT (.+) FROM volunteer_candidates WHERE id = \\$1").
		WithArgs(int32(42)).
		WillReturnRows(rows)

	cand, err := repo.GetByID(ctx, 42)
	assert.NoError(t, err)
	assert.Equal(t, domain.PipelineStatusTraining, cand.PipelineStatus)
	assert.True(t, cand.TrainingComplete)
	assert.Nil(t, cand.UserID)
}

func TestVolunteerRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVolunteerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE volunteer_candidates SET pipeline_status").
			WithArgs(domain.PipelineStatusBackgroundCheck, sqlmock.AnyArg(), int32(42), domain.PipelineStatusApplied).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 42, domain.PipelineStatusApplied, domain.PipelineStatusBackgroundCheck, "")
		assert.NoError(t, err)
	})

	t.Run("WithReason", func(t *testing.T) {
		mock.ExpectExec("UPDATE volunteer_candidates SET pipeline_status").
			WithArgs(domain.PipelineStatusRejected, "incomplete references", sqlmock.AnyArg(), int32(42), domain.PipelineStatusApplied).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 42, domain.PipelineStatusApplied, domain.PipelineStatusRejected, "incomplete references")
		assert.NoError(t, err)
	})

	t.Run("StaleStatusLosesRace", func(t *testing.T) {
		// Zero rows matched: the candidate already moved to another stage.
		mock.ExpectExec("UPDATE volunteer_candidates SET pipeline_status").
			WithArgs(domain.PipelineStatusBackgroundCheck, sqlmock.AnyArg(), int32(42), domain.PipelineStatusApplied).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 42, domain.PipelineStatusApplied, domain.PipelineStatusBackgroundCheck, "")
		assert.ErrorIs(t, err, repository.ErrStaleStatus)
	})
}

func TestVolunteerRepository_Activate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVolunteerRepository(db)
	ctx := context.Background()

	newCandidate := func() (*domain.VolunteerCandidate, *domain.User, *domain.Membership) {
		cand := &domain.VolunteerCandidate{ID: 42, OrgID: 3, PipelineStatus: domain.PipelineStatusTraining}
		user := &domain.User{Email: "jamie.rivera@example.com", Username: "jamie_rivera_42", PasswordHash: "hash"}
		m := &domain.Membership{OrgID: 3, Role: domain.MembershipRoleVolunteer, Status: domain.MembershipStatusActive}
		return cand, user, m
	}

	t.Run("Success", func(t *testing.T) {
		cand, user, m := newCandidate()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Email, user.Username, user.PhoneNumber, user.PasswordHash, user.Name,
				user.SuperAdmin, user.MustResetPass, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))
		mock.ExpectExec("INSERT INTO memberships").
			WithArgs(int32(77), m.OrgID, m.Role, m.Status, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE volunteer_candidates SET pipeline_status").
			WithArgs(domain.PipelineStatusActive, int32(77), sqlmock.AnyArg(), cand.ID, domain.PipelineStatusTraining).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Activate(ctx, cand, user, m)
		assert.NoError(t, err)
		assert.Equal(t, int32(77), user.ID)
		assert.Equal(t, domain.PipelineStatusActive, cand.PipelineStatus)
		if assert.NotNil(t, cand.UserID) {
			assert.Equal(t, int32(77), *cand.UserID)
		}
	})

	t.Run("RolledBackOnStaleStatus", func(t *testing.T) {
		cand, user, m := newCandidate()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Email, user.Username, user.PhoneNumber, user.PasswordHash, user.Name,
				user.SuperAdmin, user.MustResetPass, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(78))
		mock.ExpectExec("INSERT INTO memberships").
			WithArgs(int32(78), m.OrgID, m.Role, m.Status, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE volunteer_candidates SET pipeline_status").
			WithArgs(domain.PipelineStatusActive, int32(78), sqlmock.AnyArg(), cand.ID, domain.PipelineStatusTraining).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Activate(ctx, cand, user, m)
		assert.ErrorIs(t, err, repository.ErrStaleStatus)
		// No account without a status flip.
		assert.Equal(t, domain.PipelineStatusTraining, cand.PipelineStatus)
		assert.Nil(t, cand.UserID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerRepository_ListStale(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVolunteerRepository(db)
	ctx := context.Background()

	rows := candidateRows().
		AddRow(7, 3, "Old Applicant", "old@example.com", "", "", "",
			"background_check", false, "", nil, "2026-07-01", "2026-07-01")

	mock.ExpectQuery("SELECT (.+) FROM volunteer_candidates").
		WithArgs(sqlmock.AnyArg(), domain.PipelineStatusBackgroundCheck, domain.PipelineStatusTraining).
		WillReturnRows(rows)

	stale, err := repo.ListStale(ctx, []domain.PipelineStatus{
		domain.PipelineStatusBackgroundCheck,
		domain.PipelineStatusTraining,
	}, 14)

	assert.NoError(t, err)
	assert.Len(t, stale, 1)
	assert.Equal(t, int32(7), stale[0].ID)
}
