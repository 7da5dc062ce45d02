package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/abrezinsky/evote/internal/models"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Repository{db: db}, mock
}

var userMockColumns = []string{"id", "name", "email", "role", "password_hash", "access_code", "created_at", "has_voted"}

// TestListUsers_ScanError tests row scanning error
func TestListUsers_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)

	// has_voted must be a bool
	rows := sqlmock.NewRows(userMockColumns).
		AddRow("u1", "Ada", "ada@example.com", "voter", nil, nil, nil, "maybe")
	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnRows(rows)

	if _, err := repo.ListUsers(context.Background()); err == nil {
		t.Error("expected error from scan failure, got nil")
	}
}

func TestListUsers_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnError(errors.New("db down"))

	if _, err := repo.ListUsers(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestGetUser_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnError(errors.New("db down"))

	_, err := repo.GetUser(context.Background(), "u1")
	if err == nil || err == ErrNotFound {
		t.Errorf("expected raw database error, got %v", err)
	}
}

// TestListElections_QueryError tests query failure propagation
func TestListElections_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM elections").WillReturnError(errors.New("db down"))

	if _, err := repo.ListElections(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestListElections_RowsError(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "start_time", "end_time", "closes_at", "created_by", "created_at"}).
		AddRow("e1", "Board", "", nil, nil, nil, nil, nil).
		RowError(0, errors.New("row broken"))
	mock.ExpectQuery("SELECT (.+) FROM elections").WillReturnRows(rows)

	if _, err := repo.ListElections(context.Background()); err == nil {
		t.Error("expected row error, got nil")
	}
}

// TestListCandidatesByElection_ScanError tests row scanning error
func TestListCandidatesByElection_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)

	// votes should be an integer
	rows := sqlmock.NewRows([]string{"id", "election_id", "name", "party", "votes"}).
		AddRow("c1", "e1", "Alice", "", "lots")
	mock.ExpectQuery("SELECT (.+) FROM candidates").WillReturnRows(rows)

	if _, err := repo.ListCandidatesByElection(context.Background(), "e1"); err == nil {
		t.Error("expected error from scan failure, got nil")
	}
}

func TestCountVotesByElection_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "title", "count"}).AddRow("e1", "Board", "many")
	mock.ExpectQuery("SELECT (.+) FROM elections").WillReturnRows(rows)

	if _, err := repo.CountVotesByElection(context.Background()); err == nil {
		t.Error("expected error from scan failure, got nil")
	}
}

func TestSetElectionStart_ExecError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE elections SET start_time").WillReturnError(errors.New("locked"))

	err := repo.SetElectionStart(context.Background(), "e1", time.Now())
	if err == nil || err == ErrStateChanged {
		t.Errorf("expected raw database error, got %v", err)
	}
}

// TestCastVote_IncrementError tests that a failed tally update rolls back
func TestCastVote_IncrementError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE candidates SET votes = votes \\+ 1").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	err := repo.CastVote(context.Background(), &models.Vote{UserID: "u1", ElectionID: "e1", CandidateID: "c1"})
	if err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCastVote_InsertError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE candidates SET votes = votes \\+ 1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO votes").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.CastVote(context.Background(), &models.Vote{UserID: "u1", ElectionID: "e1", CandidateID: "c1"})
	if err == nil || err == ErrDuplicate {
		t.Errorf("expected raw database error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCastVote_GuardMiss(t *testing.T) {
	tests := []struct {
		name     string
		standing bool
		want     error
	}{
		{"candidate elsewhere", false, ErrNotFound},
		{"election not running", true, ErrStateChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectBegin()
			mock.ExpectExec("UPDATE candidates SET votes = votes \\+ 1").
				WithArgs("c1", "e1", "e1").
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery("SELECT EXISTS").
				WithArgs("c1", "e1").
				WillReturnRows(sqlmock.NewRows([]string{"standing"}).AddRow(tt.standing))
			mock.ExpectRollback()

			err := repo.CastVote(context.Background(), &models.Vote{UserID: "u1", ElectionID: "e1", CandidateID: "c1"})
			if err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestCastVote_BeginError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin().WillReturnError(errors.New("busy"))

	if err := repo.CastVote(context.Background(), &models.Vote{UserID: "u1", ElectionID: "e1", CandidateID: "c1"}); err == nil {
		t.Error("expected error, got nil")
	}
}

// TestDeleteUser_VoteDeleteError tests rollback when votes cannot be removed
func TestDeleteUser_VoteDeleteError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE candidates SET votes = votes - 1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM votes").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	if err := repo.DeleteUser(context.Background(), "u1"); err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteUser_UserDeleteError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE candidates SET votes = votes - 1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM votes").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM users").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	if err := repo.DeleteUser(context.Background(), "u1"); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestRequireAffected_ResultError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users SET name").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("rows affected unsupported")))

	if err := repo.UpdateUserName(context.Background(), "u1", "x"); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestNew_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/dir/evote.db")
	if err == nil {
		t.Error("expected error for unreachable database path")
	}
}
