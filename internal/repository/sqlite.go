package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/abrezinsky/evote/internal/models"
)

// timeLayout is fixed-width UTC so stored timestamps compare correctly as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository provides data access methods
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection; it also keeps :memory: databases alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db, now: time.Now}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('admin', 'chairman', 'voter')),
			password_hash TEXT,
			access_code TEXT UNIQUE,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS elections (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_time TEXT,
			end_time TEXT,
			closes_at TEXT,
			created_by TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			id TEXT PRIMARY KEY,
			election_id TEXT NOT NULL,
			name TEXT NOT NULL,
			party TEXT NOT NULL DEFAULT '',
			votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
			FOREIGN KEY (election_id) REFERENCES elections(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS votes (
			id TEXT PRIMARY KEY,
			receipt TEXT UNIQUE NOT NULL,
			user_id TEXT NOT NULL,
			election_id TEXT NOT NULL,
			candidate_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (election_id) REFERENCES elections(id) ON DELETE CASCADE,
			FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE,
			UNIQUE(user_id, election_id)
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_election ON candidates(election_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_user ON votes(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_election ON votes(election_id)`,
		`CREATE INDEX IF NOT EXISTS idx_elections_closes_at ON elections(closes_at)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

// ==================== Helpers ====================

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repository) timeNow() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullableTime(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return formatTime(*t)
}

// parseTime treats NULL and unparseable values as absent
func parseTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		if t, err = time.Parse(time.RFC3339Nano, s.String); err != nil {
			return nil
		}
	}
	return &t
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func requireAffected(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

// ==================== User Methods ====================

const userColumns = `u.id, u.name, u.email, u.role, u.password_hash, u.access_code, u.created_at,
	EXISTS (SELECT 1 FROM votes v WHERE v.user_id = u.id)`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var passwordHash, accessCode sql.NullString
	var createdAt sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &passwordHash, &accessCode, &createdAt, &u.HasVoted); err != nil {
		return nil, err
	}
	u.PasswordHash = passwordHash.String
	u.AccessCode = accessCode.String
	if t := parseTime(createdAt); t != nil {
		u.CreatedAt = *t
	}
	return &u, nil
}

func (r *Repository) getUserWhere(ctx context.Context, where string, arg any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE `+where, arg))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return u, err
}

// CreateUser inserts a user, assigning an ID and creation time when missing
func (r *Repository) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.timeNow().UTC()
	}

	var accessCode, passwordHash any
	if u.AccessCode != "" {
		accessCode = u.AccessCode
	}
	if u.PasswordHash != "" {
		passwordHash = u.PasswordHash
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, role, password_hash, access_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.Role, passwordHash, accessCode, formatTime(u.CreatedAt))
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetUser retrieves a user by ID
func (r *Repository) GetUser(ctx context.Context, id string) (*models.User, error) {
	return r.getUserWhere(ctx, `u.id = ?`, id)
}

// GetUserByEmail retrieves a user by email (case-insensitive)
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUserWhere(ctx, `lower(u.email) = lower(?)`, email)
}

// GetUserByAccessCode retrieves a voter by access code
func (r *Repository) GetUserByAccessCode(ctx context.Context, code string) (*models.User, error) {
	return r.getUserWhere(ctx, `u.access_code = ?`, code)
}

// ListUsers returns all users, oldest first, with their has-voted flag
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users u ORDER BY u.created_at, u.rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUserName renames a user
func (r *Repository) UpdateUserName(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrNotFound)
}

// SetAccessCode assigns an access code to a user
func (r *Repository) SetAccessCode(ctx context.Context, id, code string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET access_code = ? WHERE id = ?`, code, id)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	return requireAffected(res, ErrNotFound)
}

// DeleteUser removes a user and withdraws their votes from the candidate tallies
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE candidates SET votes = votes - 1
		WHERE id IN (SELECT candidate_id FROM votes WHERE user_id = ?)
	`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE user_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireAffected(res, ErrNotFound); err != nil {
		return err
	}
	return tx.Commit()
}

// CountUsers returns the number of registered users
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// ==================== Election Methods ====================

const electionColumns = `e.id, e.title, e.description, e.start_time, e.end_time, e.closes_at, e.created_by, e.created_at`

func scanElection(row rowScanner) (*models.Election, error) {
	var e models.Election
	var start, end, closesAt, createdBy, createdAt sql.NullString
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &start, &end, &closesAt, &createdBy, &createdAt); err != nil {
		return nil, err
	}
	e.StartTime = parseTime(start)
	e.EndTime = parseTime(end)
	e.ClosesAt = parseTime(closesAt)
	e.CreatedBy = createdBy.String
	if t := parseTime(createdAt); t != nil {
		e.CreatedAt = *t
	}
	return &e, nil
}

func (r *Repository) queryElections(ctx context.Context, query string, args ...any) ([]models.Election, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, err
		}
		elections = append(elections, *e)
	}
	return elections, rows.Err()
}

// CreateElection inserts an election, assigning an ID and creation time when missing
func (r *Repository) CreateElection(ctx context.Context, e *models.Election) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.timeNow().UTC()
	}

	var createdBy any
	if e.CreatedBy != "" {
		createdBy = e.CreatedBy
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO elections (id, title, description, start_time, end_time, closes_at, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Title, e.Description, nullableTime(e.StartTime), nullableTime(e.EndTime),
		nullableTime(e.ClosesAt), createdBy, formatTime(e.CreatedAt))
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetElection retrieves an election by ID
func (r *Repository) GetElection(ctx context.Context, id string) (*models.Election, error) {
	e, err := scanElection(r.db.QueryRowContext(ctx, `SELECT `+electionColumns+` FROM elections e WHERE e.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return e, err
}

// ListElections returns all elections in creation order
func (r *Repository) ListElections(ctx context.Context) ([]models.Election, error) {
	return r.queryElections(ctx, `SELECT `+electionColumns+` FROM elections e ORDER BY e.rowid`)
}

// UpdateElectionDetails changes title and description
func (r *Repository) UpdateElectionDetails(ctx context.Context, id, title, description string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE elections SET title = ?, description = ? WHERE id = ?`, title, description, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrNotFound)
}

// SetElectionStart records the start time of an election that has not started yet
func (r *Repository) SetElectionStart(ctx context.Context, id string, start time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE elections SET start_time = ?
		WHERE id = ? AND start_time IS NULL AND end_time IS NULL
	`, formatTime(start), id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrStateChanged)
}

// SetElectionEnd records the end time of a running election and clears any scheduled close
func (r *Repository) SetElectionEnd(ctx context.Context, id string, end time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE elections SET end_time = ?, closes_at = NULL
		WHERE id = ? AND start_time IS NOT NULL AND end_time IS NULL
	`, formatTime(end), id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrStateChanged)
}

// SetElectionClosesAt schedules (or with nil, cancels) the automatic close of an election
func (r *Repository) SetElectionClosesAt(ctx context.Context, id string, closesAt *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE elections SET closes_at = ?
		WHERE id = ? AND end_time IS NULL
	`, nullableTime(closesAt), id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrStateChanged)
}

// ListElectionsDueForClose returns running elections whose scheduled close is at or before now
func (r *Repository) ListElectionsDueForClose(ctx context.Context, now time.Time) ([]models.Election, error) {
	return r.queryElections(ctx, `
		SELECT `+electionColumns+` FROM elections e
		WHERE e.start_time IS NOT NULL AND e.end_time IS NULL
		  AND e.closes_at IS NOT NULL AND e.closes_at <= ?
		ORDER BY e.closes_at
	`, formatTime(now))
}

// DeleteElection removes an election with its candidates and votes
func (r *Repository) DeleteElection(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM elections WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrNotFound)
}

// CountElections returns the number of elections
func (r *Repository) CountElections(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM elections`).Scan(&n)
	return n, err
}

// ==================== Candidate Methods ====================

const candidateColumns = `c.id, c.election_id, c.name, c.party, c.votes`

func scanCandidate(row rowScanner) (*models.Candidate, error) {
	var c models.Candidate
	if err := row.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Votes); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) queryCandidates(ctx context.Context, query string, args ...any) ([]models.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

// CreateCandidate inserts a candidate with zero votes
func (r *Repository) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Votes = 0

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO candidates (id, election_id, name, party, votes)
		VALUES (?, ?, ?, ?, 0)
	`, c.ID, c.ElectionID, c.Name, c.Party)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetCandidate retrieves a candidate by ID
func (r *Repository) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	c, err := scanCandidate(r.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates c WHERE c.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

// ListCandidates returns every candidate in insertion order
func (r *Repository) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	return r.queryCandidates(ctx, `SELECT `+candidateColumns+` FROM candidates c ORDER BY c.rowid`)
}

// ListCandidatesByElection returns an election's candidates in insertion order.
// Insertion order is what breaks ties when results are ranked.
func (r *Repository) ListCandidatesByElection(ctx context.Context, electionID string) ([]models.Candidate, error) {
	return r.queryCandidates(ctx, `SELECT `+candidateColumns+` FROM candidates c WHERE c.election_id = ? ORDER BY c.rowid`, electionID)
}

// UpdateCandidate changes a candidate's name and party
func (r *Repository) UpdateCandidate(ctx context.Context, id, name, party string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE candidates SET name = ?, party = ? WHERE id = ?`, name, party, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrNotFound)
}

// DeleteCandidate removes a candidate and the votes cast for them
func (r *Repository) DeleteCandidate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrNotFound)
}

// ==================== Vote Methods ====================

// CastVote records a ballot and increments the candidate's tally atomically.
// Returns ErrNotFound when the candidate is not in the election,
// ErrStateChanged when the election is not running at write time and
// ErrDuplicate when the user already voted in it.
func (r *Repository) CastVote(ctx context.Context, v *models.Vote) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Receipt == "" {
		v.Receipt = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = r.timeNow().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE candidates SET votes = votes + 1
		WHERE id = ? AND election_id = ?
		  AND EXISTS (
			SELECT 1 FROM elections
			WHERE id = ? AND start_time IS NOT NULL AND end_time IS NULL
		  )
	`, v.CandidateID, v.ElectionID, v.ElectionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return voteMiss(ctx, tx, v)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO votes (id, receipt, user_id, election_id, candidate_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.ID, v.Receipt, v.UserID, v.ElectionID, v.CandidateID, formatTime(v.CreatedAt))
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

// voteMiss explains why the guarded tally update matched no row
func voteMiss(ctx context.Context, tx *sql.Tx, v *models.Vote) error {
	var standing bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM candidates WHERE id = ? AND election_id = ?)
	`, v.CandidateID, v.ElectionID).Scan(&standing)
	if err != nil {
		return err
	}
	if !standing {
		return ErrNotFound
	}
	return ErrStateChanged
}

const voteDetailQuery = `
	SELECT v.id, v.receipt, v.user_id, v.election_id, v.candidate_id, v.created_at,
	       ` + electionColumns + `,
	       ` + candidateColumns + `
	FROM votes v
	JOIN elections e ON e.id = v.election_id
	JOIN candidates c ON c.id = v.candidate_id
	WHERE v.user_id = ?
	ORDER BY v.created_at DESC, v.rowid DESC`

func scanVoteDetail(row rowScanner) (*models.VoteDetail, error) {
	var d models.VoteDetail
	var voteCreated sql.NullString
	var start, end, closesAt, createdBy, electionCreated sql.NullString

	err := row.Scan(
		&d.Vote.ID, &d.Vote.Receipt, &d.Vote.UserID, &d.Vote.ElectionID, &d.Vote.CandidateID, &voteCreated,
		&d.Election.ID, &d.Election.Title, &d.Election.Description, &start, &end, &closesAt, &createdBy, &electionCreated,
		&d.Candidate.ID, &d.Candidate.ElectionID, &d.Candidate.Name, &d.Candidate.Party, &d.Candidate.Votes,
	)
	if err != nil {
		return nil, err
	}

	if t := parseTime(voteCreated); t != nil {
		d.Vote.CreatedAt = *t
	}
	d.Election.StartTime = parseTime(start)
	d.Election.EndTime = parseTime(end)
	d.Election.ClosesAt = parseTime(closesAt)
	d.Election.CreatedBy = createdBy.String
	if t := parseTime(electionCreated); t != nil {
		d.Election.CreatedAt = *t
	}
	return &d, nil
}

// ListVotesByUser returns a user's votes, newest first
func (r *Repository) ListVotesByUser(ctx context.Context, userID string) ([]models.VoteDetail, error) {
	rows, err := r.db.QueryContext(ctx, voteDetailQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []models.VoteDetail{}
	for rows.Next() {
		d, err := scanVoteDetail(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *d)
	}
	return votes, rows.Err()
}

// LatestVoteByUser returns the user's most recent vote
func (r *Repository) LatestVoteByUser(ctx context.Context, userID string) (*models.VoteDetail, error) {
	d, err := scanVoteDetail(r.db.QueryRowContext(ctx, voteDetailQuery+` LIMIT 1`, userID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return d, err
}

// CountVotes returns the number of votes cast across all elections
func (r *Repository) CountVotes(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&n)
	return n, err
}

// CountVotesByElection returns the vote count of every election, including empty ones
func (r *Repository) CountVotesByElection(ctx context.Context) ([]models.ElectionVoteCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.id, e.title, COUNT(v.id)
		FROM elections e
		LEFT JOIN votes v ON v.election_id = e.id
		GROUP BY e.id, e.title
		ORDER BY MIN(e.rowid)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.ElectionVoteCount{}
	for rows.Next() {
		var c models.ElectionVoteCount
		if err := rows.Scan(&c.ElectionID, &c.ElectionTitle, &c.Votes); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting updates a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}
