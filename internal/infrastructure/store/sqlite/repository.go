// Package sqlite provides a SQLite implementation of the Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/tkrendel/attest/internal/domain/entities"
	"github.com/tkrendel/attest/internal/domain/ports"
	"github.com/tkrendel/attest/internal/infrastructure/config"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.Store using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Targets (subjects claims are made about)
	CREATE TABLE IF NOT EXISTS targets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_targets_name ON targets(name);

	-- Contributor credentials (shared across votes, optionally owned by a target)
	CREATE TABLE IF NOT EXISTS credentials (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		trust_weight REAL NOT NULL DEFAULT 1.0,
		owner_target_id TEXT REFERENCES targets(id),
		revoked_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_credentials_owner ON credentials(owner_target_id);

	-- Facts (candidate claims; integer ids give the deterministic ordering
	-- the resolver's tie-break relies on)
	CREATE TABLE IF NOT EXISTS facts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		target_id TEXT NOT NULL REFERENCES targets(id) ON DELETE CASCADE,
		author_id TEXT REFERENCES credentials(id),
		field_name TEXT NOT NULL,
		field_value TEXT NOT NULL COLLATE NOCASE,
		status TEXT NOT NULL,
		score REAL NOT NULL DEFAULT 0,
		status_updated_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(target_id, field_name, field_value)
	);
	CREATE INDEX IF NOT EXISTS idx_facts_group ON facts(target_id, field_name);

	-- Votes (append-only events on facts)
	CREATE TABLE IF NOT EXISTS votes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fact_id INTEGER NOT NULL REFERENCES facts(id) ON DELETE CASCADE,
		credential_id TEXT REFERENCES credentials(id),
		kind TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_votes_fact ON votes(fact_id);
	CREATE INDEX IF NOT EXISTS idx_votes_credential ON votes(credential_id);

	-- Audit log (tracks boundary mutations and repairs)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		fact_id INTEGER,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_fact ON audit_log(fact_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveTarget saves a target.
func (r *Repository) SaveTarget(ctx context.Context, target *entities.Target) error {
	query := `
		INSERT INTO targets (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name
	`
	_, err := r.db.ExecContext(ctx, query, target.ID, target.Name, target.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving target: %w", err)
	}
	return nil
}

// FindTargetByID finds a target by its ID.
func (r *Repository) FindTargetByID(ctx context.Context, id string) (*entities.Target, error) {
	query := `SELECT id, name, created_at FROM targets WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var target entities.Target
	err := row.Scan(&target.ID, &target.Name, &target.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning target: %w", err)
	}
	return &target, nil
}

// ListTargets lists targets ordered by name with pagination.
func (r *Repository) ListTargets(ctx context.Context, limit, offset int) ([]*entities.Target, error) {
	query := `
		SELECT id, name, created_at
		FROM targets
		ORDER BY name ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying targets: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.Target, 0, limit)
	for rows.Next() {
		var target entities.Target
		if err := rows.Scan(&target.ID, &target.Name, &target.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning target: %w", err)
		}
		result = append(result, &target)
	}
	return result, rows.Err()
}

// CountTargets returns the total number of targets.
func (r *Repository) CountTargets(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM targets`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting targets: %w", err)
	}
	return count, nil
}

// SaveCredential saves or updates a credential.
func (r *Repository) SaveCredential(ctx context.Context, cred *entities.Credential) error {
	query := `
		INSERT INTO credentials (id, code, status, trust_weight, owner_target_id, revoked_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			status = excluded.status,
			trust_weight = excluded.trust_weight,
			owner_target_id = excluded.owner_target_id,
			revoked_at = excluded.revoked_at
	`
	_, err := r.db.ExecContext(ctx, query,
		cred.ID,
		cred.Code,
		string(cred.Status),
		cred.TrustWeight,
		nullString(cred.OwnerTargetID),
		nullTime(cred.RevokedAt),
		cred.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// FindCredentialByID finds a credential by its ID.
func (r *Repository) FindCredentialByID(ctx context.Context, id string) (*entities.Credential, error) {
	query := credentialSelect + ` WHERE id = ?`
	return r.scanCredential(r.db.QueryRowContext(ctx, query, id))
}

// FindCredentialByCode finds a credential by its unique code.
func (r *Repository) FindCredentialByCode(ctx context.Context, code string) (*entities.Credential, error) {
	query := credentialSelect + ` WHERE code = ?`
	return r.scanCredential(r.db.QueryRowContext(ctx, query, code))
}

// FindOrCreateCredential finds a credential by code or lazily creates it in
// the nonexistent state. Uses INSERT OR IGNORE followed by SELECT to stay
// atomic under concurrent first use of the same code.
func (r *Repository) FindOrCreateCredential(ctx context.Context, code string) (*entities.Credential, error) {
	if code == "" {
		return nil, errors.New("credential code is required")
	}

	insertQuery := `
		INSERT OR IGNORE INTO credentials (id, code, status, trust_weight, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, insertQuery,
		uuid.New().String(),
		code,
		string(entities.CredentialNonexistent),
		entities.DefaultTrustWeight,
		timeNow(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting credential: %w", err)
	}

	return r.FindCredentialByCode(ctx, code)
}

// FindCredentialsByIDs finds multiple credentials in a single query.
func (r *Repository) FindCredentialsByIDs(ctx context.Context, ids []string) (map[string]*entities.Credential, error) {
	result := make(map[string]*entities.Credential, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`%s WHERE id IN (%s)`, credentialSelect, strings.Join(placeholders, ","))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying credentials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		cred, err := scanCredentialRow(rows)
		if err != nil {
			return nil, err
		}
		result[cred.ID] = cred
	}
	return result, rows.Err()
}

// CreateFact inserts a new fact and assigns its ID.
func (r *Repository) CreateFact(ctx context.Context, fact *entities.Fact) error {
	query := `
		INSERT INTO facts (target_id, author_id, field_name, field_value, status, score, status_updated_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		fact.TargetID,
		nullString(fact.AuthorID),
		string(fact.Field),
		fact.Value,
		string(fact.Status),
		fact.Score,
		fact.StatusUpdatedAt,
		fact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating fact: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading fact id: %w", err)
	}
	fact.ID = id
	return nil
}

// FindFactByID finds a fact by its ID.
func (r *Repository) FindFactByID(ctx context.Context, id int64) (*entities.Fact, error) {
	query := factSelect + ` WHERE id = ?`
	return r.scanFact(r.db.QueryRowContext(ctx, query, id))
}

// FindFactByValue finds a fact by its (target, field, value) key. The value
// column is declared COLLATE NOCASE, so the match is case-insensitive.
func (r *Repository) FindFactByValue(ctx context.Context, targetID string, field entities.FieldName, value string) (*entities.Fact, error) {
	query := factSelect + ` WHERE target_id = ? AND field_name = ? AND field_value = ?`
	return r.scanFact(r.db.QueryRowContext(ctx, query, targetID, string(field), value))
}

// FindFactsByGroup finds all facts for one (target, field) group.
func (r *Repository) FindFactsByGroup(ctx context.Context, targetID string, field entities.FieldName) ([]*entities.Fact, error) {
	query := factSelect + ` WHERE target_id = ? AND field_name = ? ORDER BY id ASC`
	return r.queryFacts(ctx, query, targetID, string(field))
}

// FindFactsByTarget finds all facts for a target.
func (r *Repository) FindFactsByTarget(ctx context.Context, targetID string) ([]*entities.Fact, error) {
	query := factSelect + ` WHERE target_id = ? ORDER BY field_name ASC, id ASC`
	return r.queryFacts(ctx, query, targetID)
}

// AllFacts returns every fact, ordered by id ascending.
func (r *Repository) AllFacts(ctx context.Context) ([]*entities.Fact, error) {
	return r.queryFacts(ctx, factSelect+` ORDER BY id ASC`)
}

// ListGroups returns every distinct (target, field) group.
func (r *Repository) ListGroups(ctx context.Context) ([]ports.FactGroup, error) {
	query := `SELECT DISTINCT target_id, field_name FROM facts ORDER BY target_id, field_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	groups := make([]ports.FactGroup, 0, 16)
	for rows.Next() {
		var g ports.FactGroup
		var field string
		if err := rows.Scan(&g.TargetID, &field); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		g.Field = entities.FieldName(field)
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// UpdateFactResolution persists the derived status, score and status
// timestamp of a fact.
func (r *Repository) UpdateFactResolution(ctx context.Context, factID int64, status entities.FactStatus, score float64, statusUpdatedAt time.Time) error {
	query := `UPDATE facts SET status = ?, score = ?, status_updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, string(status), score, statusUpdatedAt, factID)
	if err != nil {
		return fmt.Errorf("updating fact resolution: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("fact not found: %d", factID)
	}
	return nil
}

// CreateVote appends a vote and assigns its ID.
func (r *Repository) CreateVote(ctx context.Context, vote *entities.Vote) error {
	query := `
		INSERT INTO votes (fact_id, credential_id, kind, created_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		vote.FactID,
		nullString(vote.CredentialID),
		string(vote.Kind),
		vote.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating vote: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading vote id: %w", err)
	}
	vote.ID = id
	return nil
}

// FindVotesByFact finds all votes on a fact, ordered by id ascending.
func (r *Repository) FindVotesByFact(ctx context.Context, factID int64) ([]*entities.Vote, error) {
	query := `
		SELECT id, fact_id, credential_id, kind, created_at
		FROM votes
		WHERE fact_id = ?
		ORDER BY id ASC
	`
	return r.queryVotes(ctx, query, factID)
}

// FindVotesByGroup finds all votes on facts of one (target, field) group,
// ordered by (fact id, vote id) ascending.
func (r *Repository) FindVotesByGroup(ctx context.Context, targetID string, field entities.FieldName) ([]*entities.Vote, error) {
	query := `
		SELECT v.id, v.fact_id, v.credential_id, v.kind, v.created_at
		FROM votes v
		JOIN facts f ON f.id = v.fact_id
		WHERE f.target_id = ? AND f.field_name = ?
		ORDER BY v.fact_id ASC, v.id ASC
	`
	return r.queryVotes(ctx, query, targetID, string(field))
}

// FindVote finds the vote matching (fact, kind, author) exactly.
func (r *Repository) FindVote(ctx context.Context, factID int64, kind entities.VoteKind, credentialID string) (*entities.Vote, error) {
	query := `
		SELECT id, fact_id, credential_id, kind, created_at
		FROM votes
		WHERE fact_id = ? AND kind = ? AND IFNULL(credential_id, '') = ?
		ORDER BY id ASC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, factID, string(kind), credentialID)

	var vote entities.Vote
	var credID sql.NullString
	var voteKind string
	err := row.Scan(&vote.ID, &vote.FactID, &credID, &voteKind, &vote.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning vote: %w", err)
	}
	vote.CredentialID = credID.String
	vote.Kind = entities.VoteKind(voteKind)
	return &vote, nil
}

// DeleteVote deletes a vote by ID.
func (r *Repository) DeleteVote(ctx context.Context, voteID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE id = ?`, voteID)
	if err != nil {
		return fmt.Errorf("deleting vote: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("vote not found: %d", voteID)
	}
	return nil
}

// ApplyRepairs applies the auditor's repair actions to one fact's votes in a
// single all-or-nothing transaction.
func (r *Repository) ApplyRepairs(ctx context.Context, factID int64, actions []entities.RepairAction) error {
	if len(actions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning repair transaction: %w", err)
	}

	for _, action := range actions {
		switch action.Op {
		case entities.RepairDeleteVote:
			_, err = tx.ExecContext(ctx, `DELETE FROM votes WHERE id = ? AND fact_id = ?`, action.VoteID, factID)
		case entities.RepairRewriteKind:
			_, err = tx.ExecContext(ctx, `UPDATE votes SET kind = ? WHERE id = ? AND fact_id = ?`, string(action.NewKind), action.VoteID, factID)
		default:
			err = fmt.Errorf("unknown repair op %q", action.Op)
		}
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("applying repair to vote %d: %w", action.VoteID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing repairs: %w", err)
	}
	return nil
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, factID int64, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var factIDPtr sql.NullInt64
	if factID != 0 {
		factIDPtr = sql.NullInt64{Int64: factID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, fact_id, details) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, factIDPtr, detailsJSON)
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific fact.
func (r *Repository) FindAuditLog(ctx context.Context, factID int64) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, fact_id, details, created_at
		FROM audit_log
		WHERE fact_id = ?
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, factID)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var entryFactID sql.NullInt64
		var details sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Action, &entryFactID, &details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.FactID = entryFactID.Int64

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

const credentialSelect = `
	SELECT id, code, status, trust_weight, owner_target_id, revoked_at, created_at
	FROM credentials`

const factSelect = `
	SELECT id, target_id, author_id, field_name, field_value, status, score, status_updated_at, created_at
	FROM facts`

// scanCredential scans a single credential row.
func (r *Repository) scanCredential(row *sql.Row) (*entities.Credential, error) {
	var cred entities.Credential
	var status string
	var owner sql.NullString
	var revokedAt sql.NullTime

	err := row.Scan(&cred.ID, &cred.Code, &status, &cred.TrustWeight, &owner, &revokedAt, &cred.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning credential: %w", err)
	}

	cred.Status = entities.CredentialStatus(status)
	cred.OwnerTargetID = owner.String
	if revokedAt.Valid {
		t := revokedAt.Time
		cred.RevokedAt = &t
	}
	return &cred, nil
}

// scanCredentialRow scans a credential from a multi-row result.
func scanCredentialRow(rows *sql.Rows) (*entities.Credential, error) {
	var cred entities.Credential
	var status string
	var owner sql.NullString
	var revokedAt sql.NullTime

	err := rows.Scan(&cred.ID, &cred.Code, &status, &cred.TrustWeight, &owner, &revokedAt, &cred.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning credential: %w", err)
	}

	cred.Status = entities.CredentialStatus(status)
	cred.OwnerTargetID = owner.String
	if revokedAt.Valid {
		t := revokedAt.Time
		cred.RevokedAt = &t
	}
	return &cred, nil
}

// scanFact scans a single fact row.
func (r *Repository) scanFact(row *sql.Row) (*entities.Fact, error) {
	var fact entities.Fact
	var author sql.NullString
	var field, status string

	err := row.Scan(&fact.ID, &fact.TargetID, &author, &field, &fact.Value, &status, &fact.Score, &fact.StatusUpdatedAt, &fact.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning fact: %w", err)
	}

	fact.AuthorID = author.String
	fact.Field = entities.FieldName(field)
	fact.Status = entities.FactStatus(status)
	return &fact, nil
}

// queryFacts is a helper to execute fact queries.
func (r *Repository) queryFacts(ctx context.Context, query string, args ...any) ([]*entities.Fact, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying facts: %w", err)
	}
	defer rows.Close()

	facts := make([]*entities.Fact, 0, 16)
	for rows.Next() {
		var fact entities.Fact
		var author sql.NullString
		var field, status string

		if err := rows.Scan(&fact.ID, &fact.TargetID, &author, &field, &fact.Value, &status, &fact.Score, &fact.StatusUpdatedAt, &fact.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning fact: %w", err)
		}

		fact.AuthorID = author.String
		fact.Field = entities.FieldName(field)
		fact.Status = entities.FactStatus(status)
		facts = append(facts, &fact)
	}
	return facts, rows.Err()
}

// queryVotes is a helper to execute vote queries.
func (r *Repository) queryVotes(ctx context.Context, query string, args ...any) ([]*entities.Vote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying votes: %w", err)
	}
	defer rows.Close()

	votes := make([]*entities.Vote, 0, 16)
	for rows.Next() {
		var vote entities.Vote
		var credID sql.NullString
		var kind string

		if err := rows.Scan(&vote.ID, &vote.FactID, &credID, &kind, &vote.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning vote: %w", err)
		}

		vote.CredentialID = credID.String
		vote.Kind = entities.VoteKind(kind)
		votes = append(votes, &vote)
	}
	return votes, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
