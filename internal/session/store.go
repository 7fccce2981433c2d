package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"shootdesk/internal/config"
	"shootdesk/internal/naming"
	"shootdesk/internal/services"
)

// Store manages session persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the session database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.SessionDir, "sessions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// CreateSession inserts a new session for the given shoot.
func (s *Store) CreateSession(ctx context.Context, shootCode, shootDate string) (*Session, error) {
	if !naming.ValidShootCode(shootCode) {
		return nil, services.Wrap(services.ErrValidation, "store", "create session",
			fmt.Sprintf("shoot code %q must be %d uppercase alphanumerics", shootCode, naming.ShootCodeLength), nil)
	}
	if !naming.ValidDate(shootDate) {
		return nil, services.Wrap(services.ErrValidation, "store", "create session",
			fmt.Sprintf("shoot date %q must be a valid YYYY-MM-DD day", shootDate), nil)
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		ShootCode: shootCode,
		ShootDate: shootDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, shoot_code, shoot_date, created_at, updated_at, committed_at)
         VALUES (?, ?, ?, ?, ?, NULL)`,
		sess.ID, sess.ShootCode, sess.ShootDate,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// GetSession fetches a session by identifier. A missing session yields nil.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, shoot_code, shoot_date, created_at, updated_at, committed_at FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// LatestSession returns the most recently updated session, or nil when the
// store is empty.
func (s *Store) LatestSession(ctx context.Context) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, shoot_code, shoot_date, created_at, updated_at, committed_at
         FROM sessions ORDER BY updated_at DESC LIMIT 1`)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest session: %w", err)
	}
	return sess, nil
}

// ListSessions returns all sessions ordered by creation time.
func (s *Store) ListSessions(ctx context.Context) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, shoot_code, shoot_date, created_at, updated_at, committed_at
         FROM sessions ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and its stacks and counters.
func (s *Store) DeleteSession(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// SaveReview persists the review's session header, stacks, and counter
// snapshots in one transaction.
func (s *Store) SaveReview(ctx context.Context, review *Review) error {
	if review == nil {
		return errors.New("review is nil")
	}
	sess := review.Session()
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`UPDATE sessions SET updated_at = ?, committed_at = ? WHERE id = ?`,
		now.Format(time.RFC3339Nano), nullableTime(sess.CommittedAt), sess.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM stacks WHERE session_id = ?`, sess.ID); err != nil {
		return fmt.Errorf("clear stacks: %w", err)
	}
	for _, stack := range review.Stacks() {
		offsets, err := json.Marshal(stack.EVOffsets)
		if err != nil {
			return fmt.Errorf("marshal ev offsets: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO stacks (
                id, session_id, order_index, image_count, preview_ref,
                room_type, room_token, ev_offsets, raw_extension,
                marked_for_deletion, flagged_uncertain, selected
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			stack.ID, sess.ID, stack.OrderIndex, stack.ImageCount,
			nullableString(stack.PreviewRef),
			nullableString(stack.RoomType), nullableString(stack.RoomToken),
			string(offsets), nullableString(stack.RawExtension),
			boolToInt(stack.MarkedForDeletion), boolToInt(stack.FlaggedUncertain), boolToInt(stack.Selected),
		)
		if err != nil {
			return fmt.Errorf("insert stack: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM counters WHERE session_id = ?`, sess.ID); err != nil {
		return fmt.Errorf("clear counters: %w", err)
	}
	for kind, snapshot := range map[string]map[string]int{
		"index":   review.Indexes().Snapshot(),
		"version": review.Versions().Snapshot(),
	} {
		for key, value := range snapshot {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO counters (session_id, kind, key, value) VALUES (?, ?, ?, ?)`,
				sess.ID, kind, key, value)
			if err != nil {
				return fmt.Errorf("insert counter: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadReview rehydrates the review model for a stored session.
func (s *Store) LoadReview(ctx context.Context, sessionID string, logger *slog.Logger) (*Review, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, services.Wrap(services.ErrNotFound, "store", "load review",
			fmt.Sprintf("session %s does not exist", sessionID), nil)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, order_index, image_count, preview_ref, room_type, room_token,
                ev_offsets, raw_extension, marked_for_deletion, flagged_uncertain, selected
         FROM stacks WHERE session_id = ? ORDER BY order_index`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query stacks: %w", err)
	}
	defer rows.Close()

	var stacks []Stack
	for rows.Next() {
		stack, err := scanStack(rows)
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, stack)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	indexSnap, err := s.counterSnapshot(ctx, sessionID, "index")
	if err != nil {
		return nil, err
	}
	versionSnap, err := s.counterSnapshot(ctx, sessionID, "version")
	if err != nil {
		return nil, err
	}

	return NewReviewFromState(*sess, stacks, indexSnap, versionSnap, logger), nil
}

func (s *Store) counterSnapshot(ctx context.Context, sessionID, kind string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM counters WHERE session_id = ? AND kind = ?`, sessionID, kind)
	if err != nil {
		return nil, fmt.Errorf("query %s counters: %w", kind, err)
	}
	defer rows.Close()

	snapshot := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		snapshot[key] = value
	}
	return snapshot, rows.Err()
}

func scanSession(scanner interface{ Scan(dest ...any) error }) (*Session, error) {
	var (
		id           string
		shootCode    string
		shootDate    string
		createdRaw   string
		updatedRaw   string
		committedRaw sql.NullString
	)
	if err := scanner.Scan(&id, &shootCode, &shootDate, &createdRaw, &updatedRaw, &committedRaw); err != nil {
		return nil, err
	}
	sess := &Session{ID: id, ShootCode: shootCode, ShootDate: shootDate}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		sess.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		sess.UpdatedAt = updated
	}
	if committedRaw.Valid {
		if committed, err := time.Parse(time.RFC3339Nano, committedRaw.String); err == nil {
			sess.CommittedAt = &committed
		}
	}
	return sess, nil
}

func scanStack(scanner interface{ Scan(dest ...any) error }) (Stack, error) {
	var (
		id         string
		orderIndex int
		imageCount int
		previewRef sql.NullString
		roomType   sql.NullString
		roomToken  sql.NullString
		evOffsets  sql.NullString
		rawExt     sql.NullString
		deletion   int
		uncertain  int
		selected   int
	)
	if err := scanner.Scan(&id, &orderIndex, &imageCount, &previewRef, &roomType, &roomToken,
		&evOffsets, &rawExt, &deletion, &uncertain, &selected); err != nil {
		return Stack{}, err
	}
	stack := Stack{
		ID:                id,
		OrderIndex:        orderIndex,
		ImageCount:        imageCount,
		PreviewRef:        previewRef.String,
		RoomType:          roomType.String,
		RoomToken:         roomToken.String,
		RawExtension:      rawExt.String,
		MarkedForDeletion: deletion != 0,
		FlaggedUncertain:  uncertain != 0,
		Selected:          selected != 0,
	}
	if evOffsets.Valid && evOffsets.String != "" && evOffsets.String != "null" {
		if err := json.Unmarshal([]byte(evOffsets.String), &stack.EVOffsets); err != nil {
			return Stack{}, fmt.Errorf("unmarshal ev offsets for stack %s: %w", id, err)
		}
	}
	return stack, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
