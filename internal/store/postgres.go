package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Users

func (s *PostgresStore) CreateUser(ctx context.Context, user User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, password_hash)
		VALUES ($1, LOWER($2), $3, $4)
	`, user.ID, user.Email, user.DisplayName, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at
		FROM users WHERE email = LOWER($1)
	`, email).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at
		FROM users WHERE id = $1
	`, userID).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash=$2 WHERE id=$1`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Password resets

func (s *PostgresStore) CreatePasswordReset(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO password_resets (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("create password reset: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetPasswordReset(ctx context.Context, token string) (string, error) {
	var userID string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id FROM password_resets
		WHERE token=$1 AND used_at IS NULL AND expires_at > NOW()
	`, token).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *PostgresStore) MarkPasswordResetUsed(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE password_resets SET used_at=NOW() WHERE token=$1`, token)
	if err != nil {
		return fmt.Errorf("mark password reset used: %w", err)
	}
	return nil
}

// Refresh sessions (Postgres fallback when Redis is not configured)

func (s *PostgresStore) SaveRefreshSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_sessions (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO UPDATE SET user_id=EXCLUDED.user_id, expires_at=EXCLUDED.expires_at, revoked_at=NULL
	`, tokenHash, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}

func (s *PostgresStore) LookupRefreshSession(ctx context.Context, tokenHash string) (User, error) {
	const query = `
		SELECT u.id, u.email, u.display_name
		FROM refresh_sessions rs
		JOIN users u ON u.id = rs.user_id
		WHERE rs.token_hash = $1
			AND rs.revoked_at IS NULL
			AND rs.expires_at > NOW()
	`
	var user User
	err := s.db.QueryRowContext(ctx, query, tokenHash).Scan(&user.ID, &user.Email, &user.DisplayName)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) RevokeRefreshSession(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE refresh_sessions SET revoked_at=NOW() WHERE token_hash=$1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}

// History

func (s *PostgresStore) SaveHistory(ctx context.Context, rec HistoryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history_records (id, user_id, operation, content, output, label, valid)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.UserID, rec.Operation, rec.Content, rec.Output, rec.Label, rec.Valid)
	if err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListHistory(ctx context.Context, userID string, limit, offset int) (HistoryPage, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM history_records WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return HistoryPage{}, fmt.Errorf("count history: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, operation, content, output, label, valid, created_at
		FROM history_records
		WHERE user_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return HistoryPage{}, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	page := HistoryPage{Records: []HistoryRecord{}, Total: total}
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Operation, &rec.Content, &rec.Output, &rec.Label, &rec.Valid, &rec.CreatedAt); err != nil {
			return HistoryPage{}, fmt.Errorf("scan history record: %w", err)
		}
		page.Records = append(page.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return HistoryPage{}, fmt.Errorf("iterate history: %w", err)
	}
	return page, nil
}

func (s *PostgresStore) GetHistory(ctx context.Context, userID, id string) (HistoryRecord, error) {
	var rec HistoryRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, operation, content, output, label, valid, created_at
		FROM history_records
		WHERE id=$1 AND user_id=$2
	`, id, userID).Scan(&rec.ID, &rec.UserID, &rec.Operation, &rec.Content, &rec.Output, &rec.Label, &rec.Valid, &rec.CreatedAt)
	if err != nil {
		return HistoryRecord{}, err
	}
	return rec, nil
}

func (s *PostgresStore) DeleteHistory(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM history_records WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete history record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete history record: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
