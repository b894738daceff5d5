package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ecolehub/ecole-api/internal/domain"
)

type ResetTokenRepository struct {
	db *sqlx.DB
}

func NewResetTokenRepo(db *sqlx.DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

func (r *ResetTokenRepository) Replace(ctx context.Context, email, token string, expiresAt time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reset_token WHERE email = LOWER($1)`, email); err != nil {
		return err
	}
	const insert = `
        INSERT INTO reset_token (email, token, expires_at)
        VALUES (LOWER($1), $2, $3)
    `
	if _, err := tx.ExecContext(ctx, insert, email, token, expiresAt); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ResetTokenRepository) FindByToken(ctx context.Context, token string) (*domain.ResetToken, error) {
	const query = `
        SELECT email, token, expires_at, created_at
        FROM reset_token
        WHERE token = $1
    `
	var record domain.ResetToken
	if err := r.db.GetContext(ctx, &record, query, token); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ResetTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	const query = `DELETE FROM reset_token WHERE token = $1`
	_, err := r.db.ExecContext(ctx, query, token)
	return err
}
