package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ecolehub/ecole-api/internal/domain"
)

type VerificationCodeRepository struct {
	db *sqlx.DB
}

func NewVerificationCodeRepo(db *sqlx.DB) *VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

func (r *VerificationCodeRepository) Upsert(ctx context.Context, email, code string, expiresAt time.Time) error {
	const query = `
        INSERT INTO verification_code (email, code, expires_at)
        VALUES (LOWER($1), $2, $3)
        ON CONFLICT (email) DO UPDATE
        SET code = EXCLUDED.code,
            expires_at = EXCLUDED.expires_at,
            created_at = NOW()
    `
	_, err := r.db.ExecContext(ctx, query, email, code, expiresAt)
	return err
}

func (r *VerificationCodeRepository) FindByEmail(ctx context.Context, email string) (*domain.VerificationCode, error) {
	const query = `
        SELECT email, code, expires_at, created_at
        FROM verification_code
        WHERE email = LOWER($1)
    `
	var record domain.VerificationCode
	if err := r.db.GetContext(ctx, &record, query, email); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *VerificationCodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	const query = `DELETE FROM verification_code WHERE email = LOWER($1)`
	_, err := r.db.ExecContext(ctx, query, email)
	return err
}
