package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ecolehub/ecole-api/internal/domain"
)

const accountColumns = "id, email, name, role, password_hash, photo_url, refresh_token, created_at, updated_at"

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepo(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, email, name string, passwordHash []byte, role domain.Role) (*domain.Account, error) {
	const query = `
        INSERT INTO account (email, name, role, password_hash)
        VALUES (LOWER($1), $2, $3, $4)
        RETURNING ` + accountColumns

	row := r.db.QueryRowxContext(ctx, query, email, name, role, passwordHash)
	var account domain.Account
	if err := row.StructScan(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT ` + accountColumns + `
        FROM account
        WHERE email = LOWER($1)
    `
	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	const query = `
        SELECT ` + accountColumns + `
        FROM account
        WHERE id = $1
    `
	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) UpdateInfo(ctx context.Context, id uuid.UUID, name, email *string) (*domain.Account, error) {
	const query = `
        UPDATE account
        SET name = COALESCE($2, name),
            email = COALESCE(LOWER($3), email),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + accountColumns

	row := r.db.QueryRowxContext(ctx, query, id, name, email)
	var account domain.Account
	if err := row.StructScan(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte) error {
	const query = `
        UPDATE account
        SET password_hash = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash)
	return err
}

func (r *AccountRepository) UpdatePasswordByEmail(ctx context.Context, email string, passwordHash []byte) error {
	const query = `
        UPDATE account
        SET password_hash = $2,
            updated_at = NOW()
        WHERE email = LOWER($1)
    `
	_, err := r.db.ExecContext(ctx, query, email, passwordHash)
	return err
}

func (r *AccountRepository) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	const query = `
        UPDATE account
        SET photo_url = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, photoURL)
	return err
}

func (r *AccountRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, refreshToken *string) error {
	const query = `
        UPDATE account
        SET refresh_token = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, refreshToken)
	return err
}

func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM account WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
