package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/repository/ports"
)

const administratorColumns = "id, account_id, last_name, first_name, birth_date, function, email, created_at, updated_at"

type AdministratorRepository struct {
	db *sqlx.DB
}

func NewAdministratorRepo(db *sqlx.DB) *AdministratorRepository {
	return &AdministratorRepository{db: db}
}

func (r *AdministratorRepository) Create(ctx context.Context, profile *domain.AdministratorProfile) (*domain.AdministratorProfile, error) {
	const query = `
        INSERT INTO administrator_profile (account_id, last_name, first_name, birth_date, function, email)
        VALUES ($1, $2, $3, $4, $5, LOWER($6))
        RETURNING ` + administratorColumns

	row := r.db.QueryRowxContext(ctx, query,
		profile.AccountID, profile.LastName, profile.FirstName,
		profile.BirthDate, profile.Function, profile.Email)
	var created domain.AdministratorProfile
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *AdministratorRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.AdministratorProfile, error) {
	const query = `
        SELECT ` + administratorColumns + `
        FROM administrator_profile
        WHERE account_id = $1
    `
	var profile domain.AdministratorProfile
	if err := r.db.GetContext(ctx, &profile, query, accountID); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *AdministratorRepository) Update(ctx context.Context, id uuid.UUID, in ports.AdministratorUpdate) (*domain.AdministratorProfile, error) {
	const query = `
        UPDATE administrator_profile
        SET last_name = COALESCE($2, last_name),
            first_name = COALESCE($3, first_name),
            birth_date = COALESCE($4, birth_date),
            function = COALESCE($5, function),
            email = COALESCE(LOWER($6), email),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + administratorColumns

	row := r.db.QueryRowxContext(ctx, query, id,
		in.LastName, in.FirstName, in.BirthDate, in.Function, in.Email)
	var profile domain.AdministratorProfile
	if err := row.StructScan(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
