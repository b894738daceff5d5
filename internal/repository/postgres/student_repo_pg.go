package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/repository/ports"
)

const studentColumns = "id, account_id, last_name, first_name, birth_date, class_name, city, email, created_at, updated_at"

type StudentRepository struct {
	db *sqlx.DB
}

func NewStudentRepo(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, profile *domain.StudentProfile) (*domain.StudentProfile, error) {
	const query = `
        INSERT INTO student_profile (account_id, last_name, first_name, birth_date, class_name, city, email)
        VALUES ($1, $2, $3, $4, $5, $6, LOWER($7))
        RETURNING ` + studentColumns

	row := r.db.QueryRowxContext(ctx, query,
		profile.AccountID, profile.LastName, profile.FirstName,
		profile.BirthDate, profile.ClassName, profile.City, profile.Email)
	var created domain.StudentProfile
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StudentProfile, error) {
	const query = `
        SELECT ` + studentColumns + `
        FROM student_profile
        WHERE id = $1
    `
	var profile domain.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *StudentRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.StudentProfile, error) {
	const query = `
        SELECT ` + studentColumns + `
        FROM student_profile
        WHERE account_id = $1
    `
	var profile domain.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, accountID); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *StudentRepository) List(ctx context.Context, search string) ([]domain.StudentProfile, error) {
	const query = `
        SELECT ` + studentColumns + `
        FROM student_profile
        WHERE $1 = ''
           OR last_name ILIKE '%' || $1 || '%'
           OR first_name ILIKE '%' || $1 || '%'
           OR email ILIKE '%' || $1 || '%'
           OR class_name ILIKE '%' || $1 || '%'
        ORDER BY last_name, first_name
    `
	profiles := []domain.StudentProfile{}
	if err := r.db.SelectContext(ctx, &profiles, query, search); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *StudentRepository) Update(ctx context.Context, id uuid.UUID, in ports.StudentUpdate) (*domain.StudentProfile, error) {
	const query = `
        UPDATE student_profile
        SET last_name = COALESCE($2, last_name),
            first_name = COALESCE($3, first_name),
            birth_date = COALESCE($4, birth_date),
            class_name = COALESCE($5, class_name),
            city = COALESCE($6, city),
            email = COALESCE(LOWER($7), email),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + studentColumns

	row := r.db.QueryRowxContext(ctx, query, id,
		in.LastName, in.FirstName, in.BirthDate, in.ClassName, in.City, in.Email)
	var profile domain.StudentProfile
	if err := row.StructScan(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *StudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM student_profile WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
