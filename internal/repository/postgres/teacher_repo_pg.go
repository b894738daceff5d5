package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/repository/ports"
)

const teacherColumns = "id, account_id, last_name, first_name, birth_date, subject, email, created_at, updated_at"

type TeacherRepository struct {
	db *sqlx.DB
}

func NewTeacherRepo(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

func (r *TeacherRepository) Create(ctx context.Context, profile *domain.TeacherProfile) (*domain.TeacherProfile, error) {
	const query = `
        INSERT INTO teacher_profile (account_id, last_name, first_name, birth_date, subject, email)
        VALUES ($1, $2, $3, $4, $5, LOWER($6))
        RETURNING ` + teacherColumns

	row := r.db.QueryRowxContext(ctx, query,
		profile.AccountID, profile.LastName, profile.FirstName,
		profile.BirthDate, profile.Subject, profile.Email)
	var created domain.TeacherProfile
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *TeacherRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TeacherProfile, error) {
	const query = `
        SELECT ` + teacherColumns + `
        FROM teacher_profile
        WHERE id = $1
    `
	var profile domain.TeacherProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *TeacherRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.TeacherProfile, error) {
	const query = `
        SELECT ` + teacherColumns + `
        FROM teacher_profile
        WHERE account_id = $1
    `
	var profile domain.TeacherProfile
	if err := r.db.GetContext(ctx, &profile, query, accountID); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *TeacherRepository) List(ctx context.Context, search string) ([]domain.TeacherProfile, error) {
	const query = `
        SELECT ` + teacherColumns + `
        FROM teacher_profile
        WHERE $1 = ''
           OR last_name ILIKE '%' || $1 || '%'
           OR first_name ILIKE '%' || $1 || '%'
           OR email ILIKE '%' || $1 || '%'
           OR subject ILIKE '%' || $1 || '%'
        ORDER BY last_name, first_name
    `
	profiles := []domain.TeacherProfile{}
	if err := r.db.SelectContext(ctx, &profiles, query, search); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *TeacherRepository) Update(ctx context.Context, id uuid.UUID, in ports.TeacherUpdate) (*domain.TeacherProfile, error) {
	const query = `
        UPDATE teacher_profile
        SET last_name = COALESCE($2, last_name),
            first_name = COALESCE($3, first_name),
            birth_date = COALESCE($4, birth_date),
            subject = COALESCE($5, subject),
            email = COALESCE(LOWER($6), email),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + teacherColumns

	row := r.db.QueryRowxContext(ctx, query, id,
		in.LastName, in.FirstName, in.BirthDate, in.Subject, in.Email)
	var profile domain.TeacherProfile
	if err := row.StructScan(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *TeacherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM teacher_profile WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
