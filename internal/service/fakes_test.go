package service

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/repository/ports"
)

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*domain.Account

	updatePasswordByEmailErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[uuid.UUID]*domain.Account{}}
}

func (f *fakeAccountRepo) byEmail(email string) *domain.Account {
	for _, a := range f.accounts {
		if a.Email == email {
			return a
		}
	}
	return nil
}

func (f *fakeAccountRepo) Create(ctx context.Context, email, name string, passwordHash []byte, role domain.Role) (*domain.Account, error) {
	if f.byEmail(email) != nil {
		return nil, uniqueViolation()
	}
	account := &domain.Account{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: append([]byte(nil), passwordHash...),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.accounts[account.ID] = account
	return account, nil
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if a := f.byEmail(email); a != nil {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAccountRepo) UpdateInfo(ctx context.Context, id uuid.UUID, name, email *string) (*domain.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if email != nil {
		if other := f.byEmail(*email); other != nil && other.ID != id {
			return nil, uniqueViolation()
		}
		a.Email = *email
	}
	if name != nil {
		a.Name = *name
	}
	a.UpdatedAt = time.Now()
	return a, nil
}

func (f *fakeAccountRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte) error {
	a, ok := f.accounts[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.PasswordHash = append([]byte(nil), passwordHash...)
	return nil
}

func (f *fakeAccountRepo) UpdatePasswordByEmail(ctx context.Context, email string, passwordHash []byte) error {
	if f.updatePasswordByEmailErr != nil {
		return f.updatePasswordByEmailErr
	}
	a := f.byEmail(email)
	if a == nil {
		return sql.ErrNoRows
	}
	a.PasswordHash = append([]byte(nil), passwordHash...)
	return nil
}

func (f *fakeAccountRepo) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	a, ok := f.accounts[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.PhotoURL = &photoURL
	return nil
}

func (f *fakeAccountRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, refreshToken *string) error {
	a, ok := f.accounts[id]
	if !ok {
		return sql.ErrNoRows
	}
	if refreshToken == nil {
		a.RefreshToken = nil
		return nil
	}
	value := *refreshToken
	a.RefreshToken = &value
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.accounts[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.accounts, id)
	return nil
}

type fakeCodeRepo struct {
	codes map[string]*domain.VerificationCode
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{codes: map[string]*domain.VerificationCode{}}
}

func (f *fakeCodeRepo) Upsert(ctx context.Context, email, code string, expiresAt time.Time) error {
	f.codes[email] = &domain.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeCodeRepo) FindByEmail(ctx context.Context, email string) (*domain.VerificationCode, error) {
	if c, ok := f.codes[email]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCodeRepo) DeleteByEmail(ctx context.Context, email string) error {
	delete(f.codes, email)
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*domain.ResetToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*domain.ResetToken{}}
}

func (f *fakeTokenRepo) Replace(ctx context.Context, email, token string, expiresAt time.Time) error {
	for key, record := range f.tokens {
		if record.Email == email {
			delete(f.tokens, key)
		}
	}
	f.tokens[token] = &domain.ResetToken{
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeTokenRepo) FindByToken(ctx context.Context, token string) (*domain.ResetToken, error) {
	if record, ok := f.tokens[token]; ok {
		return record, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTokenRepo) DeleteByToken(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeStudentRepo struct {
	profiles map[uuid.UUID]*domain.StudentProfile
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{profiles: map[uuid.UUID]*domain.StudentProfile{}}
}

func (f *fakeStudentRepo) Create(ctx context.Context, profile *domain.StudentProfile) (*domain.StudentProfile, error) {
	for _, p := range f.profiles {
		if p.AccountID == profile.AccountID {
			return nil, uniqueViolation()
		}
	}
	stored := *profile
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = time.Now()
	f.profiles[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.StudentProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.StudentProfile, error) {
	for _, p := range f.profiles {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentRepo) List(ctx context.Context, search string) ([]domain.StudentProfile, error) {
	out := make([]domain.StudentProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, id uuid.UUID, in ports.StudentUpdate) (*domain.StudentProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if in.LastName != nil {
		p.LastName = *in.LastName
	}
	if in.FirstName != nil {
		p.FirstName = *in.FirstName
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.ClassName != nil {
		p.ClassName = *in.ClassName
	}
	if in.City != nil {
		p.City = in.City
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	p.UpdatedAt = time.Now()
	return p, nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.profiles[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.profiles, id)
	return nil
}

type fakeTeacherRepo struct {
	profiles map[uuid.UUID]*domain.TeacherProfile
}

func newFakeTeacherRepo() *fakeTeacherRepo {
	return &fakeTeacherRepo{profiles: map[uuid.UUID]*domain.TeacherProfile{}}
}

func (f *fakeTeacherRepo) Create(ctx context.Context, profile *domain.TeacherProfile) (*domain.TeacherProfile, error) {
	stored := *profile
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = time.Now()
	f.profiles[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeTeacherRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.TeacherProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTeacherRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.TeacherProfile, error) {
	for _, p := range f.profiles {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTeacherRepo) List(ctx context.Context, search string) ([]domain.TeacherProfile, error) {
	out := make([]domain.TeacherProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeTeacherRepo) Update(ctx context.Context, id uuid.UUID, in ports.TeacherUpdate) (*domain.TeacherProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if in.LastName != nil {
		p.LastName = *in.LastName
	}
	if in.FirstName != nil {
		p.FirstName = *in.FirstName
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.Subject != nil {
		p.Subject = *in.Subject
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	p.UpdatedAt = time.Now()
	return p, nil
}

func (f *fakeTeacherRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.profiles[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.profiles, id)
	return nil
}

type fakeAdministratorRepo struct {
	profiles map[uuid.UUID]*domain.AdministratorProfile
}

func newFakeAdministratorRepo() *fakeAdministratorRepo {
	return &fakeAdministratorRepo{profiles: map[uuid.UUID]*domain.AdministratorProfile{}}
}

func (f *fakeAdministratorRepo) Create(ctx context.Context, profile *domain.AdministratorProfile) (*domain.AdministratorProfile, error) {
	stored := *profile
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = time.Now()
	f.profiles[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeAdministratorRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.AdministratorProfile, error) {
	for _, p := range f.profiles {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdministratorRepo) Update(ctx context.Context, id uuid.UUID, in ports.AdministratorUpdate) (*domain.AdministratorProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if in.LastName != nil {
		p.LastName = *in.LastName
	}
	if in.FirstName != nil {
		p.FirstName = *in.FirstName
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.Function != nil {
		p.Function = *in.Function
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	p.UpdatedAt = time.Now()
	return p, nil
}

// fakeMailer records deliveries and satisfies both sender interfaces.
type fakeMailer struct {
	codes map[string]string
	links map[string]string

	sendErr error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{codes: map[string]string{}, links: map[string]string{}}
}

func (f *fakeMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.codes[email] = code
	return nil
}

func (f *fakeMailer) SendPasswordReset(ctx context.Context, email, link string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.links[email] = link
	return nil
}

type fakeObjectStorage struct {
	bucket      string
	objectName  string
	contentType string
	size        int64
	data        []byte

	uploadErr error
}

func (f *fakeObjectStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.bucket = bucket
	f.objectName = objectName
	f.contentType = contentType
	f.size = size
	f.data = data
	return "https://cdn.test/" + bucket + "/" + objectName, nil
}
