package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/account-hub/internal/common/db"
	commonerrors "github.com/AlibekovAA/account-hub/internal/common/errors"
	"github.com/AlibekovAA/account-hub/internal/user/domain"
)

var ErrUserNotFound = errors.New("user not found")

const activeEmailIndex = "users_active_email_idx"

type Repository interface {
	// Save inserts a user without an ID and overwrites an existing one otherwise.
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id int64) (domain.User, error)
	FindByIDAndStatus(ctx context.Context, id int64, status domain.Status) (domain.User, error)
	FindByEmailAndStatus(ctx context.Context, email string, status domain.Status) (domain.User, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const userColumns = `id, email, nickname, address, status, certification_code, last_login_at`

func (r *PgRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	if user.IsPersisted() {
		return user, r.update(ctx, user)
	}

	start := time.Now()
	err := db.QuerierFrom(ctx, r.pool).QueryRow(
		ctx,
		`INSERT INTO users (email, nickname, address, status, certification_code, last_login_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		user.Email,
		user.Nickname,
		user.Address,
		string(user.Status),
		user.CertificationCode,
		user.LastLoginAt,
	).Scan(&user.ID)
	if db.IsUniqueViolation(err, activeEmailIndex) {
		return domain.User{}, commonerrors.ErrEmailAlreadyInUse.WithCause(err)
	}
	if err := db.HandleExecError(err, "insert user", start); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (r *PgRepository) update(ctx context.Context, user domain.User) error {
	start := time.Now()
	tag, err := db.QuerierFrom(ctx, r.pool).Exec(
		ctx,
		`UPDATE users
		 SET email = $2, nickname = $3, address = $4, status = $5, certification_code = $6, last_login_at = $7
		 WHERE id = $1`,
		user.ID,
		user.Email,
		user.Nickname,
		user.Address,
		string(user.Status),
		user.CertificationCode,
		user.LastLoginAt,
	)
	if db.IsUniqueViolation(err, activeEmailIndex) {
		return commonerrors.ErrEmailAlreadyInUse.WithCause(err)
	}
	if err := db.HandleExecError(err, "update user", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	start := time.Now()
	row := db.QuerierFrom(ctx, r.pool).QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)

	user, err := scanUser(row)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by id", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByIDAndStatus(ctx context.Context, id int64, status domain.Status) (domain.User, error) {
	start := time.Now()
	row := db.QuerierFrom(ctx, r.pool).QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND status = $2`,
		id,
		string(status),
	)

	user, err := scanUser(row)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by id and status", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// FindByEmailAndStatus returns the lowest-id match. Only one ACTIVE row can
// exist per email, but several PENDING ones may.
func (r *PgRepository) FindByEmailAndStatus(ctx context.Context, email string, status domain.Status) (domain.User, error) {
	start := time.Now()
	row := db.QuerierFrom(ctx, r.pool).QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND status = $2 ORDER BY id LIMIT 1`,
		email,
		string(status),
	)

	user, err := scanUser(row)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by email and status", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (domain.User, error) {
	var (
		user   domain.User
		status string
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Nickname,
		&user.Address,
		&status,
		&user.CertificationCode,
		&user.LastLoginAt,
	)
	user.Status = domain.Status(status)
	return user, err
}
