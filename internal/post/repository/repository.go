package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/account-hub/internal/common/db"
	"github.com/AlibekovAA/account-hub/internal/post/domain"
	userdomain "github.com/AlibekovAA/account-hub/internal/user/domain"
)

var ErrPostNotFound = errors.New("post not found")

type Repository interface {
	// Save inserts a post without an ID and overwrites an existing one otherwise.
	// Only the writer's ID is stored.
	Save(ctx context.Context, post domain.Post) (domain.Post, error)
	// FindByID returns the post with its writer loaded.
	FindByID(ctx context.Context, id int64) (domain.Post, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, post domain.Post) (domain.Post, error) {
	q := db.QuerierFrom(ctx, r.pool)
	start := time.Now()

	if post.ID != 0 {
		tag, err := q.Exec(
			ctx,
			`UPDATE posts SET content = $2, created_at = $3, modified_at = $4, writer_id = $5 WHERE id = $1`,
			post.ID,
			post.Content,
			post.CreatedAt,
			post.ModifiedAt,
			post.Writer.ID,
		)
		if err := db.HandleExecError(err, "update post", start); err != nil {
			return domain.Post{}, err
		}
		if tag.RowsAffected() == 0 {
			return domain.Post{}, ErrPostNotFound
		}
		return post, nil
	}

	err := q.QueryRow(
		ctx,
		`INSERT INTO posts (content, created_at, modified_at, writer_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		post.Content,
		post.CreatedAt,
		post.ModifiedAt,
		post.Writer.ID,
	).Scan(&post.ID)
	if err := db.HandleExecError(err, "insert post", start); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Post, error) {
	start := time.Now()
	row := db.QuerierFrom(ctx, r.pool).QueryRow(
		ctx,
		`SELECT p.id, p.content, p.created_at, p.modified_at,
		        u.id, u.email, u.nickname, u.address, u.status, u.certification_code, u.last_login_at
		 FROM posts p
		 JOIN users u ON u.id = p.writer_id
		 WHERE p.id = $1`,
		id,
	)

	var (
		post   domain.Post
		status string
	)
	err := row.Scan(
		&post.ID,
		&post.Content,
		&post.CreatedAt,
		&post.ModifiedAt,
		&post.Writer.ID,
		&post.Writer.Email,
		&post.Writer.Nickname,
		&post.Writer.Address,
		&status,
		&post.Writer.CertificationCode,
		&post.Writer.LastLoginAt,
	)
	if err := db.HandleQueryError(err, ErrPostNotFound, "find post by id", start); err != nil {
		return domain.Post{}, err
	}
	post.Writer.Status = userdomain.Status(status)
	return post, nil
}
