package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlibekovAA/account-hub/internal/common/clock"
	"github.com/AlibekovAA/account-hub/internal/common/db"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
	"github.com/AlibekovAA/account-hub/internal/post/domain"
	postrepo "github.com/AlibekovAA/account-hub/internal/post/repository"
	userdomain "github.com/AlibekovAA/account-hub/internal/user/domain"
	userrepo "github.com/AlibekovAA/account-hub/internal/user/repository"
)

type PostServiceDeps struct {
	Repo      postrepo.Repository
	Users     userrepo.Repository
	TxManager db.TxManager
	Clock     clock.Clock
	Log       *logger.Logger
}

type PostService struct {
	repo      postrepo.Repository
	users     userrepo.Repository
	txManager db.TxManager
	clock     clock.Clock
	log       *logger.Logger
}

func NewPostService(deps PostServiceDeps) *PostService {
	txManager := deps.TxManager
	if txManager == nil {
		txManager = db.NoopTxManager{}
	}
	return &PostService{
		repo:      deps.Repo,
		users:     deps.Users,
		txManager: txManager,
		clock:     deps.Clock,
		log:       deps.Log,
	}
}

func (s *PostService) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"post_id": id,
				"action":  "get_post_not_found",
			}).Debug("post not found")
			return domain.Post{}, domain.NotFound(id)
		}
		s.log.WithFields(ctx, logger.Fields{
			"post_id": id,
			"action":  "get_post_failed",
		}).Errorf("get post failed: %v", err)
		return domain.Post{}, fmt.Errorf("failed to load post: %w", err)
	}
	return post, nil
}

// Create stores a post written by writerID. The writer's status is not checked.
func (s *PostService) Create(ctx context.Context, in domain.PostCreate) (domain.Post, error) {
	var post domain.Post
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		writer, err := s.users.FindByID(ctx, in.WriterID)
		if err != nil {
			if errors.Is(err, userrepo.ErrUserNotFound) {
				return userdomain.NotFound(in.WriterID)
			}
			return fmt.Errorf("failed to load writer: %w", err)
		}

		saved, err := s.repo.Save(ctx, domain.NewPost(writer, in, s.clock))
		if err != nil {
			return fmt.Errorf("failed to save post: %w", err)
		}
		post = saved
		return nil
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"writer_id": in.WriterID,
			"action":    "create_post_failed",
		}).Warnf("create post failed: %v", err)
		return domain.Post{}, err
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id":   post.ID,
		"writer_id": in.WriterID,
		"action":    "post_created",
	}).Info("post created")
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id int64, in domain.PostUpdate) (domain.Post, error) {
	var post domain.Post
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}

		saved, err := s.repo.Save(ctx, current.Update(in, s.clock))
		if err != nil {
			if errors.Is(err, postrepo.ErrPostNotFound) {
				return domain.NotFound(id)
			}
			return fmt.Errorf("failed to save post: %w", err)
		}
		post = saved
		return nil
	})
	if err != nil {
		return domain.Post{}, err
	}

	metrics.PostsUpdatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id": id,
		"action":  "post_updated",
	}).Info("post updated")
	return post, nil
}
