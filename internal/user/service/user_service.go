package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlibekovAA/account-hub/internal/common/clock"
	"github.com/AlibekovAA/account-hub/internal/common/crypto"
	"github.com/AlibekovAA/account-hub/internal/common/db"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
	"github.com/AlibekovAA/account-hub/internal/user/domain"
	userrepo "github.com/AlibekovAA/account-hub/internal/user/repository"
)

type UserServiceDeps struct {
	Repo          userrepo.Repository
	TxManager     db.TxManager
	Certification CertificationSender
	IDGenerator   crypto.IDGenerator
	Clock         clock.Clock
	Log           *logger.Logger
}

type UserService struct {
	repo          userrepo.Repository
	txManager     db.TxManager
	certification CertificationSender
	idGenerator   crypto.IDGenerator
	clock         clock.Clock
	log           *logger.Logger
}

func NewUserService(deps UserServiceDeps) *UserService {
	txManager := deps.TxManager
	if txManager == nil {
		txManager = db.NoopTxManager{}
	}
	return &UserService{
		repo:          deps.Repo,
		txManager:     txManager,
		certification: deps.Certification,
		idGenerator:   deps.IDGenerator,
		clock:         deps.Clock,
		log:           deps.Log,
	}
}

// GetByEmail returns the ACTIVE user owning email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := s.repo.FindByEmailAndStatus(ctx, email, domain.StatusActive)
	if err != nil {
		return domain.User{}, s.lookupError(ctx, err, email, "get_by_email")
	}
	return user, nil
}

// GetByID returns the user with id only while it is ACTIVE.
func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.repo.FindByIDAndStatus(ctx, id, domain.StatusActive)
	if err != nil {
		return domain.User{}, s.lookupError(ctx, err, id, "get_by_id")
	}
	return user, nil
}

// Create stores a PENDING user and mails its certification link. A failed
// mail is logged; the user stays created.
func (s *UserService) Create(ctx context.Context, in domain.UserCreate) (domain.User, error) {
	code, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "create_user_code_failed",
		}).Errorf("create user failed: %v", err)
		return domain.User{}, fmt.Errorf("failed to generate certification code: %w", err)
	}

	var user domain.User
	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		saved, err := s.repo.Save(ctx, domain.NewUser(in, code))
		if err != nil {
			return err
		}
		user = saved
		return nil
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "create_user_failed",
		}).Errorf("create user failed: %v", err)
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.UsersCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": user.ID,
		"action":  "user_created",
	}).Info("user created")

	if err := s.certification.SendCertificationEmail(ctx, user.Email, user.ID, user.CertificationCode); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": user.ID,
			"action":  "certification_mail_failed",
		}).Errorf("certification mail not sent: %v", err)
	}

	return user, nil
}

// Update changes nickname and address of an ACTIVE user.
func (s *UserService) Update(ctx context.Context, id int64, in domain.UserUpdate) (domain.User, error) {
	var user domain.User
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}
		saved, err := s.repo.Save(ctx, current.Update(in))
		if err != nil {
			return s.saveError(ctx, err, id, "update_user")
		}
		user = saved
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": id,
		"action":  "user_updated",
	}).Info("user updated")
	return user, nil
}

// Login stamps the last login time. The status is not checked.
func (s *UserService) Login(ctx context.Context, id int64) error {
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return s.lookupError(ctx, err, id, "login")
		}
		if _, err := s.repo.Save(ctx, user.Login(s.clock)); err != nil {
			return s.saveError(ctx, err, id, "login")
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.UserLoginsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": id,
		"action":  "user_login",
	}).Debug("login recorded")
	return nil
}

// VerifyEmail activates the user when certificationCode matches. Nothing is
// written on a mismatch.
func (s *UserService) VerifyEmail(ctx context.Context, id int64, certificationCode string) error {
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return s.lookupError(ctx, err, id, "verify_email")
		}

		certified, err := user.Certificate(certificationCode)
		if err != nil {
			metrics.CertificationMismatchTotal.Inc()
			s.log.WithFields(ctx, logger.Fields{
				"user_id": id,
				"action":  "verify_email_mismatch",
			}).Warn("verify email failed: certification code mismatch")
			return err
		}

		if _, err := s.repo.Save(ctx, certified); err != nil {
			return s.saveError(ctx, err, id, "verify_email")
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.UsersVerifiedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": id,
		"action":  "user_verified",
	}).Info("email verified")
	return nil
}

func (s *UserService) lookupError(ctx context.Context, err error, key any, action string) error {
	if errors.Is(err, userrepo.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"key":    key,
			"action": action + "_not_found",
		}).Debug("user not found")
		return domain.NotFound(key)
	}
	s.log.WithFields(ctx, logger.Fields{
		"key":    key,
		"action": action + "_failed",
	}).Errorf("user lookup failed: %v", err)
	return fmt.Errorf("failed to load user: %w", err)
}

func (s *UserService) saveError(ctx context.Context, err error, id int64, action string) error {
	if errors.Is(err, userrepo.ErrUserNotFound) {
		return domain.NotFound(id)
	}
	s.log.WithFields(ctx, logger.Fields{
		"user_id": id,
		"action":  action + "_failed",
	}).Errorf("user save failed: %v", err)
	return fmt.Errorf("failed to save user: %w", err)
}
