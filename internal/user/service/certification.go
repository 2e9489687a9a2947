package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/common/mail"
)

const (
	certificationSubject    = "Please certify your email address"
	certificationBodyPrefix = "Please click the following link to certify your email address: "
)

// CertificationSender delivers the link a PENDING user follows to activate.
type CertificationSender interface {
	SendCertificationEmail(ctx context.Context, email string, userID int64, certificationCode string) error
}

type CertificationService struct {
	sender  mail.Sender
	baseURL string
	log     *logger.Logger
}

func NewCertificationService(sender mail.Sender, baseURL string, log *logger.Logger) *CertificationService {
	return &CertificationService{
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// CertificationURL must stay in sync with the verify route.
func CertificationURL(baseURL string, userID int64, certificationCode string) string {
	return fmt.Sprintf("%s/api/users/%d/verify?certificationCode=%s", strings.TrimRight(baseURL, "/"), userID, certificationCode)
}

func (s *CertificationService) SendCertificationEmail(ctx context.Context, email string, userID int64, certificationCode string) error {
	url := CertificationURL(s.baseURL, userID, certificationCode)

	s.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"action":  "certification_mail_requested",
	}).Debug("sending certification mail")

	if err := s.sender.Send(ctx, email, certificationSubject, certificationBodyPrefix+url); err != nil {
		return fmt.Errorf("failed to send certification mail: %w", err)
	}
	return nil
}
