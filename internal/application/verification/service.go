package verification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/email-otp-api/internal/domain"
	"github.com/email-otp-api/internal/infrastructure/smtp"
	"github.com/email-otp-api/internal/pkg/otp"
	"github.com/email-otp-api/internal/pkg/validate"
)

const mailSubject = "Your Verification Code"

// VerifyResult is the outcome of a successful code verification.
type VerifyResult struct {
	Verified    bool
	EmailOpened bool
	Token       string // proof token; empty when no signer is configured
}

type Service interface {
	IssueCode(ctx context.Context, email string) (messageID string, err error)
	VerifyCode(ctx context.Context, email, code string) (*VerifyResult, error)
	TrackOpen(trackingID string)
}

// CodeStore is the slice of the code store the service needs.
type CodeStore interface {
	Put(rec domain.VerificationCode)
	Consume(email, code string) (domain.VerificationCode, error)
	MarkOpened(trackingID string) bool
	TTL() time.Duration
}

// ProofSigner issues a signed assertion for a just-verified email.
type ProofSigner interface {
	Sign(email string, emailOpened bool) (string, error)
}

type ServiceDeps struct {
	Store         CodeStore
	Mailer        smtp.Mailer
	Signer        ProofSigner // optional
	PublicBaseURL string
}

type service struct {
	store   CodeStore
	mailer  smtp.Mailer
	signer  ProofSigner
	baseURL string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:   deps.Store,
		mailer:  deps.Mailer,
		signer:  deps.Signer,
		baseURL: deps.PublicBaseURL,
	}
}

func (s *service) IssueCode(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email is required: %w", domain.ErrInvalidInput)
	}
	if !validate.Email(email) {
		return "", fmt.Errorf("invalid email format: %w", domain.ErrInvalidInput)
	}

	code, err := otp.Code()
	if err != nil {
		return "", err
	}
	trackingID, err := otp.TrackingID()
	if err != nil {
		return "", err
	}

	rec := domain.VerificationCode{
		Email:      email,
		Code:       code,
		TrackingID: trackingID,
		IssuedAt:   time.Now().UTC(),
	}
	s.store.Put(rec)

	body, err := smtp.RenderVerificationEmail(smtp.TemplateData{
		Code:           code,
		RecipientEmail: email,
		TrackingURL:    fmt.Sprintf("%s/api/track/%s", s.baseURL, trackingID),
		ExpiryMinutes:  int(s.store.TTL().Minutes()),
	})
	if err != nil {
		return "", err
	}

	// The stored code is not rolled back on delivery failure: send and state
	// write are not transactional.
	messageID, err := s.mailer.Send(ctx, email, mailSubject, body)
	if err != nil {
		slog.Warn("verification mail not delivered", "email", email, "err", err)
		return "", err
	}
	return messageID, nil
}

func (s *service) VerifyCode(ctx context.Context, email, code string) (*VerifyResult, error) {
	if email == "" || code == "" {
		return nil, fmt.Errorf("email and code are required: %w", domain.ErrInvalidInput)
	}

	rec, err := s.store.Consume(email, code)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{Verified: true, EmailOpened: rec.Opened}
	if s.signer != nil {
		token, err := s.signer.Sign(email, rec.Opened)
		if err != nil {
			slog.Warn("failed to sign verification proof token", "email", email, "err", err)
		} else {
			result.Token = token
		}
	}
	return result, nil
}

func (s *service) TrackOpen(trackingID string) {
	if s.store.MarkOpened(trackingID) {
		slog.Debug("verification email opened", "tracking_id", trackingID)
	}
}
