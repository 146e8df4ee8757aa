package http

import (
	"github.com/email-otp-api/internal/application/verification"
	"github.com/email-otp-api/internal/infrastructure/memstore"
	"github.com/email-otp-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Store  *memstore.Store
	Mailer smtp.Mailer
	// Signer is optional; when nil, verify responses carry no proof token.
	Signer verification.ProofSigner
}
