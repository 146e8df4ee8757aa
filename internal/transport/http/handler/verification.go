package handler

import (
	"encoding/json"
	"net/http"

	"github.com/email-otp-api/internal/application/verification"
	"github.com/email-otp-api/internal/pkg/validate"
)

// VerificationHandler handles code issuance and verification.
type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

type sendCodeRequest struct {
	Email string `json:"email"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *VerificationHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		writeFailure(w, http.StatusBadRequest, "Email is required")
		return
	}
	if !validate.Email(req.Email) {
		writeFailure(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	messageID, err := h.svc.IssueCode(r.Context(), req.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, "Verification code sent", map[string]string{"messageId": messageID})
}

func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Code == "" {
		writeFailure(w, http.StatusBadRequest, "Email and code are required")
		return
	}

	result, err := h.svc.VerifyCode(r.Context(), req.Email, req.Code)
	if err != nil {
		httpError(w, err)
		return
	}

	data := map[string]interface{}{
		"verified":    result.Verified,
		"emailOpened": result.EmailOpened,
	}
	if result.Token != "" {
		data["token"] = result.Token
	}
	writeSuccess(w, "Code verified successfully", data)
}
