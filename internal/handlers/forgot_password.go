package handlers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"VIAJAPLUS_BACK-END/internal/config"
	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/middleware"
	"VIAJAPLUS_BACK-END/internal/store"
	"VIAJAPLUS_BACK-END/internal/utils"
)

const (
	verificationCodeTTL      = 3 * time.Minute
	verificationCodeCooldown = 60 * time.Second
)

// ForgotPasswordHandler handles the email-code password reset flow
type ForgotPasswordHandler struct {
	store   store.Store
	config  *config.Config
	emailer *utils.EmailService
}

// NewForgotPasswordHandler creates a new ForgotPasswordHandler instance.
// emailer may be nil when SMTP is not configured; codes are then only logged.
func NewForgotPasswordHandler(st store.Store, cfg *config.Config, emailer *utils.EmailService) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{store: st, config: cfg, emailer: emailer}
}

// ForgotPassword sends a verification code to the user's email
// @Summary Request password reset
// @Description Send a 6-digit verification code to the user's email
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.ForgotPasswordResponse "Verification code sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 429 {object} dto.ErrorResponse "Code requested too recently"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/forgot-password [post]
func (h *ForgotPasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ForgotPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email is required")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Do not reveal whether the account exists.
			utils.WriteJSONResponse(w, http.StatusOK, dto.ForgotPasswordResponse{
				Message:   "If the account exists, a verification code has been sent",
				Email:     req.Email,
				ExpiresIn: verificationCodeTTL.String(),
			})
			return
		}
		log.Printf("Failed to load user %s: %v", req.Email, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to process request")
		return
	}

	// Enforce a cooldown between code requests.
	if latest, err := h.store.LatestVerification(r.Context(), user.ID, user.Email); err == nil && !latest.Used {
		if since := time.Since(latest.CreatedAt); since < verificationCodeCooldown {
			remaining := int((verificationCodeCooldown - since).Seconds())
			utils.WriteErrorResponse(w, http.StatusTooManyRequests, "Too many requests",
				fmt.Sprintf("Please wait %d seconds before requesting a new code", remaining))
			return
		}
	}

	code, err := generateVerificationCode(6)
	if err != nil {
		log.Printf("Failed to generate verification code: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to process request")
		return
	}

	now := time.Now()
	v := store.Verification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Email:     user.Email,
		Code:      code,
		ExpiresAt: now.Add(verificationCodeTTL),
		CreatedAt: now,
	}
	if err := h.store.CreateVerification(r.Context(), v); err != nil {
		log.Printf("Failed to store verification code for %s: %v", user.Email, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to process request")
		return
	}

	if h.emailer != nil {
		if err := h.emailer.SendVerificationCode(user.Email, code); err != nil {
			log.Printf("Failed to email verification code to %s: %v", user.Email, err)
		}
	} else {
		log.Printf("Verification code for %s: %s (expires in %s)", user.Email, code, verificationCodeTTL)
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ForgotPasswordResponse{
		Message:   "If the account exists, a verification code has been sent",
		Email:     req.Email,
		ExpiresIn: verificationCodeTTL.String(),
	})
}

// VerifyOTP checks the emailed code and issues a short-lived reset token
// @Summary Verify password reset code
// @Description Verify the 6-digit code and get a temporary reset token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and verification code"
// @Success 200 {object} dto.VerifyOTPResponse "Code verified"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/verify-otp [post]
func (h *ForgotPasswordHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.VerifyOTPRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and code are required")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "The verification code is incorrect or has expired")
		return
	}

	v, err := h.store.LatestVerification(r.Context(), user.ID, user.Email)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "The verification code is incorrect or has expired")
		return
	}

	if v.Used || time.Now().After(v.ExpiresAt) || v.Code != req.Code {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "The verification code is incorrect or has expired")
		return
	}

	resetToken, err := middleware.GenerateResetToken(user.ID, user.Email, v.Code, &h.config.JWT)
	if err != nil {
		log.Printf("Failed to generate reset token for %s: %v", user.ID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to process request")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.VerifyOTPResponse{
		Message:    "Code verified successfully",
		ResetToken: resetToken,
		ExpiresIn:  "10m",
	})
}

// ResetPassword sets a new password using a verified reset token
// @Summary Reset password
// @Description Set a new password using the reset token from code verification
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.ResetPasswordResponse "Password reset"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/reset-password [post]
func (h *ForgotPasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ResetPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.ResetToken == "" || req.NewPassword == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Reset token and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Password must be at least 6 characters")
		return
	}

	claims, err := middleware.ValidateResetToken(req.ResetToken, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid token", "Reset token is invalid or has expired")
		return
	}

	// The code must still be the latest and unused; a token survives exactly
	// one password reset.
	v, err := h.store.LatestVerification(r.Context(), claims.UserID, claims.Email)
	if err != nil || v.Used || v.Code != claims.Code {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid token", "Reset token is invalid or has expired")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to reset password")
		return
	}

	if err := h.store.UpdateUserPassword(r.Context(), claims.UserID, string(hash)); err != nil {
		log.Printf("Failed to update password for user %s: %v", claims.UserID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to reset password")
		return
	}

	if err := h.store.MarkVerificationUsed(r.Context(), v.ID); err != nil {
		log.Printf("Failed to mark verification %s used: %v", v.ID, err)
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ResetPasswordResponse{
		Message: "Password has been reset successfully",
	})
}

// generateVerificationCode generates a random n-digit verification code
func generateVerificationCode(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)

	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}

	return string(code), nil
}
