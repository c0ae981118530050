// Package handlers contains HTTP request handlers for the POS service.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/GunarsK-portfolio/pos-service/internal/mailer"
	"github.com/GunarsK-portfolio/pos-service/internal/metrics"
	"github.com/GunarsK-portfolio/pos-service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Client-facing messages.
const (
	msgInvalidCredentials = "Username atau password salah."
	msgUnknownAccount     = "Email atau username tidak terdaftar."
	msgOTPSent            = "OTP berhasil dikirim ke email Anda."
	msgOTPSendFailed      = "Gagal mengirim email OTP."
	msgOTPNotFound        = "OTP tidak ditemukan atau sudah kedaluwarsa. Silakan minta OTP baru."
	msgOTPExpired         = "Kode OTP sudah kedaluwarsa. Silakan minta OTP baru."
	msgOTPMismatch        = "Kode OTP yang Anda masukkan salah."
	msgOTPVerified        = "Verifikasi OTP berhasil."
	msgInvalidRequest     = "Format permintaan tidak valid."
	msgInternalError      = "Terjadi kesalahan pada server."
)

// AuthHandler handles login and password-reset HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	otpService  service.OTPService
	sender      mailer.Sender
	otpTTL      time.Duration
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authService service.AuthService,
	otpService service.OTPService,
	sender mailer.Sender,
	otpTTL time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
		sender:      sender,
		otpTTL:      otpTTL,
		metrics:     m,
		logger:      logger,
	}
}

// LoginRequest represents the login request payload. Empty fields fall
// through to the credential lookup and fail there.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SendOTPRequest represents the send-otp request payload.
type SendOTPRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// VerifyOTPRequest represents the verify-otp request payload.
type VerifyOTPRequest struct {
	Username   string `json:"username"`
	EnteredOTP string `json:"enteredOtp"`
}

// Login godoc
// @Summary Staff login
// @Description Authenticate by username and password and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		h.logger.Info("login failed", zap.String("username", req.Username))
		respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if err != nil {
		h.metrics.LoginsTotal.WithLabelValues("error").Inc()
		logAndRespondError(c, h.logger, http.StatusInternalServerError, err, msgInternalError)
		return
	}

	h.metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, response)
}

// SendOTP godoc
// @Summary Request password reset code
// @Description Issue a six-digit code for a matching username and email and send it by email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Account to reset"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /send-otp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	entry, err := h.otpService.RequestOTP(ctx, req.Username, req.Email)
	if errors.Is(err, service.ErrUserNotFound) {
		h.metrics.OTPRequests.WithLabelValues("not_found").Inc()
		respondError(c, http.StatusNotFound, msgUnknownAccount)
		return
	}
	if err != nil {
		h.metrics.OTPRequests.WithLabelValues("error").Inc()
		logAndRespondError(c, h.logger, http.StatusInternalServerError, err, msgInternalError)
		return
	}

	if err := h.sender.SendOTP(ctx, req.Email, entry.Username, entry.Code, h.otpTTL); err != nil {
		h.metrics.OTPRequests.WithLabelValues("delivery_failed").Inc()
		logAndRespondError(c, h.logger, http.StatusInternalServerError, err, msgOTPSendFailed)
		return
	}

	h.metrics.OTPRequests.WithLabelValues("sent").Inc()
	c.JSON(http.StatusOK, gin.H{"message": msgOTPSent})
}

// VerifyOTP godoc
// @Summary Verify password reset code
// @Description Check a submitted code; a matching code is consumed
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Submitted code"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	err := h.otpService.VerifyOTP(c.Request.Context(), req.Username, req.EnteredOTP)
	switch {
	case err == nil:
		h.metrics.OTPVerification.WithLabelValues("success").Inc()
		c.JSON(http.StatusOK, gin.H{"message": msgOTPVerified})
	case errors.Is(err, service.ErrOTPNotFound):
		h.metrics.OTPVerification.WithLabelValues("not_found").Inc()
		respondError(c, http.StatusBadRequest, msgOTPNotFound)
	case errors.Is(err, service.ErrOTPExpired):
		h.metrics.OTPVerification.WithLabelValues("expired").Inc()
		respondError(c, http.StatusBadRequest, msgOTPExpired)
	case errors.Is(err, service.ErrOTPMismatch):
		h.metrics.OTPVerification.WithLabelValues("mismatch").Inc()
		respondError(c, http.StatusBadRequest, msgOTPMismatch)
	default:
		h.metrics.OTPVerification.WithLabelValues("error").Inc()
		logAndRespondError(c, h.logger, http.StatusInternalServerError, err, msgInternalError)
	}
}
