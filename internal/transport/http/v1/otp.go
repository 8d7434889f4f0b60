package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/wrapped/internal/adapter/bereal"
)

// OTPRequest is the request to send an OTP code.
type OTPRequest struct {
	Phone string `json:"phone"`
}

// OTPValidateRequest is the request to validate an OTP code.
type OTPValidateRequest struct {
	Phone      string `json:"phone"`
	OTPSession string `json:"otp_session"`
	OTPCode    string `json:"otp_code"`
}

// RequestOTP requests an OTP code for a user.
// POST /request-otp
func (h *Handler) RequestOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req OTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Phone == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "phone is required"})
	}

	otpSession, err := h.service.RequestOTP(ctx, req.Phone)
	if err != nil {
		// An unreachable provider is not the caller's fault.
		if errors.Is(err, bereal.ErrUnavailable) {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "Verification service unavailable; try again later"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid phone number"})
	}

	return c.JSON(http.StatusOK, map[string]string{"otpSession": otpSession})
}

// ValidateOTP validates the user's OTP code and returns the session token.
// POST /validate-otp
func (h *Handler) ValidateOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req OTPValidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Phone == "" || req.OTPSession == "" || req.OTPCode == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "phone, otp_session, and otp_code are required"})
	}

	token, err := h.service.VerifyOTP(ctx, req.Phone, req.OTPSession, req.OTPCode)
	if err != nil {
		if errors.Is(err, bereal.ErrUnavailable) {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "Verification service unavailable; try again later"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid verification code"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
