package service

import (
	"context"
	"fmt"
)

// RequestOTP asks the provider to send an OTP to the given phone number and
// returns the opaque OTP session handle.
func (s *Service) RequestOTP(ctx context.Context, phone string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("phone is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ProviderTimeout)
	defer cancel()

	otpSession, err := s.provider.SendCode(ctx, "+"+phone)
	if err != nil {
		return "", err
	}
	return otpSession, nil
}

// VerifyOTP exchanges the OTP code for a bearer token and records the
// verified session for the identity. The stored entry expires after the
// configured token TTL.
func (s *Service) VerifyOTP(ctx context.Context, phone, otpSession, code string) (string, error) {
	if phone == "" || otpSession == "" || code == "" {
		return "", fmt.Errorf("phone, otp_session, and otp_code are required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ProviderTimeout)
	defer cancel()

	token, err := s.provider.VerifyCode(ctx, otpSession, code)
	if err != nil {
		return "", err
	}

	s.sessions.Put(phone, token)
	return token, nil
}
