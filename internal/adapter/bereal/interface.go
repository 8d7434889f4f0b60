// Package bereal provides the client for the BeReal provider API: the OTP
// login exchange and the memories feed.
package bereal

import (
	"context"
	"time"

	"github.com/xiaot623/wrapped/internal/domain"
)

// Provider defines the provider API operations used by the service.
type Provider interface {
	// SendCode requests an OTP for a phone number and returns the opaque OTP
	// session handle.
	SendCode(ctx context.Context, phone string) (string, error)

	// VerifyCode exchanges an OTP session and code for a bearer token.
	VerifyCode(ctx context.Context, otpSession, code string) (string, error)

	// Memories lists the daily capture pairs within [start, end], ordered by
	// ascending capture date. Days missing either image are dropped.
	Memories(ctx context.Context, token string, start, end time.Time) ([]domain.Memory, error)

	// Download materializes one capture image to the given path.
	Download(ctx context.Context, url, path string) error
}

// Ensure both implementations satisfy the Provider interface.
var (
	_ Provider = (*Client)(nil)
	_ Provider = (*MockProvider)(nil)
)
