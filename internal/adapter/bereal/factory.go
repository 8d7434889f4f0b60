package bereal

import (
	"log"
	"os"
	"time"
)

const (
	// EnvWrappedMode is the environment variable name for mode selection.
	EnvWrappedMode = "WRAPPED_MODE"
	// ModeMock indicates the mock provider should be used.
	ModeMock = "MOCK"
)

// NewProvider creates a provider based on the WRAPPED_MODE environment
// variable. If WRAPPED_MODE=MOCK, returns a MockProvider; otherwise returns
// a real Client.
func NewProvider(baseURL string, timeout time.Duration) Provider {
	if os.Getenv(EnvWrappedMode) == ModeMock {
		log.Println("WRAPPED_MODE=MOCK detected, using mock provider")
		return NewMockProvider()
	}
	return NewClient(baseURL, timeout)
}
