package bereal

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"time"

	"github.com/xiaot623/wrapped/internal/domain"
)

// MockProvider is a fake provider for development and tests. It accepts any
// OTP code and serves a small synthetic year of memories.
type MockProvider struct {
	// Days is how many synthetic memories to produce; defaults to 5.
	Days int
}

// NewMockProvider creates a mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{Days: 5}
}

// SendCode returns a fixed OTP session.
func (m *MockProvider) SendCode(ctx context.Context, phone string) (string, error) {
	return "mock-otp-session", nil
}

// VerifyCode accepts any code and returns a fixed token.
func (m *MockProvider) VerifyCode(ctx context.Context, otpSession, code string) (string, error) {
	return "mock-token-0123456789", nil
}

// Memories produces synthetic daily pairs starting at the range start. The
// URLs are markers understood by Download.
func (m *MockProvider) Memories(ctx context.Context, token string, start, end time.Time) ([]domain.Memory, error) {
	days := m.Days
	if days == 0 {
		days = 5
	}

	var memories []domain.Memory
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		if day.After(end) {
			break
		}
		memories = append(memories, domain.Memory{
			Date:         day,
			PrimaryURL:   fmt.Sprintf("mock://primary/%d", i),
			SecondaryURL: fmt.Sprintf("mock://secondary/%d", i),
		})
	}
	return memories, nil
}

// Download writes a solid-color placeholder image to path.
func (m *MockProvider) Download(ctx context.Context, url, path string) error {
	img := image.NewRGBA(image.Rect(0, 0, 150, 200))
	fill := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	for y := 0; y < 200; y++ {
		for x := 0; x < 150; x++ {
			img.Set(x, y, fill)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, nil)
}
