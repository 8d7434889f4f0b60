package bereal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/xiaot623/wrapped/internal/domain"
)

const memoryDayLayout = "2006-01-02"

// ErrUnavailable marks transport failures, timeouts, and provider 5xx
// responses: the provider could not be reached, not a caller mistake.
var ErrUnavailable = errors.New("provider unavailable")

// Client talks to the provider API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a provider client. The timeout bounds every call,
// including image downloads.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendCode requests an OTP for a phone number.
func (c *Client) SendCode(ctx context.Context, phone string) (string, error) {
	var resp sendCodeResponse
	if err := c.postJSON(ctx, "/login/send-code", "", sendCodeRequest{Phone: phone}, &resp); err != nil {
		return "", fmt.Errorf("send code: %w", err)
	}
	if resp.Data.OTPSession == "" {
		return "", fmt.Errorf("send code: provider returned no otp session")
	}
	return resp.Data.OTPSession, nil
}

// VerifyCode exchanges the OTP session and code for a bearer token.
func (c *Client) VerifyCode(ctx context.Context, otpSession, code string) (string, error) {
	var resp verifyCodeResponse
	req := verifyCodeRequest{OTPSession: otpSession, Code: code}
	if err := c.postJSON(ctx, "/login/verify", "", req, &resp); err != nil {
		return "", fmt.Errorf("verify code: %w", err)
	}
	if resp.Data.Token == "" {
		return "", fmt.Errorf("verify code: provider returned no token")
	}
	return resp.Data.Token, nil
}

// Memories lists the daily capture pairs within [start, end]. Days with a
// missing primary or secondary image are dropped: a partial pair never
// becomes a composite.
func (c *Client) Memories(ctx context.Context, token string, start, end time.Time) ([]domain.Memory, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/friends/memories", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("memories: %w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("memories: %w: %s", ErrUnavailable, readError(httpResp))
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("memories: %s", readError(httpResp))
	}

	var resp memoriesResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("memories: decode response: %w", err)
	}

	var memories []domain.Memory
	for _, item := range resp.Data {
		day, err := time.Parse(memoryDayLayout, item.MemoryDay)
		if err != nil {
			log.Printf("WARN: skipping memory with bad day %q: %v", item.MemoryDay, err)
			continue
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		if item.Primary.URL == "" || item.Secondary.URL == "" {
			continue
		}
		memories = append(memories, domain.Memory{
			Date:         day,
			PrimaryURL:   item.Primary.URL,
			SecondaryURL: item.Secondary.URL,
		})
	}

	domain.SortMemories(memories)
	return memories, nil
}

// Download fetches one capture image to the given path.
func (c *Client) Download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path, token string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", ErrUnavailable, readError(resp))
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s", readError(resp))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func readError(resp *http.Response) string {
	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		if errResp.Message != "" {
			return fmt.Sprintf("status %d: %s", resp.StatusCode, errResp.Message)
		}
		if errResp.Error != "" {
			return fmt.Sprintf("status %d: %s", resp.StatusCode, errResp.Error)
		}
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
