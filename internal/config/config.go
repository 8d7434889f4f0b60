// Package config provides configuration for the wrapped render service.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort    int
	Environment string

	// Public base URL used when building the download link sent over SMS.
	PublicBaseURL string

	// Provider settings
	ProviderBaseURL string
	ProviderTimeout time.Duration

	// Filesystem roots
	ContentRoot string
	ExportsRoot string
	StaticRoot  string

	// Slideshow timing
	ClassicDwell time.Duration
	EndcardDwell time.Duration

	// Encode timeout: base budget plus a per-frame allowance.
	EncodeBaseTimeout  time.Duration
	EncodePerFrameTime time.Duration

	// Session settings
	TokenTTL time.Duration

	// Twilio settings
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// fileConfig mirrors the optional YAML config file. Zero values leave the
// corresponding env/default untouched.
type fileConfig struct {
	HTTPPort        int    `yaml:"http_port"`
	Environment     string `yaml:"environment"`
	PublicBaseURL   string `yaml:"public_base_url"`
	ProviderBaseURL string `yaml:"provider_base_url"`
	ContentRoot     string `yaml:"content_root"`
	ExportsRoot     string `yaml:"exports_root"`
	StaticRoot      string `yaml:"static_root"`
}

// Load loads configuration from environment variables, with an optional YAML
// file overlay pointed to by WRAPPED_CONFIG.
func Load() *Config {
	cwd, _ := os.Getwd()

	cfg := &Config{
		HTTPPort:           getEnvInt("HTTP_PORT", 5000),
		Environment:        getEnv("WRAPPED_ENV", "development"),
		PublicBaseURL:      getEnv("PUBLIC_BASE_URL", "http://localhost:5000"),
		ProviderBaseURL:    getEnv("PROVIDER_BASE_URL", "https://berealapi.fly.dev"),
		ProviderTimeout:    time.Duration(getEnvInt("PROVIDER_TIMEOUT_MS", 120000)) * time.Millisecond,
		ContentRoot:        getEnv("CONTENT_ROOT", filepath.Join(cwd, "content")),
		ExportsRoot:        getEnv("EXPORTS_ROOT", filepath.Join(cwd, "exports")),
		StaticRoot:         getEnv("STATIC_ROOT", filepath.Join(cwd, "static")),
		ClassicDwell:       time.Duration(getEnvInt("CLASSIC_DWELL_MS", 2000)) * time.Millisecond,
		EndcardDwell:       time.Duration(getEnvInt("ENDCARD_DWELL_MS", 1000)) * time.Millisecond,
		EncodeBaseTimeout:  time.Duration(getEnvInt("ENCODE_BASE_TIMEOUT_MS", 60000)) * time.Millisecond,
		EncodePerFrameTime: time.Duration(getEnvInt("ENCODE_PER_FRAME_MS", 2000)) * time.Millisecond,
		TokenTTL:           time.Duration(getEnvInt("TOKEN_TTL_MS", 3600000)) * time.Millisecond,
		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:   getEnv("TWILIO_PHONE_NUMBER", ""),
	}

	if path := os.Getenv("WRAPPED_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			log.Printf("WARN: could not apply config file %s: %v", path, err)
		}
	}

	return cfg
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.HTTPPort != 0 {
		c.HTTPPort = fc.HTTPPort
	}
	if fc.Environment != "" {
		c.Environment = fc.Environment
	}
	if fc.PublicBaseURL != "" {
		c.PublicBaseURL = fc.PublicBaseURL
	}
	if fc.ProviderBaseURL != "" {
		c.ProviderBaseURL = fc.ProviderBaseURL
	}
	if fc.ContentRoot != "" {
		c.ContentRoot = fc.ContentRoot
	}
	if fc.ExportsRoot != "" {
		c.ExportsRoot = fc.ExportsRoot
	}
	if fc.StaticRoot != "" {
		c.StaticRoot = fc.StaticRoot
	}
	return nil
}

// OutlinePath is the secondary-image outline overlay template.
func (c *Config) OutlinePath() string {
	return filepath.Join(c.StaticRoot, "images", "secondary_image_outline.png")
}

// EndcardTemplatePath is the endcard template image.
func (c *Config) EndcardTemplatePath() string {
	return filepath.Join(c.StaticRoot, "images", "endCard_template.jpg")
}

// FontPath is the font used to stamp the endcard. May not exist in
// development; the renderer falls back to a built-in face.
func (c *Config) FontPath() string {
	return filepath.Join(c.StaticRoot, "fonts", "Inter-Bold.ttf")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
