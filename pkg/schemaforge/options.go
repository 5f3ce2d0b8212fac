package schemaforge

import (
	"time"

	"github.com/schemaforge/schemaforge/pkg/fetcher"
)

// Config holds all Forge configuration.
type Config struct {
	RenderMode fetcher.Mode
	UserAgent  string
	Timeout    time.Duration

	// Fetcher, when set, replaces the built-in fetchers entirely.
	Fetcher fetcher.Fetcher

	// Clock overrides the assembler's clock; tests freeze it to make the
	// Event start-date fallback deterministic.
	Clock func() time.Time
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		RenderMode: fetcher.ModeAuto,
		UserAgent:  "",
		Timeout:    30 * time.Second,
	}
}

// Option configures a Forge.
type Option func(*Config)

// WithRenderMode sets the default render mode (auto, html, headless).
func WithRenderMode(mode fetcher.Mode) Option {
	return func(c *Config) {
		c.RenderMode = mode
	}
}

// WithUserAgent sets the HTTP user agent.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithFetcher injects a custom fetcher.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

// WithClock injects a clock for deterministic assembly.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Clock = now
	}
}
