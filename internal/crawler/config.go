package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the transcript site the crawler targets
	DefaultBaseURL = "https://subslikescript.com"
	// DefaultUserAgent mimics a regular desktop browser
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	// DefaultEndPage is the last listing page known on the site
	DefaultEndPage      = 1794
	DefaultPagesPerFile = 100
	DefaultOutputDir    = "data"
	DefaultDelay        = time.Second
	DefaultTimeout      = 30 * time.Second
)

// Config holds crawl configuration
type Config struct {
	BaseURL   string
	UserAgent string

	StartPage    int
	EndPage      int
	PagesPerFile int
	OutputDir    string

	// Delay is slept after every detail page and every listing page.
	Delay time.Duration
	// RatePerSecond replaces the fixed Delay with a token bucket when > 0.
	RatePerSecond float64
	// Timeout bounds every request; 0 waits forever.
	Timeout time.Duration

	ProxyURL      string
	RespectRobots bool
}

// DefaultConfig returns the configuration of a full crawl
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		UserAgent:    DefaultUserAgent,
		StartPage:    1,
		EndPage:      DefaultEndPage,
		PagesPerFile: DefaultPagesPerFile,
		OutputDir:    DefaultOutputDir,
		Delay:        DefaultDelay,
		Timeout:      DefaultTimeout,
	}
}

// Validate normalizes cfg in place and reports the first invalid field
func (cfg *Config) Validate() error {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.ProxyURL = strings.TrimSpace(cfg.ProxyURL)

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be absolute http(s), got %q", cfg.BaseURL)
	}
	// Listing URLs and root-relative links both hang off the host root.
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("base URL must not carry a path or query, got %q", cfg.BaseURL)
	}
	if cfg.ProxyURL != "" {
		p, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return fmt.Errorf("invalid proxy URL: %w", err)
		}
		switch p.Scheme {
		case "http", "https", "socks5", "socks5h":
		default:
			return fmt.Errorf("proxy URL scheme must be http, https, socks5 or socks5h, got %q", cfg.ProxyURL)
		}
		if p.Host == "" {
			return fmt.Errorf("proxy URL has no host: %q", cfg.ProxyURL)
		}
	}

	switch {
	case cfg.StartPage < 1:
		return fmt.Errorf("start page must be >= 1, got %d", cfg.StartPage)
	case cfg.EndPage < cfg.StartPage:
		return fmt.Errorf("end page %d is before start page %d", cfg.EndPage, cfg.StartPage)
	case cfg.PagesPerFile < 1:
		return fmt.Errorf("pages per file must be >= 1, got %d", cfg.PagesPerFile)
	case cfg.Delay < 0:
		return errors.New("delay must not be negative")
	case cfg.RatePerSecond < 0:
		return errors.New("rate must not be negative")
	case cfg.Timeout < 0:
		return errors.New("timeout must not be negative")
	case strings.TrimSpace(cfg.OutputDir) == "":
		return errors.New("output directory is required")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return nil
}
