/*
Responsibilities
- Hold every crawl-tunable parameter recognized by the system (§6 of the
  specification): base_url, max_pages, concurrent_requests, request_delay,
  timeout, max_retries, download_files, proxy_file, max_depth.
- Provide two construction paths: a fluent builder for programmatic/CLI use,
  and a JSON config file loader, mirroring the teacher's two loading paths.

Config itself is immutable once Build() returns; callers configure via the
With* chain, never by mutating fields after construction.
*/
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"
)

type Config struct {
	baseURL     url.URL
	maxPages    int
	concurrency int
	requestDelay time.Duration
	timeout     time.Duration
	maxRetries  int
	downloadFiles bool
	proxyFile   string
	maxDepth    int
	hasMaxDepth bool
	userAgent   string
	outputDir   string
}

type configDTO struct {
	BaseURL            string `json:"base_url"`
	MaxPages           int    `json:"max_pages,omitempty"`
	ConcurrentRequests int    `json:"concurrent_requests,omitempty"`
	RequestDelay       float64 `json:"request_delay,omitempty"`
	Timeout            float64 `json:"timeout,omitempty"`
	MaxRetries         int    `json:"max_retries,omitempty"`
	DownloadFiles      *bool  `json:"download_files,omitempty"`
	ProxyFile          string `json:"proxy_file,omitempty"`
	MaxDepth           *int   `json:"max_depth,omitempty"`
	UserAgent          string `json:"user_agent,omitempty"`
	OutputDir          string `json:"output_dir,omitempty"`
}

// WithDefault creates a new Config builder seeded from baseURL and the
// spec's §6 defaults: max_pages=1000, concurrent_requests=5,
// request_delay=0.1s, timeout=30s, max_retries=3, download_files=true.
func WithDefault(baseURL url.URL) *Config {
	return &Config{
		baseURL:       baseURL,
		maxPages:      1000,
		concurrency:   5,
		requestDelay:  100 * time.Millisecond,
		timeout:       30 * time.Second,
		maxRetries:    3,
		downloadFiles: true,
		userAgent:     "sitecrawler/1.0",
		outputDir:     "crawled_data",
	}
}

func (c *Config) WithMaxPages(n int) *Config {
	c.maxPages = n
	return c
}

func (c *Config) WithConcurrency(n int) *Config {
	c.concurrency = n
	return c
}

func (c *Config) WithRequestDelay(d time.Duration) *Config {
	c.requestDelay = d
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.timeout = d
	return c
}

func (c *Config) WithMaxRetries(n int) *Config {
	c.maxRetries = n
	return c
}

func (c *Config) WithDownloadFiles(enabled bool) *Config {
	c.downloadFiles = enabled
	return c
}

func (c *Config) WithProxyFile(path string) *Config {
	c.proxyFile = path
	return c
}

func (c *Config) WithMaxDepth(depth int) *Config {
	c.maxDepth = depth
	c.hasMaxDepth = true
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithOutputDir(dir string) *Config {
	c.outputDir = dir
	return c
}

func (c *Config) Build() (Config, error) {
	if c.baseURL.Host == "" {
		return Config{}, fmt.Errorf("%w: base_url must have a host", ErrInvalidConfig)
	}
	if c.concurrency < 1 {
		return Config{}, fmt.Errorf("%w: concurrent_requests must be >= 1", ErrInvalidConfig)
	}
	if c.maxRetries < 1 {
		return Config{}, fmt.Errorf("%w: max_retries must be >= 1", ErrInvalidConfig)
	}
	return *c, nil
}

func WithConfigFile(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	var dto configDTO
	if err := json.Unmarshal(content, &dto); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	base, err := url.Parse(dto.BaseURL)
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid base_url: %s", ErrInvalidConfig, err.Error())
	}

	builder := WithDefault(*base)
	if dto.MaxPages != 0 {
		builder = builder.WithMaxPages(dto.MaxPages)
	}
	if dto.ConcurrentRequests != 0 {
		builder = builder.WithConcurrency(dto.ConcurrentRequests)
	}
	if dto.RequestDelay != 0 {
		builder = builder.WithRequestDelay(time.Duration(dto.RequestDelay * float64(time.Second)))
	}
	if dto.Timeout != 0 {
		builder = builder.WithTimeout(time.Duration(dto.Timeout * float64(time.Second)))
	}
	if dto.MaxRetries != 0 {
		builder = builder.WithMaxRetries(dto.MaxRetries)
	}
	if dto.DownloadFiles != nil {
		builder = builder.WithDownloadFiles(*dto.DownloadFiles)
	}
	if dto.ProxyFile != "" {
		builder = builder.WithProxyFile(dto.ProxyFile)
	}
	if dto.MaxDepth != nil {
		builder = builder.WithMaxDepth(*dto.MaxDepth)
	}
	if dto.UserAgent != "" {
		builder = builder.WithUserAgent(dto.UserAgent)
	}
	if dto.OutputDir != "" {
		builder = builder.WithOutputDir(dto.OutputDir)
	}

	return builder.Build()
}

func (c Config) BaseURL() url.URL          { return c.baseURL }
func (c Config) MaxPages() int             { return c.maxPages }
func (c Config) Concurrency() int          { return c.concurrency }
func (c Config) RequestDelay() time.Duration { return c.requestDelay }
func (c Config) Timeout() time.Duration    { return c.timeout }
func (c Config) MaxRetries() int           { return c.maxRetries }
func (c Config) DownloadFiles() bool       { return c.downloadFiles }
func (c Config) ProxyFile() string         { return c.proxyFile }
func (c Config) UserAgent() string         { return c.userAgent }
func (c Config) OutputDir() string         { return c.outputDir }

// MaxDepth returns the configured depth cap and whether one was set at all;
// per the spec's open question, max_depth is optional and absence must be
// distinguishable from an explicit zero.
func (c Config) MaxDepth() (int, bool) {
	return c.maxDepth, c.hasMaxDepth
}
