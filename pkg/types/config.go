package types

import "time"

// HTTPConfig holds shared HTTP settings for catalog requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// BaseURL overrides the catalog endpoint. Empty uses the public arXiv API.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// MaxRetries bounds the number of 429 backoff retries (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// Strategy names an incremental fetch strategy.
type Strategy string

const (
	// StrategySinglePage issues one large catalog query and filters it.
	StrategySinglePage Strategy = "single-page"

	// StrategyWindowed walks backward one day at a time up to a step ceiling.
	StrategyWindowed Strategy = "windowed"
)

// FetchConfig holds settings for the incremental fetcher.
type FetchConfig struct {
	// Strategy selects single-page or windowed fetching.
	Strategy Strategy `json:"strategy" yaml:"strategy" mapstructure:"strategy"`

	// PageSize is the max_results for the single-page query. Values not
	// larger than the target count fall back to five times the target.
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// StepCeiling is the maximum number of daily windows the windowed
	// strategy queries (default 365).
	StepCeiling int `json:"step_ceiling" yaml:"step_ceiling" mapstructure:"step_ceiling"`

	// WindowMaxResults is the max_results for each daily window (default 200).
	WindowMaxResults int `json:"window_max_results" yaml:"window_max_results" mapstructure:"window_max_results"`

	// StepDelay is the pause between consecutive window queries.
	StepDelay time.Duration `json:"step_delay" yaml:"step_delay" mapstructure:"step_delay"`
}

// HistoryBackend identifies how the delivered-ID set is persisted.
type HistoryBackend string

const (
	HistoryFile   HistoryBackend = "file"
	HistorySQLite HistoryBackend = "sqlite"
)

// HistoryConfig locates the persisted History Set.
type HistoryConfig struct {
	// Backend selects the storage format: file (JSON list) or sqlite.
	Backend HistoryBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Path is the backing file. There is no implicit location; callers
	// must set it.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ReportFormat selects the report renderer.
type ReportFormat string

const (
	ReportHTML     ReportFormat = "html"
	ReportPDF      ReportFormat = "pdf"
	ReportMarkdown ReportFormat = "markdown"
	ReportYAML     ReportFormat = "yaml"
	ReportJSON     ReportFormat = "json"
)

// ReportConfig holds settings for the rendered report.
type ReportConfig struct {
	// Format selects html, pdf, markdown, yaml, or json.
	Format ReportFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Output is the report file path. An empty value derives
	// "papers.<ext>" in the working directory.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Title is the report heading.
	Title string `json:"title" yaml:"title" mapstructure:"title"`
}

// DigestConfig groups all settings for one fetch-and-report cycle.
type DigestConfig struct {
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Report  ReportConfig  `json:"report" yaml:"report" mapstructure:"report"`

	// Schedule is the cron expression used by the watch command.
	Schedule string `json:"schedule" yaml:"schedule" mapstructure:"schedule"`
}
