package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL      time.Duration
	StatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Engine options
	AnchorStrictness string
	HierarchyNaming  string
	RecordShape      string
	KeyPhrases       bool
	HeaderStrictness string
}

var allowed = map[string][]string{
	"ANCHOR_STRICTNESS": {"loose", "strict"},
	"HIERARCHY_NAMING":  {"named", "numeric"},
	"RECORD_SHAPE":      {"nested", "flattened"},
	"HEADER_STRICTNESS": {"lenient", "strict"},
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("SPECGEST_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL:      envDuration("JOB_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		AnchorStrictness: envOr("ANCHOR_STRICTNESS", "loose"),
		HierarchyNaming:  envOr("HIERARCHY_NAMING", "named"),
		RecordShape:      envOr("RECORD_SHAPE", "nested"),
		KeyPhrases:       envBool("KEY_PHRASES", false),
		HeaderStrictness: envOr("HEADER_STRICTNESS", "lenient"),
	}
	cfg.clamp()
	return cfg
}

func (c *Config) clamp() {
	if c.WorkerCount <= 0 {
		c.WorkerCount = 4
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = 100
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 52428800
	}
	if c.JobTTL <= 0 {
		c.JobTTL = 1 * time.Hour
	}
	if c.StatsWindow <= 0 {
		c.StatsWindow = 1 * time.Hour
	}
}

// fileConfig mirrors the YAML options file. Unset keys leave the loaded
// value alone.
type fileConfig struct {
	Port                 *string `yaml:"port"`
	WorkerCount          *int    `yaml:"worker_count"`
	MaxQueueSize         *int    `yaml:"max_queue_size"`
	MaxUploadBytes       *int64  `yaml:"max_upload_bytes"`
	JobTTL               *string `yaml:"job_ttl"`
	PDFFallbackPdftotext *bool   `yaml:"pdf_fallback_pdftotext"`
	AnchorStrictness     *string `yaml:"anchor_strictness"`
	HierarchyNaming      *string `yaml:"hierarchy_naming"`
	RecordShape          *string `yaml:"record_shape"`
	KeyPhrases           *bool   `yaml:"key_phrases"`
	HeaderStrictness     *string `yaml:"header_strictness"`
}

// LoadFile overlays the YAML file at path onto c.
func (c Config) LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	return c.Overlay(data)
}

// Overlay applies YAML options onto c.
func (c Config) Overlay(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return c, fmt.Errorf("parse config: %w", err)
	}

	setString(&c.Port, fc.Port)
	setString(&c.AnchorStrictness, fc.AnchorStrictness)
	setString(&c.HierarchyNaming, fc.HierarchyNaming)
	setString(&c.RecordShape, fc.RecordShape)
	setString(&c.HeaderStrictness, fc.HeaderStrictness)
	if fc.WorkerCount != nil {
		c.WorkerCount = *fc.WorkerCount
	}
	if fc.MaxQueueSize != nil {
		c.MaxQueueSize = *fc.MaxQueueSize
	}
	if fc.MaxUploadBytes != nil {
		c.MaxUploadBytes = *fc.MaxUploadBytes
	}
	if fc.PDFFallbackPdftotext != nil {
		c.PDFFallbackPdftotext = *fc.PDFFallbackPdftotext
	}
	if fc.KeyPhrases != nil {
		c.KeyPhrases = *fc.KeyPhrases
	}
	if fc.JobTTL != nil {
		d, err := time.ParseDuration(*fc.JobTTL)
		if err != nil {
			return c, fmt.Errorf("parse config job_ttl: %w", err)
		}
		c.JobTTL = d
	}
	c.clamp()
	return c, nil
}

func (c Config) Validate() error {
	values := map[string]string{
		"ANCHOR_STRICTNESS": c.AnchorStrictness,
		"HIERARCHY_NAMING":  c.HierarchyNaming,
		"RECORD_SHAPE":      c.RecordShape,
		"HEADER_STRICTNESS": c.HeaderStrictness,
	}
	for _, key := range []string{"ANCHOR_STRICTNESS", "HIERARCHY_NAMING", "RECORD_SHAPE", "HEADER_STRICTNESS"} {
		if !oneOf(values[key], allowed[key]) {
			return fmt.Errorf("%s must be one of %v, got %q", key, allowed[key], values[key])
		}
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
