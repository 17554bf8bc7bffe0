package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile           = ".env"
	defaultPort              = "8080"
	defaultReadHeaderTimeout = 10 * time.Second
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultRequestTimeout    = 30 * time.Second
	defaultBaseURL           = "https://hongshengyuan.tech"
	defaultSiteName          = "深圳市红盛源科技有限公司"
	defaultLocale            = "zh_CN"
	defaultTemplatesDir      = "templates"
	defaultPublicDir         = "public"
	defaultLogLevel          = "info"
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Site     SiteConfig
	Paths    PathsConfig
	DevMode  bool
	LogLevel string
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestTimeout    time.Duration
}

// Addr is the listen address for Port.
func (s ServerConfig) Addr() string { return ":" + s.Port }

// SiteConfig holds the values every page's metadata is derived from.
type SiteConfig struct {
	BaseURL        string // absolute, no trailing slash
	Name           string
	Locale         string
	DefaultOGImage string
}

// URL joins path onto BaseURL.
func (s SiteConfig) URL(path string) string {
	if path == "" || path == "/" {
		return s.BaseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.BaseURL + path
}

// PathsConfig locates templates and static files on disk.
type PathsConfig struct {
	TemplatesDir string
	PublicDir    string
}

// ValidationError lists configuration fields with invalid values.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid values for %s", strings.Join(e.fields, ", "))
}

// Fields returns the offending field names.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values that take precedence over the environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles configuration from defaults, the .env file, the process
// environment and explicit overrides, in increasing precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	// SITE_PORT wins over Cloud Run's PORT.
	port := stringWithDefault(lookup, "PORT", defaultPort)
	port = stringWithDefault(lookup, "SITE_PORT", port)

	cfg := Config{
		Server: ServerConfig{
			Port:              port,
			ReadHeaderTimeout: durationWithDefault(lookup, "SITE_READ_HEADER_TIMEOUT", defaultReadHeaderTimeout),
			ReadTimeout:       durationWithDefault(lookup, "SITE_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:      durationWithDefault(lookup, "SITE_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       durationWithDefault(lookup, "SITE_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout:    durationWithDefault(lookup, "SITE_REQUEST_TIMEOUT", defaultRequestTimeout),
		},
		Site: SiteConfig{
			BaseURL:        strings.TrimRight(stringWithDefault(lookup, "SITE_BASE_URL", defaultBaseURL), "/"),
			Name:           stringWithDefault(lookup, "SITE_NAME", defaultSiteName),
			Locale:         stringWithDefault(lookup, "SITE_LOCALE", defaultLocale),
			DefaultOGImage: stringWithDefault(lookup, "SITE_DEFAULT_OG_IMAGE", ""),
		},
		Paths: PathsConfig{
			TemplatesDir: stringWithDefault(lookup, "SITE_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:    stringWithDefault(lookup, "SITE_PUBLIC_DIR", defaultPublicDir),
		},
		// SITE_DEV preferred, DEV as fallback
		DevMode:  boolWithDefault(lookup, "SITE_DEV", boolWithDefault(lookup, "DEV", false)),
		LogLevel: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var invalid []string

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		invalid = append(invalid, "Server.Port")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		invalid = append(invalid, "Site.BaseURL")
	}
	if u, err := url.Parse(cfg.Site.DefaultOGImage); cfg.Site.DefaultOGImage != "" && (err != nil || !u.IsAbs()) {
		invalid = append(invalid, "Site.DefaultOGImage")
	}
	if strings.TrimSpace(cfg.Site.Name) == "" {
		invalid = append(invalid, "Site.Name")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
