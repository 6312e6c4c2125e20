package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/loom-ui/loom/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "loom.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultStorePath is the default state store file.
	DefaultStorePath = "loom.db"
)

// Config represents the complete loom.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Port is the default server port (convenience field, also in Dev).
	Port int `json:"port,omitempty"`

	// Static contains static file serving configuration.
	Static StaticConfig `json:"static,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Storage contains state persistence configuration.
	Storage StorageConfig `json:"storage,omitempty"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Dir is the directory containing static files.
	Dir string `json:"dir,omitempty"`

	// Prefix is the URL prefix for static files (default: "/").
	Prefix string `json:"prefix,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// HotReload enables the live-reload socket in development.
	HotReload bool `json:"hotReload,omitempty"`

	// Watch contains paths to watch for changes.
	Watch []string `json:"watch,omitempty"`

	// Ignore contains patterns to ignore during watch.
	Ignore []string `json:"ignore,omitempty"`
}

// StorageConfig contains state persistence settings.
type StorageConfig struct {
	// Path is the bbolt database file for persisted snapshots.
	Path string `json:"path,omitempty"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether /metrics is served.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace (default: "loom").
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled controls whether request spans are created.
	Enabled bool `json:"enabled,omitempty"`

	// ServiceName is the tracer name (default: project name).
	ServiceName string `json:"serviceName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := base()
	cfg.applyDefaults()
	return cfg
}

// base carries only the defaults applyDefaults cannot reconstruct:
// booleans that default to on, which a zero check cannot tell apart
// from an explicit false, plus the starting version. Everything else
// stays zero so applyDefaults runs against what the file actually set.
func base() *Config {
	return &Config{
		Version: "0.1.0",
		Dev:     DevConfig{HotReload: true},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads configuration from the specified directory.
// It looks for loom.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E160").
				WithDetail("No loom.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'loom init' or create loom.json manually")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	// Unmarshal over base, not New: New's derived fields would shadow
	// the zero checks in applyDefaults, so a top-level port could never
	// cascade into Dev.Port.
	cfg := base()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse loom.json: " + err.Error()).
			WithSuggestion("Check that loom.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = c.Port
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Watch == nil {
		c.Dev.Watch = []string{"app", "public"}
	}

	if c.Static.Dir == "" {
		c.Static.Dir = "public"
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/"
	}

	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStorePath
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "loom"
	}
	if c.Tracing.ServiceName == "" {
		if c.Name != "" {
			c.Tracing.ServiceName = c.Name
		} else {
			c.Tracing.ServiceName = "loom"
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}
	return nil
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + itoa(c.Dev.Port)
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// PublicPath returns the absolute path to the static files directory.
func (c *Config) PublicPath() string {
	path := c.Static.Dir
	if path == "" {
		path = "public"
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// StorePath returns the absolute path to the state store file.
func (c *Config) StorePath() string {
	path := c.Storage.Path
	if path == "" {
		path = DefaultStorePath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// StaticPrefix returns the URL prefix for static files.
func (c *Config) StaticPrefix() string {
	if c.Static.Prefix == "" {
		return "/"
	}
	return c.Static.Prefix
}

// WatchPaths returns the absolute, deduplicated set of paths the dev
// server watches for changes: the configured watch list plus the
// static directory.
func (c *Config) WatchPaths() []string {
	paths := append([]string{}, c.Dev.Watch...)
	paths = append(paths, c.Static.Dir)

	seen := make(map[string]struct{}, len(paths))
	unique := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Dir(), p)
		}
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing loom.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E160").
				WithDetail("No loom.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'loom init' to create a new project")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// itoa converts int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
