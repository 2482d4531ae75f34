package gate

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// defaultKeyword is the identity injection-point name used when the
// configuration does not set one.
const defaultKeyword = "user"

// Config is the immutable gate configuration, built once at startup from a
// YAML document, an in-memory mapping, or the environment.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Userspace UserspaceConfig `yaml:"userspace"`
}

// AppConfig holds the application-facing settings.
type AppConfig struct {
	// Name identifies the application; required.
	Name string `yaml:"name" env:"AUTHGATE_APP_NAME"`

	// CookieName selects the credential transport: set means cookie
	// transport, empty means Authorization Bearer header.
	CookieName string `yaml:"cookie_name" env:"AUTHGATE_COOKIE_NAME"`

	// RootDir is the application root directory; required.
	RootDir string `yaml:"root_dir" env:"AUTHGATE_ROOT_DIR"`

	// LoginPage optionally points at a custom login template file.
	LoginPage string `yaml:"login_page" env:"AUTHGATE_LOGIN_PAGE"`

	// BadCredentialsPage optionally points at a custom login-failure
	// template file.
	BadCredentialsPage string `yaml:"bad_credentials_page" env:"AUTHGATE_BAD_CREDENTIALS_PAGE"`

	// RoutePrefix is prepended to the gate-owned endpoints.
	RoutePrefix string `yaml:"route_prefix" env:"AUTHGATE_ROUTE_PREFIX"`

	// Keyword is the name under which resolved identity data is injected
	// into protected handlers. Defaults to "user".
	Keyword string `yaml:"keyword" env:"AUTHGATE_KEYWORD"`
}

// UserspaceConfig holds the identity-store connection parameters.
type UserspaceConfig struct {
	// Name of the userspace (database) holding users and sessions.
	Name string `yaml:"name" env:"AUTHGATE_USERSPACE_NAME"`

	// DSN is the PostgreSQL connection string used when the gate builds
	// its own store client. Not needed when a store is injected.
	DSN string `yaml:"dsn" env:"AUTHGATE_USERSPACE_DSN"`
}

// Validate checks the required fields. All failures wrap ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	if c.App.Name == "" {
		errs = append(errs, ErrMissingAppName)
	}
	if c.App.RootDir == "" {
		errs = append(errs, ErrMissingRootDir)
	}
	if c.Userspace.Name == "" && c.Userspace.DSN == "" {
		errs = append(errs, ErrMissingUserspace)
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// keyword returns the configured keyword or the default.
func (c Config) keyword() string {
	if c.App.Keyword != "" {
		return c.App.Keyword
	}
	return defaultKeyword
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("gate: open config %s: %w", path, err)
	}
	defer f.Close()
	return ParseConfig(f)
}

// ParseConfig parses a YAML configuration document from a stream.
func ParseConfig(r io.Reader) (Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromMap builds a Config from an in-memory section mapping, e.g.
//
//	gate.ConfigFromMap(map[string]map[string]string{
//		"app":       {"name": "SAMPLE", "cookie_name": "sample_session_id", "root_dir": "/opt/webapp"},
//		"userspace": {"name": "SAMPLE"},
//	})
func ConfigFromMap(sections map[string]map[string]string) (Config, error) {
	app := sections["app"]
	userspace := sections["userspace"]

	cfg := Config{
		App: AppConfig{
			Name:               app["name"],
			CookieName:         app["cookie_name"],
			RootDir:            app["root_dir"],
			LoginPage:          app["login_page"],
			BadCredentialsPage: app["bad_credentials_page"],
			RoutePrefix:        app["route_prefix"],
			Keyword:            app["keyword"],
		},
		Userspace: UserspaceConfig{
			Name: userspace["name"],
			DSN:  userspace["dsn"],
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnvConfig builds a Config from AUTHGATE_* environment variables,
// loading a .env file first when one exists.
func LoadEnvConfig() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
