package umls

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"

	"github.com/sanjeeku/ddbiolib/dialect"
)

// Default connection settings.
const (
	DefaultHost       = "localhost"
	DefaultDatabase   = "umls"
	DefaultGroupsPath = "data/SemGroups.txt"
)

// Config holds everything a session needs to reach the UMLS database and
// the semantic group definitions. It replaces any ambient configuration:
// sessions only ever see the Config they are constructed with.
type Config struct {
	// Dialect is one of dialect.MySQL, dialect.Postgres or dialect.SQLite.
	Dialect  string `yaml:"dialect"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	// Database is the schema name, or the database file for SQLite.
	Database string `yaml:"database"`
	// SSLMode is passed to PostgreSQL as the sslmode parameter when set.
	SSLMode string `yaml:"sslmode"`
	// Source, when set, is used verbatim as the data source name and the
	// connection fields above are ignored.
	Source string `yaml:"dsn"`

	// GroupsPath is the pipe-delimited semantic group definition file.
	GroupsPath string `yaml:"groups_path"`

	// SlowQueryThreshold enables query statistics and slow query logging
	// when positive.
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold"`
	// LogQueries logs every statement at debug level.
	LogQueries bool `yaml:"log_queries"`
}

// DefaultConfig returns a Config for a local MySQL UMLS installation.
func DefaultConfig() Config {
	return Config{
		Dialect:    dialect.MySQL,
		Host:       DefaultHost,
		Database:   DefaultDatabase,
		GroupsPath: DefaultGroupsPath,
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig and
// validates the result.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("umls: open config: %w", err)
	}
	defer f.Close()
	return ParseConfig(f)
}

// ParseConfig decodes a YAML configuration on top of DefaultConfig and
// validates the result. Unknown keys are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("umls: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the connection settings and the groups path.
func (c Config) Validate() error {
	return NewAggregateError(append(c.validateConn(), c.validateGroups())...)
}

func (c Config) validateConn() []error {
	var errs []error
	if !dialect.Supported(c.Dialect) {
		errs = append(errs, NewConfigError("dialect", c.Dialect, "must be one of mysql, postgres or sqlite"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, NewConfigError("port", c.Port, "must be between 0 and 65535"))
	}
	if c.SlowQueryThreshold < 0 {
		errs = append(errs, NewConfigError("slow_query_threshold", c.SlowQueryThreshold, "must not be negative"))
	}
	if c.Source != "" {
		return errs
	}
	if c.Database == "" {
		errs = append(errs, NewConfigError("database", nil, "is required"))
	}
	if c.Dialect != dialect.SQLite && c.Host == "" {
		errs = append(errs, NewConfigError("host", nil, "is required"))
	}
	return errs
}

func (c Config) validateGroups() error {
	if c.GroupsPath == "" {
		return NewConfigError("groups_path", nil, "is required")
	}
	return nil
}

// DSN returns the data source name passed to database/sql for the
// configured dialect.
func (c Config) DSN() string {
	if c.Source != "" {
		return c.Source
	}
	switch c.Dialect {
	case dialect.Postgres:
		u := url.URL{
			Scheme: "postgres",
			Host:   c.addr(5432),
			Path:   "/" + c.Database,
		}
		if c.User != "" {
			u.User = url.UserPassword(c.User, c.Password)
		}
		if c.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
		}
		return u.String()
	case dialect.SQLite:
		return c.Database
	default:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = c.addr(3306)
		mc.DBName = c.Database
		return mc.FormatDSN()
	}
}

func (c Config) addr(defaultPort int) string {
	port := c.Port
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// Redacted returns a copy of c safe for logging.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = "xxxxx"
	}
	if c.Source != "" {
		c.Source = "xxxxx"
	}
	return c
}
