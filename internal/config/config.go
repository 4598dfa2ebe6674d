package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

type Config struct {
	AppPort string

	DBDriver      string // mysql | postgres
	DBAutoMigrate bool
	DBLogLevel    string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs       int
	ReportCacheTTLSecs int

	KafkaBrokers []string

	JWTSecret string
	JWTIssuer string

	QuorumTotal        int
	QuorumApprovals    int
	QuorumScaleToGroup bool

	OverdueSweepSpec string

	LogLevel string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort: getenv("APP_PORT", "8080"),

		DBDriver:      strings.ToLower(getenv("DB_DRIVER", "mysql")),
		DBAutoMigrate: getenvBool("DB_AUTO_MIGRATE", true),
		DBLogLevel:    getenv("DB_LOG_LEVEL", "warn"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "microcredit"),
		MySQLUser: getenv("MYSQL_USER", "microcredit"),
		MySQLPass: getenv("MYSQL_PASS", "microcredit"),

		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs:       getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		ReportCacheTTLSecs: getenvInt("REPORT_CACHE_TTL_SECONDS", 600),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: os.Getenv("JWT_ISSUER"),

		QuorumTotal:        getenvInt("QUORUM_TOTAL", 10),
		QuorumApprovals:    getenvInt("QUORUM_APPROVALS", 6),
		QuorumScaleToGroup: getenvBool("QUORUM_SCALE_TO_GROUP", false),

		OverdueSweepSpec: getenv("OVERDUE_SWEEP_SPEC", "@hourly"),

		LogLevel: getenv("LOG_LEVEL", "info"),
	}
	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			c.KafkaBrokers = append(c.KafkaBrokers, b)
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN for DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (mysql|postgres)", c.DBDriver)
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.QuorumTotal < 1 || c.QuorumApprovals < 1 || c.QuorumApprovals > c.QuorumTotal {
		return fmt.Errorf("invalid quorum %d/%d: need 1 <= QUORUM_APPROVALS <= QUORUM_TOTAL", c.QuorumApprovals, c.QuorumTotal)
	}
	if c.IdempTTLSecs <= 0 || c.ReportCacheTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS and REPORT_CACHE_TTL_SECONDS must be positive")
	}
	if _, err := cron.ParseStandard(c.OverdueSweepSpec); err != nil {
		return fmt.Errorf("invalid OVERDUE_SWEEP_SPEC %q: %w", c.OverdueSweepSpec, err)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC matches gorm's NowFunc
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.PostgresDSN
	}
	return c.MySQLDSN()
}
