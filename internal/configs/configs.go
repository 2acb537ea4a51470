package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RedisAddr              string
	RedisPassword          string
	SessionKeyPrefix       string
	AccessTokenTTL         time.Duration
	RefreshTokenTTL        time.Duration
	RecoveryTokenTTL       time.Duration
	BcryptCost             int
	PasswordResetURL       string
	MailFrom               string
	MailWorkers            int
	MailQueueSize          int
	RateLimit              int
	RateLimitBackend       string
	RateLimitKeyPrefix     string
	CORSAllowedOrigins     []string
	TrustedProxies         []*net.IPNet
	ShutdownTimeoutSeconds int
}

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "3001")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	ints := map[string]int{}
	for key, def := range map[string]int{
		"ACCESS_TOKEN_TTL_SECONDS":   3600,
		"REFRESH_TOKEN_TTL_SECONDS":  30 * 24 * 3600,
		"RECOVERY_TOKEN_TTL_SECONDS": 3600,
		"BCRYPT_COST":                10,
		"MAIL_WORKERS":               2,
		"MAIL_QUEUE_SIZE":            100,
		"RATE_LIMIT_PER_MINUTE":      120,
		"SHUTDOWN_TIMEOUT_SECONDS":   20,
	} {
		v, err := getEnvAsInt(key, def)
		if err != nil {
			return Config{}, err
		}
		ints[key] = v
	}

	proxies, err := parseCIDRs(splitList(os.Getenv("TRUSTED_PROXIES")))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "taskhero.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		SessionKeyPrefix:       getEnv("SESSION_KEY_PREFIX", "taskhero:session:"),
		AccessTokenTTL:         time.Duration(ints["ACCESS_TOKEN_TTL_SECONDS"]) * time.Second,
		RefreshTokenTTL:        time.Duration(ints["REFRESH_TOKEN_TTL_SECONDS"]) * time.Second,
		RecoveryTokenTTL:       time.Duration(ints["RECOVERY_TOKEN_TTL_SECONDS"]) * time.Second,
		BcryptCost:             ints["BCRYPT_COST"],
		PasswordResetURL:       getEnv("PASSWORD_RESET_URL", "http://localhost:3000/auth/update-password"),
		MailFrom:               getEnv("MAIL_FROM", "no-reply@taskhero.local"),
		MailWorkers:            ints["MAIL_WORKERS"],
		MailQueueSize:          ints["MAIL_QUEUE_SIZE"],
		RateLimit:              ints["RATE_LIMIT_PER_MINUTE"],
		RateLimitBackend:       strings.ToLower(getEnv("RATE_LIMIT_BACKEND", RateLimitRedis)),
		RateLimitKeyPrefix:     getEnv("RATE_LIMIT_KEY_PREFIX", "taskhero:ratelimit:"),
		CORSAllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		TrustedProxies:         proxies,
		ShutdownTimeoutSeconds: ints["SHUTDOWN_TIMEOUT_SECONDS"],
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 || cfg.RecoveryTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be greater than 0")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if cfg.MailWorkers <= 0 {
		return fmt.Errorf("MAIL_WORKERS must be greater than 0")
	}
	if cfg.MailQueueSize <= 0 {
		return fmt.Errorf("MAIL_QUEUE_SIZE must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.RateLimitBackend != RateLimitMemory && cfg.RateLimitBackend != RateLimitRedis {
		return fmt.Errorf("RATE_LIMIT_BACKEND must be memory or redis")
	}
	if cfg.PasswordResetURL == "" {
		return fmt.Errorf("PASSWORD_RESET_URL must not be empty")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseCIDRs accepts CIDR ranges and bare addresses.
func parseCIDRs(values []string) ([]*net.IPNet, error) {
	var out []*net.IPNet
	for _, v := range values {
		if !strings.Contains(v, "/") {
			ip := net.ParseIP(v)
			if ip == nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q", v)
			}
			bits := 128
			if v4 := ip.To4(); v4 != nil {
				ip, bits = v4, 32
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q", v)
		}
		out = append(out, n)
	}
	return out, nil
}
