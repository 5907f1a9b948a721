package devserver

import (
	"crypto/rand"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config of the development hotel API.
type Config struct {
	Addr        string
	Secret      []byte            // HS256 signing key of issued tokens
	TokenTTL    time.Duration     // lifetime of issued tokens
	Users       map[string][]byte // username -> bcrypt hash
	CorsOrigins []string
	SeedFile    string // optional YAML seed
}

// DefaultUser is created when HOTELIX_DEV_USERS is empty.
const (
	DefaultUser     = "admin"
	DefaultPassword = "admin"
)

// ConfigFromEnv reads HOTELIX_DEV_ADDR, HOTELIX_DEV_SECRET, HOTELIX_DEV_TOKEN_TTL,
// HOTELIX_DEV_USERS ("user:password,..."), HOTELIX_DEV_SEED and CORS_ORIGINS.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		Addr:        envOr("HOTELIX_DEV_ADDR", "127.0.0.1:8080"),
		TokenTTL:    time.Hour,
		CorsOrigins: parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		SeedFile:    os.Getenv("HOTELIX_DEV_SEED"),
	}
	if raw := os.Getenv("HOTELIX_DEV_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HOTELIX_DEV_TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}
	if secret := os.Getenv("HOTELIX_DEV_SECRET"); secret != "" {
		cfg.Secret = []byte(secret)
	} else {
		cfg.Secret = make([]byte, 32)
		if _, err := rand.Read(cfg.Secret); err != nil {
			return nil, err
		}
	}
	users, err := ParseUsers(envOr("HOTELIX_DEV_USERS", DefaultUser+":"+DefaultPassword))
	if err != nil {
		return nil, err
	}
	cfg.Users = users
	return cfg, nil
}

// ParseUsers hashes every password of a "user:password,..." list.
func ParseUsers(raw string) (map[string][]byte, error) {
	users := make(map[string][]byte)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, password, ok := strings.Cut(pair, ":")
		if !ok || name == "" || password == "" {
			return nil, fmt.Errorf("invalid user entry %q, expected user:password", pair)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		users[name] = hash
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("at least one user is required")
	}
	return users, nil
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}
	origins := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
