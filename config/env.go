package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const (
	defaultAPIBaseURL   = "http://localhost:8000/api"
	defaultAppEnv       = "local"
	defaultStoreDriver  = "file"
	defaultRedisAddr    = "localhost:6379"
	defaultItemsPerPage = 20
	defaultAuditDB      = "vyapar"
	defaultAuditColl    = "admin_actions"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"API_BASE_URL":     defaultAPIBaseURL,
		"APP_ENV":          defaultAppEnv,
		"STORE_DRIVER":     defaultStoreDriver,
		"STORE_PATH":       "",
		"SESSION_KEY":      "",
		"REDIS_ADDR":       defaultRedisAddr,
		"REDIS_PASSWORD":   "",
		"AUDIT_MONGO_URI":  "",
		"AUDIT_MONGO_DB":   defaultAuditDB,
		"AUDIT_MONGO_COLL": defaultAuditColl,
		"ITEMS_PER_PAGE":   "",
	}
}

// APIBaseURL is the backend REST base, without a trailing slash.
func APIBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("API_BASE_URL", defaultAPIBaseURL), "/")
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// StoreDriver selects the session key-value backend.
func StoreDriver() string {
	_ = Load()

	driver := strings.ToLower(get("STORE_DRIVER", defaultStoreDriver))
	switch driver {
	case "file", "redis", "memory":
		return driver
	default:
		return defaultStoreDriver
	}
}

// StorePath is where the file driver keeps its state. Defaults to
// ~/.vyapar/session.json so every command of the same operator shares it.
func StorePath() string {
	_ = Load()

	if p := get("STORE_PATH", ""); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".vyapar", "session.json")
	}
	return filepath.Join(home, ".vyapar", "session.json")
}

// SessionKey, when set, enables at-rest encryption of the session file.
func SessionKey() string {
	_ = Load()
	return get("SESSION_KEY", "")
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// ── Audit trail ──────────────────────────────────────────────────────────────

func AuditMongoURI() string  { _ = Load(); return get("AUDIT_MONGO_URI", "") }
func AuditMongoDB() string   { _ = Load(); return get("AUDIT_MONGO_DB", defaultAuditDB) }
func AuditMongoColl() string { _ = Load(); return get("AUDIT_MONGO_COLL", defaultAuditColl) }

// ItemsPerPage is the page size for the list views.
func ItemsPerPage() int {
	_ = Load()

	raw := get("ITEMS_PER_PAGE", "")
	if raw == "" {
		return defaultItemsPerPage
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultItemsPerPage
	}
	return n
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
