package vaultconfig

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the process configuration enumerated in the external
// interfaces section: database DSN components, document-store host/port,
// broker URL, storage endpoint/credentials/region, upload size cap, CORS
// origins, and development toggles. Values are read from the environment,
// with Vault (via SecretManager) able to override individual fields when
// VAULT_ADDR is set — the same layering every teacher main.go uses.
type Config struct {
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDatabase string

	RedisHost string
	RedisPort int

	NATSURL string

	S3URL          string
	S3Region       string
	AWSAccessKeyID string
	AWSSecretKey   string

	MaxUploadFileSizeBytes int64
	CORSOrigins            []string

	// EnableInMemoryBroker and EnableLocalStorageEmulation are development
	// toggles: when set, the dispatcher runs projection jobs in-process and
	// the storage gateway targets a local S3 emulator instead of AWS.
	EnableInMemoryBroker        bool
	EnableLocalStorageEmulation bool

	SweepGraceSeconds int
}

// Load reads configuration from the environment, applying sane local
// defaults so the service is runnable without an external Vault.
func Load() Config {
	return Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser:     getEnv("POSTGRES_USER", "catalog"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "catalog"),
		PostgresDatabase: getEnv("POSTGRES_DATABASE_NAME", "catalog"),

		RedisHost: getEnv("REDIS_DATABASE_HOST", "localhost"),
		RedisPort: getEnvInt("REDIS_DATABASE_PORT", 6379),

		NATSURL: getEnv("NATS_URL", "nats://localhost:4222"),

		S3URL:          getEnv("S3_URL", "http://localhost:9000"),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		MaxUploadFileSizeBytes: int64(getEnvInt("MAX_UPLOAD_FILE_SIZE_BYTES", 5*1024*1024)),
		CORSOrigins:            splitCSV(getEnv("CORS_ORIGINS", "*")),

		EnableInMemoryBroker:        getEnvBool("ENABLE_IN_MEMORY_TASK_BROKER", false),
		EnableLocalStorageEmulation: getEnvBool("ENABLE_LOCAL_AWS_EMULATION", false),

		SweepGraceSeconds: getEnvInt("SWEEP_GRACE_SECONDS", 30),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
