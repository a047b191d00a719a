package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Record store backend selectors.
const (
	RecordStoreMongo  = "mongo"
	RecordStoreSheets = "sheets"
)

// Blob store backend selectors.
const (
	BlobStoreGCS    = "gcs"
	BlobStoreDrive  = "drive"
	BlobStoreGridFS = "mongo"
)

// Config holds runtime configuration shared across the application.
// Backends are selected here once at process start, never per request.
type Config struct {
	Addr           string
	AllowedOrigins []string

	RecordStoreBackend string
	BlobStoreBackend   string

	MongoURI             string
	MongoDatabase        string
	SubmissionCollection string
	MongoTimeout         time.Duration

	GoogleClientEmail string
	GooglePrivateKey  []byte

	GCSBucket     string
	GCSPublicRead bool

	SheetID string

	DriveFolderID string

	PublicBaseURL string

	UploadGuard time.Duration

	AdminJWTSecret   []byte
	AdminJWTIssuer   string
	AdminJWTAudience string

	LogLevel  string
	LogFormat string
}

// Load reads the optional .env file and environment variables into a fully
// populated Config.
func Load() Config {
	_ = godotenv.Load()

	mongoTimeout := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("MONGO_CONNECT_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			mongoTimeout = parsed
		}
	}

	uploadGuard := 12 * time.Second
	if raw := strings.TrimSpace(os.Getenv("UPLOAD_GUARD_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			uploadGuard = parsed
		}
	}

	return Config{
		Addr:           envOrDefault("HTTP_ADDR", ":8080"),
		AllowedOrigins: parseList("API_ALLOWED_ORIGINS", []string{"*"}),

		RecordStoreBackend: envOrDefault("RECORD_STORE_BACKEND", RecordStoreMongo),
		BlobStoreBackend:   envOrDefault("BLOB_STORE_BACKEND", BlobStoreGCS),

		MongoURI:             envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:        envOrDefault("MONGO_DB", "feedback"),
		SubmissionCollection: envOrDefault("SUBMISSION_COLLECTION", "submissions"),
		MongoTimeout:         mongoTimeout,

		GoogleClientEmail: strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_EMAIL")),
		GooglePrivateKey:  []byte(unescapePrivateKey(os.Getenv("GOOGLE_PRIVATE_KEY"))),

		GCSBucket:     strings.TrimSpace(os.Getenv("GCS_BUCKET_NAME")),
		GCSPublicRead: strings.EqualFold(strings.TrimSpace(os.Getenv("GCS_PUBLIC_READ")), "true"),

		SheetID: strings.TrimSpace(os.Getenv("GOOGLE_SHEET_ID")),

		DriveFolderID: strings.TrimSpace(os.Getenv("GOOGLE_DRIVE_FOLDER_ID")),

		PublicBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")), "/"),

		UploadGuard: uploadGuard,

		AdminJWTSecret:   []byte(strings.TrimSpace(os.Getenv("ADMIN_JWT_SECRET"))),
		AdminJWTIssuer:   strings.TrimSpace(os.Getenv("ADMIN_JWT_ISSUER")),
		AdminJWTAudience: strings.TrimSpace(os.Getenv("ADMIN_JWT_AUDIENCE")),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),
	}
}

// NeedsMongo reports whether the selected backends require a database
// connection at startup.
func (c Config) NeedsMongo() bool {
	return c.RecordStoreBackend == RecordStoreMongo || c.BlobStoreBackend == BlobStoreGridFS
}

// NeedsGoogleCredentials reports whether the selected backends talk to a
// Google API with the service-account credential pair.
func (c Config) NeedsGoogleCredentials() bool {
	return c.RecordStoreBackend == RecordStoreSheets ||
		c.BlobStoreBackend == BlobStoreGCS ||
		c.BlobStoreBackend == BlobStoreDrive
}

// unescapePrivateKey restores real newlines in a key that was stored as a
// single-line env value.
func unescapePrivateKey(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), `\n`, "\n")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
