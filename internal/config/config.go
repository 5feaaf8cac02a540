package config

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	Model       string
	ArchivePath string
	Docs        DocsConfig
}

// DocsConfig configures object storage for uploaded documents. Disabled
// (in-memory store) when no endpoint resolves.
type DocsConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	model := strings.TrimSpace(os.Getenv("SUMMARIST_MODEL"))
	if model == "" {
		model = "gemini-2.5-flash"
	}

	archivePath := strings.TrimSpace(os.Getenv("ARCHIVE_PATH"))
	if archivePath == "" {
		archivePath = "tmp/conversations.json"
	}

	return &Config{
		Port:        *port,
		Env:         env,
		Model:       model,
		ArchivePath: archivePath,
		Docs:        loadDocsConfig(env),
	}, nil
}

func loadDocsConfig(env string) DocsConfig {
	endpoint := resolveDocsEndpoint(env)
	return DocsConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("DOCS_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("DOCS_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("DOCS_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("DOCS_S3_BUCKET")), "summarist-documents"),
		UseSSL:    resolveDocsUseSSL(env),
	}
}

func resolveDocsEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return strings.TrimSpace(os.Getenv("DOCS_MINIO_ENDPOINT"))
	}
	return strings.TrimSpace(os.Getenv("DOCS_S3_ENDPOINT"))
}

func resolveDocsUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("DOCS_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	return strings.EqualFold(raw, "true") || raw == "1"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
