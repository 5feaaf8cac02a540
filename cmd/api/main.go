package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"summarist/internal/archive"
	"summarist/internal/config"
	"summarist/internal/docstore"
	"summarist/internal/extract"
	"summarist/internal/llm"
	"summarist/internal/llmclient"
	"summarist/internal/server"
	"summarist/internal/session"
	"summarist/internal/summarize"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	base, err := buildClient(ctx, cfg)
	if err != nil {
		log.Fatalf("init LLM client: %v", err)
	}
	client := llm.Wrap(base,
		llm.WithLogging(nil),
		llm.Retry(llm.DefaultRetryPolicy()),
		llm.RateLimitFromEnv("SUMMARIST", "GEMINI"),
	)
	defer client.Close()

	var docs docstore.Store
	if cfg.Docs.Enabled {
		s3, err := docstore.NewS3Store(docstore.S3Config{
			Endpoint:  cfg.Docs.Endpoint,
			Region:    cfg.Docs.Region,
			AccessKey: cfg.Docs.AccessKey,
			SecretKey: cfg.Docs.SecretKey,
			Bucket:    cfg.Docs.Bucket,
			UseSSL:    cfg.Docs.UseSSL,
		})
		if err != nil {
			log.Fatalf("init document store: %v", err)
		}
		docs = s3
	} else {
		docs = docstore.NewMemoryStore()
	}

	svc := summarize.New(client, docs, extract.PlainText{})
	mgr := session.NewManager(svc)
	arch := archive.NewFromEnv(cfg.ArchivePath)
	defer arch.Close()

	srv := server.New(mgr, arch, nil)

	log.Printf("Starting API server on %s (model=%s, llm=%s)", cfg.Port, cfg.Model, client.Name())
	log.Fatal(http.ListenAndServe(cfg.Port, h2c.NewHandler(srv.Handler(), &http2.Server{})))
}

// buildClient picks the real Gemini client, or the fake for offline runs
// (SUMMARIST_FAKE_LLM=1 or no API key).
func buildClient(ctx context.Context, cfg *config.Config) (llmclient.Client, error) {
	fake := strings.TrimSpace(os.Getenv("SUMMARIST_FAKE_LLM"))
	if fake == "1" || strings.EqualFold(fake, "true") || os.Getenv("GEMINI_API_KEY") == "" {
		return llmclient.NewFakeClient(), nil
	}
	return llmclient.NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), cfg.Model)
}
