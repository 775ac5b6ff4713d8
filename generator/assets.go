package generator

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"certgen/config"

	"github.com/go-resty/resty/v2"
)

// EnsureTemplateAssets downloads any catalog asset missing from the local
// template directory from the configured base URL. Best-effort: a failed
// download is logged and the renderer's template-missing fallback covers the
// gap at composition time.
func EnsureTemplateAssets() {
	baseURL := config.AppConfig.TemplateBaseURL
	templateDir := config.AppConfig.TemplateDir

	if err := os.MkdirAll(templateDir, 0755); err != nil {
		log.Printf("Cannot create template directory %s: %v", templateDir, err)
		return
	}
	if baseURL == "" {
		return
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2)

	fetched := 0
	for _, filename := range CatalogFilenames() {
		dest := filepath.Join(templateDir, filename)
		if _, err := os.Stat(dest); err == nil {
			continue
		}

		resp, err := client.R().SetOutput(dest).Get(filename)
		if err != nil {
			log.Printf("Template download failed for %s: %v", filename, err)
			continue
		}
		if resp.StatusCode() != 200 {
			log.Printf("Template download failed for %s: HTTP %d", filename, resp.StatusCode())
			os.Remove(dest)
			continue
		}
		fetched++
	}

	if fetched > 0 {
		log.Printf("Downloaded %d missing template assets", fetched)
	}
}
