// Command modelpull downloads the GGUF weight file the inference runtime
// serves. The backend itself never downloads weights; a missing file just
// degrades /status and /chat until this has run.
package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"llamadesk-be/internal/config"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	if cfg.Llama.ModelURL == "" {
		log.Fatal("LLAMA_MODEL_URL is not set; nothing to download")
	}

	if _, err := os.Stat(cfg.Llama.ModelPath); err == nil {
		color.Yellow("Model already present at %s, skipping download.", cfg.Llama.ModelPath)
		return
	}

	if err := download(cfg.Llama.ModelURL, cfg.Llama.ModelPath); err != nil {
		log.Fatalf("Download failed: %v", err)
	}

	color.Green("Model downloaded to %s", cfg.Llama.ModelPath)
}

func download(url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	// Write to a temp name first so a torn download never looks like a
	// loadable weight file.
	tmp := dest + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dest)
}
