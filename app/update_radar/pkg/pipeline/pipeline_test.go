package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/logger"
)

func TestDefaultQuery(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := DefaultQuery("Notion AI", now); got != "Notion AI new features 2025" {
		t.Errorf("DefaultQuery() = %q", got)
	}
}

func TestBuild(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.Product = "Notion AI"
	cfg.Pipeline.OutputDir = filepath.Join(t.TempDir(), "outputs")
	cfg.Search.Serper.APIKey = "test-key"
	cfg.LLM.APIKey = "test-key"

	eng, err := Build(context.Background(), cfg, logger.Discard(), nil, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if eng == nil {
		t.Fatal("Build returned nil engine")
	}
}

func TestBuild_Errors(t *testing.T) {
	cfg := config.Default()
	if _, err := Build(context.Background(), cfg, logger.Discard(), nil, nil); !errors.Is(err, config.ErrMissingProduct) {
		t.Errorf("Build error = %v, want ErrMissingProduct", err)
	}

	cfg.Pipeline.Product = "Notion AI"
	cfg.Search.Serper.APIKey = ""
	if _, err := Build(context.Background(), cfg, logger.Discard(), nil, nil); err == nil {
		t.Error("Build succeeded without a search key")
	}
}
