package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/datenorm"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/engine"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/export"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/fetcher"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/search/factory"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/summarizer"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/verifier"
)

// DefaultQuery 返回产品的默认查询词
func DefaultQuery(product string, now time.Time) string {
	return fmt.Sprintf("%s new features %d", product, now.Year())
}

// Build 按配置组装一个全新的引擎，archiver 可为空
func Build(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, archiver engine.Archiver, progress func(string, int)) (*engine.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("init searcher: %w", err)
	}

	chatModel, err := summarizer.NewChatModel(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	limiter := summarizer.NewLimiter(cfg.Concurrency)
	log.Infof("限流器已配置: Limit=%.2f req/s, Burst=%d", float64(limiter.Limit()), limiter.Burst())

	exporter, err := export.NewJSONExporter(cfg.Pipeline.OutputDir)
	if err != nil {
		return nil, err
	}

	sum := summarizer.New(chatModel, fetcher.New(0), limiter, log)
	ver := verifier.New(cfg.Pipeline.MaxMonthsOld, cfg.Pipeline.Blacklist, datenorm.New())

	return engine.NewEngine(engine.Options{
		Product:      cfg.Pipeline.Product,
		NumResults:   cfg.Pipeline.NumResults,
		Topic:        cfg.Search.Topic,
		MaxMonthsOld: cfg.Pipeline.MaxMonthsOld,
	}, engine.Deps{
		Searcher:         searcher,
		Summarizer:       sum,
		Verifier:         ver,
		Exporter:         exporter,
		Archiver:         archiver,
		Logger:           log,
		ProgressCallback: progress,
	})
}
