package main

import (
	"context"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/update_radar/app/dashboard/internal/conf"
	"github.com/iWorld-y/update_radar/app/dashboard/internal/data"
	"github.com/iWorld-y/update_radar/app/dashboard/internal/server"
	"github.com/iWorld-y/update_radar/app/dashboard/internal/service"
	"github.com/iWorld-y/update_radar/app/dashboard/internal/usecase"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/engine"
	radarLogger "github.com/iWorld-y/update_radar/app/update_radar/pkg/logger"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/pipeline"
)

// initApp 组装 dashboard 服务
func initApp(cs *conf.Server, cr *conf.Radar, logger log.Logger) (*kratos.App, func(), error) {
	radarCfg := server.NewRadarConfig(cr)

	engineLog, err := radarLogger.New(radarCfg.Log.Level, radarCfg.Log.File)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init radar logger: %v", err)
		if engineLog, err = radarLogger.New("info", ""); err != nil {
			return nil, nil, err
		}
	}

	dataData, cleanup, err := data.NewData(radarCfg.DB, logger)
	if err != nil {
		return nil, nil, err
	}
	runRepo := data.NewRunRepo(dataData, logger)

	build := func(ctx context.Context, cfg *config.Config, archiver engine.Archiver) (usecase.Runner, error) {
		return pipeline.Build(ctx, cfg, engineLog, archiver, nil)
	}
	runUseCase := usecase.NewRunUseCase(radarCfg, build, runRepo, logger)
	radarService := service.NewRadarService(runUseCase, logger)
	httpServer := server.NewHTTPServer(cs, radarService, logger)

	return newApp(logger, httpServer), cleanup, nil
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}
