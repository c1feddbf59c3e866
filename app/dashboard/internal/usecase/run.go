package usecase

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/update_radar/app/dashboard/internal/domain"
	"github.com/iWorld-y/update_radar/app/dashboard/internal/repo"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/engine"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
)

// Runner 单次流水线
type Runner interface {
	Run(ctx context.Context, query string) (*model.Run, error)
}

// EngineBuilder 按配置构造全新的流水线，archiver 可为空
type EngineBuilder func(ctx context.Context, cfg *config.Config, archiver engine.Archiver) (Runner, error)

// RunUseCase 运行流水线与查询归档
type RunUseCase struct {
	base  *config.Config
	build EngineBuilder
	repo  repo.RunRepo
	log   *log.Helper
}

// NewRunUseCase 创建运行业务逻辑实例，repo 为空表示未启用归档
func NewRunUseCase(base *config.Config, build EngineBuilder, repo repo.RunRepo, logger log.Logger) *RunUseCase {
	return &RunUseCase{base: base, build: build, repo: repo, log: log.NewHelper(logger)}
}

// Run 每次请求使用新的引擎，去重记忆不跨请求共享
func (uc *RunUseCase) Run(ctx context.Context, req *domain.RunRequest) (*model.Run, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg := *uc.base
	cfg.Pipeline.Product = req.Product
	cfg.Pipeline.NumResults = req.NumResults
	cfg.Pipeline.MaxMonthsOld = req.MaxMonthsOld

	var archiver engine.Archiver
	if uc.repo != nil {
		archiver = uc.repo
	}

	runner, err := uc.build(ctx, &cfg, archiver)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("开始运行: product=%s query=%s", req.Product, req.Query)
	return runner.Run(ctx, req.Query)
}

// List 列出最近的归档运行
func (uc *RunUseCase) List(ctx context.Context, limit int) ([]*model.Run, error) {
	if uc.repo == nil {
		return nil, repo.ErrNoArchive
	}
	return uc.repo.ListRuns(ctx, limit)
}
