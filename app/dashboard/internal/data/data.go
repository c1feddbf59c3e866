package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/update_radar/app/dashboard/internal/repo"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/storage"
)

type Data struct {
	store *storage.Storage
}

// NewData 连接运行归档数据库，未配置或连接失败时以无归档模式运行
func NewData(c config.DBConfig, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	if c.Host == "" {
		helper.Info("未配置数据库信息，运行归档已禁用")
		return &Data{}, func() {}, nil
	}

	store, err := storage.NewStorage(c)
	if err != nil {
		helper.Errorf("无法连接数据库: %v. 运行归档已禁用", err)
		return &Data{}, func() {}, nil
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		store.Close()
	}
	return &Data{store: store}, cleanup, nil
}

type runRepo struct {
	data *Data
	log  *log.Helper
}

// NewRunRepo 返回运行归档仓库，无归档时返回 nil
func NewRunRepo(data *Data, logger log.Logger) repo.RunRepo {
	if data == nil || data.store == nil {
		return nil
	}
	return &runRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *runRepo) ListRuns(ctx context.Context, limit int) ([]*model.Run, error) {
	return r.data.store.ListRuns(ctx, limit)
}

func (r *runRepo) SaveRun(ctx context.Context, run *model.Run) error {
	if err := r.data.store.SaveRun(ctx, run); err != nil {
		return err
	}
	r.log.Infof("运行结果已归档: %s", run.ID)
	return nil
}
