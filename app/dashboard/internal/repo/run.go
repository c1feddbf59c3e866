package repo

import (
	"context"
	"errors"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
)

// ErrNoArchive 未配置运行归档
var ErrNoArchive = errors.New("run archive is not configured")

// RunRepo 运行归档仓库接口
type RunRepo interface {
	// ListRuns 按时间倒序获取最近的运行记录
	ListRuns(ctx context.Context, limit int) ([]*model.Run, error)
	// SaveRun 归档一次运行
	SaveRun(ctx context.Context, run *model.Run) error
}
