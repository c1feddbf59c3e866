package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/engine"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/logger"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/pipeline"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/storage"
)

var (
	flagConf    = flag.String("conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flagProduct = flag.String("product", "", "product name, eg: -product \"Notion AI\"")
	flagQuery   = flag.String("query", "", "search query, defaults to \"<product> new features <year>\"")
	flagNum     = flag.Int("n", 0, "number of updates to return")
	flagMaxAge  = flag.Int("max-age", 0, "maximum age of an update in months")
)

func main() {
	flag.Parse()

	// 1. 加载配置，命令行参数优先
	cfg, err := config.LoadConfig(*flagConf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if *flagProduct != "" {
		cfg.Pipeline.Product = *flagProduct
	}
	if *flagNum != 0 {
		cfg.Pipeline.NumResults = *flagNum
	}
	if *flagMaxAge != 0 {
		cfg.Pipeline.MaxMonthsOld = *flagMaxAge
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	// 2. 初始化日志
	logg, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logg.Info("启动产品更新雷达...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 3. 可选的数据库归档
	var archiver engine.Archiver
	if cfg.DB.Host != "" {
		store, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logg.Errorf("无法连接数据库: %v. 将仅导出 JSON 文件。", err)
		} else {
			defer store.Close()
			archiver = store
			logg.Info("已成功连接到数据库")
		}
	} else {
		logg.Info("未配置数据库信息，跳过数据库连接")
	}

	// 4. 组装并运行流水线
	eng, err := pipeline.Build(ctx, cfg, logg, archiver, nil)
	if err != nil {
		logg.Fatalf("初始化流水线失败: %v", err)
	}

	query := *flagQuery
	if query == "" {
		query = pipeline.DefaultQuery(cfg.Pipeline.Product, time.Now())
	}

	run, err := eng.Run(ctx, query)
	if err != nil {
		logg.Fatalf("流水线运行失败: %v", err)
	}

	out, err := json.MarshalIndent(run.Updates, "", "    ")
	if err != nil {
		logg.Fatalf("序列化结果失败: %v", err)
	}
	fmt.Printf("Results saved to: %s\n", run.OutputPath)
	fmt.Println(string(out))
	logg.Infof("✅ 产品更新雷达运行完毕: %d 条结果", len(run.Updates))
}
