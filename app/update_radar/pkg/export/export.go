package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
)

// JSONExporter 将结果写入 <dir>/<产品名>.json
type JSONExporter struct {
	dir string
}

// NewJSONExporter 创建导出器，目录不存在时自动创建
func NewJSONExporter(dir string) (*JSONExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &JSONExporter{dir: dir}, nil
}

// FileName 产品名转小写并将空格替换为下划线
func FileName(product string) string {
	return strings.ReplaceAll(strings.ToLower(product), " ", "_") + ".json"
}

// Path 返回产品对应的输出文件路径
func (e *JSONExporter) Path(product string) string {
	return filepath.Join(e.dir, FileName(product))
}

// Export 覆盖写入结果，返回文件路径。先写同目录临时文件再改名，读者只会看到完整的旧文件或新文件
func (e *JSONExporter) Export(product string, updates []model.Update) (string, error) {
	if updates == nil {
		updates = []model.Update{}
	}

	data, err := json.MarshalIndent(updates, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal updates: %w", err)
	}

	path := e.Path(product)
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
