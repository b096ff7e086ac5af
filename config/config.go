// Package config 读取 plannerkit.toml。
//
// 所有字段都有默认值，配置文件不存在时直接使用 Default()。
// 文件中出现未知键视为错误，避免拼写错误被静默忽略。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/plannerkit/archive"
	"github.com/ByLCY/plannerkit/fonts"
)

// DefaultFile 是命令行未指定 --config 时查找的文件名。
const DefaultFile = "plannerkit.toml"

// Config 是完整配置。
type Config struct {
	Render  Render  `toml:"render"`
	Fonts   Fonts   `toml:"fonts"`
	Archive Archive `toml:"archive"`
	Preview Preview `toml:"preview"`
	Log     Log     `toml:"log"`
}

// Render 控制排版并发度与页眉页脚模板。
type Render struct {
	Workers        int    `toml:"workers"`
	HeaderTemplate string `toml:"header_template"`
	FooterTemplate string `toml:"footer_template"`
}

// Fonts 控制 PDF 的字体来源。
type Fonts struct {
	System   bool   `toml:"system"`
	Fallback string `toml:"fallback"`
}

// Archive 控制 ZIP 压缩方式与 Deflate 级别。
type Archive struct {
	Compression string `toml:"compression"`
	Level       int    `toml:"level"`
}

// Preview 控制预览输出。
type Preview struct {
	Minify bool `toml:"minify"`
}

// Log 控制日志级别：debug、info、warn、error。
type Log struct {
	Level string `toml:"level"`
}

// Default 返回默认配置。
func Default() Config {
	return Config{
		Render:  Render{Workers: runtime.NumCPU()},
		Fonts:   Fonts{Fallback: fonts.Regular},
		Archive: Archive{Compression: string(archive.Deflate), Level: archive.DefaultLevel},
		Preview: Preview{Minify: true},
		Log:     Log{Level: "info"},
	}
}

// Load 读取 path 并叠加到默认配置上。path 为空或文件不存在时返回默认配置。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}
	if err := Parse(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置 %s 失败: %w", path, err)
	}
	return cfg, nil
}

// Parse 将 TOML 文本解码到 cfg 并校验。
func Parse(data string, cfg *Config) error {
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("未知配置项：%s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate 检查取值是否合法。
func (c Config) Validate() error {
	var problems []string
	if c.Render.Workers < 1 {
		problems = append(problems, fmt.Sprintf("render.workers 必须 >= 1，实际 %d", c.Render.Workers))
	}
	if _, err := fonts.Load(c.Fonts.Fallback); err != nil {
		problems = append(problems, fmt.Sprintf("fonts.fallback: %v", err))
	}
	switch archive.Compression(c.Archive.Compression) {
	case archive.Deflate, archive.Store:
	default:
		problems = append(problems, fmt.Sprintf("archive.compression 只能是 deflate 或 store，实际 %q", c.Archive.Compression))
	}
	if c.Archive.Level < archive.MinLevel || c.Archive.Level > archive.MaxLevel {
		problems = append(problems, fmt.Sprintf("archive.level 超出 [%d,%d]，实际 %d", archive.MinLevel, archive.MaxLevel, c.Archive.Level))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level 无效：%q", c.Log.Level))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
