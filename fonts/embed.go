// Package fonts 提供 PDF 渲染所需的内置字体。
//
// Spec 中的 font 只是一个家族名（例如 "Arial"），SVG 原样写入，由查看端解析；
// PDF 必须嵌入字形，找不到系统字体时使用这里的 Go 字体。
package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名。
const (
	Regular = "goregular"
	Bold    = "gobold"
	Mono    = "gomono"
)

var builtin = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
	Mono:    gomono.TTF,
}

// 等宽家族映射到 Mono，其余一律使用 Regular。
var monospace = map[string]bool{
	"courier":     true,
	"courier new": true,
	"consolas":    true,
	"menlo":       true,
	"monaco":      true,
	"monospace":   true,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:goregular" 或直接 "goregular"。
func Load(name string) ([]byte, error) {
	name = strings.TrimPrefix(name, "embed:")
	data, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("内置字体 %s 不存在，可选：%s", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 返回全部内置字体名（已排序）。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Substitute 为家族名挑选最接近的内置字体；fallback 为空时使用 Regular。
func Substitute(family, fallback string) string {
	if monospace[strings.ToLower(strings.TrimSpace(family))] {
		return Mono
	}
	if fallback == "" {
		return Regular
	}
	return fallback
}
