// Package binding 负责页眉、页脚等标签模板里 ${name} 占位符的替换。
package binding

import (
	"fmt"
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Vars 是模板可引用的变量，支持以点号访问嵌套 map。
type Vars map[string]any

// Interpolate 将文本中的 ${path.to.value} 替换为 vars 中的值。
// 路径不存在时保留原占位符，方便在输出中发现拼写错误。
func Interpolate(text string, vars Vars) string {
	if len(vars) == 0 {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := lookup(vars, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Placeholders 按出现顺序返回模板中引用的变量路径（去重）。
func Placeholders(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range exprPattern.FindAllStringSubmatch(text, -1) {
		p := strings.TrimSpace(m[1])
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func lookup(vars Vars, path string) (any, bool) {
	var current any = map[string]any(vars)
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			if v, isVars := current.(Vars); isVars {
				m = v
			} else {
				return nil, false
			}
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
