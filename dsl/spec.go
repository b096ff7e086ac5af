package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ByLCY/plannerkit/layout"
	"github.com/ByLCY/plannerkit/spec"
)

// Load 解析 DSL 并转换为 Spec。未出现的字段沿用 spec.Default()。
// 返回的 Spec 仍需经过 spec.Validate。
func Load(r io.Reader) (spec.Spec, error) {
	doc, err := Parse(r)
	if err != nil {
		return spec.Spec{}, fmt.Errorf("解析模板 DSL 失败: %w", err)
	}
	return ToSpec(doc)
}

// ToSpec 将语法树映射为 Spec。
func ToSpec(doc *Document) (spec.Spec, error) {
	if doc == nil {
		return spec.Spec{}, fmt.Errorf("文档为空")
	}
	s := spec.Default()
	s.Kind = spec.Kind(strings.ToLower(doc.Kind))
	s.Layout = spec.Layout(strings.ToLower(doc.Layout))

	for _, st := range doc.Block.Statements {
		var err error
		switch {
		case st.Assignment != nil:
			err = applyAssignment(&s, st.Assignment)
		case st.Command != nil:
			err = applyCommand(&s, st.Command)
		}
		if err != nil {
			return spec.Spec{}, err
		}
	}
	return s, nil
}

func applyAssignment(s *spec.Spec, a *Assignment) error {
	v := a.Value.Text()
	switch strings.ToLower(a.Key) {
	case "size":
		s.Size = spec.Size(strings.ToLower(v))
	case "orientation":
		s.Orientation = spec.Orientation(strings.ToLower(v))
	case "margins", "margin":
		pt, err := parsePoints(v)
		if err != nil {
			return posError(a.Pos, "margins: %v", err)
		}
		s.Margins = pt
	case "font":
		s.Font = v
	case "style":
		s.Style = v
	case "theme":
		s.Theme = v
	case "occasion":
		s.Occasion = v
	case "topic":
		s.Topic = v
	default:
		return posError(a.Pos, "未知字段 %q", a.Key)
	}
	return nil
}

func applyCommand(s *spec.Spec, cmd *Command) error {
	switch strings.ToLower(cmd.Name) {
	case "palette":
		return applyPalette(s, cmd)
	case "background":
		// background <type> <value>
		if len(cmd.Args) != 2 {
			return posError(cmd.Pos, "background 需要类型与取值两个参数")
		}
		if cmd.Block != nil {
			return posError(cmd.Pos, "background 不接受 { } 块")
		}
		s.Background = spec.Background{
			Type:  spec.BackgroundType(strings.ToLower(cmd.Args[0].Text())),
			Value: cmd.Args[1].Text(),
		}
		return nil
	case "grid":
		return applyGrid(s, cmd)
	case "pages":
		return applyPages(s, cmd)
	default:
		return posError(cmd.Pos, "未知指令 %q", cmd.Name)
	}
}

func applyPalette(s *spec.Spec, cmd *Command) error {
	if len(cmd.Args) > 1 {
		return posError(cmd.Pos, "palette 最多一个名称参数，多余的 %q 前缺少换行或 ';'", cmd.Args[1].Text())
	}
	if len(cmd.Args) > 0 {
		s.Palette.Name = cmd.Args[0].Text()
	}
	if cmd.Block == nil {
		return nil
	}
	for _, st := range cmd.Block.Statements {
		a := st.Assignment
		if a == nil {
			return posError(cmd.Pos, "palette 内只允许 key: value")
		}
		v := a.Value.Text()
		switch strings.ToLower(a.Key) {
		case "primary":
			s.Palette.Primary = v
		case "secondary":
			s.Palette.Secondary = v
		case "accent":
			s.Palette.Accent = v
		case "background":
			s.Palette.Background = v
		default:
			return posError(a.Pos, "palette 不支持的颜色 %q", a.Key)
		}
	}
	return nil
}

func applyGrid(s *spec.Spec, cmd *Command) error {
	if len(cmd.Args) > 0 {
		return posError(cmd.Pos, "grid 不接受参数 %q", cmd.Args[0].Text())
	}
	if cmd.Block == nil {
		return posError(cmd.Pos, "grid 缺少内容")
	}
	for _, st := range cmd.Block.Statements {
		a := st.Assignment
		if a == nil {
			return posError(cmd.Pos, "grid 内只允许 key: value")
		}
		v := a.Value.Text()
		switch strings.ToLower(a.Key) {
		case "line-spacing", "spacing":
			pt, err := parsePoints(v)
			if err != nil {
				return posError(a.Pos, "line-spacing: %v", err)
			}
			s.Grid.LineSpacing = pt
		case "dot-size":
			pt, err := parsePoints(v)
			if err != nil {
				return posError(a.Pos, "dot-size: %v", err)
			}
			s.Grid.DotSize = pt
		case "header":
			on, err := parseSwitch(v)
			if err != nil {
				return posError(a.Pos, "header: %v", err)
			}
			s.Grid.ShowHeader = on
		case "footer":
			on, err := parseSwitch(v)
			if err != nil {
				return posError(a.Pos, "footer: %v", err)
			}
			s.Grid.ShowFooter = on
		default:
			return posError(a.Pos, "grid 不支持的字段 %q", a.Key)
		}
	}
	return nil
}

// applyPages 处理 `pages <count> [from <date>] [to <date>]`。
func applyPages(s *spec.Spec, cmd *Command) error {
	if len(cmd.Args) == 0 {
		return posError(cmd.Pos, "pages 缺少页数")
	}
	if cmd.Block != nil {
		return posError(cmd.Pos, "pages 不接受 { } 块")
	}
	n, err := strconv.Atoi(cmd.Args[0].Text())
	if err != nil {
		return posError(cmd.Pos, "页数 %q 不是整数", cmd.Args[0].Text())
	}
	pages := spec.Pages{Count: n}
	rest := cmd.Args[1:]
	for len(rest) > 0 {
		if len(rest) < 2 {
			return posError(cmd.Pos, "%q 缺少日期", rest[0].Text())
		}
		switch strings.ToLower(rest[0].Text()) {
		case "from":
			pages.StartDate = rest[1].Text()
		case "to":
			pages.EndDate = rest[1].Text()
		default:
			return posError(cmd.Pos, "pages 不支持的参数 %q", rest[0].Text())
		}
		rest = rest[2:]
	}
	s.Pages = pages
	return nil
}

// parsePoints 解析长度，无单位视为 pt。
func parsePoints(value string) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	factor := 1.0
	for _, suf := range []struct {
		s string
		f float64
	}{{"pt", 1}, {"mm", layout.MmToPt}, {"cm", 10 * layout.MmToPt}, {"in", 72}} {
		if strings.HasSuffix(v, suf.s) {
			v = strings.TrimSuffix(v, suf.s)
			factor = suf.f
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%q 不是合法长度", value)
	}
	return f * factor, nil
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "true", "yes", "show":
		return true, nil
	case "off", "false", "no", "hide":
		return false, nil
	default:
		return false, fmt.Errorf("%q 不是开关值（on/off）", value)
	}
}

func posError(pos fmt.Stringer, format string, args ...any) error {
	return fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...))
}
