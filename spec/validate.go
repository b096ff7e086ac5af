package spec

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ByLCY/plannerkit/errs"
)

// 外部边界允许的取值范围。
const (
	MinMargins     = 0
	MaxMargins     = 72
	MinLineSpacing = 12
	MaxLineSpacing = 48
	MinDotSize     = 1
	MaxDotSize     = 6
	MinPages       = 1
	MaxPages       = 60
)

// Validate 执行外部边界的校验，一次性报告所有不合法字段。
// 引擎本身不调用它：进入引擎的 Spec 视为已经合法。
func Validate(s Spec) error {
	var problems []string
	bad := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if !slices.Contains(Kinds(), s.Kind) {
		bad("kind %q 不受支持", s.Kind)
	}
	if !slices.Contains(Layouts(), s.Layout) {
		bad("layout %q 不受支持", s.Layout)
	}
	if !slices.Contains(Sizes(), s.Size) {
		bad("size %q 不受支持", s.Size)
	}
	if !slices.Contains(Orientations(), s.Orientation) {
		bad("orientation %q 不受支持", s.Orientation)
	}
	if !slices.Contains(BackgroundTypes(), s.Background.Type) {
		bad("background.type %q 不受支持", s.Background.Type)
	}
	if strings.TrimSpace(s.Occasion) == "" {
		bad("occasion 不能为空")
	}
	if strings.TrimSpace(s.Topic) == "" {
		bad("topic 不能为空")
	}
	if s.Margins < MinMargins || s.Margins > MaxMargins {
		bad("margins %g 超出 [%d,%d]", s.Margins, MinMargins, MaxMargins)
	}
	if s.Grid.LineSpacing < MinLineSpacing || s.Grid.LineSpacing > MaxLineSpacing {
		bad("grid.lineSpacing %g 超出 [%d,%d]", s.Grid.LineSpacing, MinLineSpacing, MaxLineSpacing)
	}
	if s.Grid.DotSize < MinDotSize || s.Grid.DotSize > MaxDotSize {
		bad("grid.dotSize %g 超出 [%d,%d]", s.Grid.DotSize, MinDotSize, MaxDotSize)
	}
	if s.Pages.Count < MinPages || s.Pages.Count > MaxPages {
		bad("pages.count %d 超出 [%d,%d]", s.Pages.Count, MinPages, MaxPages)
	}

	if len(problems) > 0 {
		return errs.New(errs.CodeValidation, "%s", strings.Join(problems, "; "))
	}
	return nil
}
