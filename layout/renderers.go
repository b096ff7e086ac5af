package layout

import (
	"math"

	"github.com/ByLCY/plannerkit/errs"
	"github.com/ByLCY/plannerkit/spec"
)

const (
	borderWidth   = 1.0
	gridLineWidth = 0.8 // 方格比边框细，两者的差别需要保留
	// 月/周/日版式的框体在页眉下方再留 20pt，保证边框始终位于页眉文字之下。
	boxTopGap = 20.0

	monthlyCols = 7
	monthlyRows = 5
	weeklySplit = 2
	dailyTime   = 0.3

	promptFirstOffset = 40.0
	promptStep        = 80.0
	promptFontSize    = 14.0
	promptRuleOffset  = 14.0
)

// Prompts 是提示版式固定使用的四条提示语，与 occasion/topic 无关。
var Prompts = [...]string{
	"Today I am grateful for...",
	"One thing I learned...",
	"A small win was...",
	"Tomorrow I will...",
}

// Fragment 是版式算法的输出：Text 进入 text 图层，Shapes 进入 shapes 图层。
// 提示语的下划线跟随各自的提示语放在 Text 中。
type Fragment struct {
	Text   []Element
	Shapes []Element
}

// Renderer 是单个版式算法，只依赖入参，不持有状态。
type Renderer func(area ContentArea, s spec.Spec) Fragment

// renderers 按版式查表分发；测试会确认 spec.Layouts() 中每一项都有实现。
var renderers = map[spec.Layout]Renderer{
	spec.LayoutMonthly: renderMonthly,
	spec.LayoutWeekly:  renderWeekly,
	spec.LayoutDaily:   renderDaily,
	spec.LayoutLined:   renderLined,
	spec.LayoutDotted:  renderDotted,
	spec.LayoutGrid:    renderGrid,
	spec.LayoutPrompt:  renderPrompt,
}

// boxed 标记需要在页眉下方额外留出 boxTopGap 的版式。
var boxed = map[spec.Layout]bool{
	spec.LayoutMonthly: true,
	spec.LayoutWeekly:  true,
	spec.LayoutDaily:   true,
}

// RenderLayout 计算一页的版式内容。
// 版式没有实现时返回 UNSUPPORTED_VARIANT，内容区域不为正时返回 GEOMETRY。
func RenderLayout(g Geometry, margin float64, s spec.Spec) (Fragment, error) {
	render, err := rendererFor(s.Layout)
	if err != nil {
		return Fragment{}, err
	}
	area, err := areaFor(g, margin, s.Layout)
	if err != nil {
		return Fragment{}, err
	}
	return render(area, s), nil
}

func rendererFor(l spec.Layout) (Renderer, error) {
	r, ok := renderers[l]
	if !ok {
		return nil, errs.New(errs.CodeUnsupportedVariant, "暂不支持的版式：%q", l)
	}
	return r, nil
}

func areaFor(g Geometry, margin float64, l spec.Layout) (ContentArea, error) {
	area, err := g.Content(margin)
	if err != nil {
		return ContentArea{}, err
	}
	if boxed[l] && area.Height() <= boxTopGap {
		return ContentArea{}, errs.New(errs.CodeGeometry,
			"边距 %gpt 过大，%s 版式的框体高度不为正", margin, l)
	}
	return area, nil
}

// steps 返回从 0 开始、间距为 spacing 且不超出 extent 的刻度数量。
func steps(extent, spacing float64) int {
	if spacing <= 0 || extent <= 0 {
		return 0
	}
	return int(math.Floor(extent/spacing + 1e-9))
}

// spans 返回满足 j*spacing < extent 的 j 的个数；恰好整除时不含右边界。
func spans(extent, spacing float64) int {
	if spacing <= 0 || extent <= 0 {
		return 0
	}
	return int(math.Ceil(extent/spacing - 1e-9))
}

func line(x1, y1, x2, y2 float64, stroke string, width float64) Element {
	return Element{Line: &Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Stroke: Paint(stroke), Width: width}}
}

// box 是月/周/日共用的外框：位于页眉下方 boxTopGap 处，主色描边。
func box(area ContentArea, s spec.Spec) (ContentArea, Element) {
	inner := area
	inner.Top += boxTopGap
	return inner, Element{Rect: &Rect{
		X:           inner.Left,
		Y:           inner.Top,
		Width:       inner.Width(),
		Height:      inner.Height(),
		Stroke:      Paint(s.Palette.Primary),
		StrokeWidth: borderWidth,
	}}
}

// renderMonthly 绘制固定的 7×5 网格：外框、6 条竖向与 4 条横向分隔线。
func renderMonthly(area ContentArea, s spec.Spec) Fragment {
	inner, border := box(area, s)
	cellW := inner.Width() / monthlyCols
	cellH := inner.Height() / monthlyRows

	shapes := []Element{border}
	for i := 1; i < monthlyCols; i++ {
		x := inner.Left + cellW*float64(i)
		shapes = append(shapes, line(x, inner.Top, x, inner.Bottom, s.Palette.Secondary, borderWidth))
	}
	for i := 1; i < monthlyRows; i++ {
		y := inner.Top + cellH*float64(i)
		shapes = append(shapes, line(inner.Left, y, inner.Right, y, s.Palette.Secondary, borderWidth))
	}
	return Fragment{Shapes: shapes}
}

// renderWeekly 将内容区均分为左右两栏（不按真实日历排布）。
func renderWeekly(area ContentArea, s spec.Spec) Fragment {
	inner, border := box(area, s)
	x := inner.Left + inner.Width()/weeklySplit
	return Fragment{Shapes: []Element{
		border,
		line(x, inner.Top, x, inner.Bottom, s.Palette.Secondary, borderWidth),
	}}
}

// renderDaily 在内容宽度 30% 处画出时间栏分隔线。
func renderDaily(area ContentArea, s spec.Spec) Fragment {
	inner, border := box(area, s)
	x := inner.Left + inner.Width()*dailyTime
	return Fragment{Shapes: []Element{
		border,
		line(x, inner.Top, x, inner.Bottom, s.Palette.Secondary, borderWidth),
	}}
}

// renderLined 从 y=2*margin 起按行距画横线，共 floor((h-3m)/lineSpacing) 条。
func renderLined(area ContentArea, s spec.Spec) Fragment {
	spacing := s.Grid.LineSpacing
	rows := steps(area.Height(), spacing)
	shapes := make([]Element, 0, rows)
	for k := 0; k < rows; k++ {
		y := area.Top + float64(k)*spacing
		shapes = append(shapes, line(area.Left, y, area.Right, y, s.Palette.Secondary, borderWidth))
	}
	return Fragment{Shapes: shapes}
}

// renderDotted 输出与横线版式同一纵向范围的点阵，列铺满 x < w-m。
func renderDotted(area ContentArea, s spec.Spec) Fragment {
	spacing := s.Grid.LineSpacing
	rows := steps(area.Height(), spacing)
	cols := spans(area.Width(), spacing)
	shapes := make([]Element, 0, rows*cols)
	for k := 0; k < rows; k++ {
		y := area.Top + float64(k)*spacing
		for j := 0; j < cols; j++ {
			x := area.Left + float64(j)*spacing
			shapes = append(shapes, Element{Circle: &Circle{CX: x, CY: y, R: s.Grid.DotSize, Fill: Paint(s.Palette.Secondary)}})
		}
	}
	return Fragment{Shapes: shapes}
}

// renderGrid 先画全部横线再画全部竖线（x < w-m），线宽 0.8。
func renderGrid(area ContentArea, s spec.Spec) Fragment {
	spacing := s.Grid.LineSpacing
	rows := steps(area.Height(), spacing)
	cols := spans(area.Width(), spacing)
	shapes := make([]Element, 0, rows+cols)
	for k := 0; k < rows; k++ {
		y := area.Top + float64(k)*spacing
		shapes = append(shapes, line(area.Left, y, area.Right, y, s.Palette.Secondary, gridLineWidth))
	}
	for j := 0; j < cols; j++ {
		x := area.Left + float64(j)*spacing
		shapes = append(shapes, line(x, area.Top, x, area.Bottom, s.Palette.Secondary, gridLineWidth))
	}
	return Fragment{Shapes: shapes}
}

// renderPrompt 输出四条提示语及其下划线，第 i 条位于 y = 2m + 40 + 80i。
func renderPrompt(area ContentArea, s spec.Spec) Fragment {
	var frag Fragment
	for i, prompt := range Prompts {
		y := area.Top + promptFirstOffset + float64(i)*promptStep
		frag.Text = append(frag.Text, Element{Text: &TextBox{
			Content:  prompt,
			X:        area.Left,
			Y:        y,
			Font:     s.Font,
			FontSize: promptFontSize,
			Fill:     Paint(s.Palette.Primary),
			Anchor:   AnchorStart,
		}})
		frag.Text = append(frag.Text, line(area.Left, y+promptRuleOffset, area.Right, y+promptRuleOffset, s.Palette.Secondary, borderWidth))
	}
	return frag
}
