package layout

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/plannerkit/binding"
	"github.com/ByLCY/plannerkit/spec"
)

const (
	headerFontSize   = 18.0
	headerRuleOffset = 10.0
	footerFontSize   = 12.0
	creator          = "plannerkit"
)

// Compose 根据 Spec 生成第 1..N 页矢量页。
//
// 每一页只依赖自身的页码，因此按 opts.Workers 并行计算，各自写入固定下标，
// 返回结果始终按页码排序。任何一页失败都会让整次调用失败，不返回部分页面。
func Compose(ctx context.Context, s spec.Spec, opts BuildOptions) (*Result, error) {
	g, err := Resolve(s.Size, s.Orientation)
	if err != nil {
		return nil, err
	}
	// 先校验一次版式与内容区域，避免每个 worker 重复报告同一个错误。
	if _, err := RenderLayout(g, s.Margins, s); err != nil {
		return nil, err
	}
	if s.Pages.Count <= 0 {
		return nil, fmt.Errorf("页数必须为正，实际 %d", s.Pages.Count)
	}

	pages := make([]Page, s.Pages.Count)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.workers())
	for i := range pages {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, err := ComposePage(g, s, i+1, opts)
			if err != nil {
				return fmt.Errorf("排版第 %d 页失败: %w", i+1, err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		Geometry: g,
		Pages:    pages,
		Meta:     collectMeta(s),
	}, nil
}

// ComposePage 组装第 number 页（从 1 开始）。同样的入参总是得到相同的页面。
func ComposePage(g Geometry, s spec.Spec, number int, opts BuildOptions) (Page, error) {
	frag, err := RenderLayout(g, s.Margins, s)
	if err != nil {
		return Page{}, err
	}
	m := s.Margins

	background := Layer{Name: LayerBackground, Elements: []Element{{Rect: &Rect{
		X: 0, Y: 0, Width: g.Width, Height: g.Height,
		Fill: Paint(s.Background.Value),
	}}}}

	text := Layer{Name: LayerText}
	if s.Grid.ShowHeader {
		label := binding.Interpolate(opts.headerTemplate(), binding.Vars{
			"kind":   s.Kind.Title(),
			"layout": string(s.Layout),
		})
		text.Elements = append(text.Elements,
			Element{Text: &TextBox{
				Content:  label,
				X:        m,
				Y:        m,
				Font:     s.Font,
				FontSize: headerFontSize,
				Fill:     Paint(s.Palette.Primary),
				Anchor:   AnchorStart,
			}},
			line(m, m+headerRuleOffset, g.Width-m, m+headerRuleOffset, s.Palette.Secondary, borderWidth),
		)
	}
	if s.Grid.ShowFooter {
		label := binding.Interpolate(opts.footerTemplate(), binding.Vars{
			"page":  number,
			"pages": s.Pages.Count,
		})
		text.Elements = append(text.Elements, Element{Text: &TextBox{
			Content:  label,
			X:        g.Width - m,
			Y:        g.Height - m,
			Font:     s.Font,
			FontSize: footerFontSize,
			Fill:     Paint(s.Palette.Primary),
			Anchor:   AnchorEnd,
		}})
	}
	text.Elements = append(text.Elements, frag.Text...)

	shapes := Layer{Name: LayerShapes, Elements: frag.Shapes}

	return Page{
		Number: number,
		Width:  g.Width,
		Height: g.Height,
		Layers: []Layer{background, text, shapes},
	}, nil
}

func collectMeta(s spec.Spec) DocumentMeta {
	var keywords []string
	for _, k := range []string{s.Occasion, s.Topic, s.Style, s.Theme} {
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return DocumentMeta{
		Title:    fmt.Sprintf("%s · %s", s.Kind.Title(), s.Layout),
		Subject:  s.Topic,
		Creator:  creator,
		Keywords: keywords,
	}
}
