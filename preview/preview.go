// Package preview 生成向导使用的低保真预览。
//
// 预览固定为 320×420，与正式页面共用坐标约定（pt，左上角为原点），
// 但不调用任何版式算法，只绘制背景、页眉、外框与页脚占位。
package preview

import (
	"bytes"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/ByLCY/plannerkit/layout"
	svgrenderer "github.com/ByLCY/plannerkit/renderer/svg"
	"github.com/ByLCY/plannerkit/spec"
)

const (
	Width  = 320.0
	Height = 420.0
	Margin = 20.0

	headerFontSize = 14.0
	footerFontSize = 10.0
	footerLabel    = "Preview"
	mediaType      = "image/svg+xml"
)

// Page 返回预览场景。页眉直接显示 layout 的原始值。
func Page(s spec.Spec) layout.Page {
	background := layout.Layer{Name: layout.LayerBackground, Elements: []layout.Element{{Rect: &layout.Rect{
		Width: Width, Height: Height, Fill: layout.Paint(s.Background.Value),
	}}}}

	text := layout.Layer{Name: layout.LayerText}
	if s.Grid.ShowHeader {
		text.Elements = append(text.Elements, layout.Element{Text: &layout.TextBox{
			Content:  string(s.Layout),
			X:        Margin,
			Y:        Margin,
			Font:     s.Font,
			FontSize: headerFontSize,
			Fill:     layout.Paint(s.Palette.Primary),
			Anchor:   layout.AnchorStart,
		}})
	}
	if s.Grid.ShowFooter {
		text.Elements = append(text.Elements, layout.Element{Text: &layout.TextBox{
			Content:  footerLabel,
			X:        Width - Margin,
			Y:        Height - Margin,
			Font:     s.Font,
			FontSize: footerFontSize,
			Fill:     layout.Paint(s.Palette.Primary),
			Anchor:   layout.AnchorEnd,
		}})
	}

	shapes := layout.Layer{Name: layout.LayerShapes, Elements: []layout.Element{{Rect: &layout.Rect{
		X:           Margin,
		Y:           Margin * 2,
		Width:       Width - Margin*2,
		Height:      Height - Margin*3,
		Stroke:      layout.Paint(s.Palette.Secondary),
		StrokeWidth: 1,
	}}}}

	return layout.Page{
		Number: 1,
		Width:  Width,
		Height: Height,
		Layers: []layout.Layer{background, text, shapes},
	}
}

// Render 返回预览的 SVG 文本。
func Render(s spec.Spec) string {
	return string(svgrenderer.Encode(Page(s)))
}

// Minify 压缩 SVG 文本，用于内联到页面。
func Minify(markup string) (string, error) {
	m := minify.New()
	m.AddFunc(mediaType, svg.Minify)
	out, err := m.String(mediaType, markup)
	if err != nil {
		return "", fmt.Errorf("压缩预览 SVG 失败: %w", err)
	}
	return out, nil
}

// Thumbnail 将预览场景栅格化为 PNG，scale 为像素/pt。文本不绘制。
func Thumbnail(s spec.Spec, scale float64) ([]byte, error) {
	return Rasterize(Page(s), scale)
}

// Rasterize 把任意矢量页的图形栅格化为 PNG，文本元素被跳过。
func Rasterize(page layout.Page, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("缩放比例必须为正，实际 %g", scale)
	}
	w := int(page.Width*scale + 0.5)
	h := int(page.Height*scale + 0.5)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("缩略图尺寸无效：%dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	for _, layer := range page.Layers {
		for _, el := range layer.Elements {
			if err := rasterizeElement(dc, el, scale); err != nil {
				return nil, fmt.Errorf("栅格化 %s 图层失败: %w", layer.Name, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func rasterizeElement(dc *gg.Context, el layout.Element, k float64) error {
	switch {
	case el.Rect != nil:
		r := el.Rect
		if visible(r.Fill) {
			dc.SetHexColor(string(r.Fill))
			dc.DrawRectangle(r.X*k, r.Y*k, r.Width*k, r.Height*k)
			if err := dc.Fill(); err != nil {
				return err
			}
		}
		if visible(r.Stroke) && r.StrokeWidth > 0 {
			dc.SetHexColor(string(r.Stroke))
			dc.SetLineWidth(r.StrokeWidth * k)
			dc.DrawRectangle(r.X*k, r.Y*k, r.Width*k, r.Height*k)
			return dc.Stroke()
		}
	case el.Line != nil:
		l := el.Line
		if !visible(l.Stroke) {
			return nil
		}
		dc.SetHexColor(string(l.Stroke))
		dc.SetLineWidth(l.Width * k)
		dc.DrawLine(l.X1*k, l.Y1*k, l.X2*k, l.Y2*k)
		return dc.Stroke()
	case el.Circle != nil:
		c := el.Circle
		if !visible(c.Fill) {
			return nil
		}
		dc.SetHexColor(string(c.Fill))
		dc.DrawCircle(c.CX*k, c.CY*k, c.R*k)
		return dc.Fill()
	}
	return nil
}

func visible(p layout.Paint) bool {
	return p != "" && p != "none"
}
