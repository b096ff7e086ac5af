package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/plannerkit/errs"
	"github.com/ByLCY/plannerkit/fonts"
	"github.com/ByLCY/plannerkit/layout"
	"github.com/ByLCY/plannerkit/renderer"
)

// defaultInk 是无法解析的颜色回退值。
var defaultInk = color.RGBA{R: 30, G: 30, B: 30, A: 255}

var transparent = color.RGBA{}

// Renderer draws vector pages via github.com/tdewolff/canvas.
// 同一个 Renderer 可以被多个 Writer 并发使用，字体家族在其中缓存。
type Renderer struct {
	systemFonts bool
	fallback    string

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var (
	_ renderer.Renderer   = (*Renderer)(nil)
	_ renderer.PageWriter = (*Writer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	// SystemFonts 为 true 时先按家族名查找系统字体，找不到再使用内置字体。
	SystemFonts bool
	// Fallback 是内置字体名（见 fonts.Names），为空时使用 fonts.Regular。
	Fallback string
}

// NewRenderer creates a renderer that only uses built-in fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with the given font policy.
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{
		systemFonts:  opts.SystemFonts,
		fallback:     opts.Fallback,
		fontFamilies: map[string]*canvas.FontFamily{},
	}
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, errs.New(errs.CodeAssembly, "渲染结果为空")
	}
	return Assemble(r.NewWriter(result.Meta), result.Pages)
}

// NewWriter 返回一个新的 PDF 页面写入器，meta 写入文档信息字典。
func (r *Renderer) NewWriter(meta layout.DocumentMeta) *Writer {
	return &Writer{r: r, meta: meta}
}

// Assemble 按顺序把 pages 追加到 w 并封装一次。
// 没有页面、追加失败或封装失败都返回 ASSEMBLY 错误，不会返回不完整的文档。
func Assemble(w renderer.PageWriter, pages []layout.Page) ([]byte, error) {
	if len(pages) == 0 {
		return nil, errs.New(errs.CodeAssembly, "缺少可渲染的页面")
	}
	for _, page := range pages {
		if err := w.Append(page); err != nil {
			return nil, errs.Wrap(errs.CodeAssembly, err, "追加第 %d 页失败", page.Number)
		}
	}
	data, err := w.Seal()
	if err != nil {
		return nil, errs.Wrap(errs.CodeAssembly, err, "封装 PDF 失败")
	}
	return data, nil
}

// Writer 是基于 canvas/pdf 的 renderer.PageWriter。
// 页面尺寸由 pt 换算为 mm，页面边距为 0，坐标与矢量页一致。
type Writer struct {
	r      *Renderer
	meta   layout.DocumentMeta
	buf    bytes.Buffer
	pdf    *pdf.PDF
	sealed bool
}

// Append 把一页绘制到文档末尾。
func (w *Writer) Append(page layout.Page) error {
	if w.sealed {
		return fmt.Errorf("文档已封装，无法继续追加第 %d 页", page.Number)
	}
	width, height := toMm(page.Width), toMm(page.Height)
	if w.pdf == nil {
		w.pdf = pdf.New(&w.buf, width, height, nil)
		applyMeta(w.pdf, w.meta)
	} else {
		w.pdf.NewPage(width, height)
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与矢量页保持左上角为原点
	if err := w.r.drawPage(ctx, page); err != nil {
		return err
	}
	c.RenderTo(w.pdf)
	return nil
}

// Seal 结束文档并返回 PDF 字节。
func (w *Writer) Seal() ([]byte, error) {
	if w.sealed {
		return nil, fmt.Errorf("文档已封装")
	}
	w.sealed = true
	if w.pdf == nil {
		return nil, fmt.Errorf("文档没有任何页面")
	}
	if err := w.pdf.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return w.buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawPage 按图层顺序绘制，后绘制的图层位于上方。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	for _, layer := range page.Layers {
		for _, el := range layer.Elements {
			var err error
			switch {
			case el.Rect != nil:
				drawRect(ctx, *el.Rect)
			case el.Line != nil:
				drawLine(ctx, *el.Line)
			case el.Circle != nil:
				drawCircle(ctx, *el.Circle)
			case el.Text != nil:
				err = r.drawText(ctx, *el.Text)
			}
			if err != nil {
				return fmt.Errorf("绘制 %s 图层失败: %w", layer.Name, err)
			}
		}
	}
	return nil
}

func drawRect(ctx *canvas.Context, rc layout.Rect) {
	ctx.SetFillColor(colorFromPaint(rc.Fill))
	if rc.Stroke != "" && rc.StrokeWidth > 0 {
		ctx.SetStrokeColor(colorFromPaint(rc.Stroke))
		ctx.SetStrokeWidth(toMm(rc.StrokeWidth))
	} else {
		ctx.SetStrokeColor(transparent)
	}
	ctx.DrawPath(toMm(rc.X), toMm(rc.Y), canvas.Rectangle(toMm(rc.Width), toMm(rc.Height)))
}

func drawLine(ctx *canvas.Context, ln layout.Line) {
	ctx.SetFillColor(transparent)
	ctx.SetStrokeColor(colorFromPaint(ln.Stroke))
	ctx.SetStrokeWidth(toMm(ln.Width))
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(toMm(ln.X2-ln.X1), toMm(ln.Y2-ln.Y1))
	ctx.DrawPath(toMm(ln.X1), toMm(ln.Y1), p)
}

// drawCircle 绘制实心圆；canvas.Circle 以原点为圆心。
func drawCircle(ctx *canvas.Context, c layout.Circle) {
	ctx.SetFillColor(colorFromPaint(c.Fill))
	ctx.SetStrokeColor(transparent)
	ctx.DrawPath(toMm(c.CX), toMm(c.CY), canvas.Circle(toMm(c.R)))
}

// drawText 在 (X, Y) 基线处绘制单行文本。字号保持 pt，坐标换算为 mm。
func (r *Renderer) drawText(ctx *canvas.Context, tb layout.TextBox) error {
	family, err := r.fontFamily(tb.Font)
	if err != nil {
		return err
	}
	face := family.Face(tb.FontSize, colorFromPaint(tb.Fill), canvas.FontRegular, canvas.FontNormal)

	align := canvas.Left
	if tb.Anchor == layout.AnchorEnd {
		align = canvas.Right
	}
	ctx.DrawText(toMm(tb.X), toMm(tb.Y), canvas.NewTextLine(face, tb.Content, align))
	return nil
}

func (r *Renderer) fontFamily(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[name]; ok {
		return family, nil
	}

	family := canvas.NewFontFamily(name)
	if r.systemFonts && name != "" {
		if err := family.LoadSystemFont(name, canvas.FontRegular); err == nil {
			r.fontFamilies[name] = family
			return family, nil
		}
	}

	builtin := fonts.Substitute(name, r.fallback)
	data, err := fonts.Load(builtin)
	if err != nil {
		return nil, err
	}
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s（替代 %q）失败: %w", builtin, name, err)
	}
	r.fontFamilies[name] = family
	return family, nil
}

// colorFromPaint 解析 #rgb、#rrggbb、#rrggbbaa；空值与 none 为透明，无法解析时回退到 defaultInk。
func colorFromPaint(p layout.Paint) color.Color {
	value := strings.TrimSpace(string(p))
	if value == "" || strings.EqualFold(value, "none") {
		return transparent
	}
	c, err := parseColor(value)
	if err != nil {
		return defaultInk
	}
	return c
}

func parseColor(value string) (color.RGBA, error) {
	value = strings.TrimPrefix(value, "#")
	switch len(value) {
	case 3:
		return color.RGBA{
			R: mustHex(strings.Repeat(value[0:1], 2)),
			G: mustHex(strings.Repeat(value[1:2], 2)),
			B: mustHex(strings.Repeat(value[2:3], 2)),
			A: 255,
		}, validHex(value)
	case 6:
		return color.RGBA{
			R: mustHex(value[0:2]),
			G: mustHex(value[2:4]),
			B: mustHex(value[4:6]),
			A: 255,
		}, validHex(value)
	case 8:
		// color.RGBA 要求预乘 alpha。
		a := mustHex(value[6:8])
		premul := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 255) }
		return color.RGBA{
			R: premul(mustHex(value[0:2])),
			G: premul(mustHex(value[2:4])),
			B: premul(mustHex(value[4:6])),
			A: a,
		}, validHex(value)
	default:
		return color.RGBA{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func validHex(s string) error {
	if _, err := strconv.ParseUint(s, 16, 64); err != nil {
		return fmt.Errorf("颜色值 %s 无法解析", s)
	}
	return nil
}

func mustHex(s string) uint8 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return uint8(v)
}

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return layout.ToMM(pt) }
