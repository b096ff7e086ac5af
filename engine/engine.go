// Package engine 是生成流程的入口：Spec → 矢量页 → PDF 或 ZIP。
//
// 每次调用相互独立，不缓存也不重试；要么返回完整产物，要么返回错误。
// 调用方负责事先用 spec.Validate 校验输入。
package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ByLCY/plannerkit/archive"
	"github.com/ByLCY/plannerkit/config"
	"github.com/ByLCY/plannerkit/errs"
	"github.com/ByLCY/plannerkit/layout"
	"github.com/ByLCY/plannerkit/preview"
	canvasrenderer "github.com/ByLCY/plannerkit/renderer/canvas"
	"github.com/ByLCY/plannerkit/spec"
)

// Format 是导出格式。
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatSVG   Format = "svg"   // 纯 SVG 压缩包
	FormatCanva Format = "canva" // 带清单的压缩包
)

// Formats 返回全部导出格式。
func Formats() []Format { return []Format{FormatPDF, FormatSVG, FormatCanva} }

// Artifact 是一次导出的结果。
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Engine 持有配置与共享的 PDF 渲染器（字体缓存），可被多个请求并发使用。
type Engine struct {
	cfg    config.Config
	logger *log.Logger
	pdf    *canvasrenderer.Renderer
}

// New 创建引擎；logger 为 nil 时使用 log.Default()。
func New(cfg config.Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		cfg:    cfg,
		logger: logger,
		pdf: canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
			SystemFonts: cfg.Fonts.System,
			Fallback:    cfg.Fonts.Fallback,
		}),
	}
}

func (e *Engine) buildOptions() layout.BuildOptions {
	return layout.BuildOptions{
		Workers:        e.cfg.Render.Workers,
		HeaderTemplate: e.cfg.Render.HeaderTemplate,
		FooterTemplate: e.cfg.Render.FooterTemplate,
	}
}

// request 为单次调用附带请求 ID 与计时。
type request struct {
	logger *log.Logger
	start  time.Time
}

func (e *Engine) begin(op string, s spec.Spec) *request {
	l := e.logger.With("request", uuid.NewString(), "op", op)
	l.Debug("开始生成", "kind", s.Kind, "layout", s.Layout, "size", s.Size, "orientation", s.Orientation, "pages", s.Pages.Count)
	return &request{logger: l, start: time.Now()}
}

func (r *request) done(err error, keyvals ...any) {
	elapsed := time.Since(r.start).Round(time.Millisecond)
	if err != nil {
		r.logger.Debug("生成失败", "code", errs.GetCode(err), "err", err, "elapsed", elapsed)
		return
	}
	r.logger.Debug("生成完成", append(keyvals, "elapsed", elapsed)...)
}

// Layout 只执行排版，返回全部矢量页。
func (e *Engine) Layout(ctx context.Context, s spec.Spec) (*layout.Result, error) {
	return layout.Compose(ctx, s, e.buildOptions())
}

// PDF 生成单个 PDF 文档。
func (e *Engine) PDF(ctx context.Context, s spec.Spec) (data []byte, err error) {
	req := e.begin("pdf", s)
	defer func() { req.done(err, "bytes", len(data)) }()

	res, err := e.Layout(ctx, s)
	if err != nil {
		return nil, err
	}
	return e.pdf.Render(res)
}

// Archive 生成 SVG 压缩包。
func (e *Engine) Archive(ctx context.Context, s spec.Spec, mode archive.Mode) (data []byte, err error) {
	req := e.begin("archive:"+string(mode), s)
	defer func() { req.done(err, "bytes", len(data)) }()

	res, err := e.Layout(ctx, s)
	if err != nil {
		return nil, err
	}
	return archive.Build(res.Pages, s, mode,
		archive.WithCompression(archive.Compression(e.cfg.Archive.Compression)),
		archive.WithLevel(e.cfg.Archive.Level),
	)
}

// Generate 按格式导出并附带文件名与 MIME 类型。
func (e *Engine) Generate(ctx context.Context, s spec.Spec, format Format) (Artifact, error) {
	switch format {
	case FormatPDF:
		data, err := e.PDF(ctx, s)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Filename: "planner.pdf", ContentType: "application/pdf", Data: data}, nil
	case FormatSVG:
		data, err := e.Archive(ctx, s, archive.ModePlain)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Filename: "planner-svg.zip", ContentType: "application/zip", Data: data}, nil
	case FormatCanva:
		data, err := e.Archive(ctx, s, archive.ModeCanva)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Filename: "planner-canva.zip", ContentType: "application/zip", Data: data}, nil
	default:
		return Artifact{}, errs.New(errs.CodeUnsupportedVariant, "暂不支持的导出格式：%q", format)
	}
}

// Preview 返回预览 SVG；开启压缩且压缩失败时退回原始文本。
func (e *Engine) Preview(s spec.Spec) string {
	markup := preview.Render(s)
	if !e.cfg.Preview.Minify {
		return markup
	}
	small, err := preview.Minify(markup)
	if err != nil {
		e.logger.Warn("预览压缩失败，使用原始 SVG", "err", err)
		return markup
	}
	return small
}

// Thumbnail 返回预览的 PNG 缩略图。
func (e *Engine) Thumbnail(s spec.Spec, scale float64) ([]byte, error) {
	return preview.Thumbnail(s, scale)
}
