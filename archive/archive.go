// Package archive 把矢量页打包为 ZIP，供设计工具导入。
//
// 每页写为 page-<n>.svg；设计工具模式下额外写入清单、配色、字体列表与导入说明。
// 条目顺序与修改时间固定，同一输入得到逐字节相同的压缩包。
package archive

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/ByLCY/plannerkit/errs"
	"github.com/ByLCY/plannerkit/layout"
	svgrenderer "github.com/ByLCY/plannerkit/renderer/svg"
	"github.com/ByLCY/plannerkit/spec"
)

// Mode 决定压缩包内容。
type Mode string

const (
	// ModePlain 只包含每页 SVG。
	ModePlain Mode = "plain"
	// ModeCanva 额外附带 manifest.json、palette.json、fonts.txt 与导入说明。
	ModeCanva Mode = "canva"
)

// Compression 是条目的压缩方式。
type Compression string

const (
	Deflate Compression = "deflate"
	Store   Compression = "store"
)

// 条目名。
const (
	ManifestFile = "manifest.json"
	PaletteFile  = "palette.json"
	FontsFile    = "fonts.txt"
	GuideFile    = "CANVA_IMPORT_GUIDE.txt"
)

// Deflate 压缩级别的取值范围，与 flate 包一致。
const (
	DefaultLevel = flate.DefaultCompression
	MinLevel     = flate.HuffmanOnly
	MaxLevel     = flate.BestCompression
)

// modTime 是所有条目统一的修改时间。
var modTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// PageFile 返回第 n 页的条目名。
func PageFile(n int) string { return fmt.Sprintf("page-%d.svg", n) }

// Option 调整打包行为。
type Option func(*builder)

type builder struct {
	compression Compression
	level       int
}

// WithCompression 设置压缩方式，未知值按 Deflate 处理。
func WithCompression(c Compression) Option { return func(b *builder) { b.compression = c } }

// WithLevel 设置 Deflate 压缩级别（MinLevel..MaxLevel），超出范围时 Build 返回 ARCHIVE 错误。
func WithLevel(level int) Option { return func(b *builder) { b.level = level } }

type entry struct {
	name string
	data []byte
}

// Build 按 mode 打包 pages。任何写入失败都返回 ARCHIVE 错误，不返回部分压缩包。
func Build(pages []layout.Page, s spec.Spec, mode Mode, opts ...Option) ([]byte, error) {
	b := builder{compression: Deflate, level: DefaultLevel}
	for _, opt := range opts {
		opt(&b)
	}
	if mode != ModePlain && mode != ModeCanva {
		return nil, errs.New(errs.CodeUnsupportedVariant, "暂不支持的打包模式：%q", mode)
	}
	if len(pages) == 0 {
		return nil, errs.New(errs.CodeArchive, "缺少可打包的页面")
	}

	entries := make([]entry, 0, len(pages)+4)
	for _, page := range pages {
		entries = append(entries, entry{name: PageFile(page.Number), data: svgrenderer.Encode(page)})
	}
	if mode == ModeCanva {
		extra, err := canvaEntries(s)
		if err != nil {
			return nil, errs.Wrap(errs.CodeArchive, err, "生成清单失败")
		}
		entries = append(entries, extra...)
	}

	data, err := b.write(entries)
	if err != nil {
		return nil, errs.Wrap(errs.CodeArchive, err, "写入压缩包失败")
	}
	return data, nil
}

func canvaEntries(s spec.Spec) ([]entry, error) {
	manifest, err := indentJSON(NewCanvaManifest(s))
	if err != nil {
		return nil, fmt.Errorf("编码 %s 失败: %w", ManifestFile, err)
	}
	palette, err := indentJSON(NewPaletteManifest(s.Palette))
	if err != nil {
		return nil, fmt.Errorf("编码 %s 失败: %w", PaletteFile, err)
	}
	return []entry{
		{name: ManifestFile, data: manifest},
		{name: PaletteFile, data: palette},
		{name: FontsFile, data: []byte(fontsText(s))},
		{name: GuideFile, data: []byte(canvaGuide)},
	}, nil
}

func (b builder) write(entries []entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	method := zip.Deflate
	if b.compression == Store {
		method = zip.Store
	} else {
		level := b.level
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	}

	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   method,
			Modified: modTime,
		})
		if err != nil {
			return nil, fmt.Errorf("创建条目 %s 失败: %w", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("写入条目 %s 失败: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
