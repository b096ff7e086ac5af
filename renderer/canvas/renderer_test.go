package canvasrenderer

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/plannerkit/errs"
	"github.com/ByLCY/plannerkit/layout"
	"github.com/ByLCY/plannerkit/spec"
)

// recordingWriter 记录追加顺序，可按页码注入失败。
type recordingWriter struct {
	appended []int
	seals    int
	failOn   int
	sealErr  error
}

func (w *recordingWriter) Append(page layout.Page) error {
	if page.Number == w.failOn {
		return errors.New("boom")
	}
	w.appended = append(w.appended, page.Number)
	return nil
}

func (w *recordingWriter) Seal() ([]byte, error) {
	w.seals++
	if w.sealErr != nil {
		return nil, w.sealErr
	}
	return []byte("sealed"), nil
}

func composePages(t *testing.T, l spec.Layout, count int) *layout.Result {
	t.Helper()
	s := spec.Default()
	s.Layout = l
	s.Pages.Count = count
	res, err := layout.Compose(context.Background(), s, layout.BuildOptions{})
	if err != nil {
		t.Fatalf("Compose 失败: %v", err)
	}
	return res
}

func TestAssembleKeepsOrderAndSealsOnce(t *testing.T) {
	res := composePages(t, spec.LayoutWeekly, 5)
	w := &recordingWriter{}
	data, err := Assemble(w, res.Pages)
	if err != nil {
		t.Fatalf("Assemble 失败: %v", err)
	}
	if string(data) != "sealed" {
		t.Fatalf("应返回 Seal 的结果，实际 %q", data)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, w.appended); diff != "" {
		t.Fatalf("追加顺序错误 (-want +got):\n%s", diff)
	}
	if w.seals != 1 {
		t.Fatalf("Seal 应只调用一次，实际 %d", w.seals)
	}
}

func TestAssembleErrors(t *testing.T) {
	if _, err := Assemble(&recordingWriter{}, nil); !errs.Is(err, errs.CodeAssembly) {
		t.Fatalf("没有页面应返回 ASSEMBLY，实际 %v", err)
	}

	res := composePages(t, spec.LayoutLined, 3)
	w := &recordingWriter{failOn: 2}
	if _, err := Assemble(w, res.Pages); !errs.Is(err, errs.CodeAssembly) {
		t.Fatalf("追加失败应返回 ASSEMBLY，实际 %v", err)
	}
	if w.seals != 0 {
		t.Fatalf("追加失败后不应封装")
	}

	sealErr := errors.New("disk full")
	w = &recordingWriter{sealErr: sealErr}
	_, err := Assemble(w, res.Pages)
	if !errs.Is(err, errs.CodeAssembly) || !errors.Is(err, sealErr) {
		t.Fatalf("封装失败应返回包装后的 ASSEMBLY 错误，实际 %v", err)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()
	for _, l := range []spec.Layout{spec.LayoutWeekly, spec.LayoutDotted, spec.LayoutPrompt} {
		data, err := r.Render(composePages(t, l, 2))
		if err != nil {
			t.Fatalf("渲染 %s 失败: %v", l, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Fatalf("%s 输出不是 PDF", l)
		}
	}
	if _, err := r.Render(nil); !errs.Is(err, errs.CodeAssembly) {
		t.Fatalf("空结果应返回 ASSEMBLY，实际 %v", err)
	}
}

var (
	pageObject = regexp.MustCompile(`/Type\s*/Page\b`)
	mediaBox   = regexp.MustCompile(`/MediaBox\s*\[\s*([-\d.]+)\s+([-\d.]+)\s+([-\d.]+)\s+([-\d.]+)\s*\]`)
)

// TestRenderPageCountAndMediaBox 检查 PDF 的页数与每页尺寸都和排版结果一致。
func TestRenderPageCountAndMediaBox(t *testing.T) {
	cases := []struct {
		size        spec.Size
		orientation spec.Orientation
		count       int
		w, h        float64
	}{
		{spec.SizeLetter, spec.Portrait, 1, 612, 792},
		{spec.SizeLetter, spec.Portrait, 3, 612, 792},
		{spec.SizeLetter, spec.Portrait, 60, 612, 792},
		{spec.SizeA4, spec.Landscape, 3, 842, 595},
	}
	r := NewRenderer()
	for _, tc := range cases {
		s := spec.Default()
		s.Layout = spec.LayoutLined
		s.Size = tc.size
		s.Orientation = tc.orientation
		s.Pages.Count = tc.count
		res, err := layout.Compose(context.Background(), s, layout.BuildOptions{})
		if err != nil {
			t.Fatalf("Compose 失败: %v", err)
		}
		data, err := r.Render(res)
		if err != nil {
			t.Fatalf("渲染 %s/%s 失败: %v", tc.size, tc.orientation, err)
		}

		if n := len(pageObject.FindAll(data, -1)); n != tc.count {
			t.Fatalf("%s/%s 应有 %d 页，实际 %d", tc.size, tc.orientation, tc.count, n)
		}
		boxes := mediaBox.FindAllSubmatch(data, -1)
		if len(boxes) == 0 {
			t.Fatalf("%s/%s 缺少 /MediaBox", tc.size, tc.orientation)
		}
		for _, box := range boxes {
			w := boxNumber(t, box[3]) - boxNumber(t, box[1])
			h := boxNumber(t, box[4]) - boxNumber(t, box[2])
			if math.Abs(w-tc.w) > 0.01 || math.Abs(h-tc.h) > 0.01 {
				t.Fatalf("%s/%s 页面尺寸应为 %gx%g，实际 %s", tc.size, tc.orientation, tc.w, tc.h, box[0])
			}
		}
	}
}

func boxNumber(t *testing.T, raw []byte) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		t.Fatalf("无法解析 /MediaBox 数值 %q: %v", raw, err)
	}
	return f
}

func TestWriterLifecycle(t *testing.T) {
	res := composePages(t, spec.LayoutGrid, 1)
	r := NewRenderer()

	w := r.NewWriter(res.Meta)
	if _, err := w.Seal(); err == nil {
		t.Fatalf("没有页面时 Seal 应失败")
	}

	w = r.NewWriter(res.Meta)
	if err := w.Append(res.Pages[0]); err != nil {
		t.Fatalf("Append 失败: %v", err)
	}
	if _, err := w.Seal(); err != nil {
		t.Fatalf("Seal 失败: %v", err)
	}
	if err := w.Append(res.Pages[0]); err == nil {
		t.Fatalf("封装后 Append 应失败")
	}
	if _, err := w.Seal(); err == nil {
		t.Fatalf("重复 Seal 应失败")
	}
}

func TestFontFamilyCache(t *testing.T) {
	r := NewRendererWithOptions(Options{Fallback: "gobold"})
	a, err := r.fontFamily("Georgia")
	if err != nil {
		t.Fatalf("加载字体失败: %v", err)
	}
	b, err := r.fontFamily("Georgia")
	if err != nil || a != b {
		t.Fatalf("同名字体应复用缓存")
	}

	bad := NewRendererWithOptions(Options{Fallback: "Inter"})
	if _, err := bad.fontFamily("Georgia"); err == nil {
		t.Fatalf("未知内置字体应返回错误")
	}
}

func TestColorFromPaint(t *testing.T) {
	cases := []struct {
		in   layout.Paint
		want color.Color
	}{
		{"#8ecae6", color.RGBA{0x8e, 0xca, 0xe6, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"#00000000", color.RGBA{}},
		{"none", transparent},
		{"", transparent},
		{"#zzzzzz", defaultInk},
		{"rebeccapurple", defaultInk},
	}
	for _, tc := range cases {
		if got := colorFromPaint(tc.in); got != tc.want {
			t.Fatalf("colorFromPaint(%q) = %v，期望 %v", tc.in, got, tc.want)
		}
	}
}
