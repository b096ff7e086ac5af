package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/plannerkit/errs"
	"github.com/ByLCY/plannerkit/spec"
)

func mustCompose(t *testing.T, s spec.Spec, opts BuildOptions) *Result {
	t.Helper()
	res, err := Compose(context.Background(), s, opts)
	if err != nil {
		t.Fatalf("Compose 失败: %v", err)
	}
	return res
}

func TestComposeWeeklyLetter(t *testing.T) {
	s := spec.Default()
	s.Kind = spec.KindPlanner
	s.Layout = spec.LayoutWeekly
	s.Size = spec.SizeLetter
	s.Orientation = spec.Portrait
	s.Pages.Count = 3

	res := mustCompose(t, s, BuildOptions{})
	if res.Geometry != (Geometry{Width: 612, Height: 792}) {
		t.Fatalf("页面尺寸错误: %+v", res.Geometry)
	}
	if len(res.Pages) != 3 {
		t.Fatalf("期望 3 页，实际 %d", len(res.Pages))
	}
	for i, page := range res.Pages {
		if page.Number != i+1 || page.Width != 612 || page.Height != 792 {
			t.Fatalf("第 %d 页属性错误: number=%d %gx%g", i+1, page.Number, page.Width, page.Height)
		}
		text := page.Layer(LayerText)
		if text == nil {
			t.Fatalf("第 %d 页缺少 text 图层", i+1)
		}
		var contents []string
		for _, e := range text.Elements {
			if e.Text != nil {
				contents = append(contents, e.Text.Content)
			}
		}
		want := []string{"Planner · weekly", fmt.Sprintf("Page %d", i+1)}
		if diff := cmp.Diff(want, contents); diff != "" {
			t.Fatalf("第 %d 页文本不符 (-want +got):\n%s", i+1, diff)
		}
	}
	if res.Meta.Title != "Planner · weekly" || res.Meta.Creator != "plannerkit" {
		t.Fatalf("文档元信息错误: %+v", res.Meta)
	}
}

func TestComposeLayerOrder(t *testing.T) {
	for _, l := range spec.Layouts() {
		res := mustCompose(t, testSpec(l), BuildOptions{})
		for _, page := range res.Pages {
			if len(page.Layers) != len(LayerOrder) {
				t.Fatalf("%s 第 %d 页图层数量错误: %d", l, page.Number, len(page.Layers))
			}
			for i, layer := range page.Layers {
				if layer.Name != LayerOrder[i] {
					t.Fatalf("%s 第 %d 页图层顺序错误: %d=%s", l, page.Number, i, layer.Name)
				}
			}
		}
	}
}

func TestComposeHeaderFooterPlacement(t *testing.T) {
	s := testSpec(spec.LayoutLined)
	s.Size = spec.SizeA5
	s.Margins = 30
	s.Pages.Count = 1

	page := mustCompose(t, s, BuildOptions{}).Pages[0]

	bg := page.Layer(LayerBackground).Elements
	if len(bg) != 1 || bg[0].Rect == nil {
		t.Fatalf("背景图层应只有一个矩形: %+v", bg)
	}
	if r := bg[0].Rect; r.Width != 420 || r.Height != 595 || r.Fill != Paint(s.Background.Value) {
		t.Fatalf("背景矩形错误: %+v", r)
	}

	text := page.Layer(LayerText).Elements
	if len(text) != 3 {
		t.Fatalf("期望页眉文字、页眉线与页脚共 3 个元素，实际 %d", len(text))
	}
	header := text[0].Text
	if header == nil || header.X != 30 || header.Y != 30 || header.FontSize != 18 || header.Anchor != AnchorStart {
		t.Fatalf("页眉文字错误: %+v", header)
	}
	rule := text[1].Line
	if rule == nil || rule.Y1 != 40 || rule.X1 != 30 || rule.X2 != 390 || rule.Stroke != Paint(s.Palette.Secondary) {
		t.Fatalf("页眉分隔线错误: %+v", rule)
	}
	footer := text[2].Text
	if footer == nil || footer.X != 390 || footer.Y != 565 || footer.FontSize != 12 || footer.Anchor != AnchorEnd {
		t.Fatalf("页脚错误: %+v", footer)
	}
}

func TestComposeHeaderFooterSwitches(t *testing.T) {
	s := testSpec(spec.LayoutGrid)
	s.Grid.ShowHeader = false
	s.Grid.ShowFooter = false
	s.Pages.Count = 2

	for _, page := range mustCompose(t, s, BuildOptions{}).Pages {
		if n := len(page.Layer(LayerText).Elements); n != 0 {
			t.Fatalf("关闭页眉页脚后 text 图层应为空，实际 %d 个元素", n)
		}
	}
}

func TestComposePromptUnderlinesFollowText(t *testing.T) {
	s := testSpec(spec.LayoutPrompt)
	s.Pages.Count = 1

	page := mustCompose(t, s, BuildOptions{}).Pages[0]
	if n := len(page.Layer(LayerShapes).Elements); n != 0 {
		t.Fatalf("提示版式的 shapes 图层应为空，实际 %d 个元素", n)
	}
	text := page.Layer(LayerText).Elements
	// 页眉文字、页眉线、页脚，之后是 4 组提示语与下划线。
	if len(text) != 11 {
		t.Fatalf("text 图层应有 11 个元素，实际 %d", len(text))
	}
	for i := range Prompts {
		tb, rule := text[3+2*i].Text, text[4+2*i].Line
		if tb == nil || tb.Content != Prompts[i] {
			t.Fatalf("第 %d 条提示语位置错误: %+v", i, text[3+2*i])
		}
		if rule == nil || rule.Y1 != tb.Y+14 {
			t.Fatalf("第 %d 条下划线应紧随提示语: %+v", i, text[4+2*i])
		}
	}
}

func TestComposeTemplates(t *testing.T) {
	s := testSpec(spec.LayoutDaily)
	s.Kind = spec.KindJournal
	s.Pages.Count = 2
	opts := BuildOptions{
		HeaderTemplate: "${kind} ${layout} ${missing}",
		FooterTemplate: "${page} / ${pages}",
	}

	page := mustCompose(t, s, opts).Pages[1]
	text := page.Layer(LayerText).Elements
	if got := text[0].Text.Content; got != "Journal daily ${missing}" {
		t.Fatalf("页眉模板渲染错误: %q", got)
	}
	if got := text[2].Text.Content; got != "2 / 2" {
		t.Fatalf("页脚模板渲染错误: %q", got)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	s := testSpec(spec.LayoutDotted)
	s.Pages.Count = 12

	serial := mustCompose(t, s, BuildOptions{Workers: 1})
	parallel := mustCompose(t, s, BuildOptions{Workers: 8})
	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Fatalf("并行排版结果与串行不一致 (-serial +parallel):\n%s", diff)
	}
	again := mustCompose(t, s, BuildOptions{Workers: 1})
	if diff := cmp.Diff(serial, again); diff != "" {
		t.Fatalf("同一 Spec 两次排版结果不一致:\n%s", diff)
	}
}

func TestComposeErrors(t *testing.T) {
	s := testSpec("poster")
	if _, err := Compose(context.Background(), s, BuildOptions{}); !errs.Is(err, errs.CodeUnsupportedVariant) {
		t.Fatalf("未知版式应返回 UNSUPPORTED_VARIANT，实际 %v", err)
	}

	s = testSpec(spec.LayoutWeekly)
	s.Size = spec.SizeA5
	s.Orientation = spec.Landscape
	s.Margins = 134
	if _, err := Compose(context.Background(), s, BuildOptions{}); !errs.Is(err, errs.CodeGeometry) {
		t.Fatalf("边距过大应返回 GEOMETRY，实际 %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compose(ctx, testSpec(spec.LayoutLined), BuildOptions{}); err == nil {
		t.Fatalf("已取消的 context 应返回错误")
	}
}

func TestEncodeDebugJSON(t *testing.T) {
	s := testSpec(spec.LayoutWeekly)
	s.Pages.Count = 1
	res := mustCompose(t, s, BuildOptions{})

	var buf bytes.Buffer
	if err := EncodeDebugJSON(res, &buf); err != nil {
		t.Fatalf("EncodeDebugJSON 失败: %v", err)
	}
	var decoded Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("调试 JSON 无法解析: %v", err)
	}
	if len(decoded.Pages) != 1 || len(decoded.Pages[0].Layers) != 3 {
		t.Fatalf("调试 JSON 内容不完整: %+v", decoded)
	}
	if err := EncodeDebugJSON(nil, &buf); err == nil {
		t.Fatalf("空结果应返回错误")
	}
}
