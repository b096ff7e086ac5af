package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/plannerkit/errs"
	"github.com/ByLCY/plannerkit/layout"
)

// run 以隔离的输出执行一次命令；配置文件指向不存在的路径，使用默认配置。
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := &CLI{stdout: &stdout, stderr: &stderr}
	err := c.Execute(context.Background(), append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	return stdout.String(), stderr.String(), err
}

func TestPresetsCommand(t *testing.T) {
	out, _, err := run(t, "presets")
	if err != nil {
		t.Fatalf("presets 失败: %v", err)
	}
	for _, id := range []string{"pastel-weekly-planner", "cozy-gratitude-journal", "luxe-daily-planner"} {
		if !strings.Contains(out, id) {
			t.Fatalf("输出缺少 %s:\n%s", id, out)
		}
	}
}

func TestGenerateWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		format, file, prefix string
	}{
		{"pdf", "out/planner.pdf", "%PDF"},
		{"svg", "planner-svg.zip", "PK"},
		{"canva", "planner-canva.zip", "PK"},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.file)
		if _, _, err := run(t, "generate", "--preset", "luxe-daily-planner", "--pages", "2", "--format", tc.format, "--out", path); err != nil {
			t.Fatalf("generate %s 失败: %v", tc.format, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("读取产物失败: %v", err)
		}
		if !bytes.HasPrefix(data, []byte(tc.prefix)) {
			t.Fatalf("%s 产物前缀错误", tc.format)
		}
	}
}

func TestGenerateFromPlanFile(t *testing.T) {
	dir := t.TempDir()
	plan := filepath.Join(dir, "journal.plan")
	src := `journal dotted {
  size: a5
  margins: 10mm
  grid { line-spacing: 20 dot-size: 3 footer: off }
  pages 3
}
`
	if err := os.WriteFile(plan, []byte(src), 0o644); err != nil {
		t.Fatalf("写入模板失败: %v", err)
	}
	out, _, err := run(t, "layout", "--spec", plan)
	if err != nil {
		t.Fatalf("layout 失败: %v", err)
	}
	var res layout.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("调试 JSON 无法解析: %v", err)
	}
	if len(res.Pages) != 3 || res.Geometry.Width != 420 {
		t.Fatalf("排版结果与模板不符: %d 页, 宽 %g", len(res.Pages), res.Geometry.Width)
	}
	if res.Meta.Title != "Journal · dotted" {
		t.Fatalf("标题错误: %q", res.Meta.Title)
	}
}

func TestGenerateRejectsInvalidSpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"kind":"planner","layout":"weekly","margins":200}`), 0o644); err != nil {
		t.Fatalf("写入模板失败: %v", err)
	}
	_, _, err := run(t, "generate", "--spec", path, "--out", filepath.Join(dir, "x.pdf"))
	if !errs.Is(err, errs.CodeValidation) {
		t.Fatalf("非法模板应返回 VALIDATION，实际 %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "x.pdf")); !os.IsNotExist(err) {
		t.Fatalf("校验失败时不应写出文件")
	}

	if _, _, err := run(t, "generate", "--preset", "nope"); err == nil {
		t.Fatalf("未知模板 ID 应返回错误")
	}
	if _, _, err := run(t, "generate", "--preset", "luxe-daily-planner", "--spec", path); err == nil {
		t.Fatalf("--spec 与 --preset 同时使用应返回错误")
	}
}

func TestErrorsShowUserMessage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"kind":"planner","layout":"weekly","margins":300}`), 0o644); err != nil {
		t.Fatalf("写入模板失败: %v", err)
	}

	_, stderr, err := run(t, "generate", "--spec", path, "--out", filepath.Join(dir, "x.pdf"))
	if err == nil {
		t.Fatalf("非法模板应返回错误")
	}
	if !strings.Contains(stderr, "Error: "+errs.MsgInvalidSpec) {
		t.Fatalf("应输出通用提示:\n%s", stderr)
	}
	if strings.Contains(stderr, "VALIDATION") || strings.Contains(stderr, "margins") {
		t.Fatalf("默认不应输出内部错误细节:\n%s", stderr)
	}

	_, stderr, _ = run(t, "--verbose", "generate", "--spec", path, "--out", filepath.Join(dir, "x.pdf"))
	if !strings.Contains(stderr, "DEBU") || !strings.Contains(stderr, "margins") {
		t.Fatalf("--verbose 应在调试日志中保留错误细节:\n%s", stderr)
	}

	_, stderr, _ = run(t, "generate", "--preset", "nope")
	if !strings.Contains(stderr, `"nope"`) {
		t.Fatalf("没有错误码的错误应原样输出:\n%s", stderr)
	}
}

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "thumb.png")
	out, _, err := run(t, "preview", "--preset", "cozy-gratitude-journal", "--png", png, "--scale", "0.25")
	if err != nil {
		t.Fatalf("preview 失败: %v", err)
	}
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "prompt") {
		t.Fatalf("预览输出错误:\n%s", out)
	}
	data, err := os.ReadFile(png)
	if err != nil || !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("缩略图未写出: %v", err)
	}
}

func TestVerboseEnablesDebugLogs(t *testing.T) {
	_, stderr, err := run(t, "--verbose", "generate", "--pages", "1", "--out", filepath.Join(t.TempDir(), "p.pdf"))
	if err != nil {
		t.Fatalf("generate 失败: %v", err)
	}
	if !strings.Contains(stderr, "DEBU") || !strings.Contains(stderr, "request=") {
		t.Fatalf("--verbose 应输出请求级调试日志:\n%s", stderr)
	}
}

func TestLogLevel(t *testing.T) {
	cases := []struct {
		verbose bool
		level   string
		want    log.Level
	}{
		{true, "error", log.DebugLevel},
		{false, "warn", log.WarnLevel},
		{false, "ERROR", log.ErrorLevel},
		{false, "bogus", log.InfoLevel},
	}
	for _, tc := range cases {
		if got := logLevel(tc.verbose, tc.level); got != tc.want {
			t.Fatalf("logLevel(%v, %q) = %v，期望 %v", tc.verbose, tc.level, got, tc.want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Fatalf("没有 logger 时应返回 log.Default()")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Fatalf("应返回 context 中的 logger")
	}
}
