package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapKeepsCodeThroughFmtWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("组装失败: %w", Wrap(CodeAssembly, cause, "封存 PDF"))

	if !Is(err, CodeAssembly) {
		t.Fatalf("期望错误码 %s，实际 %q", CodeAssembly, GetCode(err))
	}
	if !errors.Is(err, cause) {
		t.Fatalf("Unwrap 链丢失原始错误")
	}
	if Is(err, CodeValidation) {
		t.Fatalf("错误码不应匹配 %s", CodeValidation)
	}
}

func TestUserMessageHidesInternals(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{New(CodeValidation, "margins 越界"), MsgInvalidSpec},
		{New(CodeUnsupportedVariant, "未知版式 %q", "poster"), MsgGenerationFailed},
		{Wrap(CodeAssembly, errors.New("boom"), "append"), MsgGenerationFailed},
		{errors.New("plain"), MsgGenerationFailed},
	}
	for _, tc := range cases {
		if got := UserMessage(tc.err); got != tc.want {
			t.Fatalf("UserMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestErrorString(t *testing.T) {
	err := New(CodeGeometry, "内容区域宽度 %g", -4.0)
	if got, want := err.Error(), "GEOMETRY: 内容区域宽度 -4"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
