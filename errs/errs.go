// Package errs 定义生成引擎对外暴露的错误分类。
//
// 引擎内部沿用 fmt.Errorf("...: %w") 的包装方式，只在边界（引擎入口、PDF 组装、
// 打包）处附加 Code，调用方据此区分"用户输入有误"与"内部缺陷"。
//
//	err := errs.Wrap(errs.CodeAssembly, cause, "追加第 %d 页失败", i)
//	if errs.Is(err, errs.CodeAssembly) { ... }
package errs

import (
	"errors"
	"fmt"
)

// Code 是机器可读的错误码。
type Code string

const (
	// CodeValidation 表示 Spec 格式或取值越界，由外部边界在引擎运行前拒绝。
	CodeValidation Code = "VALIDATION"
	// CodeUnsupportedVariant 表示某个枚举值没有对应的尺寸或版式实现，属于程序缺陷。
	CodeUnsupportedVariant Code = "UNSUPPORTED_VARIANT"
	// CodeGeometry 表示边距相对页面过大，内容区域不再为正。
	CodeGeometry Code = "GEOMETRY"
	// CodeAssembly 表示 PDF 写入过程失败。
	CodeAssembly Code = "ASSEMBLY"
	// CodeArchive 表示打包 ZIP 失败。
	CodeArchive Code = "ARCHIVE"
)

// 面向用户的统一提示，不泄露内部结构信息。
const (
	MsgGenerationFailed = "generation failed"
	MsgInvalidSpec      = "invalid template specification"
)

// Error 是带错误码与可选原因的结构化错误。
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap 支持 errors.Is / errors.As。
func (e *Error) Unwrap() error { return e.Cause }

// New 创建带错误码的错误。
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap 为已有错误附加错误码与说明。
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is 沿错误链查找第一个 *Error 并比较错误码。
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode 返回错误链中第一个 *Error 的错误码；没有时返回空串。
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage 把任意错误折叠成可以展示给用户的提示。
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if Is(err, CodeValidation) {
		return MsgInvalidSpec
	}
	return MsgGenerationFailed
}
