package renderer

import "github.com/ByLCY/plannerkit/layout"

// Renderer 将排版结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// PageWriter 逐页接收矢量页，最后一次性封装成单个文档。
//
// 页面按 Append 的调用顺序写入；Seal 只能调用一次，之后再 Append 或 Seal 都返回错误。
type PageWriter interface {
	Append(page layout.Page) error
	Seal() ([]byte, error)
}
