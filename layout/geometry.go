package layout

import (
	"github.com/ByLCY/plannerkit/errs"
	"github.com/ByLCY/plannerkit/spec"
)

// Geometry 是整份文档统一的页面尺寸（pt）。
type Geometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// pagePresets 以纵向为准；新增纸张时必须在这里补上尺寸，测试会穷举 spec.Sizes()。
var pagePresets = map[spec.Size]Geometry{
	spec.SizeLetter: {Width: 612, Height: 792},
	spec.SizeA4:     {Width: 595, Height: 842},
	spec.SizeA5:     {Width: 420, Height: 595},
}

// Resolve 返回纸张规格与方向对应的页面尺寸，横向时交换宽高。
func Resolve(size spec.Size, orientation spec.Orientation) (Geometry, error) {
	base, ok := pagePresets[size]
	if !ok {
		return Geometry{}, errs.New(errs.CodeUnsupportedVariant, "暂不支持的纸张尺寸：%q", size)
	}
	switch orientation {
	case spec.Portrait:
		return base, nil
	case spec.Landscape:
		return Geometry{Width: base.Height, Height: base.Width}, nil
	default:
		return Geometry{}, errs.New(errs.CodeUnsupportedVariant, "暂不支持的纸张方向：%q", orientation)
	}
}

// ContentArea 是扣除边距后的内容区域：顶部预留 2*margin 给页眉，其余三边各 margin。
type ContentArea struct {
	Left, Top, Right, Bottom float64
}

func (c ContentArea) Width() float64  { return c.Right - c.Left }
func (c ContentArea) Height() float64 { return c.Bottom - c.Top }

// Content 计算内容区域；边距过大导致宽或高不为正时返回 GEOMETRY 错误，
// 避免输出负尺寸的图形。
func (g Geometry) Content(margin float64) (ContentArea, error) {
	area := ContentArea{
		Left:   margin,
		Top:    margin * 2,
		Right:  g.Width - margin,
		Bottom: g.Height - margin,
	}
	if area.Width() <= 0 || area.Height() <= 0 {
		return ContentArea{}, errs.New(errs.CodeGeometry,
			"边距 %gpt 对 %gx%gpt 页面过大，内容区域为 %gx%gpt", margin, g.Width, g.Height, area.Width(), area.Height())
	}
	return area, nil
}
