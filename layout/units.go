package layout

import (
	"math"
	"strconv"
)

// 版式计算统一使用 pt（1/72 英寸）；PDF 画布使用 mm，两者在边界处换算。
const (
	PtToMm = 25.4 / 72
	MmToPt = 72 / 25.4
)

// ToMM 将 pt 转换为 mm。
func ToMM(pt float64) float64 { return pt * PtToMm }

// ToPT 将 mm 转换为 pt。
func ToPT(mm float64) float64 { return mm * MmToPt }

// FormatNumber 以确定的方式格式化坐标：最多三位小数，去掉多余的 0。
// 同一输入在任何平台上得到相同字符串，矢量标记因此可以逐字节比较。
func FormatNumber(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // 去掉 -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
