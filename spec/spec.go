// Package spec 定义一次生成请求的模板描述（Spec）。
//
// Spec 由外部边界一次性构造并校验，引擎只读使用，不会修改或持久化。
// JSON 字段名与原有前端提交的格式保持一致。
package spec

import (
	"encoding/json"
	"fmt"
	"io"
)

// Kind 区分计划本与日记本，只影响页眉标题。
type Kind string

const (
	KindPlanner Kind = "planner"
	KindJournal Kind = "journal"
)

// Title 返回页眉中使用的标题。
func (k Kind) Title() string {
	switch k {
	case KindPlanner:
		return "Planner"
	case KindJournal:
		return "Journal"
	default:
		return string(k)
	}
}

// Layout 是七种页面内容算法之一。
type Layout string

const (
	LayoutMonthly Layout = "monthly"
	LayoutWeekly  Layout = "weekly"
	LayoutDaily   Layout = "daily"
	LayoutLined   Layout = "lined"
	LayoutDotted  Layout = "dotted"
	LayoutGrid    Layout = "grid"
	LayoutPrompt  Layout = "prompt"
)

// Size 是纸张规格。
type Size string

const (
	SizeLetter Size = "letter"
	SizeA4     Size = "a4"
	SizeA5     Size = "a5"
)

// Orientation 是纸张方向。
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// BackgroundType 目前只被携带，渲染只使用 Background.Value。
type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundPattern  BackgroundType = "pattern"
	BackgroundTexture  BackgroundType = "texture"
)

// Kinds 等函数返回各枚举的全部取值，供校验与穷举测试使用。
func Kinds() []Kind { return []Kind{KindPlanner, KindJournal} }

func Layouts() []Layout {
	return []Layout{LayoutMonthly, LayoutWeekly, LayoutDaily, LayoutLined, LayoutDotted, LayoutGrid, LayoutPrompt}
}

func Sizes() []Size { return []Size{SizeLetter, SizeA4, SizeA5} }

func Orientations() []Orientation { return []Orientation{Portrait, Landscape} }

func BackgroundTypes() []BackgroundType {
	return []BackgroundType{BackgroundSolid, BackgroundGradient, BackgroundPattern, BackgroundTexture}
}

// Spec 描述一份待生成的文档。
type Spec struct {
	Kind        Kind        `json:"kind"`
	Layout      Layout      `json:"layout"`
	Occasion    string      `json:"occasion"`
	Topic       string      `json:"topic"`
	Palette     Palette     `json:"palette"`
	Style       string      `json:"style"`
	Font        string      `json:"font"`
	Theme       string      `json:"theme"`
	Size        Size        `json:"size"`
	Margins     float64     `json:"margins"`
	Orientation Orientation `json:"orientation"`
	Background  Background  `json:"background"`
	Grid        Grid        `json:"grid"`
	Pages       Pages       `json:"pages"`
}

// Palette 是一组命名配色。颜色值按原样写入矢量标记。
type Palette struct {
	Name       string `json:"name"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

// Background 描述整页底色；Type 为前向兼容保留。
type Background struct {
	Type  BackgroundType `json:"type"`
	Value string         `json:"value"`
}

// Grid 控制线距、点径以及页眉页脚开关（单位：pt）。
type Grid struct {
	LineSpacing float64 `json:"lineSpacing"`
	DotSize     float64 `json:"dotSize"`
	ShowHeader  bool    `json:"showHeader"`
	ShowFooter  bool    `json:"showFooter"`
}

// Pages 页数与可选日期区间。日期是任意字符串，不做校验，也不参与渲染。
type Pages struct {
	Count     int    `json:"count"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Decode 从 JSON 读取 Spec。未知字段（例如请求里附带的 format）会被忽略。
// 返回值尚未校验，调用方需要再调用 Validate。
func Decode(r io.Reader) (Spec, error) {
	var s Spec
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Spec{}, fmt.Errorf("解析 Spec JSON 失败: %w", err)
	}
	return s, nil
}
