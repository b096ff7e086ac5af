package layout

// 该文件定义矢量页的结构，供排版、SVG 编码、PDF 组装与调试 JSON 共用。
// 所有坐标与尺寸单位均为 pt，原点位于页面左上角，y 轴向下。

// Result 保存一次生成的全部页面与文档元信息。
type Result struct {
	Geometry Geometry     `json:"geometry"`
	Pages    []Page       `json:"pages"`
	Meta     DocumentMeta `json:"meta"`
}

// LayerName 是矢量页中固定的三个图层名。
type LayerName string

const (
	LayerBackground LayerName = "background"
	LayerText       LayerName = "text"
	LayerShapes     LayerName = "shapes"
)

// LayerOrder 是图层的绘制顺序，后面的图层覆盖前面的图层。
// 下游设计工具依赖这一分组做选择性编辑，顺序不可调整。
var LayerOrder = [...]LayerName{LayerBackground, LayerText, LayerShapes}

// Page 是一页矢量页：尺寸与按 LayerOrder 排列的三个图层。
type Page struct {
	Number int     `json:"number"` // 从 1 开始
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Layers []Layer `json:"layers"`
}

// Layer 返回指定名称的图层；不存在时返回 nil。
func (p *Page) Layer(name LayerName) *Layer {
	for i := range p.Layers {
		if p.Layers[i].Name == name {
			return &p.Layers[i]
		}
	}
	return nil
}

// Layer 是一个具名分组，元素按绘制顺序排列。
type Layer struct {
	Name     LayerName `json:"name"`
	Elements []Element `json:"elements"`
}

// Element 是图层中的单个图元，四个字段中恰好有一个非空。
type Element struct {
	Rect   *Rect    `json:"rect,omitempty"`
	Line   *Line    `json:"line,omitempty"`
	Circle *Circle  `json:"circle,omitempty"`
	Text   *TextBox `json:"text,omitempty"`
}

// Paint 是原样写入矢量标记的颜色值（例如 "#8ecae6"）；空串表示不绘制。
type Paint string

// Line 表示一条线段。
type Line struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Stroke Paint   `json:"stroke"`
	Width  float64 `json:"width"`
}

// Rect 表示一个轴对齐矩形。Fill 为空表示不填充。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Fill        Paint   `json:"fill,omitempty"`
	Stroke      Paint   `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// Circle 表示一个圆，点阵版式只使用填充。
type Circle struct {
	CX   float64 `json:"cx"`
	CY   float64 `json:"cy"`
	R    float64 `json:"r"`
	Fill Paint   `json:"fill"`
}

// Anchor 是文本相对锚点的水平对齐方式。
type Anchor string

const (
	AnchorStart Anchor = "start"
	AnchorEnd   Anchor = "end"
)

// TextBox 是一段单行文本，(X, Y) 为锚点所在的基线位置。
type TextBox struct {
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Font     string  `json:"font"`
	FontSize float64 `json:"fontSize"`
	Fill     Paint   `json:"fill"`
	Anchor   Anchor  `json:"anchor,omitempty"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
