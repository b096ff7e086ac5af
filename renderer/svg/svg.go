// Package svg 将矢量页编码为独立的 SVG 文档。
//
// 每个图层输出为一个 <g id="..."> 分组，分组顺序与 layout.LayerOrder 一致，
// 设计工具导入后可以按分组整体选中。
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/ByLCY/plannerkit/layout"
)

const declaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Encode 返回一页的 SVG 字节，以 XML 声明开头。同一页面总是得到逐字节相同的输出。
func Encode(page layout.Page) []byte {
	var buf bytes.Buffer
	write(&buf, page)
	return buf.Bytes()
}

func write(buf *bytes.Buffer, page layout.Page) {
	buf.WriteString(declaration)
	w, h := num(page.Width), num(page.Height)
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n", w, h, w, h)
	for _, layer := range page.Layers {
		fmt.Fprintf(buf, `  <g id="%s">`+"\n", escape(string(layer.Name)))
		for _, el := range layer.Elements {
			writeElement(buf, el)
		}
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
}

func writeElement(buf *bytes.Buffer, el layout.Element) {
	switch {
	case el.Rect != nil:
		r := el.Rect
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s"`,
			num(r.X), num(r.Y), num(r.Width), num(r.Height), paint(r.Fill))
		if r.Stroke != "" {
			fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`, paint(r.Stroke), num(r.StrokeWidth))
		}
		buf.WriteString("/>\n")
	case el.Line != nil:
		l := el.Line
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			num(l.X1), num(l.Y1), num(l.X2), num(l.Y2), paint(l.Stroke), num(l.Width))
	case el.Circle != nil:
		c := el.Circle
		fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			num(c.CX), num(c.CY), num(c.R), paint(c.Fill))
	case el.Text != nil:
		t := el.Text
		fmt.Fprintf(buf, `    <text x="%s" y="%s" font-family="%s" font-size="%s" fill="%s"`,
			num(t.X), num(t.Y), escape(t.Font), num(t.FontSize), paint(t.Fill))
		if t.Anchor == layout.AnchorEnd {
			buf.WriteString(` text-anchor="end"`)
		}
		fmt.Fprintf(buf, ">%s</text>\n", escape(t.Content))
	}
}

func num(v float64) string { return layout.FormatNumber(v) }

func paint(p layout.Paint) string {
	if p == "" {
		return "none"
	}
	return escape(string(p))
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
