package archive

import (
	"encoding/json"
	"fmt"

	"github.com/ByLCY/plannerkit/spec"
)

// 设计工具模式附带的说明文本。
const (
	canvaNote = "SVG layers are grouped for Canva import. You may need to convert text to outlines if editing fonts."

	canvaGuide = "Upload the SVG files into Canva (Create a design > Upload). Canva will preserve layers grouped by element. If fonts are missing, replace with Canva equivalents using the manifest."
)

// CanvaManifest 是 manifest.json 的内容。
type CanvaManifest struct {
	Fonts   []string     `json:"fonts"`
	Palette spec.Palette `json:"palette"`
	Layout  spec.Layout  `json:"layout"`
	Kind    spec.Kind    `json:"kind"`
	Note    string       `json:"note"`
}

// PaletteColors 是 palette.json 中的四个颜色。
type PaletteColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

// PaletteManifest 是 palette.json 的内容。
type PaletteManifest struct {
	Name   string        `json:"name"`
	Colors PaletteColors `json:"colors"`
}

// NewCanvaManifest 从 Spec 生成清单。
func NewCanvaManifest(s spec.Spec) CanvaManifest {
	return CanvaManifest{
		Fonts:   []string{s.Font},
		Palette: s.Palette,
		Layout:  s.Layout,
		Kind:    s.Kind,
		Note:    canvaNote,
	}
}

// NewPaletteManifest 从 Spec 的配色生成 palette.json 内容。
func NewPaletteManifest(p spec.Palette) PaletteManifest {
	return PaletteManifest{
		Name: p.Name,
		Colors: PaletteColors{
			Primary:    p.Primary,
			Secondary:  p.Secondary,
			Accent:     p.Accent,
			Background: p.Background,
		},
	}
}

func fontsText(s spec.Spec) string {
	return fmt.Sprintf("Fonts used:\n- %s\n", s.Font)
}

func indentJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
