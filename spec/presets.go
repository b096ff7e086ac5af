package spec

// Preset 是一组带标识的内置模板。
type Preset struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Spec  Spec   `json:"spec"`
}

// Default 返回向导初始状态使用的默认 Spec。
func Default() Spec {
	return Spec{
		Kind:     KindPlanner,
		Layout:   LayoutWeekly,
		Occasion: "school",
		Topic:    "study goals",
		Palette: Palette{
			Name:       "Pastel Sky",
			Primary:    "#8ecae6",
			Secondary:  "#edf6f9",
			Accent:     "#ffb703",
			Background: "#ffffff",
		},
		Style:       "minimal",
		Font:        "Arial",
		Theme:       "neutral",
		Size:        SizeLetter,
		Margins:     36,
		Orientation: Portrait,
		Background:  Background{Type: BackgroundSolid, Value: "#ffffff"},
		Grid:        Grid{LineSpacing: 24, DotSize: 2, ShowHeader: true, ShowFooter: true},
		Pages:       Pages{Count: 8, StartDate: "2024-09-01", EndDate: "2024-10-31"},
	}
}

// Presets 返回内置模板列表，每次调用都返回新的副本。
func Presets() []Preset {
	return []Preset{
		{
			ID:    "pastel-weekly-planner",
			Label: "Pastel Minimal Weekly Planner",
			Spec: Spec{
				Kind:     KindPlanner,
				Layout:   LayoutWeekly,
				Occasion: "school",
				Topic:    "weekly goals",
				Palette: Palette{
					Name:       "Pastel Sky",
					Primary:    "#9bbcff",
					Secondary:  "#f5f7ff",
					Accent:     "#ffcf8b",
					Background: "#ffffff",
				},
				Style:       "minimal",
				Font:        "Helvetica",
				Theme:       "neutral",
				Size:        SizeLetter,
				Margins:     36,
				Orientation: Portrait,
				Background:  Background{Type: BackgroundSolid, Value: "#ffffff"},
				Grid:        Grid{LineSpacing: 24, DotSize: 2, ShowHeader: true, ShowFooter: true},
				Pages:       Pages{Count: 12, StartDate: "2024-01-01", EndDate: "2024-03-31"},
			},
		},
		{
			ID:    "cozy-gratitude-journal",
			Label: "Cozy Gratitude Journal",
			Spec: Spec{
				Kind:     KindJournal,
				Layout:   LayoutPrompt,
				Occasion: "gratitude",
				Topic:    "daily reflection",
				Palette: Palette{
					Name:       "Cozy Rose",
					Primary:    "#f4a7b9",
					Secondary:  "#fdecef",
					Accent:     "#7c3aed",
					Background: "#fff9fb",
				},
				Style:       "cozy",
				Font:        "Georgia",
				Theme:       "floral",
				Size:        SizeA5,
				Margins:     32,
				Orientation: Portrait,
				Background:  Background{Type: BackgroundTexture, Value: "#fff9fb"},
				Grid:        Grid{LineSpacing: 26, DotSize: 2, ShowHeader: true, ShowFooter: false},
				Pages:       Pages{Count: 20},
			},
		},
		{
			ID:    "luxe-daily-planner",
			Label: "Luxe Daily Planner",
			Spec: Spec{
				Kind:     KindPlanner,
				Layout:   LayoutDaily,
				Occasion: "business",
				Topic:    "priority planning",
				Palette: Palette{
					Name:       "Luxe Noir",
					Primary:    "#111827",
					Secondary:  "#f8fafc",
					Accent:     "#d97706",
					Background: "#ffffff",
				},
				Style:       "elegant",
				Font:        "Times New Roman",
				Theme:       "neutral",
				Size:        SizeA4,
				Margins:     40,
				Orientation: Portrait,
				Background:  Background{Type: BackgroundSolid, Value: "#ffffff"},
				Grid:        Grid{LineSpacing: 22, DotSize: 2, ShowHeader: true, ShowFooter: true},
				Pages:       Pages{Count: 10},
			},
		},
	}
}

// LookupPreset 按 ID 查找内置模板。
func LookupPreset(id string) (Preset, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
