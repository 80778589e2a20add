package theme

// Theme is a named visual style applied to every template: palette, fonts
// and animation character. Themes are part of the preview cache key because
// they change rendered pixels.
type Theme struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Colors         Colors `json:"colors"`
	Fonts          Fonts  `json:"fonts"`
	BorderRadius   int    `json:"borderRadius"`
	Shadow         string `json:"shadow"`
	AnimationStyle string `json:"animationStyle"`
}

type Colors struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Background    string `json:"background"`
	Surface       string `json:"surface"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
}

type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

var themes = map[string]Theme{
	"default": {
		ID:   "default",
		Name: "Default",
		Colors: Colors{
			Primary:       "#2563EB",
			Secondary:     "#3B82F6",
			Accent:        "#F59E0B",
			Background:    "#FFFFFF",
			Surface:       "#F8FAFC",
			Text:          "#0F172A",
			TextSecondary: "#64748B",
		},
		Fonts:          Fonts{Heading: "Inter, -apple-system, sans-serif", Body: "Inter, -apple-system, sans-serif"},
		BorderRadius:   12,
		Shadow:         "0 4px 24px rgba(0, 0, 0, 0.08)",
		AnimationStyle: "smooth",
	},
	"dark": {
		ID:   "dark",
		Name: "Dark",
		Colors: Colors{
			Primary:       "#818CF8",
			Secondary:     "#6366F1",
			Accent:        "#34D399",
			Background:    "#0F0F1A",
			Surface:       "#1E1E2E",
			Text:          "#F1F5F9",
			TextSecondary: "#94A3B8",
		},
		Fonts:          Fonts{Heading: "Inter, -apple-system, sans-serif", Body: "Inter, -apple-system, sans-serif"},
		BorderRadius:   16,
		Shadow:         "0 4px 32px rgba(99, 102, 241, 0.15)",
		AnimationStyle: "bouncy",
	},
	"vibrant": {
		ID:   "vibrant",
		Name: "Vibrant",
		Colors: Colors{
			Primary:       "#E11D48",
			Secondary:     "#DB2777",
			Accent:        "#FACC15",
			Background:    "#FFF1F2",
			Surface:       "#FFFFFF",
			Text:          "#1C1917",
			TextSecondary: "#78716C",
		},
		Fonts:          Fonts{Heading: "Inter, -apple-system, sans-serif", Body: "Inter, -apple-system, sans-serif"},
		BorderRadius:   20,
		Shadow:         "0 8px 32px rgba(225, 29, 72, 0.12)",
		AnimationStyle: "bouncy",
	},
	"minimal": {
		ID:   "minimal",
		Name: "Minimal",
		Colors: Colors{
			Primary:       "#171717",
			Secondary:     "#404040",
			Accent:        "#A3A3A3",
			Background:    "#FAFAFA",
			Surface:       "#FFFFFF",
			Text:          "#0A0A0A",
			TextSecondary: "#737373",
		},
		Fonts:          Fonts{Heading: `Georgia, "Times New Roman", serif`, Body: "Inter, -apple-system, sans-serif"},
		BorderRadius:   0,
		Shadow:         "none",
		AnimationStyle: "sharp",
	},
}

// Get returns a theme by id, falling back to the default theme.
func Get(id string) Theme {
	if t, ok := themes[id]; ok {
		return t
	}
	return themes["default"]
}

// All returns every theme in a stable order.
func All() []Theme {
	return []Theme{themes["default"], themes["dark"], themes["vibrant"], themes["minimal"]}
}

// IDs lists all theme ids.
func IDs() []string {
	return []string{"default", "dark", "vibrant", "minimal"}
}
