package richtext

// ColorID names one of the script block color presets.
type ColorID string

const DefaultColor ColorID = "amber"

// Preset is the styling applied to a script block of a given color.
type Preset struct {
	ID         ColorID `json:"id"`
	Label      string  `json:"label"`
	Border     string  `json:"border"`
	Background string  `json:"bg"`
	LabelColor string  `json:"labelColor"`
}

var Presets = []Preset{
	{ID: "amber", Label: "Amber", Border: "#FFC900", Background: "#FFFBEB", LabelColor: "#92400E"},
	{ID: "blue", Label: "Mavi", Border: "#3B82F6", Background: "#EFF6FF", LabelColor: "#1E40AF"},
	{ID: "red", Label: "Kırmızı", Border: "#EF4444", Background: "#FEF2F2", LabelColor: "#991B1B"},
	{ID: "green", Label: "Yeşil", Border: "#22C55E", Background: "#F0FDF4", LabelColor: "#166534"},
	{ID: "purple", Label: "Mor", Border: "#A855F7", Background: "#FAF5FF", LabelColor: "#6B21A8"},
	{ID: "orange", Label: "Turuncu", Border: "#F97316", Background: "#FFF7ED", LabelColor: "#9A3412"},
	{ID: "teal", Label: "Turkuaz", Border: "#14B8A6", Background: "#F0FDFA", LabelColor: "#115E59"},
	{ID: "slate", Label: "Gri", Border: "#64748B", Background: "#F8FAFC", LabelColor: "#334155"},
}

// PresetFor returns the preset for id, or amber when id is unknown.
func PresetFor(id ColorID) Preset {
	for _, p := range Presets {
		if p.ID == id {
			return p
		}
	}
	return Presets[0]
}

// NextColor cycles through the presets, used by pickers.
func NextColor(id ColorID, step int) ColorID {
	idx := 0
	for i, p := range Presets {
		if p.ID == id {
			idx = i
			break
		}
	}
	n := len(Presets)
	return Presets[((idx+step)%n+n)%n].ID
}
