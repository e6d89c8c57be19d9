package common

const (
	DefaultItemsPerPage = 10

	FallbackWindowWidth  = 100
	FallbackWindowHeight = 30

	HeaderHeight        = 2
	FooterHeight        = 1
	PanelMarginVertical = 2

	DialogMinWidth          = 40
	DialogBorderAndMargin   = 8
	TextInputDefaultWidth   = 40
	TextAreaDefaultWidth    = 60
	MaxContentTruncateWidth = 72
)

func DefaultWindowWidth(width int) int {
	if width <= 0 {
		return FallbackWindowWidth
	}
	return width
}

func DefaultWindowHeight(height int) int {
	if height <= 0 {
		return FallbackWindowHeight
	}
	return height
}

// CalculateAvailableHeight is the height left for a panel under the header
// and above the help footer.
func CalculateAvailableHeight(height int) int {
	return max(height-HeaderHeight-FooterHeight-PanelMarginVertical, 5)
}

// CalculateContentWidth is the width usable inside a bordered, padded panel.
func CalculateContentWidth(width, padding int) int {
	return max(width-2-2*padding, 20)
}
