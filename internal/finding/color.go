package finding

// Color is the overlay tag of a finding or of a drawn path element.
type Color uint8

const (
	// NoColor disables a configurable tier.
	NoColor Color = iota
	Red
	Orange
	Yellow
	GreenYellow
	Silver
	LawnGreen
	DarkBlue
	DarkRed
	Black
)

var colorNames = [...]string{
	NoColor:     "none",
	Red:         "red",
	Orange:      "orange",
	Yellow:      "yellow",
	GreenYellow: "greenyellow",
	Silver:      "silver",
	LawnGreen:   "lawngreen",
	DarkBlue:    "darkblue",
	DarkRed:     "darkred",
	Black:       "black",
}

// CSS colour components, 0-255.
var colorRGB = [...][3]uint8{
	NoColor:     {0, 0, 0},
	Red:         {255, 0, 0},
	Orange:      {255, 165, 0},
	Yellow:      {255, 255, 0},
	GreenYellow: {173, 255, 47},
	Silver:      {192, 192, 192},
	LawnGreen:   {124, 252, 0},
	DarkBlue:    {0, 0, 139},
	DarkRed:     {139, 0, 0},
	Black:       {0, 0, 0},
}

// String returns the CSS colour keyword.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// RGB returns the colour components in the 0..1 range.
func (c Color) RGB() (r, g, b float64) {
	if int(c) >= len(colorRGB) {
		return 0, 0, 0
	}
	v := colorRGB[c]
	return float64(v[0]) / 255, float64(v[1]) / 255, float64(v[2]) / 255
}

// ParseColor maps a CSS keyword to a Color; "off" and "none" map to NoColor.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "off", "":
		return NoColor, true
	}
	for i, name := range colorNames {
		if name == s {
			return Color(i), true
		}
	}
	return NoColor, false
}

// FindingColors lists the tags a Finding can carry, in severity order.
func FindingColors() []Color {
	return []Color{Red, Orange, Yellow, GreenYellow, Silver}
}
