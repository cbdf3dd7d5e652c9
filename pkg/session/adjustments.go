package session

// Slider ranges. Brightness, contrast and saturation are percentages where
// 100 means unchanged; grayscale and sepia are mix amounts; blur is the blur
// radius in pixels.
const (
	ScaleMin = 0
	ScaleMax = 200
	MixMin   = 0
	MixMax   = 100
	BlurMin  = 0
	BlurMax  = 20
)

// Adjustments holds the six transient preview sliders. They never touch the
// committed history and are reset to the baseline on every cursor move.
type Adjustments struct {
	Brightness float64 `json:"brightness" koanf:"brightness"`
	Contrast   float64 `json:"contrast" koanf:"contrast"`
	Saturation float64 `json:"saturation" koanf:"saturation"`
	Grayscale  float64 `json:"grayscale" koanf:"grayscale"`
	Sepia      float64 `json:"sepia" koanf:"sepia"`
	Blur       float64 `json:"blur" koanf:"blur"`
}

// Baseline returns the neutral adjustment values {100,100,100,0,0,0}.
func Baseline() Adjustments {
	return Adjustments{
		Brightness: 100,
		Contrast:   100,
		Saturation: 100,
		Grayscale:  0,
		Sepia:      0,
		Blur:       0,
	}
}

// IsBaseline reports whether every slider sits at its neutral value.
func (a Adjustments) IsBaseline() bool {
	return a == Baseline()
}

// Clamped returns a copy with every slider forced into its valid range.
func (a Adjustments) Clamped() Adjustments {
	a.Brightness = clamp(a.Brightness, ScaleMin, ScaleMax)
	a.Contrast = clamp(a.Contrast, ScaleMin, ScaleMax)
	a.Saturation = clamp(a.Saturation, ScaleMin, ScaleMax)
	a.Grayscale = clamp(a.Grayscale, MixMin, MixMax)
	a.Sepia = clamp(a.Sepia, MixMin, MixMax)
	a.Blur = clamp(a.Blur, BlurMin, BlurMax)
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
