package color

// Picker is the slider state for one color token.
type Picker struct {
	Enabled bool   `json:"enabled"`
	Value   string `json:"value"`
	HSL     HSL    `json:"hsl"`
}

// NewPicker builds the picker state for a token value. Alpha values leave the
// picker disabled on the placeholder hue instead of being converted.
func NewPicker(value string) Picker {
	if IsAlpha(value) {
		return Picker{Enabled: false, Value: value, HSL: Fallback}
	}
	return Picker{Enabled: true, Value: value, HSL: HexToHSL(value)}
}
