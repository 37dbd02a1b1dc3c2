// Package ui provides a descriptor-driven UI for the demo.
// Controls are described by metadata (label, range, accessors) so the panel
// layout does not need to know which settings it edits.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// SliderSpec describes one slider bound to a setting.
type SliderSpec struct {
	ID     string          // Unique identifier
	Label  string          // Display label
	Min    float32         // Slider lower bound
	Max    float32         // Slider upper bound
	Format string          // Printf format for the value readout
	Get    func() float32  // Reads the current value
	Set    func(v float32) // Writes a new value
	Step   float32         // Snap increment (0 = continuous)
	Hint   func() string   // Optional extra text after the value
}

// snap rounds v to the slider's step.
func (s SliderSpec) snap(v float32) float32 {
	if s.Step <= 0 {
		return v
	}
	n := int32(v/s.Step + 0.5)
	return float32(n) * s.Step
}

// ButtonSpec describes a push button.
type ButtonSpec struct {
	Label   string
	OnClick func()
}

// SectionSpec groups sliders under a header.
type SectionSpec struct {
	Title   string
	Sliders []SliderSpec
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	SliderHeight   int32
	ButtonHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 230, G: 140, B: 60, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     60,
		BarHeight:      12,
		SliderHeight:   18,
		ButtonHeight:   26,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
