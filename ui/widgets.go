package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for [0, 1] values with a text readout.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, readout string, width int32) int32 {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 90

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	fill := r.Theme.BarFill
	if value < 0.25 {
		fill = r.Theme.BarFillLow
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*value), r.Theme.BarHeight, fill)
	rl.DrawText(readout, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawSlider draws a labelled raygui slider for spec and writes back a changed
// value. It returns the new Y position and whether the value changed.
func (r *Renderer) DrawSlider(x, y, width int32, spec SliderSpec) (int32, bool) {
	rl.DrawText(spec.Label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight

	cur := spec.Get()
	bounds := rl.Rectangle{
		X:      float32(x),
		Y:      float32(y),
		Width:  float32(width - 70),
		Height: float32(r.Theme.SliderHeight),
	}
	next := spec.snap(gui.SliderBar(bounds, "", "", cur, spec.Min, spec.Max))

	text := fmt.Sprintf(spec.Format, next)
	if spec.Hint != nil {
		text += " " + spec.Hint()
	}
	rl.DrawText(text, x+width-64, y+3, r.Theme.FontSize, r.Theme.ValueColor)

	changed := next != cur
	if changed {
		spec.Set(next)
	}
	return y + r.Theme.SliderHeight + 8, changed
}

// DrawButton draws a raygui button and reports whether it was clicked.
func (r *Renderer) DrawButton(x, y, width int32, label string) bool {
	return gui.Button(rl.Rectangle{
		X:      float32(x),
		Y:      float32(y),
		Width:  float32(width),
		Height: float32(r.Theme.ButtonHeight),
	}, label)
}
