package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SettingsPanel is a fixed panel of sliders and buttons built from specs.
type SettingsPanel struct {
	renderer *Renderer
	title    string
	x, y     int32
	width    int32
	sections []SectionSpec
	buttons  []ButtonSpec

	visible bool
}

// NewSettingsPanel creates a settings panel anchored at (x, y).
func NewSettingsPanel(title string, x, y, width int32) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		title:    title,
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// AddSection appends a group of sliders.
func (p *SettingsPanel) AddSection(s SectionSpec) {
	p.sections = append(p.sections, s)
}

// AddButton appends a button row entry. Buttons are laid out two per row.
func (p *SettingsPanel) AddButton(b ButtonSpec) {
	p.buttons = append(p.buttons, b)
}

// SetPosition updates the panel position.
func (p *SettingsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// SetVisible shows or hides the panel.
func (p *SettingsPanel) SetVisible(visible bool) {
	p.visible = visible
}

// Visible reports whether the panel is drawn.
func (p *SettingsPanel) Visible() bool {
	return p.visible
}

// height computes the panel height from its contents.
func (p *SettingsPanel) height() int32 {
	t := p.renderer.Theme
	h := t.Padding + t.LineHeight + 6 // title
	for _, s := range p.sections {
		h += t.LineHeight + 2
		h += int32(len(s.Sliders)) * (t.LineHeight + t.SliderHeight + 8)
	}
	rows := int32((len(p.buttons) + 1) / 2)
	h += rows * (t.ButtonHeight + 6)
	return h + t.Padding
}

// Bounds returns the screen rectangle covered by the panel.
func (p *SettingsPanel) Bounds() rl.Rectangle {
	return rl.Rectangle{
		X:      float32(p.x),
		Y:      float32(p.y),
		Width:  float32(p.width),
		Height: float32(p.height()),
	}
}

// Hovered reports whether the point lies over the visible panel.
func (p *SettingsPanel) Hovered(pos rl.Vector2) bool {
	if !p.visible {
		return false
	}
	b := p.Bounds()
	return pos.X >= b.X && pos.X < b.X+b.Width && pos.Y >= b.Y && pos.Y < b.Y+b.Height
}

// Draw renders the panel and applies slider changes. It returns true when
// any value changed this frame.
func (p *SettingsPanel) Draw() bool {
	if !p.visible {
		return false
	}

	t := p.renderer.Theme
	p.renderer.DrawPanel(p.x, p.y, p.width, p.height())

	x := p.x + t.Padding
	y := p.y + t.Padding
	inner := p.width - 2*t.Padding

	rl.DrawText(p.title, x, y, t.HeaderFontSize+2, rl.White)
	y += t.LineHeight + 6

	changed := false
	for _, s := range p.sections {
		y = p.renderer.DrawSectionHeader(x, y, s.Title)
		for _, spec := range s.Sliders {
			var c bool
			y, c = p.renderer.DrawSlider(x, y, inner, spec)
			changed = changed || c
		}
	}

	half := (inner - 6) / 2
	for i, b := range p.buttons {
		bx := x
		if i%2 == 1 {
			bx = x + half + 6
		}
		if p.renderer.DrawButton(bx, y, half, b.Label) && b.OnClick != nil {
			b.OnClick()
		}
		if i%2 == 1 || i == len(p.buttons)-1 {
			y += t.ButtonHeight + 6
		}
	}
	return changed
}
