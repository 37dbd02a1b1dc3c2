package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/embers/inspector"
)

// InspectorPanel renders inspected components as label, bar and bool rows.
type InspectorPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspectorPanel creates a new inspector panel.
func NewInspectorPanel(x, y, width int32) *InspectorPanel {
	r := NewRenderer()
	r.Theme.LabelWidth = 130
	return &InspectorPanel{
		renderer: r,
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (p *InspectorPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// height computes the panel height for the given sections.
func (p *InspectorPanel) height(sections []inspector.Section) int32 {
	t := p.renderer.Theme
	h := 2*t.Padding + t.LineHeight + 6
	for _, s := range sections {
		h += t.LineHeight + 2
		for _, f := range s.Fields {
			if f.Widget == inspector.WidgetBar {
				h += t.LineHeight + 2
			} else {
				h += t.LineHeight
			}
		}
	}
	return h
}

// Draw renders the panel for one entity's components.
func (p *InspectorPanel) Draw(title string, sections []inspector.Section) {
	r := p.renderer
	t := r.Theme
	r.DrawPanel(p.x, p.y, p.width, p.height(sections))

	x := p.x + t.Padding
	y := p.y + t.Padding
	rl.DrawText(title, x, y, t.HeaderFontSize+2, rl.White)
	y += t.LineHeight + 6

	for _, s := range sections {
		y = r.DrawSectionHeader(x, y, s.Title)
		for _, f := range s.Fields {
			text := inspector.FormatValue(f.Value, f.Options["fmt"])
			switch f.Widget {
			case inspector.WidgetBar:
				y = r.DrawBar(x, y, f.Name, inspector.Ratio(f), text, p.width-2*t.Padding)
			default:
				y = r.DrawLabelValue(x, y, f.Name, text)
			}
		}
	}
}
