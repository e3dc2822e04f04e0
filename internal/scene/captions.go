package scene

import "github.com/sells-group/state-scatter/internal/model"

// Caption spacing below the x axis and left of the y axis.
const (
	captionGap     = 20
	captionFirst   = 30
	captionSpacing = 25
)

// Captions are the six clickable axis labels. Exactly one caption per axis
// is active and it always names the selected field of that axis.
type Captions struct {
	items []CaptionFrame
}

// NewCaptions lays out the captions for l with sel marked active.
func NewCaptions(l Layout, sel model.Selection) *Captions {
	c := &Captions{}
	for i, m := range model.FieldsFor(model.AxisX) {
		c.items = append(c.items, CaptionFrame{
			Field: m.Field,
			Axis:  model.AxisX,
			Text:  m.Caption,
			X:     l.Width / 2,
			Y:     l.Height + captionGap + captionFirst + float64(i)*captionSpacing,
		})
	}
	for i, m := range model.FieldsFor(model.AxisY) {
		c.items = append(c.items, CaptionFrame{
			Field:  m.Field,
			Axis:   model.AxisY,
			Text:   m.Caption,
			X:      -l.Height / 2,
			Y:      -(captionFirst + float64(i)*captionSpacing),
			Rotate: -90,
		})
	}
	c.Update(model.AxisX, sel)
	c.Update(model.AxisY, sel)
	return c
}

// Update sets the active flags of one axis's captions from sel. Captions of
// the other axis are left as they are.
func (c *Captions) Update(axis model.Axis, sel model.Selection) {
	for i := range c.items {
		if c.items[i].Axis == axis {
			c.items[i].Active = sel.Field(axis) == c.items[i].Field
		}
	}
}

// Active returns the active field of an axis.
func (c *Captions) Active(axis model.Axis) model.Field {
	for _, it := range c.items {
		if it.Axis == axis && it.Active {
			return it.Field
		}
	}
	return ""
}

// Snapshot returns a copy of the captions.
func (c *Captions) Snapshot() []CaptionFrame {
	out := make([]CaptionFrame, len(c.items))
	copy(out, c.items)
	return out
}
