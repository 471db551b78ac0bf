package flipbook

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates a float64 field toward a target. Call Update(dt) each
// frame; the group writes the tweened value straight into the field.
//
// There is no global animation manager: owners call Update themselves.
type TweenGroup struct {
	tween *gween.Tween
	field *float64
	Done  bool
}

// Update advances the tween by dt seconds and writes the value to the field.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	val, finished := g.tween.Update(dt)
	*g.field = float64(val)
	g.Done = finished
}

// TweenFloat creates a TweenGroup that animates *field to the target value
// over duration seconds using the easing function.
func TweenFloat(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return &TweenGroup{
		tween: gween.New(float32(*field), float32(to), duration, fn),
		field: field,
	}
}

// hintFadeSeconds is how long the instruction label takes to disappear
// after the first interaction.
const hintFadeSeconds = 0.6

// Hint is the instruction label drawn under the book. It stays fully
// visible until the book is first touched, then fades out.
type Hint struct {
	Text  string
	Alpha float64
	fade  *TweenGroup
}

// NewHint creates a fully opaque hint.
func NewHint(text string) *Hint {
	return &Hint{Text: text, Alpha: 1}
}

// Update starts the fade once interacted is true and advances it.
func (h *Hint) Update(dt float32, interacted bool) {
	if interacted && h.fade == nil {
		h.fade = TweenFloat(&h.Alpha, 0, hintFadeSeconds, ease.OutQuad)
	}
	h.fade.Update(dt)
}

// Visible reports whether the hint still needs drawing.
func (h *Hint) Visible() bool {
	return h.Text != "" && h.Alpha > 0
}
