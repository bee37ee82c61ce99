package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"classdesk/internal/ui/theme"
)

func TestFadeIn(t *testing.T) {
	s := theme.NewManualScheduler()
	m := NewManager(s)
	el := m.Animate(NewElement("row-1"), NameFadeIn)

	assert.Equal(t, "0", el.Style(PropOpacity))
	assert.Equal(t, "opacity 0.5s ease-in", el.Style(PropTransition))
	assert.True(t, el.Faint())

	s.Advance(SettleDelay - time.Millisecond)
	assert.True(t, el.Faint())
	s.Advance(time.Millisecond)
	assert.Equal(t, "1", el.Style(PropOpacity))
	assert.False(t, el.Faint())
}

func TestSlideIn(t *testing.T) {
	s := theme.NewManualScheduler()
	el := NewManager(s).Animate(NewElement("row-2"), NameSlideIn)

	assert.Equal(t, "translateY(-20px)", el.Style(PropTransform))
	assert.Equal(t, "transform 0.3s ease-out", el.Style(PropTransition))
	assert.True(t, el.Shifted())

	s.Advance(SettleDelay)
	assert.Equal(t, "translateY(0)", el.Style(PropTransform))
	assert.False(t, el.Shifted())
}

func TestBounceHasNoDeferredStep(t *testing.T) {
	s := theme.NewManualScheduler()
	el := NewManager(s).Animate(NewElement("form"), NameBounce)
	assert.Equal(t, "bounce 0.6s ease-in-out", el.Style(PropAnimation))
	assert.True(t, el.Emphasized())
	assert.Equal(t, 0, s.Pending())
}

func TestUnknownAnimationIsIdentity(t *testing.T) {
	el := NewElement("x")
	out := NewManager(theme.NewManualScheduler()).Animate(el, "wobble")
	assert.Same(t, el, out)
	assert.Empty(t, out.Style(PropOpacity))
}

func TestAnimationsCompose(t *testing.T) {
	s := theme.NewManualScheduler()
	both := Bounce(FadeIn(s, Base))
	el := both(NewElement("x"))
	assert.True(t, el.Faint())
	assert.True(t, el.Emphasized())
}

func TestOnChangeFires(t *testing.T) {
	s := theme.NewManualScheduler()
	el := NewElement("x")
	changes := 0
	el.OnChange(func(*Element) { changes++ })

	NewManager(s).Animate(el, NameFadeIn)
	assert.Equal(t, 2, changes)
	s.Advance(SettleDelay)
	assert.Equal(t, 3, changes)
}
