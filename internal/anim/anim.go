// Package anim implements two-frame entry animations on styled elements.
// Each animation sets a starting style immediately and, optionally, flips to a
// resting style after a short delay.
package anim

import (
	"sync"
	"time"

	"classdesk/internal/ui/theme"
)

// Style property names.
const (
	PropOpacity    = "opacity"
	PropTransition = "transition"
	PropTransform  = "transform"
	PropAnimation  = "animation"
)

// Animation names.
const (
	NameFadeIn  = "fadeIn"
	NameSlideIn = "slideIn"
	NameBounce  = "bounce"
)

// SettleDelay is the gap before an animation flips to its resting state.
const SettleDelay = 100 * time.Millisecond

// Element is anything the UI renders with animated style properties.
type Element struct {
	ID string

	mu       sync.RWMutex
	style    map[string]string
	onChange func(*Element)
}

// NewElement returns an element with no style.
func NewElement(id string) *Element {
	return &Element{ID: id, style: make(map[string]string)}
}

// OnChange sets the hook called after every style write.
func (e *Element) OnChange(fn func(*Element)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// SetStyle writes one style property.
func (e *Element) SetStyle(prop, value string) {
	e.mu.Lock()
	e.style[prop] = value
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(e)
	}
}

// Style returns one style property.
func (e *Element) Style(prop string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.style[prop]
}

// Faint reports whether the element is fully transparent.
func (e *Element) Faint() bool {
	return e.Style(PropOpacity) == "0"
}

// Shifted reports whether the element is displaced from its resting position.
func (e *Element) Shifted() bool {
	t := e.Style(PropTransform)
	return t != "" && t != "translateY(0)"
}

// Emphasized reports whether a keyframe animation is set.
func (e *Element) Emphasized() bool {
	return e.Style(PropAnimation) != ""
}

// Animation decorates an element and returns it.
type Animation func(*Element) *Element

// Base is the identity animation.
func Base(e *Element) *Element { return e }

// FadeIn starts transparent and becomes opaque after SettleDelay.
func FadeIn(s theme.Scheduler, next Animation) Animation {
	return func(e *Element) *Element {
		e = next(e)
		e.SetStyle(PropOpacity, "0")
		e.SetStyle(PropTransition, "opacity 0.5s ease-in")
		s.After(SettleDelay, func() { e.SetStyle(PropOpacity, "1") })
		return e
	}
}

// SlideIn starts 20px above its slot and drops in after SettleDelay.
func SlideIn(s theme.Scheduler, next Animation) Animation {
	return func(e *Element) *Element {
		e = next(e)
		e.SetStyle(PropTransform, "translateY(-20px)")
		e.SetStyle(PropTransition, "transform 0.3s ease-out")
		s.After(SettleDelay, func() { e.SetStyle(PropTransform, "translateY(0)") })
		return e
	}
}

// Bounce sets a keyframe animation. It has no deferred step.
func Bounce(next Animation) Animation {
	return func(e *Element) *Element {
		e = next(e)
		e.SetStyle(PropAnimation, "bounce 0.6s ease-in-out")
		return e
	}
}

// Manager looks animations up by name.
type Manager struct {
	animations map[string]Animation
}

// NewManager registers fadeIn, slideIn and bounce on s.
func NewManager(s theme.Scheduler) *Manager {
	if s == nil {
		s = theme.TimerScheduler{}
	}
	return &Manager{animations: map[string]Animation{
		NameFadeIn:  FadeIn(s, Base),
		NameSlideIn: SlideIn(s, Base),
		NameBounce:  Bounce(Base),
	}}
}

// Register adds or replaces a named animation.
func (m *Manager) Register(name string, a Animation) {
	m.animations[name] = a
}

// Animate applies the named animation. Unknown names return el unchanged.
func (m *Manager) Animate(el *Element, name string) *Element {
	a, ok := m.animations[name]
	if !ok {
		return el
	}
	return a(el)
}
