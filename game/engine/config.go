package engine

import (
	"fmt"
	"strings"
)

// Model selects how input turns into velocity
type Model string

const (
	// ModelDrag integrates force/mass minus drag into velocity
	ModelDrag Model = "drag"
	// ModelConstant sets velocity to direction * speed each frame
	ModelConstant Model = "constant"
)

// Body holds the per-class physics constants of an entity
type Body struct {
	Model      Model   `json:"model"`
	Mass       float32 `json:"mass"`
	Drag       float32 `json:"drag"`
	Force      float32 `json:"force"`
	Speed      float32 `json:"speed"`
	SnapOnIdle bool    `json:"snap_on_idle,omitempty"`
}

// DefaultPlayerBody reaches a terminal speed of 7 tiles per second, the
// speed of the constant model.
func DefaultPlayerBody() Body {
	return Body{
		Model: ModelDrag,
		Mass:  1,
		Drag:  10,
		Force: 70,
		Speed: 7,
	}
}

// DefaultBoxBody returns the body of a box. Boxes never integrate input.
func DefaultBoxBody() Body {
	return Body{
		Model: ModelConstant,
		Mass:  1,
	}
}

// TerminalSpeed returns the speed reached when holding a direction
func (b Body) TerminalSpeed() float32 {
	if b.Model == ModelConstant {
		return b.Speed
	}
	if b.Drag == 0 || b.Mass == 0 {
		return 0
	}
	return b.Force / (b.Mass * b.Drag)
}

// PushPolicy decides what happens to the player when a pushed box is blocked
type PushPolicy int

const (
	// PushIndependent moves the player by its own allowed movement even when
	// the box cannot move; the player may overlap the box.
	PushIndependent PushPolicy = iota
	// PushCoupled truncates the player's movement to the box's movement.
	PushCoupled
)

// String returns the policy name
func (p PushPolicy) String() string {
	if p == PushCoupled {
		return "coupled"
	}
	return "independent"
}

// ParsePushPolicy parses "independent" or "coupled"
func ParsePushPolicy(s string) (PushPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "independent":
		return PushIndependent, nil
	case "coupled":
		return PushCoupled, nil
	default:
		return PushIndependent, fmt.Errorf("unknown push policy %q", s)
	}
}

// Options configures an Engine
type Options struct {
	Policy PushPolicy
	// BoxChainBlocking stops a pushed box that would overlap another box
	BoxChainBlocking bool
}

// DefaultOptions returns the source behaviour: independent push, no box-box blocking
func DefaultOptions() Options {
	return Options{Policy: PushIndependent}
}

// ValidateBody checks a body for usable constants
func ValidateBody(b Body) error {
	switch b.Model {
	case ModelDrag:
		if b.Mass <= 0 {
			return fmt.Errorf("body validation: mass must be positive, got %v", b.Mass)
		}
		if b.Drag < 0 {
			return fmt.Errorf("body validation: drag must not be negative, got %v", b.Drag)
		}
		if b.Force < 0 {
			return fmt.Errorf("body validation: force must not be negative, got %v", b.Force)
		}
	case ModelConstant:
		if b.Speed < 0 {
			return fmt.Errorf("body validation: speed must not be negative, got %v", b.Speed)
		}
	default:
		return fmt.Errorf("body validation: unknown model %q", b.Model)
	}
	return nil
}
