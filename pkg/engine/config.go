package engine

import (
	"time"

	"github.com/griddeck/griddeck/pkg/engine/pack"
	"github.com/griddeck/griddeck/pkg/engine/push"
	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/grid"
)

// clearGrace is added to the animation duration before the animating
// flags are cleared, so highlights outlive the visual transition.
const clearGrace = 100 * time.Millisecond

// AnimationConfig describes the transition applied to components that
// change position.
type AnimationConfig struct {
	Duration   time.Duration
	Easing     string
	Properties []string
}

// DefaultAnimation is used when the caller leaves Animation unset.
var DefaultAnimation = AnimationConfig{
	Duration:   200 * time.Millisecond,
	Easing:     "ease-out",
	Properties: []string{"x", "y"},
}

// Config configures an Engine for one editing session.
type Config struct {
	// Enabled gates the whole engine. When false every operation is
	// the identity on its layout input, so callers can disable the
	// engine globally without branching.
	Enabled bool

	// Grid is the geometry of the dashboard being edited.
	Grid grid.Config

	// SnapThreshold is the magnetic snap distance in pixels. Zero or
	// negative selects snap.DefaultThreshold.
	SnapThreshold float64

	// SpaceMaking controls neighbor displacement during drags. A zero
	// value selects push.DefaultConfig.
	SpaceMaking push.Config

	// Animation describes position transitions. A zero value selects
	// DefaultAnimation.
	Animation AnimationConfig
}

// ArrangeOptions configures one auto-arrangement.
type ArrangeOptions struct {
	// SortOrder defaults to pack.SortPreserve.
	SortOrder pack.SortOrder

	// Gutter is extra spacing in grid units between packed components.
	Gutter int

	// AnimationDuration overrides the engine's animation duration for
	// this arrangement. Zero keeps the configured duration.
	AnimationDuration time.Duration
}

// Transition describes how one component's position change should be
// animated by the rendering layer.
type Transition struct {
	ID         string
	Duration   time.Duration
	Easing     string
	Properties []string
}

// validate fills defaults and checks the grid geometry. A disabled
// engine accepts any configuration, since it will not use it.
func (c *Config) validate() error {
	if c.SpaceMaking == (push.Config{}) {
		c.SpaceMaking = push.DefaultConfig
	}
	if c.Animation.Duration == 0 && c.Animation.Easing == "" {
		c.Animation = DefaultAnimation
	}
	if !c.Enabled {
		return nil
	}
	if err := c.Grid.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "engine grid")
	}
	return nil
}
