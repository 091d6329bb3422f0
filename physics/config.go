// Copyright © 2024 Galvanized Logic Inc.

package physics

// config.go loads world tuning parameters from YAML, the way the
// engine's sibling asset-loading code describes shader configuration:
// a small struct decoded with gopkg.in/yaml.v3 and turned into the
// functional options NewWorld already accepts.

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/galvanized-logic/collide2d/geom"
)

// vec2Config is the YAML shape of a geom.Vec2.
type vec2Config struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

func (v vec2Config) vec2() geom.Vec2 { return geom.Vec2{X: v.X, Y: v.Y} }

// rectConfig is the YAML shape of a geom.Rect.
type rectConfig struct {
	Min vec2Config `yaml:"min"`
	Max vec2Config `yaml:"max"`
}

func (r rectConfig) rect() geom.Rect { return geom.Rect{Min: r.Min.vec2(), Max: r.Max.vec2()} }

// Config is the YAML-decodable description of a World's tuning
// parameters: quadtree policy, bounds, and optional gravity. Bounds is
// required; MaxDepth and NodeCapacity default to the engine's built-in
// defaults when zero.
type Config struct {
	MaxDepth     int         `yaml:"max_depth"`
	NodeCapacity int         `yaml:"node_capacity"`
	Bounds       rectConfig  `yaml:"bounds"`
	Gravity      *vec2Config `yaml:"gravity,omitempty"`
}

// LoadConfig decodes a Config from r.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, newErr(InvalidArgument, "load_config", err)
	}
	return cfg, nil
}

// WorldBounds returns the bounds described by the config, for passing to
// NewWorld alongside Options().
func (c Config) WorldBounds() geom.Rect { return c.Bounds.rect() }

// Options returns the functional options implied by the config, ready
// to pass to NewWorld. Zero values for MaxDepth/NodeCapacity are left
// at NewWorld's own defaults instead of being forced to zero.
func (c Config) Options() []Option {
	var opts []Option
	if c.MaxDepth > 0 {
		opts = append(opts, WithMaxDepth(c.MaxDepth))
	}
	if c.NodeCapacity > 0 {
		opts = append(opts, WithNodeCapacity(c.NodeCapacity))
	}
	if c.Gravity != nil {
		opts = append(opts, WithGravity(c.Gravity.vec2()))
	}
	return opts
}
