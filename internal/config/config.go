// Package config loads and saves mechanism descriptions and run settings
// from yaml files, and builds finalized trees from them.
package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/multibody/internal/multibody"
	"github.com/san-kum/multibody/internal/scalar"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 10.0
	DefaultInertia  = 1.0
	DefaultDamping  = 0.5
	DefaultKp       = 40.0
	DefaultKi       = 5.0
	DefaultKd       = 12.0
)

type Config struct {
	Mechanism  MechanismConfig  `yaml:"mechanism"`
	Plant      PlantConfig      `yaml:"plant"`
	Controller ControllerConfig `yaml:"controller"`
	Sim        SimConfig        `yaml:"sim"`
}

type MechanismConfig struct {
	Name   string        `yaml:"name"`
	Frames []string      `yaml:"frames"`
	Joints []JointConfig `yaml:"joints"`
}

// JointConfig mirrors multibody.JointSpec in yaml-friendly form.
type JointConfig struct {
	Name   string     `yaml:"name"`
	Type   string     `yaml:"type"`
	Parent string     `yaml:"parent"`
	Child  string     `yaml:"child"`
	Axis   [3]float64 `yaml:"axis,omitempty"`
	Axis2  [3]float64 `yaml:"axis2,omitempty"`
	Angle  float64    `yaml:"angle,omitempty"`
	Offset [3]float64 `yaml:"offset,omitempty"`

	InitPositions  []float64 `yaml:"init_positions,omitempty"`
	InitVelocities []float64 `yaml:"init_velocities,omitempty"`
}

type PlantConfig struct {
	Inertia float64 `yaml:"inertia"`
	Damping float64 `yaml:"damping"`
	Bias    float64 `yaml:"bias"`
}

type ControllerConfig struct {
	Kind  string                 `yaml:"kind"` // "none" or "tracking"
	Gains map[string]GainsConfig `yaml:"gains,omitempty"`
}

type GainsConfig struct {
	Kp      float64   `yaml:"kp"`
	Ki      float64   `yaml:"ki"`
	Kd      float64   `yaml:"kd"`
	Targets []float64 `yaml:"targets"`
}

type SimConfig struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Runs     int     `yaml:"runs"`
	Validate bool    `yaml:"validate"`
}

// DefaultConfig describes a planar two-joint leg: pelvis, thigh and shank
// connected by hip and knee revolute joints, tracked toward a mild crouch.
func DefaultConfig() *Config {
	return &Config{
		Mechanism: MechanismConfig{
			Name:   "leg2",
			Frames: []string{"pelvis", "thigh", "shank"},
			Joints: []JointConfig{
				{
					Name: "hip", Type: "revolute",
					Parent: "pelvis", Child: "thigh",
					Axis:          [3]float64{0, 0, 1},
					InitPositions: []float64{0.3},
				},
				{
					Name: "knee", Type: "revolute",
					Parent: "thigh", Child: "shank",
					Axis:          [3]float64{0, 0, 1},
					InitPositions: []float64{-0.6},
				},
			},
		},
		Plant: PlantConfig{
			Inertia: DefaultInertia,
			Damping: DefaultDamping,
		},
		Controller: ControllerConfig{
			Kind: "tracking",
			Gains: map[string]GainsConfig{
				"hip":  {Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd, Targets: []float64{0.5}},
				"knee": {Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd, Targets: []float64{-1.0}},
			},
		},
		Sim: SimConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
			Runs:     1,
			Validate: true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func vec(a [3]float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }

// Spec converts a joint entry to its multibody description.
func (jc JointConfig) Spec() multibody.JointSpec {
	return multibody.JointSpec{
		Name:   jc.Name,
		Type:   multibody.JointType(jc.Type),
		Parent: jc.Parent,
		Child:  jc.Child,
		Axis:   vec(jc.Axis),
		Axis2:  vec(jc.Axis2),
		Angle:  jc.Angle,
		Offset: vec(jc.Offset),
	}
}

// BuildTree declares the configured frames and joints and finalizes the
// result.
func (c *Config) BuildTree() (*multibody.Tree[scalar.Float], error) {
	tree := multibody.NewTree[scalar.Float]()
	for _, name := range c.Mechanism.Frames {
		if _, err := tree.AddFrame(name); err != nil {
			return nil, err
		}
	}
	for _, jc := range c.Mechanism.Joints {
		j, err := multibody.NewJointFromSpec[scalar.Float](jc.Spec(), tree)
		if err != nil {
			return nil, err
		}
		if err := tree.AddJoint(j); err != nil {
			return nil, err
		}
	}
	if err := tree.Finalize(); err != nil {
		return nil, err
	}
	return tree, nil
}

// InitialState allocates a state and applies the configured initial
// positions and velocities through the joints' accessors.
func (c *Config) InitialState(tree *multibody.Tree[scalar.Float]) (*multibody.State[scalar.Float], error) {
	s, err := tree.NewState()
	if err != nil {
		return nil, err
	}
	for _, jc := range c.Mechanism.Joints {
		j, ok := tree.JointByName(jc.Name)
		if !ok {
			return nil, fmt.Errorf("config: tree has no joint %q", jc.Name)
		}
		for dof, q := range jc.InitPositions {
			if err := j.SetPositionAt(s, dof, scalar.Float(q)); err != nil {
				return nil, err
			}
		}
		for dof, v := range jc.InitVelocities {
			if err := j.SetRateAt(s, dof, scalar.Float(v)); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
