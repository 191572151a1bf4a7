package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Vectors are written as [x, y, z] lists.

type TransformComponentSpec struct {
	Translation []float32 `yaml:"translation"`
	RotationDeg []float32 `yaml:"rotation_deg"`
	Scale       []float32 `yaml:"scale"`
}

type ParentComponentSpec struct {
	Name string `yaml:"name"`
}

type VecArrowComponentSpec struct {
	Direction  []float32  `yaml:"direction"`
	Space      string     `yaml:"space"`
	Color      *YAMLColor `yaml:"color"`
	Thickness  *float32   `yaml:"thickness"`
	HeadLength *float32   `yaml:"head_length"`
}

type CameraComponentSpec struct {
	Eye    []float32 `yaml:"eye"`
	Target []float32 `yaml:"target"`
	Up     []float32 `yaml:"up"`
	FOV    float32   `yaml:"fov"`
	Near   float32   `yaml:"near"`
	Far    float32   `yaml:"far"`
}

type ScriptedMotionComponentSpec struct {
	Script string `yaml:"script"`
}
