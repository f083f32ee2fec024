package dto

// TemplateFile is the declarative model file.
// It uses "mapstructure" tags so the same structs decode YAML and JSON documents.
type TemplateFile struct {
	Name string `json:"name" mapstructure:"name"`
	// Height is the subject height handed to reference functions that do not set one.
	Height   float64        `json:"height,omitempty" mapstructure:"height"`
	Segments []SegmentEntry `json:"segments" mapstructure:"segments"`
}

type SegmentEntry struct {
	Name         string        `json:"name" mapstructure:"name"`
	Parent       string        `json:"parent,omitempty" mapstructure:"parent"`
	Translations string        `json:"translations,omitempty" mapstructure:"translations"`
	Rotations    string        `json:"rotations,omitempty" mapstructure:"rotations"`
	SCS          *SCSEntry     `json:"scs,omitempty" mapstructure:"scs"`
	Markers      []MarkerEntry `json:"markers,omitempty" mapstructure:"markers"`
	Mesh         *MeshEntry    `json:"mesh,omitempty" mapstructure:"mesh"`
	Inertia      *InertiaEntry `json:"inertia,omitempty" mapstructure:"inertia"`
	InertiaRole  string        `json:"inertia_role,omitempty" mapstructure:"inertia_role"`
}

// SCSEntry holds raw reference nodes; they are decoded by the file adapter.
type SCSEntry struct {
	Origin     any       `json:"origin" mapstructure:"origin"`
	FirstAxis  AxisEntry `json:"first_axis" mapstructure:"first_axis"`
	SecondAxis AxisEntry `json:"second_axis" mapstructure:"second_axis"`
	Keep       string    `json:"keep" mapstructure:"keep"`
}

// AxisEntry without Start and End stands for the global axis of the same name.
type AxisEntry struct {
	Name  string `json:"name" mapstructure:"name"`
	Start any    `json:"start,omitempty" mapstructure:"start"`
	End   any    `json:"end,omitempty" mapstructure:"end"`
}

// MarkerEntry flags default to true when omitted.
// A plain string in the markers list is shorthand for {name: <string>}.
type MarkerEntry struct {
	Name       string `json:"name" mapstructure:"name"`
	Technical  *bool  `json:"technical,omitempty" mapstructure:"technical"`
	Anatomical *bool  `json:"anatomical,omitempty" mapstructure:"anatomical"`
}

type MeshEntry struct {
	Local  bool  `json:"local" mapstructure:"local"`
	Points []any `json:"points" mapstructure:"points"`
}

type InertiaEntry struct {
	Mass         float64   `json:"mass" yaml:"mass" mapstructure:"mass"`
	CenterOfMass []float64 `json:"center_of_mass" yaml:"center_of_mass" mapstructure:"center_of_mass"`
	Inertia      []float64 `json:"inertia" yaml:"inertia" mapstructure:"inertia"`
}

// ReferenceEntry is the map form of a spatial reference. Exactly one of Marker, Mean,
// Point and Function is set; Offset applies on top of any of them.
type ReferenceEntry struct {
	Marker   string         `mapstructure:"marker"`
	Mean     []string       `mapstructure:"mean"`
	Point    []float64      `mapstructure:"point"`
	Function string         `mapstructure:"function"`
	Args     map[string]any `mapstructure:"args"`
	Offset   []float64      `mapstructure:"offset"`
}
