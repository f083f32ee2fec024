package dto

// TrialFile is a static trial exported from a capture system. Markers map labels to
// [x, y, z]; a null coordinate marks a gap.
type TrialFile struct {
	Name string `json:"name" yaml:"name"`
	// Unit of the coordinates: "m" (default), "cm" or "mm".
	Unit    string                `json:"unit,omitempty" yaml:"unit,omitempty"`
	Markers map[string][]*float64 `json:"markers" yaml:"markers"`
}
