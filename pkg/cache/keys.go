package cache

// Keyer derives cache keys for the pipeline's cached stages.
type Keyer interface {
	// LayoutKey identifies a computed layout for the given input hash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes placement.
type LayoutKeyOpts struct {
	FontMin       int     `json:"font_min"`
	FontMax       int     `json:"font_max"`
	CenterX       int     `json:"center_x"`
	CenterY       int     `json:"center_y"`
	ColorScheme   string  `json:"color_scheme"`
	Seed          uint64  `json:"seed"`
	AttemptBudget int     `json:"attempt_budget"`
	RadiusFactor  float64 `json:"radius_factor"`
	Lowercase     bool    `json:"lowercase"`
	StopWords     string  `json:"stop_words"` // hash of the stop list
}

// ArtifactKeyOpts holds every option that changes the rendered output.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Background string  `json:"background"`
	Outlines   bool    `json:"outlines"`
	Scale      float64 `json:"scale"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
