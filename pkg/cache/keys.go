package cache

// LayoutKeyOpts is everything besides the graph that changes a layout.
type LayoutKeyOpts struct {
	Steps          int     `json:"steps"`
	Seed           int64   `json:"seed"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	NodeSize       float64 `json:"node_size"`
	ScatterRadius  float64 `json:"scatter_radius"`
	Repulsion      float64 `json:"repulsion"`
	SpringConstant float64 `json:"spring_constant"`
	SpringLength   float64 `json:"spring_length"`
	Damping        float64 `json:"damping"`
	MinDistance    float64 `json:"min_distance"`
	Gravity        float64 `json:"gravity"`
}

// ArtifactKeyOpts is everything besides the layout that changes a rendered
// artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Zoom       float64 `json:"zoom"`
	Highlight  *int64  `json:"highlight,omitempty"`
	FitContent bool    `json:"fit_content,omitempty"`
	Labels     bool    `json:"labels,omitempty"`
	PixelScale float64 `json:"pixel_scale,omitempty"`
	Background string  `json:"background,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
