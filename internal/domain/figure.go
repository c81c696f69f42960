package domain

// Figure is a render-ready chart description for the external charting
// collaborator: declared field bindings, layout, data as facets of series
// with parallel value arrays, optional animation frames and image overlays.
type Figure struct {
	Kind        string   `json:"kind"` // scatter|bar|box|histogram
	Title       string   `json:"title"`
	XField      string   `json:"x_field"`
	YField      string   `json:"y_field,omitempty"`
	ColorField  string   `json:"color_field,omitempty"`
	SizeField   string   `json:"size_field,omitempty"`
	FacetField  string   `json:"facet_field,omitempty"`
	FrameField  string   `json:"frame_field,omitempty"`
	HoverFields []string `json:"hover_fields,omitempty"`
	Layout      Layout   `json:"layout"`
	Facets      []Facet  `json:"facets"`
	Frames      []Frame  `json:"frames,omitempty"`
	Images      []Image  `json:"images,omitempty"`
}

type Layout struct {
	Template string   `json:"template"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Colorway []string `json:"colorway"`
	BarMode  string   `json:"barmode,omitempty"`
	NBins    int      `json:"nbins,omitempty"`
}

// Frame is one animation step; its facets mirror the figure's facet grid.
type Frame struct {
	Name   string  `json:"name"`
	Facets []Facet `json:"facets"`
}

type Facet struct {
	Name   string   `json:"name,omitempty"` // empty when unfaceted
	Series []Series `json:"series"`
}

// Series is one colored trace. Y, Sizes and Hover run parallel to X where
// present.
type Series struct {
	Name    string     `json:"name"`
	X       []any      `json:"x"`
	Y       []float64  `json:"y,omitempty"`
	Sizes   []float64  `json:"sizes,omitempty"`
	Hover   [][]string `json:"hover,omitempty"`
	Opacity float64    `json:"opacity,omitempty"`
}

// Image is a decorative overlay positioned in paper coordinates.
type Image struct {
	Source  string  `json:"source"`
	XRef    string  `json:"xref"`
	YRef    string  `json:"yref"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	SizeX   float64 `json:"sizex"`
	SizeY   float64 `json:"sizey"`
	XAnchor string  `json:"xanchor,omitempty"`
	YAnchor string  `json:"yanchor,omitempty"`
	Opacity float64 `json:"opacity"`
}
