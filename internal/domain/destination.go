package domain

type Destination struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Country     string   `json:"country"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Duration    string   `json:"duration"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	Includes    []string `json:"includes,omitempty"`
	Image       string   `json:"image,omitempty"`
}

type Package struct {
	ID            int      `json:"id"`
	DestinationID int      `json:"destination_id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Duration      string   `json:"duration"`
	Category      string   `json:"category"`
	Description   string   `json:"description,omitempty"`
	Includes      []string `json:"includes,omitempty"`
	Image         string   `json:"image,omitempty"`
}

// Catalog is the read-only reference data loaded once at process start.
type Catalog struct {
	Destinations []Destination `json:"destinations"`
	Packages     []Package     `json:"packages"`
}

func (d Destination) Clone() Destination {
	d.Highlights = cloneStrings(d.Highlights)
	d.Includes = cloneStrings(d.Includes)
	return d
}

func (p Package) Clone() Package {
	p.Includes = cloneStrings(p.Includes)
	return p
}

// Clone returns a deep copy so callers cannot reach into shared slices.
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Destinations: make([]Destination, len(c.Destinations)),
		Packages:     make([]Package, len(c.Packages)),
	}
	for i, d := range c.Destinations {
		out.Destinations[i] = d.Clone()
	}
	for i, p := range c.Packages {
		out.Packages[i] = p.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
