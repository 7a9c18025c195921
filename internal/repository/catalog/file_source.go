package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/repository/ports"
)

// FileSource reads the destination and package seed from a YAML or JSON file.
type FileSource struct {
	path string
}

func NewFileSource(path string) (*FileSource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog: path is required")
	}
	return &FileSource{path: path}, nil
}

func (s *FileSource) Load(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog: read %s: %w", s.path, err)
	}
	return Parse(raw)
}

// Parse decodes a catalog document and checks referential integrity.
func Parse(raw []byte) (domain.Catalog, error) {
	var c domain.Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := validate(c); err != nil {
		return domain.Catalog{}, err
	}
	return c, nil
}

func validate(c domain.Catalog) error {
	var errs []error
	seen := make(map[int]struct{}, len(c.Destinations))
	for i, d := range c.Destinations {
		if _, dup := seen[d.ID]; dup {
			errs = append(errs, fmt.Errorf("destination[%d]: duplicate id %d", i, d.ID))
		}
		seen[d.ID] = struct{}{}
		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, fmt.Errorf("destination[%d]: name is required", i))
		}
		if d.Price <= 0 {
			errs = append(errs, fmt.Errorf("destination %d: price must be positive", d.ID))
		}
		if d.Rating < 0 || d.Rating > 5 {
			errs = append(errs, fmt.Errorf("destination %d: rating must be within [0,5]", d.ID))
		}
	}

	pkgSeen := make(map[int]struct{}, len(c.Packages))
	for i, p := range c.Packages {
		if _, dup := pkgSeen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("package[%d]: duplicate id %d", i, p.ID))
		}
		pkgSeen[p.ID] = struct{}{}
		if _, ok := seen[p.DestinationID]; !ok {
			errs = append(errs, fmt.Errorf("package %d: unknown destination %d", p.ID, p.DestinationID))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog: %w", errors.Join(errs...))
	}
	return nil
}

var _ ports.CatalogSource = (*FileSource)(nil)
