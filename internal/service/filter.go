package service

import (
	"strings"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

const (
	PopularDestinationLimit = 6
	FeaturedPackageLimit    = 3
)

// FilterDestinations keeps the destinations that satisfy every predicate in
// criteria. The result is a subsequence of dests in input order.
func FilterDestinations(dests []domain.Destination, criteria domain.FilterCriteria) []domain.Destination {
	search := strings.ToLower(criteria.Search)
	out := make([]domain.Destination, 0, len(dests))
	for _, d := range dests {
		if matchesCriteria(d, criteria, search) {
			out = append(out, d)
		}
	}
	return out
}

// matchesCriteria reports whether d passes all predicates. loweredSearch is
// criteria.Search lower-cased.
func matchesCriteria(d domain.Destination, criteria domain.FilterCriteria, loweredSearch string) bool {
	if loweredSearch != "" &&
		!strings.Contains(strings.ToLower(d.Name), loweredSearch) &&
		!strings.Contains(strings.ToLower(d.Location), loweredSearch) &&
		!strings.Contains(strings.ToLower(d.Country), loweredSearch) {
		return false
	}
	if !criteria.Location.Matches(d.Location) {
		return false
	}
	if !criteria.Category.Matches(d.Category) {
		return false
	}
	if !criteria.PriceRange.Contains(d.Price) {
		return false
	}
	return d.Rating >= criteria.MinRating
}

// LocationOptions lists "All" followed by each distinct location in
// first-seen order.
func LocationOptions(dests []domain.Destination) []string {
	return distinctOptions(dests, func(d domain.Destination) string { return d.Location })
}

func CategoryOptions(dests []domain.Destination) []string {
	return distinctOptions(dests, func(d domain.Destination) string { return d.Category })
}

func distinctOptions(dests []domain.Destination, field func(domain.Destination) string) []string {
	out := []string{domain.AllSentinel}
	seen := map[string]struct{}{domain.AllSentinel: {}}
	for _, d := range dests {
		v := field(d)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func FindDestination(dests []domain.Destination, id int) (domain.Destination, bool) {
	for _, d := range dests {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Destination{}, false
}

// PopularDestinations returns the first limit destinations, the home page selection.
func PopularDestinations(dests []domain.Destination, limit int) []domain.Destination {
	if limit < 0 || limit > len(dests) {
		limit = len(dests)
	}
	out := make([]domain.Destination, limit)
	copy(out, dests[:limit])
	return out
}

func FeaturedPackages(pkgs []domain.Package, limit int) []domain.Package {
	if limit < 0 || limit > len(pkgs) {
		limit = len(pkgs)
	}
	out := make([]domain.Package, limit)
	copy(out, pkgs[:limit])
	return out
}
