package domain

import (
	"encoding/json"
	"strings"
)

// AllSentinel is the wire form of an unconstrained selector.
const AllSentinel = "All"

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 5000
)

// Selector is either Any (no constraint) or a specific value that must match exactly.
type Selector struct {
	value    string
	specific bool
}

func Any() Selector { return Selector{} }

func Specific(value string) Selector { return Selector{value: value, specific: true} }

// ParseSelector maps "", "All" (any case) to Any and everything else to Specific.
func ParseSelector(raw string) Selector {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, AllSentinel) {
		return Any()
	}
	return Specific(trimmed)
}

func (s Selector) IsAny() bool { return !s.specific }

func (s Selector) Value() (string, bool) { return s.value, s.specific }

func (s Selector) Matches(candidate string) bool {
	if !s.specific {
		return true
	}
	return candidate == s.value
}

func (s Selector) String() string {
	if !s.specific {
		return AllSentinel
	}
	return s.value
}

func (s Selector) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Selector) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSelector(raw)
	return nil
}

// PriceRange bounds are applied positionally: Min is compared with >=, Max with <=.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

type FilterCriteria struct {
	Search     string     `json:"search"`
	Location   Selector   `json:"location"`
	Category   Selector   `json:"category"`
	PriceRange PriceRange `json:"price_range"`
	MinRating  float64    `json:"min_rating"`
}

func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Search:     "",
		Location:   Any(),
		Category:   Any(),
		PriceRange: PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		MinRating:  0,
	}
}

// FilterUpdate is a partial FilterCriteria; nil fields keep their prior value.
type FilterUpdate struct {
	Search     *string     `json:"search,omitempty"`
	Location   *Selector   `json:"location,omitempty"`
	Category   *Selector   `json:"category,omitempty"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
	MinRating  *float64    `json:"min_rating,omitempty"`
}

func (c FilterCriteria) Merge(u FilterUpdate) FilterCriteria {
	if u.Search != nil {
		c.Search = *u.Search
	}
	if u.Location != nil {
		c.Location = *u.Location
	}
	if u.Category != nil {
		c.Category = *u.Category
	}
	if u.PriceRange != nil {
		c.PriceRange = *u.PriceRange
	}
	if u.MinRating != nil {
		c.MinRating = *u.MinRating
	}
	return c
}
