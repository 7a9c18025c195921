package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/service"
	"github.com/njprem/Fit_city_Booking/internal/util"
)

var destinationQueryKeys = []string{"search", "location", "category", "min_price", "max_price", "min_rating"}

type CatalogHandler struct {
	store *service.Store
}

func RegisterCatalog(e *echo.Echo, store *service.Store) {
	h := &CatalogHandler{store: store}

	dest := e.Group("/api/v1/destinations")
	dest.GET("", h.listDestinations)
	dest.GET("/options", h.options)
	dest.GET("/popular", h.popular)
	dest.GET("/:id", h.getDestination)

	pkgs := e.Group("/api/v1/packages")
	pkgs.GET("", h.listPackages)
	pkgs.GET("/featured", h.featuredPackages)
}

func (h *CatalogHandler) listDestinations(c echo.Context) error {
	criteria, err := parseDestinationCriteria(c, h.store.Filters())
	if err != nil {
		return writeError(c, err)
	}
	result := service.FilterDestinations(h.store.Destinations(), criteria)
	return c.JSON(http.StatusOK, util.Envelope{
		"destinations": result,
		"criteria":     criteria,
		"count":        len(result),
	})
}

func (h *CatalogHandler) options(c echo.Context) error {
	dests := h.store.Destinations()
	return c.JSON(http.StatusOK, util.Envelope{
		"locations":  service.LocationOptions(dests),
		"categories": service.CategoryOptions(dests),
	})
}

func (h *CatalogHandler) popular(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("destinations",
		service.PopularDestinations(h.store.Destinations(), service.PopularDestinationLimit)))
}

func (h *CatalogHandler) getDestination(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(errInvalidID.Error()))
	}
	dest, ok := h.store.Destination(id)
	if !ok {
		return writeError(c, domain.NotFoundError{Resource: "destination", ID: c.Param("id")})
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": dest,
		"packages":    h.store.PackagesForDestination(id),
	})
}

func (h *CatalogHandler) listPackages(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("packages", h.store.Packages()))
}

func (h *CatalogHandler) featuredPackages(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("packages",
		service.FeaturedPackages(h.store.Packages(), service.FeaturedPackageLimit)))
}

// parseDestinationCriteria overlays query parameters on base. With no
// recognised parameter base is returned untouched.
func parseDestinationCriteria(c echo.Context, base domain.FilterCriteria) (domain.FilterCriteria, error) {
	q := c.QueryParams()
	present := false
	for _, key := range destinationQueryKeys {
		if _, ok := q[key]; ok {
			present = true
			break
		}
	}
	if !present {
		return base, nil
	}

	criteria := domain.DefaultFilterCriteria()
	criteria.Search = q.Get("search")
	criteria.Location = domain.ParseSelector(q.Get("location"))
	criteria.Category = domain.ParseSelector(q.Get("category"))

	var err error
	if criteria.PriceRange.Min, err = parseFloatParam(q.Get("min_price"), "min_price", criteria.PriceRange.Min); err != nil {
		return criteria, err
	}
	if criteria.PriceRange.Max, err = parseFloatParam(q.Get("max_price"), "max_price", criteria.PriceRange.Max); err != nil {
		return criteria, err
	}
	if criteria.MinRating, err = parseFloatParam(q.Get("min_rating"), "min_rating", criteria.MinRating); err != nil {
		return criteria, err
	}
	return criteria, nil
}

func parseFloatParam(raw, field string, fallback float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback, domain.ValidationError{Field: field, Msg: field + " must be a number"}
	}
	return v, nil
}
