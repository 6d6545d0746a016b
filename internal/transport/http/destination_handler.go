package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/ExploreNusa_BackEnd/internal/catalog"
	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/service"
	"github.com/njprem/ExploreNusa_BackEnd/internal/util"
	"github.com/njprem/ExploreNusa_BackEnd/internal/view"
)

type DestinationHandler struct {
	destinations *service.DestinationService
	favorites    *service.FavoriteService
	reviews      *service.ReviewService
}

func RegisterDestinations(e *echo.Echo, destinations *service.DestinationService, favorites *service.FavoriteService, reviews *service.ReviewService, enabled bool) {
	if !enabled {
		return
	}
	handler := &DestinationHandler{
		destinations: destinations,
		favorites:    favorites,
		reviews:      reviews,
	}

	g := e.Group("/api/v1/destinations")
	g.GET("", handler.listDestinations)
	g.GET("/:id", handler.getDestination)
	g.POST("/:id/favorite", handler.toggleFavorite)
	g.GET("/:id/reviews", handler.listReviews)
	g.POST("/:id/reviews", handler.createReview)

	e.DELETE("/api/v1/reviews/:id", handler.deleteReview)
	e.GET("/api/v1/favorites", handler.listFavorites)
}

func (h *DestinationHandler) listDestinations(c echo.Context) error {
	category, query, err := parseDestinationQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	result, err := h.destinations.List(c.Request().Context(), category, query)
	if err != nil {
		return writeError(c, "list destinations", err)
	}

	payload := make([]util.Envelope, 0, len(result.Items))
	for i := range result.Items {
		payload = append(payload, buildDestinationResponse(&result.Items[i]))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destinations": payload,
		"meta": util.Envelope{
			"category":  result.Category,
			"sort":      result.Sort,
			"count":     len(payload),
			"min_price": result.MinPrice,
			"max_price": result.MaxPrice,
		},
	})
}

func (h *DestinationHandler) getDestination(c echo.Context) error {
	id, err := parseDestinationParam(c)
	if err != nil {
		return writeError(c, "load destination", err)
	}
	detail, done := h.openDetail(c, id)
	defer done()

	snap, err := detail.Load(c.Request().Context())
	if err != nil {
		return writeError(c, "load destination", err)
	}
	return c.JSON(http.StatusOK, buildSnapshotResponse(snap))
}

func (h *DestinationHandler) toggleFavorite(c echo.Context) error {
	id, err := parseDestinationParam(c)
	if err != nil {
		return writeError(c, "update favorites", err)
	}
	if CurrentSession(c).IsGuest() {
		return writeError(c, "update favorites", service.ErrNotAuthenticated)
	}
	detail, done := h.openDetail(c, id)
	defer done()

	ctx := c.Request().Context()
	if _, err := detail.Load(ctx); err != nil {
		return writeError(c, "update favorites", err)
	}
	status, snap, err := detail.ToggleFavorite(ctx)
	if err != nil {
		return writeError(c, "update favorites", err)
	}

	message := "Destination saved to Favorites"
	if status == domain.ToggleRemoved {
		message = "Destination removed from Favorites"
	}
	resp := buildSnapshotResponse(snap)
	resp["status"] = status
	resp["message"] = message
	return c.JSON(http.StatusOK, resp)
}

func (h *DestinationHandler) listFavorites(c echo.Context) error {
	items, err := h.favorites.List(c.Request().Context(), CurrentSession(c))
	if err != nil {
		return writeError(c, "list favorites", err)
	}
	payload := make([]util.Envelope, 0, len(items))
	for _, item := range items {
		payload = append(payload, util.Envelope{
			"id":             item.ID,
			"destination_id": item.DestinationID,
			"name":           item.Name,
			"category":       item.Category,
			"location":       item.Location,
			"price":          item.Price,
			"image_url":      item.ImageURL,
			"description":    item.Description,
			"rating":         item.Rating,
			"rating_display": catalog.FormatRating(item.Rating),
			"review_count":   item.ReviewCount,
			"stale":          item.Stale,
		})
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"favorites": payload,
		"meta":      util.Envelope{"count": len(payload)},
	})
}

func (h *DestinationHandler) listReviews(c echo.Context) error {
	id, err := parseDestinationParam(c)
	if err != nil {
		return writeError(c, "list reviews", err)
	}
	result, err := h.reviews.List(c.Request().Context(), id)
	if err != nil {
		return writeError(c, "list reviews", err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"reviews":   result.Reviews,
		"aggregate": buildAggregateResponse(result.Aggregate),
	})
}

func (h *DestinationHandler) createReview(c echo.Context) error {
	id, err := parseDestinationParam(c)
	if err != nil {
		return writeError(c, "save review", err)
	}
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if CurrentSession(c).IsGuest() {
		return writeError(c, "save review", service.ErrNotAuthenticated)
	}

	detail, done := h.openDetail(c, id)
	defer done()

	ctx := c.Request().Context()
	if _, err := detail.Load(ctx); err != nil {
		return writeError(c, "save review", err)
	}
	review, snap, err := detail.SubmitReview(ctx, service.ReviewCreateInput{Rating: req.Rating, Comment: req.Comment})
	if err != nil {
		return writeError(c, "save review", err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"review": review,
		"aggregate": buildAggregateResponse(domain.ReviewAggregate{
			DestinationID: id,
			Rating:        snap.Destination.Rating,
			ReviewCount:   snap.Destination.ReviewCount,
		}),
	})
}

func (h *DestinationHandler) deleteReview(c echo.Context) error {
	reviewID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || reviewID <= 0 {
		return c.JSON(http.StatusBadRequest, util.Error("invalid review id"))
	}
	agg, err := h.reviews.Delete(c.Request().Context(), CurrentSession(c), reviewID)
	if err != nil {
		return writeError(c, "delete review", err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"aggregate": buildAggregateResponse(agg),
		"message":   "Review deleted",
	})
}

// openDetail binds a detail view to the request. The view is torn down
// when the handler returns or the client disconnects.
func (h *DestinationHandler) openDetail(c echo.Context, id domain.DestinationID) (*view.Detail, func()) {
	detail := view.NewDetail(h.destinations, h.favorites, h.reviews, CurrentSession(c), id)
	stop := context.AfterFunc(c.Request().Context(), detail.Close)
	return detail, func() {
		stop()
		detail.Close()
	}
}

func parseDestinationParam(c echo.Context) (domain.DestinationID, error) {
	id, err := domain.ParseDestinationID(c.Param("id"))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", service.ErrInvalidDestination, err)
	}
	return id, nil
}

// parseDestinationQuery reads category, query, sort, min_price and
// max_price. Unset price bounds fall back to the list's own bounds.
func parseDestinationQuery(c echo.Context) (domain.Category, catalog.Query, error) {
	category, err := domain.ParseCategoryFilter(c.QueryParam("category"))
	if err != nil {
		return "", catalog.Query{}, err
	}

	query := catalog.Query{Search: strings.TrimSpace(c.QueryParam("query"))}
	if query.Sort, err = catalog.ParseSortKey(c.QueryParam("sort")); err != nil {
		return "", catalog.Query{}, err
	}
	if query.MinPrice, err = parsePriceParam(c, "min_price"); err != nil {
		return "", catalog.Query{}, err
	}
	if query.MaxPrice, err = parsePriceParam(c, "max_price"); err != nil {
		return "", catalog.Query{}, err
	}
	if query.MinPrice != nil && query.MaxPrice != nil && *query.MinPrice > *query.MaxPrice {
		return "", catalog.Query{}, errors.New("min_price cannot be greater than max_price")
	}
	return category, query, nil
}

func parsePriceParam(c echo.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return &v, nil
}

func buildDestinationResponse(dest *domain.Destination) util.Envelope {
	resp := util.Envelope{
		"id":             dest.ID,
		"name":           dest.Name,
		"category":       dest.Category,
		"location":       dest.Location,
		"price":          dest.Price,
		"price_value":    catalog.ParsePrice(dest.Price),
		"image_url":      dest.ImageURL,
		"description":    dest.Description,
		"rating":         dest.Rating,
		"rating_display": catalog.FormatRating(dest.Rating),
		"review_count":   dest.ReviewCount,
	}
	if !dest.CreatedAt.IsZero() {
		resp["created_at"] = dest.CreatedAt
	}
	if dest.Reviews != nil {
		resp["reviews"] = dest.Reviews
	}
	return resp
}

func buildSnapshotResponse(snap view.Snapshot) util.Envelope {
	return util.Envelope{
		"destination":    buildDestinationResponse(&snap.Destination),
		"is_favorite":    snap.IsFavorite,
		"favorite_state": snap.Toggle,
	}
}

func buildAggregateResponse(agg domain.ReviewAggregate) util.Envelope {
	return util.Envelope{
		"destination_id": agg.DestinationID,
		"rating":         agg.Rating,
		"rating_display": catalog.FormatRating(agg.Rating),
		"review_count":   agg.ReviewCount,
	}
}
