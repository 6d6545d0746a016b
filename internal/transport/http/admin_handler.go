package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/media"
	"github.com/njprem/ExploreNusa_BackEnd/internal/service"
	"github.com/njprem/ExploreNusa_BackEnd/internal/util"
)

type AdminFeatures struct {
	Create bool
	Update bool
	Delete bool
}

type AdminHandler struct {
	admin    *service.AdminService
	features AdminFeatures
}

// destinationPayload is the admin write body. Review-derived keys such as
// rating, reviews and reviewCount have no field and are dropped on bind.
type destinationPayload struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Price       *string `json:"price"`
	ImageURL    *string `json:"image_url"`
	Description *string `json:"description"`
}

func (p destinationPayload) fields() domain.DestinationFields {
	fields := domain.DestinationFields{
		Name:        p.Name,
		Location:    p.Location,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Description: p.Description,
	}
	if p.Category != nil {
		cat := domain.Category(*p.Category)
		fields.Category = &cat
	}
	return fields
}

func RegisterAdmin(e *echo.Echo, admin *service.AdminService, features AdminFeatures) {
	handler := &AdminHandler{admin: admin, features: features}

	g := e.Group("/api/v1/admin/destinations")
	g.GET("", handler.listDestinations)
	if features.Create {
		g.POST("", handler.createDestination)
	}
	if features.Update {
		g.PUT("/:id", handler.updateDestination)
		g.POST("/:id/image", handler.uploadImage)
	}
	if features.Delete {
		g.DELETE("/:id", handler.deleteDestination)
	}
}

func (h *AdminHandler) listDestinations(c echo.Context) error {
	category, err := domain.ParseCategoryFilter(c.QueryParam("category"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	items, err := h.admin.List(c.Request().Context(), category)
	if err != nil {
		return writeError(c, "list destinations", err)
	}
	payload := make([]util.Envelope, 0, len(items))
	for i := range items {
		payload = append(payload, buildDestinationResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destinations": payload,
		"meta":         util.Envelope{"category": category, "count": len(payload)},
	})
}

func (h *AdminHandler) createDestination(c echo.Context) error {
	var req destinationPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	dest, err := h.admin.Create(c.Request().Context(), req.fields())
	if err != nil {
		return writeError(c, "create destination", err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"destination": buildDestinationResponse(dest),
		"message":     "Destination created",
	})
}

func (h *AdminHandler) updateDestination(c echo.Context) error {
	id, err := parseDestinationParam(c)
	if err != nil {
		return writeError(c, "update destination", err)
	}
	var req destinationPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	dest, err := h.admin.Update(c.Request().Context(), id, req.fields())
	if err != nil {
		return writeError(c, "update destination", err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": buildDestinationResponse(dest),
		"message":     "Destination updated",
	})
}

func (h *AdminHandler) deleteDestination(c echo.Context) error {
	id, err := parseDestinationParam(c)
	if err != nil {
		return writeError(c, "delete destination", err)
	}
	if err := h.admin.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, "delete destination", err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"id":      id,
		"message": "Destination deleted",
	})
}

func (h *AdminHandler) uploadImage(c echo.Context) error {
	id, err := parseDestinationParam(c)
	if err != nil {
		return writeError(c, "upload image", err)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("file upload required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}
	defer src.Close()

	dest, err := h.admin.UploadImage(c.Request().Context(), id, media.Upload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return writeError(c, "upload image", err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": buildDestinationResponse(dest),
	})
}
