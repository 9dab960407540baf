package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-lab/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-lab/internal/app"
)

// AuthorHandler serves /api/authors/.
type AuthorHandler struct {
	service *app.AuthorService
}

// NewAuthorHandler creates a new author handler.
func NewAuthorHandler(service *app.AuthorService) *AuthorHandler {
	return &AuthorHandler{
		service: service,
	}
}

// List handles GET /api/authors/.
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorListResponse(authors))
}

// Retrieve handles GET /api/authors/:id/.
func (h *AuthorHandler) Retrieve(c *gin.Context) {
	id, err := pathID(c, paramID, "author")
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	author, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorResponse(author))
}

// Create handles POST /api/authors/.
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.AuthorRequest
	if err := bindBody(c, &req, true); err != nil {
		dto.HandleError(c, err)
		return
	}

	author, err := h.service.Create(c.Request.Context(), authorPatch(&req))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAuthorResponse(author))
}

// Update handles PUT /api/authors/:id/.
func (h *AuthorHandler) Update(c *gin.Context) {
	h.update(c, true)
}

// PartialUpdate handles PATCH /api/authors/:id/.
func (h *AuthorHandler) PartialUpdate(c *gin.Context) {
	h.update(c, false)
}

func (h *AuthorHandler) update(c *gin.Context, full bool) {
	id, err := pathID(c, paramID, "author")
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	var req dto.AuthorRequest
	if err := bindBody(c, &req, full); err != nil {
		dto.HandleError(c, err)
		return
	}

	author, err := h.service.Update(c.Request.Context(), id, authorPatch(&req))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorResponse(author))
}

// Delete handles DELETE /api/authors/:id/. The author's quotes are kept
// with a null author.
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := pathID(c, paramID, "author")
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterAuthorRoutes registers author routes on the given router group.
func (h *AuthorHandler) RegisterAuthorRoutes(rg *gin.RouterGroup) {
	authors := rg.Group("/authors")
	authors.GET("/", h.List)
	authors.POST("/", h.Create)
	authors.GET("/:id/", h.Retrieve)
	authors.PUT("/:id/", h.Update)
	authors.PATCH("/:id/", h.PartialUpdate)
	authors.DELETE("/:id/", h.Delete)
}

func authorPatch(req *dto.AuthorRequest) app.AuthorPatch {
	return app.AuthorPatch{Name: req.Name, Surname: req.Surname}
}
