package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-lab/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-lab/internal/app"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

// QuoteHandler serves /api/quotes/ and /api/authors/:id/quotes/.
type QuoteHandler struct {
	service *app.QuoteService
	flags   ports.FeatureFlags
}

// NewQuoteHandler creates a new quote handler. flags may be nil.
func NewQuoteHandler(service *app.QuoteService, flags ports.FeatureFlags) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		flags:   flags,
	}
}

// quoteRoutes binds the quote handlers to one URL shape. A non-empty
// authorParam scopes every operation to the author in the path.
type quoteRoutes struct {
	h           *QuoteHandler
	authorParam string
	idParam     string
}

func (r quoteRoutes) scope(c *gin.Context) (app.QuoteScope, error) {
	if r.authorParam == "" {
		return app.QuoteScope{}, nil
	}

	authorID, err := pathID(c, r.authorParam, "author")
	if err != nil {
		return app.QuoteScope{}, err
	}

	return app.AuthorScope(authorID), nil
}

// target resolves the scope and quote id of a detail route.
func (r quoteRoutes) target(c *gin.Context) (app.QuoteScope, int64, error) {
	scope, err := r.scope(c)
	if err != nil {
		return scope, 0, err
	}

	id, err := pathID(c, r.idParam, "quote")

	return scope, id, err
}

// depth resolves ?depth= against the configured default.
func (r quoteRoutes) depth(c *gin.Context) (int, error) {
	fallback := 1
	if r.h.flags != nil {
		fallback = r.h.flags.GetInt(c.Request.Context(), ports.FlagQuoteDepth, fallback)
	}

	var q dto.DepthQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		return 0, err
	}

	return q.Resolve(fallback), nil
}

func (r quoteRoutes) list(c *gin.Context) {
	depth, err := r.depth(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	scope, err := r.scope(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	quotes, err := r.h.service.List(c.Request.Context(), scope)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteListResponse(quotes, depth))
}

func (r quoteRoutes) retrieve(c *gin.Context) {
	depth, err := r.depth(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	scope, id, err := r.target(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	quote, err := r.h.service.Get(c.Request.Context(), scope, id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote, depth))
}

func (r quoteRoutes) create(c *gin.Context) {
	depth, err := r.depth(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	scope, err := r.scope(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	var req dto.QuoteRequest
	if err := bindBody(c, &req, true); err != nil {
		dto.HandleError(c, err)
		return
	}

	quote, err := r.h.service.Create(c.Request.Context(), scope, quotePatch(&req))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(quote, depth))
}

func (r quoteRoutes) update(full bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		depth, err := r.depth(c)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		scope, id, err := r.target(c)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		var req dto.QuoteRequest
		if err := bindBody(c, &req, full); err != nil {
			dto.HandleError(c, err)
			return
		}

		quote, err := r.h.service.Update(c.Request.Context(), scope, id, quotePatch(&req))
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.NewQuoteResponse(quote, depth))
	}
}

func (r quoteRoutes) delete(c *gin.Context) {
	scope, id, err := r.target(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := r.h.service.Delete(c.Request.Context(), scope, id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (r quoteRoutes) register(rg *gin.RouterGroup, detail string) {
	rg.GET("/", r.list)
	rg.POST("/", r.create)
	rg.GET(detail, r.retrieve)
	rg.PUT(detail, r.update(true))
	rg.PATCH(detail, r.update(false))
	rg.DELETE(detail, r.delete)
}

// RegisterQuoteRoutes registers /quotes/ and /authors/:id/quotes/ on rg.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quoteRoutes{h: h, idParam: paramID}.
		register(rg.Group("/quotes"), "/:"+paramID+"/")

	quoteRoutes{h: h, authorParam: paramID, idParam: paramQuoteID}.
		register(rg.Group("/authors/:"+paramID+"/quotes"), "/:"+paramQuoteID+"/")
}

func quotePatch(req *dto.QuoteRequest) app.QuotePatch {
	return app.QuotePatch{
		Message:   req.Message,
		AuthorSet: req.Author.Set,
		AuthorID:  req.Author.ID,
	}
}
