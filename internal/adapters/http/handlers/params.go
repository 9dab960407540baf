package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-lab/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-lab/internal/domain"
)

// Path parameter names. Gin requires sibling routes to share a wildcard
// name, so the author segment is :id on every /authors route.
const (
	paramID      = "id"
	paramQuoteID = "quote_id"
)

// pathID parses a positive integer path parameter. Anything else addresses
// no record and is reported as not found.
func pathID(c *gin.Context, param, entity string) (int64, error) {
	raw := c.Param(param)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewNotFoundError(entity, raw)
	}

	return id, nil
}

// requestBody is a decoded request that can list its absent required fields.
type requestBody interface {
	Missing() domain.FieldErrors
}

// bindBody decodes and validates the JSON body into req. When full is set
// every required field must be present, as for create and PUT.
func bindBody(c *gin.Context, req requestBody, full bool) error {
	if err := dto.BindAndValidate(c, req); err != nil {
		return err
	}

	if full {
		return req.Missing().Err()
	}

	return nil
}
