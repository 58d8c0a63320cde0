package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/farm-catalog-backend/internal/domain/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
)

const CodeInvalidRequest = "invalid_request"

// StatusFor maps an error to its HTTP status and envelope code.
func StatusFor(err error) (int, string) {
	switch code := domainagg.CodeOf(err); code {
	case domainagg.CodeValidation, domainagg.CodeInvalidArgument:
		return http.StatusBadRequest, string(code)
	case domainagg.CodeNotFound:
		return http.StatusNotFound, string(code)
	case domainagg.CodeConflict:
		return http.StatusConflict, string(code)
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable, string(code)
	default:
		return http.StatusInternalServerError, string(domainagg.CodeInternal)
	}
}

// RespondDomainError writes err using the catalog error envelope. Internal
// failures are reported without their cause.
func RespondDomainError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	apiErr := APIError{Message: err.Error(), Code: code}

	var ve *catalog.ValidationError
	var ia *catalog.InvalidArgumentError
	var nf *catalog.NotFoundError
	switch {
	case errors.As(err, &ve):
		apiErr.Message = ve.Error()
		apiErr.Field = ve.Field
	case errors.As(err, &ia):
		apiErr.Message = ia.Error()
		apiErr.Field = ia.Parameter
		apiErr.Allowed = ia.Allowed
	case errors.As(err, &nf):
		apiErr.Message = nf.Error()
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		apiErr.Message = "internal server error"
	}
	c.JSON(status, ErrorEnvelope{Error: apiErr})
}
