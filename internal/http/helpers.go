package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// --- Response Types ---

// ProblemDetails is the body of every API error response.
type ProblemDetails struct {
	Status   int    `json:"status"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
	// Errors lists validation messages per field (camelCase names).
	Errors map[string][]string `json:"errors,omitempty"`
}

// --- Error Response Helpers ---

// abortWithError hands err to ErrorHandler and stops the handler chain.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// respondProblem writes a problem response for the current request.
func respondProblem(c *gin.Context, status int, detail string, fields map[string][]string) {
	c.AbortWithStatusJSON(status, ProblemDetails{
		Status:   status,
		Title:    http.StatusText(status),
		Detail:   detail,
		Instance: c.Request.URL.Path,
		Errors:   fields,
	})
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response pointing at the new resource.
func respondCreated(c *gin.Context, location string, data any) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// On failure it records a 400 error for ErrorHandler and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil {
		abortWithError(c, newRequestError("invalid "+paramName, err))
		return 0, false
	}
	return uint(id), true
}

// parseBoolQuery reads an optional boolean query parameter. A missing value is false.
func parseBoolQuery(c *gin.Context, name string) (bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		abortWithError(c, newRequestError(name+" must be true or false", err))
		return false, false
	}
	return value, true
}
