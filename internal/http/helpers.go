package http

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcollection/internal/query"
)

// Plain-text messages of the query endpoints. They are sent with status 200
// so that clients only ever inspect the body.
const (
	msgPostOnly     = "Error: POST-Requests only!"
	msgBadBody      = "Error: Bad POST-Body!"
	msgBadParameter = "Error: Bad Parameter!"
	msgNoParameters = "Error: No Parameters given!"
	msgQueryFailed  = "Error: Query failed!"
)

// maxQueryBodyBytes bounds the body of a query request.
const maxQueryBodyBytes = 64 << 10

// --- Error Response Helpers ---

// respondPlainError sends a plain-text "Error: ..." message with status 200.
func respondPlainError(c *gin.Context, message string) {
	c.String(http.StatusOK, message)
}

// respondQueryError maps a query parsing error to its message.
func respondQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, query.ErrNoParameters):
		respondPlainError(c, msgNoParameters)
	case errors.Is(err, query.ErrBadParameter):
		respondPlainError(c, msgBadParameter)
	default:
		respondPlainError(c, msgBadBody)
	}
}

// respondQueryFailed logs the error and sends a 500 with a generic message.
// The actual error is logged but not exposed to the client.
func respondQueryFailed(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.String(http.StatusInternalServerError, msgQueryFailed)
}

// --- Request Parsing ---

// readPostBody returns the raw request body of a POST request. Any other
// method, or an unreadable body, is answered with a plain-text error and
// ok is false.
func readPostBody(c *gin.Context) (string, bool) {
	if c.Request.Method != http.MethodPost {
		respondPlainError(c, msgPostOnly)
		return "", false
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxQueryBodyBytes))
	if err != nil {
		respondPlainError(c, msgBadBody)
		return "", false
	}
	return string(body), true
}
