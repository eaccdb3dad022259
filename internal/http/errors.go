package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/library"
)

const (
	internalErrorMessage = "An unexpected error occurred on the server."
	retryLaterMessage    = "Please try again later."
)

// constraintMessages maps store constraint names to client-facing messages.
var constraintMessages = map[string]string{
	entities.ConstraintAuthorNameKey:   "An author with this name already exists.",
	entities.ConstraintBookISBN:        "This ISBN is already registered to another book.",
	entities.ConstraintBookTitleAuthor: "This author already has a book with this title.",
	entities.ConstraintBookAuthorFK:    "The referenced author does not exist or still has books.",
}

const duplicateRecordMessage = "The data could not be saved because it duplicates an existing record."

// classifyError maps any handler error to a status and a client-facing message.
func classifyError(err error) (int, string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, reqErr.message
	}

	if libErr, ok := library.AsError(err); ok {
		switch libErr.Kind {
		case library.KindNotFound:
			return http.StatusNotFound, libErr.Message
		case library.KindBadRequest:
			return http.StatusBadRequest, libErr.Message
		case library.KindConflict:
			return http.StatusConflict, libErr.Message
		}
	}

	if constraintErr, ok := database.AsConstraintError(err); ok {
		if message, known := constraintMessages[constraintErr.Constraint]; known {
			return http.StatusConflict, message
		}
		if constraintErr.Kind == database.ConstraintUnique {
			return http.StatusConflict, duplicateRecordMessage
		}
	}

	return http.StatusInternalServerError, internalErrorMessage
}

func fieldErrors(err error) map[string][]string {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.fields
	}
	return nil
}

// problemDetail builds the detail text: the full error chain in development,
// a generic hint otherwise.
func problemDetail(message string, err error, development bool) string {
	if development {
		return fmt.Sprintf("%s\n%v", message, err)
	}
	return message + "\n" + retryLaterMessage
}

// ErrorHandler turns the last error recorded with c.Error into a problem
// response. 500s are logged with the request id.
func ErrorHandler(development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		status, message := classifyError(err)
		if status == http.StatusInternalServerError {
			log.Printf("Internal error: request_id=%s method=%s path=%s error=%v",
				RequestIDFrom(c), c.Request.Method, c.Request.URL.Path, err)
		}

		if c.Writer.Written() {
			return
		}
		respondProblem(c, status, problemDetail(message, err, development), fieldErrors(err))
	}
}

// Recovery converts panics into a 500 problem response.
func Recovery(development bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err := library.Internal(fmt.Errorf("panic: %v", recovered))
		log.Printf("Panic recovered: request_id=%s method=%s path=%s error=%v",
			RequestIDFrom(c), c.Request.Method, c.Request.URL.Path, recovered)

		if c.Writer.Written() {
			c.Abort()
			return
		}
		respondProblem(c, http.StatusInternalServerError, problemDetail(internalErrorMessage, err, development), nil)
	})
}
