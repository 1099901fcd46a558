package handlers

import (
	"errors"
	"log"
	"net/http"

	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// errorStatus maps the service error taxonomy to HTTP statuses.
// Not-found cases are deliberately all 404, state-machine rejections 422.
var errorStatus = map[error]int{
	services.ErrItemNotFound:       http.StatusNotFound,
	services.ErrRestaurantNotFound: http.StatusNotFound,
	services.ErrNoMenuItems:        http.StatusNotFound,
	services.ErrUserNotFound:       http.StatusNotFound,
	services.ErrCustomerNotFound:   http.StatusNotFound,
	services.ErrCartNotFound:       http.StatusNotFound,
	services.ErrNoPendingCart:      http.StatusNotFound,
	services.ErrNoSuchCart:         http.StatusNotFound,
	services.ErrLineNotFound:       http.StatusNotFound,

	services.ErrRestaurantMismatch: http.StatusConflict,
	services.ErrOwnershipMismatch:  http.StatusForbidden,
	services.ErrRoleForbidden:      http.StatusForbidden,
	services.ErrInvalidAction:      http.StatusBadRequest,
	services.ErrInvalidState:       http.StatusUnprocessableEntity,
}

// respondError writes the JSON error envelope for a service error.
// Unknown errors are store faults: logged server-side, sanitized out.
func respondError(c *gin.Context, err error) {
	for sentinel, status := range errorStatus {
		if errors.Is(err, sentinel) {
			c.JSON(status, gin.H{"error": sentinel.Error()})
			return
		}
	}
	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
