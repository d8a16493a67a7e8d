package middleware

import (
	"net/http"
	"strconv"

	"ecostore-api/internal/service"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the context key holding the authenticated user id (uint).
const UserIDKey = "user_id"

// SessionAuth checks the :user_id and :token path params against the stored
// session token. Clients treat any non-200 as a transport failure, so a
// rejected session is answered with 200 and failureBody.
func SessionAuth(userService service.UserService, failureBody any) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := strconv.ParseUint(c.Param("user_id"), 10, 0)
			if err != nil {
				return c.JSON(http.StatusOK, failureBody)
			}

			if !userService.ValidateSession(c.Request().Context(), uint(userID), c.Param("token")) {
				return c.JSON(http.StatusOK, failureBody)
			}

			c.Set(UserIDKey, uint(userID))
			return next(c)
		}
	}
}

// UserID returns the id set by SessionAuth.
func UserID(c echo.Context) uint {
	id, _ := c.Get(UserIDKey).(uint)
	return id
}
