package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "PumpStat/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PanicBody builds the response body sent after a recovered panic.
type PanicBody func(c echo.Context, err error) interface{}

// Recover returns recovery middleware. body may be nil.
func Recover(l *applogger.Logger, body PanicBody) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (ret error) {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					l.Error("panic recovered",
						applogger.String("uri", c.Request().RequestURI),
						applogger.Error(err),
						applogger.String("stack", string(debug.Stack())),
					)
					if c.Response().Committed {
						return
					}
					var payload interface{} = map[string]string{"error": "Internal Server Error"}
					if body != nil {
						payload = body(c, err)
					}
					ret = c.JSON(http.StatusInternalServerError, payload)
				}
			}()
			return next(c)
		}
	}
}
