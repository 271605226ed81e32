package api

import (
	"net/http"
	"strings"
	"time"

	xhttp "PumpStat/pkg/http"

	"github.com/labstack/echo/v4"
)

// Router registers a group of handlers as one.
type Router []xhttp.Handler

func (r Router) RegisterRoutes(e *echo.Echo) {
	for _, h := range r {
		if h != nil {
			h.RegisterRoutes(e)
		}
	}
}

var dataRoutes = []string{"/rss-data", "/scrape-channel", "/telegram-data"}

// PanicBody answers a recovered panic. Volume routes get the failure
// envelope with sample data; anything else a plain error.
func PanicBody(c echo.Context, err error) interface{} {
	path := c.Request().URL.Path
	for _, r := range dataRoutes {
		if strings.HasPrefix(path, r) {
			return Failure(err, time.Now())
		}
	}
	return xhttp.ErrorBody{Error: http.StatusText(http.StatusInternalServerError)}
}
