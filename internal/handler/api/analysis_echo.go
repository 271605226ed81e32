package api

import (
	"net/http"
	"time"

	models "PumpStat/internal/domain/models"
	svcmetrics "PumpStat/internal/service/metrics"
	"PumpStat/internal/usecase"
	xhttp "PumpStat/pkg/http"
	xlogger "PumpStat/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisEchoHandler serves the AI analysis endpoint.
type AnalysisEchoHandler struct {
	logger     *xlogger.Logger
	svc        *usecase.AnalysisService
	configured bool
}

// NewAnalysisEchoHandler creates the handler. configured reports whether the
// completion credential is present; it is read once at startup.
func NewAnalysisEchoHandler(logger *xlogger.Logger, svc *usecase.AnalysisService, configured bool) *AnalysisEchoHandler {
	return &AnalysisEchoHandler{logger: logger, svc: svc, configured: configured}
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.Any("/ai-analysis", h.Analyze)
}

func (h *AnalysisEchoHandler) Analyze(c echo.Context) error {
	defer observe("ai-analysis", time.Now())

	if c.Request().Method != http.MethodPost {
		return xhttp.AppErrorResponse(c, xhttp.MethodNotAllowedError())
	}
	if !h.configured {
		svcmetrics.EndpointErrors.WithLabelValues("ai-analysis", "configuration").Inc()
		appErr := xhttp.InternalError("AI service not configured").WithError(models.ErrConfiguration)
		h.logger.Error("ai-analysis requested without api key", xlogger.Error(appErr))
		return xhttp.AppErrorResponse(c, appErr)
	}

	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		svcmetrics.EndpointErrors.WithLabelValues("ai-analysis", "validation").Inc()
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(verr[0].Message))
	}

	out, err := h.svc.Analyze(c.Request().Context(), *req)
	if err != nil {
		svcmetrics.EndpointErrors.WithLabelValues("ai-analysis", "upstream").Inc()
		appErr := xhttp.InternalError("AI analysis failed").WithError(err)
		h.logger.Error("ai analysis failed", xlogger.Error(appErr))
		return xhttp.AppErrorResponse(c, appErr)
	}
	return xhttp.SuccessResponse(c, models.AnalysisResponse{Response: out})
}
