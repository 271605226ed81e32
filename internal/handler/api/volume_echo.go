package api

import (
	"time"

	models "PumpStat/internal/domain/models"
	domrepo "PumpStat/internal/domain/repository"
	svcmetrics "PumpStat/internal/service/metrics"
	"PumpStat/internal/usecase"
	xhttp "PumpStat/pkg/http"
	xlogger "PumpStat/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Data source tags.
const (
	DataSourceRSS      = "live_rss_feed"
	DataSourceChannel  = "live_channel_scrape"
	DataSourceTelegram = "forwarded_telegram_message"

	telegramVolumeSource = "telegram_forward"
)

// RSSResponse is the /rss-data body.
type RSSResponse struct {
	VolumeResponse
	RSSSource    string                  `json:"rssSource,omitempty"`
	ReportsFound int                     `json:"reportsFound,omitempty"`
	LatestReport *models.CandidateReport `json:"latestReport,omitempty"`
	Message      string                  `json:"message,omitempty"`
}

// ScrapeAttempt describes one upstream tried by /scrape-channel.
type ScrapeAttempt struct {
	Method          string `json:"method"`
	Status          string `json:"status"`
	StatusCode      int    `json:"statusCode,omitempty"`
	Error           string `json:"error,omitempty"`
	FoundVolumeText bool   `json:"foundVolumeText"`
	HTMLLength      int    `json:"htmlLength"`
}

// ScrapeResponse is the /scrape-channel body.
type ScrapeResponse struct {
	VolumeResponse
	ScrapingAttempts []ScrapeAttempt `json:"scrapingAttempts"`
}

// BotInstructions tells the operator how to feed the bot.
type BotInstructions struct {
	Step1 string `json:"step1"`
	Step2 string `json:"step2"`
	Step3 string `json:"step3"`
	Step4 string `json:"step4"`
}

// TelegramResponse is the /telegram-data body.
type TelegramResponse struct {
	VolumeResponse
	MessageCount       int              `json:"messageCount"`
	Channel            string           `json:"channel"`
	LatestVolumeReport string           `json:"latestVolumeReport"`
	Instructions       *BotInstructions `json:"instructions,omitempty"`
}

// VolumeHandlerConfig carries the display settings of the volume endpoints.
type VolumeHandlerConfig struct {
	Channel     string
	BotUsername string
}

// VolumeEchoHandler serves the volume report endpoints.
type VolumeEchoHandler struct {
	logger  *xlogger.Logger
	svc     *usecase.VolumeService
	metrics domrepo.Metrics
	cfg     VolumeHandlerConfig
	now     func() time.Time
}

func NewVolumeEchoHandler(logger *xlogger.Logger, svc *usecase.VolumeService, metrics domrepo.Metrics, cfg VolumeHandlerConfig) *VolumeEchoHandler {
	return &VolumeEchoHandler{logger: logger, svc: svc, metrics: metrics, cfg: cfg, now: time.Now}
}

func (h *VolumeEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/rss-data", h.RSSData)
	e.GET("/scrape-channel", h.ScrapeChannel)
	e.GET("/telegram-data", h.TelegramData)
}

func (h *VolumeEchoHandler) RSSData(c echo.Context) error {
	defer observe("rss-data", time.Now())

	res := h.svc.FromFeeds(c.Request().Context())
	resp := RSSResponse{VolumeResponse: h.normalize("rss-data", res)}
	if res.IsLive {
		resp.RSSSource = res.SourceURL
		resp.ReportsFound = res.CandidatesFound
		resp.LatestReport = res.Report
	} else {
		resp.Message = "RSS feeds unavailable, using sample data"
	}
	return xhttp.SuccessResponse(c, resp)
}

func (h *VolumeEchoHandler) ScrapeChannel(c echo.Context) error {
	defer observe("scrape-channel", time.Now())

	res := h.svc.FromChannel(c.Request().Context())
	resp := ScrapeResponse{
		VolumeResponse:   h.normalize("scrape-channel", res),
		ScrapingAttempts: make([]ScrapeAttempt, 0, len(res.Attempts)),
	}
	for _, a := range res.Attempts {
		resp.ScrapingAttempts = append(resp.ScrapingAttempts, ScrapeAttempt{
			Method:          a.Source,
			Status:          a.Status,
			StatusCode:      a.StatusCode,
			Error:           a.Error,
			FoundVolumeText: a.FoundMarker,
			HTMLLength:      a.PayloadBytes,
		})
	}
	return xhttp.SuccessResponse(c, resp)
}

func (h *VolumeEchoHandler) TelegramData(c echo.Context) error {
	defer observe("telegram-data", time.Now())

	if !h.svc.BotConfigured() {
		svcmetrics.EndpointErrors.WithLabelValues("telegram-data", "configuration").Inc()
		appErr := xhttp.InternalError("Bot token not configured").WithError(models.ErrConfiguration)
		h.logger.Error("telegram-data requested without bot token", xlogger.Error(appErr))
		return xhttp.AppErrorResponse(c, appErr)
	}

	res := h.svc.FromBot(c.Request().Context())
	resp := TelegramResponse{
		VolumeResponse: h.normalize("telegram-data", res),
		Channel:        "@" + h.cfg.Channel,
	}
	if len(res.Attempts) > 0 {
		resp.MessageCount = res.Attempts[len(res.Attempts)-1].Scanned
	}
	if res.IsLive {
		resp.VolumeData.Source = telegramVolumeSource
		resp.LatestVolumeReport = "Found volume report!"
	} else {
		resp.LatestVolumeReport = "No volume reports found"
		resp.Instructions = &BotInstructions{
			Step1: "Go to https://t.me/" + h.cfg.BotUsername,
			Step2: "Start a conversation with your bot",
			Step3: "Forward a volume report from @" + h.cfg.Channel,
			Step4: "Refresh your dashboard to see live data!",
		}
	}
	return xhttp.SuccessResponse(c, resp)
}

func (h *VolumeEchoHandler) normalize(endpoint string, res models.ResolvedReport) VolumeResponse {
	if !res.IsLive && h.metrics != nil {
		h.metrics.RecordFallback(endpoint)
	}
	return Normalize(res, h.now())
}

func observe(endpoint string, start time.Time) {
	svcmetrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
