package di

import (
	"net/url"

	"PumpStat/internal/domain/repository"
	"PumpStat/internal/domain/service"
	"PumpStat/internal/handler/api"
	internalrepo "PumpStat/internal/repository"
	svcmetrics "PumpStat/internal/service/metrics"
	"PumpStat/internal/services/analytics"
	"PumpStat/internal/services/extract"
	"PumpStat/internal/services/report"
	"PumpStat/internal/usecase"
	"PumpStat/pkg/config"
	xhttp "PumpStat/pkg/http"
	applogger "PumpStat/pkg/logger"
	"PumpStat/pkg/metrics"
	"PumpStat/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	svcmetrics.Register()
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideHTTPClient creates the client shared by all upstream sources.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.Sources.FetchTimeout*2),
		xhttp.WithMaxBodyBytes(cfg.Sources.MaxBodyBytes),
		xhttp.WithDefaultHeader("User-Agent", cfg.Sources.UserAgent),
	)
}

// ProvideSourceSet builds the ordered source lists from config.
func ProvideSourceSet(cfg *config.Config, client *xhttp.Client) usecase.SourceSet {
	feed := extract.NewFeedExtractor()
	var set usecase.SourceSet

	for _, u := range cfg.Sources.RSS.URLs {
		set.Feeds = append(set.Feeds, usecase.Source{
			Label:      "rss:" + hostOf(u),
			DataSource: api.DataSourceRSS,
			URL:        u,
			Fetcher:    internalrepo.NewHTTPSource(client, u),
			Extractor:  feed,
			MinFields:  cfg.Sources.RSS.MinFields,
			Exhaustive: true,
		})
	}

	if u := cfg.Sources.Page.URL; u != "" {
		set.Channel = append(set.Channel, usecase.Source{
			Label:      "Direct Scraping",
			DataSource: api.DataSourceChannel,
			URL:        u,
			Fetcher:    internalrepo.NewHTTPSource(client, u),
			Extractor:  extract.NewPageExtractor(),
			MinFields:  cfg.Sources.Page.MinFields,
			Exhaustive: true,
		})
	}
	if u := cfg.Sources.Page.MirrorURL; u != "" {
		set.Channel = append(set.Channel, usecase.Source{
			Label:      "RSS Feed",
			DataSource: api.DataSourceRSS,
			URL:        u,
			Fetcher:    internalrepo.NewHTTPSource(client, u),
			Extractor:  feed,
			MinFields:  cfg.Sources.RSS.MinFields,
			Exhaustive: true,
		})
	}

	if cfg.Telegram.Configured() {
		display := cfg.Telegram.APIBase + "/bot<token>/getUpdates"
		set.Bot = append(set.Bot, usecase.Source{
			Label:      "telegram:getUpdates",
			DataSource: api.DataSourceTelegram,
			URL:        display,
			Fetcher:    internalrepo.NewHTTPSource(client, cfg.Telegram.UpdatesURL(), internalrepo.WithDisplayURL(display)),
			Extractor:  extract.NewChatExtractor(),
			MinFields:  cfg.Telegram.MinFields,
		})
	}
	return set
}

// ProvideResolver creates the multi-source resolver.
func ProvideResolver(cfg *config.Config, m repository.Metrics, l *applogger.Logger) *usecase.Resolver {
	return usecase.NewResolver(report.New(), m, l, usecase.WithFetchTimeout(cfg.Sources.FetchTimeout))
}

// ProvideCompletionService creates the text-completion client.
func ProvideCompletionService(cfg *config.Config) service.CompletionService {
	return analytics.NewCompletionClient(cfg.AI)
}

// ProvideHandler assembles every HTTP handler.
func ProvideHandler(
	cfg *config.Config,
	l *applogger.Logger,
	m repository.Metrics,
	volume *usecase.VolumeService,
	analysis *usecase.AnalysisService,
) xhttp.Handler {
	return api.Router{
		api.NewHealthEchoHandler(),
		api.NewVolumeEchoHandler(l, volume, m, api.VolumeHandlerConfig{
			Channel:     cfg.Telegram.Channel,
			BotUsername: cfg.Telegram.BotUsername,
		}),
		api.NewAnalysisEchoHandler(l, analysis, cfg.AI.Configured()),
	}
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger) *xhttp.Server {
	return xhttp.NewServer(h, l,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithPanicBody(api.PanicBody),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, l *applogger.Logger) *server.App {
	return server.New(cfg, srv, l)
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
