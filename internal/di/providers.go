package di

import (
	"fmt"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/repository"
	"github.com/tj309c/FLWSTradingLiveUpdates/internal/handler/api"
	internalrepo "github.com/tj309c/FLWSTradingLiveUpdates/internal/repository"
	"github.com/tj309c/FLWSTradingLiveUpdates/internal/service/polygon"
	"github.com/tj309c/FLWSTradingLiveUpdates/internal/service/yahoo"
	"github.com/tj309c/FLWSTradingLiveUpdates/internal/usecase"
	pkgcache "github.com/tj309c/FLWSTradingLiveUpdates/pkg/cache"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/config"
	xhttp "github.com/tj309c/FLWSTradingLiveUpdates/pkg/http"
	pkgkafka "github.com/tj309c/FLWSTradingLiveUpdates/pkg/kafka"
	applogger "github.com/tj309c/FLWSTradingLiveUpdates/pkg/logger"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/metrics"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/server"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

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
	return metrics.New()
}

// ProvideClock returns the wall clock.
func ProvideClock() repository.Clock {
	return usecase.NewSystemClock()
}

// ProvideAdapters builds the source chain in fallback priority order:
// premium first, retail last.
func ProvideAdapters(cfg *config.Config) []repository.SourceAdapter {
	return []repository.SourceAdapter{
		polygon.New(cfg.Polygon.APIKey, cfg.Polygon.BaseURL, cfg.Monitor.Symbol, cfg.Polygon.Timeout),
		yahoo.New(cfg.Yahoo.BaseURL, cfg.Monitor.Symbol, cfg.Yahoo.Timeout),
	}
}

// ProvideResolver creates the fallback selector.
func ProvideResolver(adapters []repository.SourceAdapter, m repository.Metrics, log *applogger.Logger) *usecase.Resolver {
	return usecase.NewResolver(adapters, m, log)
}

// ProvideVelocityEstimator creates the session-window estimator.
func ProvideVelocityEstimator(cfg *config.Config) (*usecase.VelocityEstimator, error) {
	return usecase.NewVelocityEstimator(cfg.Session.Open, cfg.Session.Close, cfg.SessionLocation())
}

// ProvideClassifier creates the regime classifier from the configured pain
// chain.
func ProvideClassifier(cfg *config.Config) (*usecase.Classifier, error) {
	set, err := cfg.ThresholdSet()
	if err != nil {
		return nil, fmt.Errorf("thresholds: %w", err)
	}
	return usecase.NewClassifier(set), nil
}

// ProvideComposer creates the alert composer.
func ProvideComposer(cfg *config.Config, clock repository.Clock) (*usecase.Composer, error) {
	set, err := cfg.ThresholdSet()
	if err != nil {
		return nil, fmt.Errorf("thresholds: %w", err)
	}
	return usecase.NewComposer(
		cfg.Monitor.Symbol,
		set,
		cfg.Monitor.VolumeTarget,
		cfg.Monitor.FooterTag,
		cfg.SessionLocation(),
		clock,
	), nil
}

// Notifiers bundles the enabled delivery channels with the resources they
// hold open.
type Notifiers struct {
	Channels []repository.Notifier
	Closers  []func() error
}

// ProvideNotifiers builds the enabled delivery channels. An empty set is
// valid: the monitor runs muted and only logs composed payloads.
func ProvideNotifiers(cfg *config.Config, log *applogger.Logger) (*Notifiers, error) {
	n := &Notifiers{}

	if cfg.Discord.Enabled {
		client := xhttp.NewClient(xhttp.WithTimeout(cfg.Discord.Timeout))
		n.Channels = append(n.Channels, internalrepo.NewDiscordNotifier(cfg.Discord.WebhookURL, client))
		log.Info("discord delivery enabled")
	} else {
		log.Warn("discord delivery muted; set discord.enabled to go live")
	}

	if cfg.Kafka.Enabled {
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Kafka.Brokers),
			pkgkafka.WithCompression(cfg.Kafka.Compression),
			pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
			pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
			pkgkafka.WithAsync(cfg.Kafka.Async),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		kn := internalrepo.NewKafkaNotifier(producer, cfg.Kafka.Topic, cfg.Monitor.Symbol)
		n.Channels = append(n.Channels, kn)
		n.Closers = append(n.Closers, kn.Close)
		log.Info("kafka delivery enabled",
			applogger.Strings("brokers", cfg.Kafka.Brokers),
			applogger.String("topic", cfg.Kafka.Topic))
	}

	return n, nil
}

// ProvideCache selects the quote-cache backend.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if cfg.Cache.Redis.Enabled {
		return pkgcache.NewRedisCache(
			pkgcache.WithAddr(cfg.Cache.Redis.Addr),
			pkgcache.WithCredentials(cfg.Cache.Redis.Password),
			pkgcache.WithDB(cfg.Cache.Redis.DB),
			pkgcache.WithPrefix(cfg.Cache.Redis.Prefix),
		)
	}
	return pkgcache.NewMemoryCache(), nil
}

// ProvideMonitor creates the cycle orchestrator.
func ProvideMonitor(
	resolver *usecase.Resolver,
	velocity *usecase.VelocityEstimator,
	classifier *usecase.Classifier,
	composer *usecase.Composer,
	notifiers *Notifiers,
	clock repository.Clock,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Monitor {
	return usecase.NewMonitor(resolver, velocity, classifier, composer, notifiers.Channels, clock, m, log, cfg.History.Size)
}

// ProvideHandler creates the ops API handler.
func ProvideHandler(monitor *usecase.Monitor, cacheSvc pkgcache.Service, cfg *config.Config, log *applogger.Logger) xhttp.Handler {
	return api.NewStatusHandler(monitor, cacheSvc, cfg.Monitor.Symbol, cfg.Cache.QuoteTTL, log)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	monitor *usecase.Monitor,
	handler xhttp.Handler,
	log *applogger.Logger,
	cacheSvc pkgcache.Service,
	notifiers *Notifiers,
) *server.App {
	app := server.New(cfg, monitor, handler, log)
	app.AddCloser(cacheSvc)
	for _, c := range notifiers.Closers {
		app.AddCloser(closerFunc(c))
	}
	return app
}
