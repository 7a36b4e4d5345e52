package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fortuna/standout/internal/api/rest"
	"github.com/fortuna/standout/internal/api/websocket"
	"github.com/fortuna/standout/internal/config"
	"github.com/fortuna/standout/internal/ingest/nbastats"
	"github.com/fortuna/standout/internal/publisher"
	"github.com/fortuna/standout/internal/service"
)

const (
	serviceName    = "standout"
	serviceVersion = "1.0.0"

	redisAttempts   = 5
	redisRetryDelay = 2 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg)

	log.Info().Str("version", serviceVersion).Msgf("starting %s", serviceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stats := nbastats.New(cfg.StatsBaseURL, cfg.StatsTimeout)

	season := service.ClockSeason(clockwork.NewRealClock())
	if cfg.Season != "" {
		season = service.FixedSeason(cfg.Season)
	}
	log.Info().Str("season", season()).Msg("querying season")

	var events service.PlayerPublisher
	if cfg.RedisURL != "" {
		if pub := connectPublisher(cfg.RedisURL); pub != nil {
			defer pub.Close()
			events = pub
		}
	} else {
		log.Info().Msg("REDIS_URL not set, event stream disabled")
	}

	var feed rest.Broadcaster
	var wsServer *websocket.Server
	if cfg.EnableWebSocket {
		wsServer = websocket.NewServer(cfg.WSPort)
		feed = wsServer
		go func() {
			if err := wsServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("websocket server error")
			}
		}()
	}

	players := service.NewPlayerService(stats, service.NewRandomPicker(), season, events)
	games := service.NewGameService(stats, season)

	restServer := rest.NewServer(cfg.RESTPort, rest.NewHandler(players, games, feed), cfg.CORSAllowedOrigins)
	go func() {
		log.Info().Str("port", cfg.RESTPort).Msg("REST API server listening")
		if err := restServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("REST server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("REST API server shutdown error")
	}
	if wsServer != nil {
		if err := wsServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("websocket server shutdown error")
		}
	}

	log.Info().Msgf("%s stopped", serviceName)
}

func setupLogging(cfg *config.Config) {
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

// connectPublisher retries the initial Redis connection. The service still
// serves requests without it, so exhaustion is logged rather than fatal.
func connectPublisher(redisURL string) *publisher.RedisPublisher {
	for i := 1; i <= redisAttempts; i++ {
		pub, err := publisher.NewRedisPublisher(redisURL)
		if err == nil {
			log.Info().Str("stream", publisher.StandoutStream).Msg("connected to Redis")
			return pub
		}

		if i < redisAttempts {
			log.Warn().Err(err).Int("attempt", i).Dur("retry_in", redisRetryDelay).Msg("Redis connection failed")
			time.Sleep(redisRetryDelay)
			continue
		}
		log.Error().Err(err).Msg("giving up on Redis, event stream disabled")
	}
	return nil
}
