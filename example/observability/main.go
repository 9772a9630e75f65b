// Command observability wires every shipped sink: tinted slog output,
// Prometheus metrics on /metrics, and (when REDIS_URL is set) attempt
// records published to a Redis channel.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hedeqiang/rebound"
	"github.com/hedeqiang/rebound/classify"
	"github.com/hedeqiang/rebound/event"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	sinks := []event.Sink{
		event.NewLogSink(logger),
		event.NewPromSink(registry),
	}

	if url := os.Getenv("REDIS_URL"); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			slog.Error("bad REDIS_URL", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, event.NewRedisSink(redis.NewClient(opts), "rebound:attempts"))
	}

	e := rebound.New(rebound.WithSinks(sinks...))

	go func() {
		http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(":9091", nil); err != nil {
			slog.Error("metrics server stopped", "error", err)
		}
	}()

	policy := rebound.AggressivePolicy()
	policy.MaxElapsed = 30 * time.Second

	for {
		err := e.Execute(context.Background(), policy, flakyCall)
		if err != nil {
			slog.Error("call gave up", "error", err)
		}
		time.Sleep(2 * time.Second)
	}
}

// flakyCall fails with a rotating selection of classified errors.
var step int

func flakyCall(ctx context.Context) error {
	step++
	switch step % 4 {
	case 1:
		return classify.NewFailure("ServiceUnavailable", errors.New("backend draining"))
	case 2:
		return classify.NewFailure("ThrottlingException", errors.New("rate exceeded")).
			WithRetryAfter(500 * time.Millisecond)
	default:
		return nil
	}
}
