// Package telemetry provides optional OpenTelemetry tracing for rounds and
// player actions.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vancomm/minesweep/internal/mines"
)

const (
	serviceName    = "minesweep"
	serviceVersion = "0.1.0"
)

// Setup installs a global tracer provider exporting over OTLP/HTTP. The
// exporter reads the standard OTEL_EXPORTER_OTLP_* environment variables.
//
// The returned function flushes and stops the provider.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("minesweep/" + name)
}

// NoopTracer returns a tracer that records nothing.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("minesweep/noop")
}

const (
	RoundKey     = attribute.Key("minesweep.round")
	BoardKey     = attribute.Key("minesweep.board")
	ColKey       = attribute.Key("minesweep.col")
	RowKey       = attribute.Key("minesweep.row")
	FlagKey      = attribute.Key("minesweep.flag")
	StatusKey    = attribute.Key("minesweep.status")
	MinesLeftKey = attribute.Key("minesweep.mines_left")
	RevealedKey  = attribute.Key("minesweep.revealed")
	MovesKey     = attribute.Key("minesweep.moves")
)

// RoundAttributes describe a round when its span starts.
func RoundAttributes(id string, p mines.Params) []attribute.KeyValue {
	return []attribute.KeyValue{
		RoundKey.String(id),
		BoardKey.String(p.String()),
	}
}

func ClickAttributes(p mines.Position, flag bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		ColKey.Int(p.Col),
		RowKey.Int(p.Row),
		FlagKey.Bool(flag),
	}
}

// BoardAttributes snapshot the counters of b under the given round status.
func BoardAttributes(status string, b *mines.Board) []attribute.KeyValue {
	return []attribute.KeyValue{
		StatusKey.String(status),
		MinesLeftKey.Int(b.MinesLeft()),
		RevealedKey.Int(b.CellsRevealed()),
	}
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
