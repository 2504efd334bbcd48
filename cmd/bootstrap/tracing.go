package bootstrap

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/fx"
)

// TracingModule installs W3C trace-context propagation so spans started by callers
// continue across HTTP calls and state sync messages.
var TracingModule = fx.Module("tracing",
	fx.Invoke(SetupPropagation),
)

func SetupPropagation() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
