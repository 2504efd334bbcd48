package statesync

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func injectHeaders(ctx context.Context, headers amqp.Table) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	for k, v := range carrier {
		headers[k] = v
	}
}

func extractHeaders(ctx context.Context, headers amqp.Table) context.Context {
	carrier := propagation.MapCarrier{}

	for k, v := range headers {
		if s, ok := v.(string); ok {
			carrier[k] = s
		}
	}

	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
