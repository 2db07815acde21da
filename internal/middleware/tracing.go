package middleware

import (
	"fmt"

	"jobboard/internal/models"
	"jobboard/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Route parameters that name job board resources, mapped to span attribute keys.
var resourceParams = map[string]string{
	"id":       "jobboard.resource.id",
	"job_id":   "jobboard.job.id",
	"username": "jobboard.target.username",
}

// TracingMiddleware opens a server span per request. The span is renamed to
// the matched route template once routing is done, and is tagged with the
// caller and the job board resource the route addresses.
func TracingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := observability.Tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.path", c.Path()),
				attribute.String("http.ip", c.IP()),
			),
		)
		defer span.End()

		traceID := span.SpanContext().TraceID().String()
		c.Locals("traceID", traceID)
		c.Locals("spanID", span.SpanContext().SpanID().String())
		c.Set("X-Trace-ID", traceID)
		if requestID := c.Locals("requestid"); requestID != nil {
			span.SetAttributes(attribute.String("request.id", fmt.Sprintf("%v", requestID)))
		}

		c.SetUserContext(ctx)
		err := c.Next()

		status := c.Response().StatusCode()
		if route := c.Route(); route != nil && route.Path != "" {
			span.SetName(c.Method() + " " + route.Path)
			span.SetAttributes(attribute.String("http.route", route.Path))
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		span.SetAttributes(resourceAttributes(c)...)

		if user, ok := c.Locals(localUser).(*models.User); ok && user != nil {
			span.SetAttributes(
				attribute.String("jobboard.user.id", user.ID.String()),
				attribute.String("jobboard.user.role", string(user.Role)),
			)
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		}
		return err
	}
}

func resourceAttributes(c *fiber.Ctx) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for param, key := range resourceParams {
		if v := c.Params(param); v != "" {
			attrs = append(attrs, attribute.String(key, v))
		}
	}
	return attrs
}
