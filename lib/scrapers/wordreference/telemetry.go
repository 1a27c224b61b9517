package wordreference

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("scrapers/wordreference")
