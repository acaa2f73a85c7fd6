package jaeger

import (
	"go.opentelemetry.io/otel/exporters/jaeger"

	"github.com/spf13/viper"
)

func MustNewJaeger() *jaeger.Exporter {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(viper.GetString("tracing.jaeger_endpoint")),
	))
	if err != nil {
		panic(err)
	}

	return exp
}
