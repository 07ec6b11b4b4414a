package graphql

// options.go handles options that can be used to control how the schema is built.
// Each option is a closure that sets a field of the Builder when passed to New.

import (
	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TracerName is the instrumentation name of the tracer used when tracing is turned on by Config
const TracerName = "github.com/LiuXiaoZhuang/graphql"

type (
	// Option is passed to New to set an option of the Builder
	Option func(*Builder)

	// Config has settings that can be obtained from the environment (see LoadConfig)
	Config struct {
		LogLevel       string `env:"GRAPHQL_LOG_LEVEL" envDefault:"info"`
		Tracing        bool   `env:"GRAPHQL_TRACING" envDefault:"false"`
		ValidateInputs bool   `env:"GRAPHQL_VALIDATE_INPUTS" envDefault:"true"`
	}
)

// LoadConfig gets the configuration from environment variables
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLogger creates a production logger that logs at the level of the configuration
func NewLogger(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.LogLevel != "" {
		var err error
		if level, err = zapcore.ParseLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}

// WithLogger sets the logger used while the schema is built (resolvers do not log).
// A nil logger turns logging off.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger == nil {
			logger = zap.NewNop()
		}
		b.logger = logger
	}
}

// WithTracer records a span for every call of a resolver
func WithTracer(tracer trace.Tracer) Option {
	return func(b *Builder) {
		b.tracer = tracer
	}
}

// WithValidator checks input objects (struct arguments) using their `validate` tags
func WithValidator(validate *validator.Validate) Option {
	return func(b *Builder) {
		b.validate = validate
	}
}

// WithConfig applies a configuration: tracing uses the global tracer provider and input
// validation uses a new validator.  Options after this one can override these.
func WithConfig(cfg Config) Option {
	return func(b *Builder) {
		if cfg.Tracing {
			b.tracer = otel.Tracer(TracerName)
		} else {
			b.tracer = nil
		}
		if cfg.ValidateInputs {
			b.validate = validator.New()
		} else {
			b.validate = nil
		}
	}
}
