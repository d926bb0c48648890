package config

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultDBPath        = "data/github_webhooks"
	defaultWindowSeconds = 15
	maxWindowSeconds     = 86400
)

var defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

type Config struct {
	Environment   string
	Server        ServerConfig
	Database      DatabaseConfig
	Events        EventsConfig
	Logging       LoggingConfig
	Metrics       MetricsConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

type DatabaseConfig struct {
	Path      string
	LogTiming bool
}

type EventsConfig struct {
	RecentWindow time.Duration
}

type LoggingConfig struct {
	Level  slog.Level
	Format string
}

type MetricsConfig struct {
	Enabled bool
}

type ObservabilityConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	OTLPTraceHeaders  map[string]string
	OTLPMetricHeaders map[string]string
	ServiceName       string
	ServiceVer        string
	SamplingRatio     float64
	MetricsConsole    bool
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ghevents_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("ghevents_host", "0.0.0.0")
	v.SetDefault("ghevents_port", 5000)
	v.SetDefault("ghevents_db_path", defaultDBPath)
	v.SetDefault("ghevents_db_timing", false)
	v.SetDefault("ghevents_event_time_window", defaultWindowSeconds)
	v.SetDefault("ghevents_cors_origins", strings.Join(defaultCORSOrigins, ","))
	v.SetDefault("ghevents_log_level", "info")
	v.SetDefault("ghevents_log_format", "")
	v.SetDefault("ghevents_metrics_enabled", true)
	v.SetDefault("ghevents_otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_headers", "")
	v.SetDefault("otel_exporter_otlp_traces_headers", "")
	v.SetDefault("otel_exporter_otlp_metrics_headers", "")
	v.SetDefault("otel_service_name", "ghevents")
	v.SetDefault("ghevents_version", "dev")
	v.SetDefault("otel_service_version", "")
	v.SetDefault("ghevents_otel_sampling_ratio", 1.0)
	v.SetDefault("ghevents_otel_metrics_console", false)

	env := resolveEnvironment(v)
	local := Config{Environment: env}.IsLocalDevelopment()
	port, err := strconv.Atoi(strings.TrimSpace(v.GetString("ghevents_port")))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid GHEVENTS_PORT: %q", v.GetString("ghevents_port"))
	}

	level, err := parseLogLevel(v.GetString("ghevents_log_level"))
	if err != nil {
		return Config{}, err
	}
	format := resolveLogFormat(v.GetString("ghevents_log_format"), local)

	windowSeconds := v.GetInt("ghevents_event_time_window")
	if windowSeconds <= 0 {
		windowSeconds = defaultWindowSeconds
	}
	if windowSeconds > maxWindowSeconds {
		windowSeconds = maxWindowSeconds
	}

	samplingRatio := v.GetFloat64("ghevents_otel_sampling_ratio")
	if samplingRatio < 0 {
		samplingRatio = 0
	}
	if samplingRatio > 1 {
		samplingRatio = 1
	}

	serviceName := strings.TrimSpace(v.GetString("otel_service_name"))
	if serviceName == "" {
		serviceName = "ghevents"
	}

	serviceVersion := strings.TrimSpace(v.GetString("ghevents_version"))
	if serviceVersion == "" {
		serviceVersion = strings.TrimSpace(v.GetString("otel_service_version"))
	}
	if serviceVersion == "" {
		serviceVersion = "dev"
	}

	otlpEndpoint := strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint"))
	otlpCommonHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_headers"))
	otlpTraceHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_traces_headers"))
	otlpMetricHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_metrics_headers"))
	metricsConsole := v.GetBool("ghevents_otel_metrics_console")
	otelEnabled := v.GetBool("ghevents_otel_enabled") || otlpEndpoint != "" || metricsConsole
	traceHeaders := mergeHeaderMaps(otlpCommonHeaders, otlpTraceHeaders)
	metricHeaders := mergeHeaderMaps(otlpCommonHeaders, otlpMetricHeaders)

	cfg := Config{
		Environment: env,
		Server: ServerConfig{
			Host:        strings.TrimSpace(v.GetString("ghevents_host")),
			Port:        port,
			CORSOrigins: parseList(v.GetString("ghevents_cors_origins")),
		},
		Database: DatabaseConfig{
			Path:      strings.TrimSpace(v.GetString("ghevents_db_path")),
			LogTiming: v.GetBool("ghevents_db_timing"),
		},
		Events: EventsConfig{
			RecentWindow: time.Duration(windowSeconds) * time.Second,
		},
		Logging: LoggingConfig{
			Level:  level,
			Format: format,
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("ghevents_metrics_enabled"),
		},
		Observability: ObservabilityConfig{
			Enabled:           otelEnabled,
			OTLPEndpoint:      otlpEndpoint,
			OTLPTraceHeaders:  traceHeaders,
			OTLPMetricHeaders: metricHeaders,
			ServiceName:       serviceName,
			ServiceVer:        serviceVersion,
			SamplingRatio:     samplingRatio,
			MetricsConsole:    metricsConsole,
		},
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDBPath
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = append([]string(nil), defaultCORSOrigins...)
	}

	return cfg, nil
}

// Address returns the host:port the HTTP server binds to.
func (c Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid GHEVENTS_LOG_LEVEL: %q", raw)
	}
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseOTLPHeaders(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pair := strings.SplitN(part, "=", 2)
		if len(pair) != 2 {
			continue
		}
		key := strings.TrimSpace(pair[0])
		value := strings.TrimSpace(pair[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mergeHeaderMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// resolveLogFormat honours an explicit format and otherwise logs text locally
// and JSON everywhere else.
func resolveLogFormat(raw string, local bool) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return "json"
	case "text":
		return "text"
	}
	if local {
		return "text"
	}
	return "json"
}

// IsLocalDevelopment reports whether Environment names a developer machine.
func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"ghevents_env", "app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}
