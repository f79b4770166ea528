package di

import (
	"fmt"
	"time"

	"wifi-agent/internal/adapter/tool"
	"wifi-agent/internal/application/port/output"
	"wifi-agent/internal/application/service"
	"wifi-agent/internal/application/usecase"
	"wifi-agent/internal/infrastructure/logger"
	"wifi-agent/internal/infrastructure/wireless"
	"wifi-agent/internal/observability"
)

type Container struct {
	Logger     output.LoggerPort
	Wireless   output.WirelessPort
	Tools      output.ToolRegistry
	Dispatcher *usecase.Dispatcher
	Metrics    *observability.Collector
}

type Config struct {
	LogLevel         string
	CommandTimeout   time.Duration
	ProcWirelessPath string
	EnableMetrics    bool
}

func DefaultConfig() Config {
	return Config{
		LogLevel:         "info",
		CommandTimeout:   wireless.DefaultCommandTimeout,
		ProcWirelessPath: wireless.DefaultProcWirelessPath,
		EnableMetrics:    true,
	}
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	runner := wireless.NewExecRunner(cfg.CommandTimeout, log)
	resolver := wireless.NewResolver(runner, log)

	stats := wireless.NewProcStatsSource()
	if cfg.ProcWirelessPath != "" {
		stats.Path = cfg.ProcWirelessPath
	}

	wifi := wireless.NewService(runner, resolver, stats, log)

	tools := service.NewToolRegistry()
	registerWifiTools(tools, wifi, log)

	var metrics *observability.Collector
	var recorder usecase.MetricsRecorder
	if cfg.EnableMetrics {
		metrics = observability.NewCollector()
		recorder = metrics
	}

	dispatcher := usecase.NewDispatcher(tools, log, recorder)

	return &Container{
		Logger:     log,
		Wireless:   wifi,
		Tools:      tools,
		Dispatcher: dispatcher,
		Metrics:    metrics,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func registerWifiTools(registry *service.ToolRegistryImpl, wifi output.WirelessPort, log output.LoggerPort) {
	registry.Register(tool.NewScanTool(wifi, log))
	registry.Register(tool.NewStatusTool(wifi, log))
	registry.Register(tool.NewSignalTool(wifi, log))
	registry.Register(tool.NewInterfacesTool(wifi, log))
}
