package stack

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type Endpoint struct {
	Endpoint string `yaml:"endpoint"`
}

type OTLPProtocols struct {
	GRPC Endpoint `yaml:"grpc"`
	HTTP Endpoint `yaml:"http"`
}

type OTLPReceiver struct {
	Protocols OTLPProtocols `yaml:"protocols"`
}

type Receivers struct {
	OTLP OTLPReceiver `yaml:"otlp"`
}

type BatchProcessor struct{}

type Processors struct {
	Batch BatchProcessor `yaml:"batch"`
}

type GoogleCloudExporter struct {
	Project string `yaml:"project"`
}

type DebugExporter struct {
	Verbosity string `yaml:"verbosity"`
}

type Exporters struct {
	GoogleCloud GoogleCloudExporter `yaml:"googlecloud"`
	Prometheus  Endpoint            `yaml:"prometheus"`
	Debug       DebugExporter       `yaml:"debug"`
}

type Extensions struct {
	HealthCheck Endpoint `yaml:"health_check"`
	Pprof       Endpoint `yaml:"pprof"`
	ZPages      Endpoint `yaml:"zpages"`
}

type Pipeline struct {
	Receivers  []string `yaml:"receivers"`
	Processors []string `yaml:"processors"`
	Exporters  []string `yaml:"exporters"`
}

type Pipelines struct {
	Traces  Pipeline `yaml:"traces"`
	Metrics Pipeline `yaml:"metrics"`
	Logs    Pipeline `yaml:"logs"`
}

type TelemetryMetrics struct {
	Address string `yaml:"address"`
}

type ServiceTelemetry struct {
	Metrics TelemetryMetrics `yaml:"metrics"`
}

type CollectorService struct {
	Extensions []string         `yaml:"extensions"`
	Telemetry  ServiceTelemetry `yaml:"telemetry"`
	Pipelines  Pipelines        `yaml:"pipelines"`
}

// CollectorConfig is the configuration mounted into the collector container.
type CollectorConfig struct {
	Receivers  Receivers        `yaml:"receivers"`
	Processors Processors       `yaml:"processors"`
	Exporters  Exporters        `yaml:"exporters"`
	Extensions Extensions       `yaml:"extensions"`
	Service    CollectorService `yaml:"service"`
}

func listen(port int) Endpoint {
	return Endpoint{Endpoint: fmt.Sprintf("0.0.0.0:%d", port)}
}

// NewCollectorConfig returns a config whose listeners match the ports the
// compose file publishes. The project is read from PROJECT_ID at runtime.
func NewCollectorConfig() *CollectorConfig {
	return &CollectorConfig{
		Receivers: Receivers{OTLP: OTLPReceiver{Protocols: OTLPProtocols{
			GRPC: listen(PortOTLPGRPC),
			HTTP: listen(PortOTLPHTTP),
		}}},
		Exporters: Exporters{
			GoogleCloud: GoogleCloudExporter{Project: "${env:PROJECT_ID}"},
			Prometheus:  listen(PortPrometheus),
			Debug:       DebugExporter{Verbosity: "basic"},
		},
		Extensions: Extensions{
			HealthCheck: listen(PortHealthCheck),
			Pprof:       listen(PortPprof),
			ZPages:      listen(PortZPages),
		},
		Service: CollectorService{
			Extensions: []string{"health_check", "pprof", "zpages"},
			Telemetry: ServiceTelemetry{Metrics: TelemetryMetrics{
				Address: fmt.Sprintf("0.0.0.0:%d", PortCollectorMetrics),
			}},
			Pipelines: Pipelines{
				Traces: Pipeline{
					Receivers:  []string{"otlp"},
					Processors: []string{"batch"},
					Exporters:  []string{"googlecloud", "debug"},
				},
				Metrics: Pipeline{
					Receivers:  []string{"otlp"},
					Processors: []string{"batch"},
					Exporters:  []string{"prometheus"},
				},
				Logs: Pipeline{
					Receivers:  []string{"otlp"},
					Processors: []string{"batch"},
					Exporters:  []string{"googlecloud"},
				},
			},
		},
	}
}

func (c *CollectorConfig) Render(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("render collector config: %w", err)
	}
	return enc.Close()
}
