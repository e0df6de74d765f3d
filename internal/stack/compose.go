// Package stack models the local deployment: a MySQL database and an
// OpenTelemetry collector, rendered as a compose file plus the collector's
// mounted configuration.
package stack

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ServiceDB        = "db"
	ServiceCollector = "otel-collector"

	ImageMySQL     = "mysql:8"
	ImageCollector = "otel/opentelemetry-collector-contrib"

	mysqlDataDir        = "/var/lib/mysql"
	collectorKeyPath    = "/etc/otel/key.json"
	collectorConfigPath = "/etc/otelcol-contrib/config.yaml"
)

// Collector ports, exposed host:container identically.
const (
	PortPprof            = 1888
	PortCollectorMetrics = 8888
	PortPrometheus       = 8889
	PortHealthCheck      = 13133
	PortOTLPGRPC         = 4317
	PortOTLPHTTP         = 4318
	PortZPages           = 55679
	PortMySQL            = 3306
)

var (
	ErrMissingImage     = errors.New("service has no image")
	ErrDuplicatePort    = errors.New("host port published twice")
	ErrMalformedMapping = errors.New("mapping must be host:container")
	ErrMissingEnv       = errors.New("required environment variable missing")
)

// requiredEnv lists the variables each service must receive.
var requiredEnv = map[string][]string{
	ServiceDB:        {"MYSQL_ROOT_PASSWORD", "MYSQL_DATABASE", "MYSQL_USER", "MYSQL_PASSWORD"},
	ServiceCollector: {"GOOGLE_APPLICATION_CREDENTIALS", "PROJECT_ID"},
}

type Service struct {
	Image       string   `yaml:"image"`
	Environment []string `yaml:"environment,omitempty"`
	Ports       []string `yaml:"ports,omitempty"`
	Volumes     []string `yaml:"volumes,omitempty"`
}

type Compose struct {
	Services map[string]Service `yaml:"services"`
}

// Options are the values substituted into the descriptor. Empty credential
// fields render as ${VAR} so the runtime takes them from its environment.
type Options struct {
	RootPassword string
	Database     string
	User         string
	Password     string
	ProjectID    string

	DataDir         string
	CredentialsFile string
	CollectorConfig string
}

func (o Options) withDefaults() Options {
	if o.DataDir == "" {
		o.DataDir = "./mysql"
	}
	if o.CredentialsFile == "" {
		o.CredentialsFile = "./key.json"
	}
	if o.CollectorConfig == "" {
		o.CollectorConfig = "./otel-collector-config.yaml"
	}
	return o
}

func New(opts Options) *Compose {
	opts = opts.withDefaults()

	return &Compose{Services: map[string]Service{
		ServiceDB: {
			Image: ImageMySQL,
			Environment: []string{
				envEntry("MYSQL_ROOT_PASSWORD", opts.RootPassword),
				envEntry("MYSQL_DATABASE", opts.Database),
				envEntry("MYSQL_USER", opts.User),
				envEntry("MYSQL_PASSWORD", opts.Password),
			},
			Ports:   []string{portMapping(PortMySQL)},
			Volumes: []string{opts.DataDir + ":" + mysqlDataDir},
		},
		ServiceCollector: {
			Image: ImageCollector,
			Environment: []string{
				"GOOGLE_APPLICATION_CREDENTIALS=" + collectorKeyPath,
				envEntry("PROJECT_ID", opts.ProjectID),
			},
			Ports: []string{
				portMapping(PortPprof),
				portMapping(PortCollectorMetrics),
				portMapping(PortPrometheus),
				portMapping(PortHealthCheck),
				portMapping(PortOTLPGRPC),
				portMapping(PortOTLPHTTP),
				portMapping(PortZPages),
			},
			Volumes: []string{
				opts.CredentialsFile + ":" + collectorKeyPath,
				opts.CollectorConfig + ":" + collectorConfigPath,
			},
		},
	}}
}

// Validate checks the descriptor is internally consistent.
func (c *Compose) Validate() error {
	hostPorts := make(map[string]string)

	for _, name := range c.serviceNames() {
		svc := c.Services[name]
		if svc.Image == "" {
			return fmt.Errorf("%s: %w", name, ErrMissingImage)
		}

		for _, p := range svc.Ports {
			host, _, ok := splitMapping(p)
			if !ok {
				return fmt.Errorf("%s: port %q: %w", name, p, ErrMalformedMapping)
			}
			if owner, dup := hostPorts[host]; dup {
				return fmt.Errorf("%s: port %s already used by %s: %w", name, host, owner, ErrDuplicatePort)
			}
			hostPorts[host] = name
		}

		for _, v := range svc.Volumes {
			if _, _, ok := splitMapping(v); !ok {
				return fmt.Errorf("%s: volume %q: %w", name, v, ErrMalformedMapping)
			}
		}

		env := svc.EnvKeys()
		for _, key := range requiredEnv[name] {
			if _, ok := env[key]; !ok {
				return fmt.Errorf("%s: %s: %w", name, key, ErrMissingEnv)
			}
		}
	}
	return nil
}

// Render writes the compose file with db first and the remaining services in
// name order.
func (c *Compose) Render(w io.Writer) error {
	services := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range c.serviceNames() {
		var body yaml.Node
		if err := body.Encode(c.Services[name]); err != nil {
			return fmt.Errorf("encode service %s: %w", name, err)
		}
		services.Content = append(services.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&body,
		)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "services"},
		services,
	}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("render compose: %w", err)
	}
	return enc.Close()
}

// EnvKeys returns the environment as a key to value map. Values of the
// ${VAR} form are kept verbatim.
func (s Service) EnvKeys() map[string]string {
	env := make(map[string]string, len(s.Environment))
	for _, e := range s.Environment {
		key, value, _ := strings.Cut(e, "=")
		env[key] = value
	}
	return env
}

func (c *Compose) serviceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == ServiceDB || names[j] == ServiceDB {
			return names[i] == ServiceDB
		}
		return names[i] < names[j]
	})
	return names
}

func envEntry(key, value string) string {
	if value == "" {
		value = "${" + key + "}"
	}
	return key + "=" + value
}

func portMapping(port int) string {
	return fmt.Sprintf("%d:%d", port, port)
}

func splitMapping(m string) (string, string, bool) {
	host, container, ok := strings.Cut(m, ":")
	if !ok || host == "" || container == "" {
		return "", "", false
	}
	return host, container, true
}
