// Command stackgen writes the compose file and collector configuration for
// the local MySQL + OpenTelemetry collector stack.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"trace-sample-service/internal/stack"
)

type options struct {
	OutDir       string `short:"o" long:"out" description:"Output directory" default:"."`
	RootPassword string `long:"mysql-root-password" env:"MYSQL_ROOT_PASSWORD" description:"MySQL root password (default: ${MYSQL_ROOT_PASSWORD})"`
	Database     string `long:"mysql-database" env:"MYSQL_DATABASE" description:"MySQL database name"`
	User         string `long:"mysql-user" env:"MYSQL_USER" description:"MySQL user"`
	Password     string `long:"mysql-password" env:"MYSQL_PASSWORD" description:"MySQL password"`
	ProjectID    string `long:"project-id" env:"PROJECT_ID" description:"Cloud project receiving telemetry"`
	DataDir      string `long:"data-dir" description:"Host directory for MySQL data" default:"./mysql"`
	Credentials  string `long:"credentials" description:"Service account key file" default:"./key.json"`
	Inline       bool   `long:"inline" description:"Write resolved values instead of ${VAR} references"`
	DryRun       bool   `short:"n" long:"dry-run" description:"Print to stdout instead of writing files"`
}

const (
	composeFile   = "docker-compose.yml"
	collectorFile = "otel-collector-config.yaml"
)

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts, os.Stdout); err != nil {
		log.Fatalf("stackgen: %v", err)
	}
}

func run(opts options, stdout io.Writer) error {
	stackOpts := stack.Options{
		DataDir:         opts.DataDir,
		CredentialsFile: opts.Credentials,
		CollectorConfig: "./" + collectorFile,
	}
	if opts.Inline {
		stackOpts.RootPassword = opts.RootPassword
		stackOpts.Database = opts.Database
		stackOpts.User = opts.User
		stackOpts.Password = opts.Password
		stackOpts.ProjectID = opts.ProjectID
	}

	compose := stack.New(stackOpts)
	if err := compose.Validate(); err != nil {
		return fmt.Errorf("invalid compose file: %w", err)
	}

	var composeBuf, collectorBuf bytes.Buffer
	if err := compose.Render(&composeBuf); err != nil {
		return err
	}
	if err := stack.NewCollectorConfig().Render(&collectorBuf); err != nil {
		return err
	}

	if opts.DryRun {
		fmt.Fprintf(stdout, "# %s\n%s---\n# %s\n%s", composeFile, composeBuf.String(), collectorFile, collectorBuf.String())
		return nil
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for name, buf := range map[string]*bytes.Buffer{composeFile: &composeBuf, collectorFile: &collectorBuf} {
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.WithField("path", path).Warn("wrote file")
	}
	return nil
}
