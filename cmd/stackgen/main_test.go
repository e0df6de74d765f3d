package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"trace-sample-service/internal/stack"
)

func TestRun_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	err := run(options{OutDir: dir, DataDir: "./mysql", Credentials: "./key.json"}, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, composeFile))
	require.NoError(t, err)
	var c stack.Compose
	require.NoError(t, yaml.Unmarshal(data, &c))
	assert.Equal(t, stack.New(stack.Options{}), &c)

	_, err = os.Stat(filepath.Join(dir, collectorFile))
	assert.NoError(t, err)
}

func TestRun_InlineValues(t *testing.T) {
	var out bytes.Buffer
	err := run(options{DryRun: true, Inline: true, ProjectID: "proj-1", Password: "secret"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "PROJECT_ID=proj-1")
	assert.Contains(t, out.String(), "MYSQL_PASSWORD=secret")
	assert.Contains(t, out.String(), "MYSQL_USER=${MYSQL_USER}")
}

func TestRun_ReferencesByDefault(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(options{DryRun: true, ProjectID: "ignored"}, &out))

	assert.Contains(t, out.String(), "PROJECT_ID=${PROJECT_ID}")
	assert.NotContains(t, out.String(), "ignored")
}

func TestRun_EmptyDataDirUsesDefault(t *testing.T) {
	err := run(options{DryRun: true, DataDir: ""}, &bytes.Buffer{})
	require.NoError(t, err)
}
