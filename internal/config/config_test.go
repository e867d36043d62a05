/*
 * config_test.go, part of chemform.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * chemform is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
log:
  level: debug
  format: json
resolver:
  enabled: true
  base_url: "http://localhost:8080/v1"
  model: "local-model"
  timeout: 5s
library:
  path: "molecules.yaml"
output:
  format: xyz
  gzip: true
concurrency: 8
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chemform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"stderr"}, cfg.Log.OutputPaths)
	assert.False(t, cfg.Resolver.Enabled)
	assert.Equal(t, "gpt-4o-mini", cfg.Resolver.Model)
	assert.Equal(t, 30*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Resolver.Enabled)
	assert.Equal(t, "http://localhost:8080/v1", cfg.Resolver.BaseURL)
	assert.Equal(t, "local-model", cfg.Resolver.Model)
	assert.Equal(t, 5*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, "molecules.yaml", cfg.Library.Path)
	assert.Equal(t, "xyz", cfg.Output.Format)
	assert.True(t, cfg.Output.Gzip)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CHEMFORM_RESOLVER_ENABLED", "true")
	t.Setenv("CHEMFORM_RESOLVER_API_KEY", "secret")
	t.Setenv("CHEMFORM_OUTPUT_FORMAT", "xyz")
	t.Setenv("CHEMFORM_CONCURRENCY", "2")
	cfg, err := Load(writeConfig(t, "log:\n  level: warn\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Resolver.Enabled)
	assert.Equal(t, "secret", cfg.Resolver.APIKey)
	assert.Equal(t, "xyz", cfg.Output.Format)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	for name, content := range map[string]string{
		"format":      "output:\n  format: pdb\n",
		"log format":  "log:\n  format: xml\n",
		"concurrency": "concurrency: 0\n",
		"timeout":     "resolver:\n  timeout: -1s\n",
		"no key":      "resolver:\n  enabled: true\n",
		"no model":    "resolver:\n  enabled: true\n  api_key: k\n  model: \"\"\n",
	} {
		_, err := Load(writeConfig(t, content))
		assert.Error(t, err, name)
	}
}
