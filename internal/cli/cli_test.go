/*
 * cli_test.go, part of chemform.
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

package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	chem "github.com/rmera/chemform"
	"github.com/rmera/chemform/chemjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeAll(t *testing.T, r io.Reader) []*chem.Structure {
	t.Helper()
	dec := json.NewDecoder(r)
	var ret []*chem.Structure
	for dec.More() {
		var J chemjson.Structure
		require.NoError(t, dec.Decode(&J))
		S, err := J.ToStructure(chem.Provenance(J.Provenance))
		require.NoError(t, err)
		ret = append(ret, S)
	}
	return ret
}

func TestResolveJSON(t *testing.T) {
	out, _, err := run(t, "resolve", "H2O", "C2H6", "Xx")
	require.NoError(t, err)
	structs := decodeAll(t, strings.NewReader(out))
	require.Len(t, structs, 3)
	assert.Equal(t, "H2O", structs[0].Formula)
	assert.Equal(t, chem.Predefined, structs[0].Provenance)
	assert.Equal(t, chem.Synthesized, structs[1].Provenance)
	assert.Equal(t, 8, structs[1].Len())
	assert.Equal(t, chem.Fallback, structs[2].Provenance)
}

func TestResolveXYZ(t *testing.T) {
	out, _, err := run(t, "resolve", "HCl", "CH4", "--format", "xyz")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2+2+2+5)
	assert.Equal(t, "2", strings.TrimSpace(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "HCl provenance=predefined"))
	assert.Equal(t, "5", strings.TrimSpace(lines[4]))
	assert.True(t, strings.HasPrefix(lines[5], "CH4 provenance=predefined"))
}

func TestResolveCounts(t *testing.T) {
	out, _, err := run(t, "resolve", "methane", "--counts", "C=1,H=4")
	require.NoError(t, err)
	structs := decodeAll(t, strings.NewReader(out))
	require.Len(t, structs, 1)
	assert.Equal(t, "methane", structs[0].Formula)
	assert.Equal(t, 5, structs[0].Len())

	_, _, err = run(t, "resolve", "a", "b", "--counts", "C=1")
	assert.Error(t, err)
	_, _, err = run(t, "resolve", "--counts", "C=0")
	assert.ErrorIs(t, err, chem.ErrParse)
}

func TestResolveGzipFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json.gz")
	metrics := filepath.Join(dir, "chemform.prom")
	t.Setenv("CHEMFORM_METRICS_TEXTFILE", metrics)
	out, _, err := run(t, "resolve", "NH3", "--gzip", "-o", path, "--report")
	require.NoError(t, err)
	assert.Empty(t, out)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	structs := decodeAll(t, zr)
	require.Len(t, structs, 1)
	assert.Equal(t, 4, structs[0].Len())

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `chemform_structures_total{provenance="predefined"} 1`)
}

func TestResolveErrors(t *testing.T) {
	_, _, err := run(t, "resolve")
	assert.Error(t, err)
	_, _, err = run(t, "resolve", "H2O(")
	assert.ErrorIs(t, err, chem.ErrParse)
	_, _, err = run(t, "resolve", "H2O", "--format", "PDB")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"pdb"`)
	_, _, err = run(t, "resolve", "--counts", "C=1,H=10000")
	assert.ErrorIs(t, err, chem.ErrParse)
	_, _, err = run(t, "resolve", "H2O", "--external")
	assert.Error(t, err)
}

func TestResolveReport(t *testing.T) {
	_, stderr, err := run(t, "resolve", "NH3", "CH2500", "--report", "-o", filepath.Join(t.TempDir(), "out.json"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "NH3 (predefined)")
	assert.Contains(t, stderr, "0 clashes")
	assert.Contains(t, stderr, "CH2500 (synthesized)")
	assert.Contains(t, stderr, "clashes not checked")
}

func TestResolveExternal(t *testing.T) {
	answer := `{"geometry": "bent", "atoms": [
		{"element": "S", "position": [0, 0, 0]},
		{"element": "H", "position": [0.96, 0.93, 0]},
		{"element": "H", "position": [-0.96, 0.93, 0]}],
		"bonds": [{"type": "single", "atoms": [0, 1], "length": 1.34},
		          {"type": "single", "atoms": [0, 2], "length": 1.34}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "local",
			"choices": []map[string]interface{}{{"index": 0, "finish_reason": "stop",
				"message": map[string]string{"role": "assistant", "content": answer}}},
		})
	}))
	defer srv.Close()
	t.Setenv("CHEMFORM_RESOLVER_BASE_URL", srv.URL+"/v1")
	t.Setenv("CHEMFORM_RESOLVER_MODEL", "local")
	out, _, err := run(t, "resolve", "H2S", "--external")
	require.NoError(t, err)
	structs := decodeAll(t, strings.NewReader(out))
	require.Len(t, structs, 1)
	assert.Equal(t, chem.External, structs[0].Provenance)
	assert.Equal(t, "H2S", structs[0].Formula)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chemform.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: xyz\n"), 0o644))
	out, _, err := run(t, "resolve", "O2", "-c", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2"))

	require.NoError(t, os.WriteFile(path, []byte("concurrency: 0\n"), 0o644))
	_, _, err = run(t, "resolve", "O2", "-c", path)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	out, _, err := run(t, "parse", "H2O", "Fe2(SO4)3", "Xx")
	require.NoError(t, err)
	assert.Contains(t, out, "FORMULA")
	assert.Contains(t, out, "Fe2O12S3")
	assert.Contains(t, out, "18.01")
	assert.Contains(t, out, "?")
	_, _, err = run(t, "parse", "2H")
	assert.ErrorIs(t, err, chem.ErrParse)
}

func TestElementsAndLibrary(t *testing.T) {
	out, _, err := run(t, "elements")
	require.NoError(t, err)
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "table version "+chem.TableVersion)

	out, _, err = run(t, "library")
	require.NoError(t, err)
	for _, f := range chem.DefaultLibrary().Formulas() {
		assert.Contains(t, out, f)
	}
	assert.Contains(t, out, "tetrahedral")
}
