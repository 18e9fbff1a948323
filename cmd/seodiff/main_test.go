package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/seodiff/seodiff/cmd/seodiff"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "seodiff")
	assert.Contains(t, stdout.String(), "input-file")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RequiresInputOrSitemap(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"-f", "json"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file")
}

func TestMain_Run_InputAndSitemapMutuallyExclusive(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(),
		[]string{"urls.txt", "--sitemap", "https://example.com"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestMain_Run_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"urls.txt", "-f", "xml"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_MissingInputFile(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(),
		[]string{filepath.Join(t.TempDir(), "missing.txt")}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestMain_Run_EmptyInputFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n  \n"), 0644))

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{path}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no URLs found")
}

func TestMain_Run_SitemapWithNoURLs(t *testing.T) {
	t.Parallel()

	// Site with neither robots.txt sitemap directives nor /sitemap.xml
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--sitemap", srv.URL}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no URLs to process")
}

func TestMain_Run_BadConfigFile(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(),
		[]string{"urls.txt", "--config", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}
