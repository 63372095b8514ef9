package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"refscope/internal/app"
	"refscope/internal/config"
	"refscope/internal/history"
	"refscope/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFiles(t *testing.T, tmpDir string) {
	mainGo := `package main

import "fmt"

type Greeter struct{}

func main() {
	g := Greeter{}
	fmt.Println(g)
}`
	err := os.WriteFile(filepath.Join(tmpDir, "main.go"), []byte(mainGo), 0644)
	require.NoError(t, err)

	appPy := `import os

class Worker:
    pass

w = Worker()
os.getcwd()`
	err = os.WriteFile(filepath.Join(tmpDir, "app.py"), []byte(appPy), 0644)
	require.NoError(t, err)
}

func TestFullPipelineIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	createTestFiles(t, tmpDir)

	cfg := config.Default()
	cfg.ScanPaths = []string{tmpDir}
	cfg.Output.TSV = filepath.Join(tmpDir, "out", "usages.tsv")
	cfg.History.Path = filepath.Join(tmpDir, "history.db")

	appInstance, err := app.New(cfg)
	require.NoError(t, err)

	store, err := history.Open(cfg.History.Path)
	require.NoError(t, err)
	defer store.Close()
	appInstance.History = store

	ctx := context.Background()
	err = appInstance.InitialScan(ctx)
	require.NoError(t, err)

	// Verify index state
	assert.Equal(t, 2, appInstance.Index.FileCount())
	assert.NotEmpty(t, appInstance.Index.Symbols())

	// fmt is imported and used as a qualifier
	groups := appInstance.Index.GroupByUsage("fmt")
	require.NotEmpty(t, groups)
	labels := make([]string, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, g.Label)
	}
	assert.Contains(t, labels, "Import")
	assert.Contains(t, labels, "Name Qualifier")

	// Greeter is instantiated in both shapes: Go composite literal, Python call
	assert.NotEmpty(t, appInstance.Index.GroupByUsage("Greeter"))
	assert.NotEmpty(t, appInstance.Index.GroupByUsage("Worker"))

	// Outputs and history snapshot
	require.NoError(t, appInstance.GenerateOutputs())
	assert.FileExists(t, cfg.Output.TSV)

	require.NoError(t, appInstance.SaveSnapshot())
	snapshots, err := store.Snapshots(time.Time{})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 2, snapshots[0].FileCount)

	// Query server over the same index
	srv := server.NewServer("127.0.0.1:0", appInstance.Index, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/symbols/fmt/usages")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
