// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

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

	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

func testTable(dir, source, url string) types.TableConfig {
	return types.TableConfig{
		Source:  source,
		PDF:     filepath.Join(dir, source+".pdf"),
		URL:     url,
		Page:    1,
		TableID: "T1",
	}
}

func TestFetchReportDownloads(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	table := testTable(dir, "mics_ghana_2017", ts.URL)

	var buf bytes.Buffer
	skipped, err := FetchReport(context.Background(), ts.Client(), table, types.FetchConfig{}, &buf)
	require.NoError(t, err)
	assert.False(t, skipped)

	data, err := os.ReadFile(table.PDF)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))

	// No stray temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFetchReportSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	table := testTable(dir, "mics_ghana_2017", "http://unused.invalid/report.pdf")
	require.NoError(t, os.WriteFile(table.PDF, []byte("existing"), 0o644))

	var buf bytes.Buffer
	skipped, err := FetchReport(context.Background(), http.DefaultClient, table, types.FetchConfig{}, &buf)
	require.NoError(t, err)
	assert.True(t, skipped)

	data, _ := os.ReadFile(table.PDF)
	assert.Equal(t, "existing", string(data))
}

func TestFetchReportHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	dir := t.TempDir()
	table := testTable(dir, "mics_ghana_2017", ts.URL)

	var buf bytes.Buffer
	_, err := FetchReport(context.Background(), ts.Client(), table, types.FetchConfig{}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	_, statErr := os.Stat(table.PDF)
	assert.True(t, os.IsNotExist(statErr), "failed download must not leave a PDF behind")
}

func TestFetchAllDedupesAndContinues(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte("%PDF"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	shared := testTable(dir, "mics_ghana_2017", ts.URL)
	sharedOther := shared
	sharedOther.TableID = "T2"
	broken := testTable(dir, "dhs_kenya_2014", "http://127.0.0.1:1/nope.pdf")
	noURL := testTable(dir, "mics_chad_2019", "")

	plan := &types.Plan{Tables: []types.TableConfig{shared, sharedOther, broken, noURL}}

	var buf bytes.Buffer
	result := FetchAll(context.Background(), ts.Client(), plan, types.FetchConfig{}, &buf)

	assert.Equal(t, 1, result.Downloaded, "shared PDF fetched once")
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, result.Total())
	assert.True(t, result.HasFailures())
}
