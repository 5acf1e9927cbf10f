package exporter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ftscli/internal/config"
	"ftscli/internal/fts"
)

// ftsFixtures describes a small FTS API: SSD has two appeals, one with three
// projects and one with none, plus one emergency carrying two contributions.
var ftsFixtures = map[string]string{
	"/api/v1/Sector.json":       `[{"id": 1, "name": "Agriculture"}, {"id": 2, "name": "Education"}]`,
	"/api/v1/Country.json":      `[{"id": 40, "name": "South Sudan", "iso_code_a": "SSD"}]`,
	"/api/v1/Organization.json": `[{"id": 7, "name": "UNICEF", "abbreviation": "UNICEF"}]`,
	"/api/v1/Emergency/country/SSD.json": `[
		{"id": 300, "title": "South Sudan Crisis", "country": "South Sudan", "year": 2013}
	]`,
	"/api/v1/Appeal/country/SSD.json": `[
		{"id": 942, "title": "SSD CAP 2013", "start_date": "2013-01-01", "end_date": "2013-12-31", "launch_date": "2012-12-14"},
		{"id": 943, "title": "SSD Flash", "start_date": "2013-06-01", "end_date": "2013-09-30", "launch_date": "2013-05-20"}
	]`,
	"/api/v1/Project/appeal/942.json": `[
		{"id": 1, "title": "Water points", "end_date": "2013-12-31", "last_updated_datetime": "2013-03-01T10:00:00"},
		{"id": 2, "title": "Seed distribution", "end_date": "2013-12-31", "last_updated_datetime": "2013-04-02T09:30:00"},
		{"id": 3, "title": "Mobile clinics", "end_date": "2013-12-31", "last_updated_datetime": "2013-05-11T16:45:00"}
	]`,
	"/api/v1/Project/appeal/943.json": `[]`,
	"/api/v1/Contribution/emergency/300.json": `[
		{"id": 51, "donor": "Sweden", "amount": 500000, "decision_date": "2013-02-01"},
		{"id": 52, "donor": "Norway", "amount": 250000, "decision_date": "2013-02-15"}
	]`,
}

func newTestProducer(t *testing.T, fixtures map[string]string, opts Options) *Producer {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := fixtures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client := fts.NewClient(config.APIConfig{
		BaseURL: server.URL + "/api/v1/",
		Timeout: 5 * time.Second,
	}, nil)

	return NewProducer(client, opts, nil)
}

func TestRun_WritesFullOutputTree(t *testing.T) {
	outputDir := t.TempDir()
	producer := newTestProducer(t, ftsFixtures, Options{
		OutputDir: outputDir,
		Countries: []string{"SSD"},
	})

	require.NoError(t, producer.Run(context.Background()))

	globalDir := filepath.Join(outputDir, "fts", "global")
	for _, name := range []string{"fts_sectors.csv", "fts_countries.csv", "fts_organizations.csv"} {
		_, err := os.Stat(filepath.Join(globalDir, name))
		assert.NoError(t, err, name)
	}

	countryDir := filepath.Join(outputDir, "fts", "per_country", "SSD")
	for _, name := range []string{
		"fts_SSD_emergencies.csv",
		"fts_SSD_appeals.csv",
		"fts_SSD_projects.csv",
		"fts_SSD_contributions.csv",
	} {
		_, err := os.Stat(filepath.Join(countryDir, name))
		assert.NoError(t, err, name)
	}
}

func TestProduceProjectsCSV_SkipsEmptyAppeals(t *testing.T) {
	outputDir := t.TempDir()
	producer := newTestProducer(t, ftsFixtures, Options{
		OutputDir: outputDir,
		Countries: []string{"SSD"},
	})

	require.NoError(t, producer.Run(context.Background()))

	path := filepath.Join(outputDir, "fts", "per_country", "SSD", "fts_SSD_projects.csv")
	records := readCSV(t, path)

	// header plus exactly the three projects of appeal 942; appeal 943 is empty
	require.Len(t, records, 4)
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "3", records[3][0])
}

func TestProduceCountryCSVs_NoAppealsWritesHeaderOnlyProjects(t *testing.T) {
	fixtures := map[string]string{
		"/api/v1/Emergency/country/XXX.json": `[]`,
		"/api/v1/Appeal/country/XXX.json":    `[]`,
	}

	outputDir := t.TempDir()
	producer := newTestProducer(t, fixtures, Options{OutputDir: outputDir})
	require.NoError(t, config.NewPaths(outputDir).EnsureDirectories())

	require.NoError(t, producer.ProduceCountryCSVs(context.Background(), "XXX"))

	records := readCSV(t, filepath.Join(outputDir, "fts", "per_country", "XXX", "fts_XXX_projects.csv"))
	require.Len(t, records, 1)
	assert.Equal(t, "id", records[0][0])

	records = readCSV(t, filepath.Join(outputDir, "fts", "per_country", "XXX", "fts_XXX_contributions.csv"))
	require.Len(t, records, 1)
}

func TestRun_FetchFailureAborts(t *testing.T) {
	// no fixtures at all: the very first fetch 404s and the run stops
	producer := newTestProducer(t, map[string]string{}, Options{
		OutputDir: t.TempDir(),
		Countries: []string{"SSD"},
	})

	err := producer.Run(context.Background())
	require.Error(t, err)
}

func TestRun_WorkbookEnabled(t *testing.T) {
	outputDir := t.TempDir()
	producer := newTestProducer(t, ftsFixtures, Options{
		OutputDir: outputDir,
		Countries: []string{"SSD"},
		Workbook:  true,
	})

	require.NoError(t, producer.Run(context.Background()))

	_, err := os.Stat(filepath.Join(outputDir, "fts", "per_country", "SSD", "fts_SSD.xlsx"))
	assert.NoError(t, err)
}

func TestProduceContributionsCSV_GatheredAcrossEmergencies(t *testing.T) {
	outputDir := t.TempDir()
	producer := newTestProducer(t, ftsFixtures, Options{
		OutputDir: outputDir,
		Countries: []string{"SSD"},
	})

	require.NoError(t, producer.Run(context.Background()))

	path := filepath.Join(outputDir, "fts", "per_country", "SSD", "fts_SSD_contributions.csv")
	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, "51", records[1][0])
	assert.Equal(t, "52", records[2][0])
}
