package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/adapters/httpapi"
	"github.com/andrescamacho/hideout-go/internal/application/progress/queries"
	"github.com/andrescamacho/hideout-go/internal/application/setup"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

func newTestRouter(t *testing.T, opts httpapi.RouterOptions) http.Handler {
	t.Helper()

	repo := helpers.NewMockProfileRepository()
	stations := helpers.NewMockStationProvider(helpers.SampleStations())

	p, err := progress.NewProfile("main", progress.DefaultPreferences())
	require.NoError(t, err)
	p.ApplyEdition(helpers.SampleStations(), hideout.EditionStandard)
	_, err = p.SetItemCounts("screws", 5, 0)
	require.NoError(t, err)
	repo.AddProfile(p)

	med, err := setup.NewHandlerRegistry(repo, stations, stations, helpers.NewMockPriceRepository(), nil).
		CreateConfiguredMediator()
	require.NoError(t, err)

	return httpapi.NewRouter(med, opts)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestRouter(t, httpapi.RouterOptions{}), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestPooledNeeds(t *testing.T) {
	router := newTestRouter(t, httpapi.RouterOptions{})

	rec := get(t, router, "/api/profiles/main/needs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body queries.GetPooledNeedsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "main", body.ProfileName)
	assert.Equal(t, hideout.ViewModeNextLevel, body.ViewMode)
	require.Len(t, body.Items, 4)

	rec = get(t, router, "/api/profiles/main/needs?outstanding=true")
	require.Equal(t, http.StatusOK, rec.Code)
	body = queries.GetPooledNeedsResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, line := range body.Items {
		assert.NotEqual(t, "screws", line.Item.ID, "screws are fully covered")
	}
}

func TestPooledNeeds_BadInput(t *testing.T) {
	router := newTestRouter(t, httpapi.RouterOptions{})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"unknown profile", "/api/profiles/ghost/needs", http.StatusNotFound},
		{"unknown view mode", "/api/profiles/main/needs?mode=sideways", http.StatusBadRequest},
		{"non boolean outstanding", "/api/profiles/main/needs?outstanding=maybe", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, tt.path)
			assert.Equal(t, tt.status, rec.Code)

			var body httpapi.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestStationStatus(t *testing.T) {
	router := newTestRouter(t, httpapi.RouterOptions{})

	rec := get(t, router, "/api/profiles/main/stations")
	require.Equal(t, http.StatusOK, rec.Code)

	var body queries.GetStationStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Stations, 5)
	assert.False(t, body.Partial)

	rec = get(t, router, "/api/profiles/main/stations/workbench")
	require.Equal(t, http.StatusOK, rec.Code)
	body = queries.GetStationStatusResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Stations, 1)
	assert.True(t, body.Stations[0].Locked)
	assert.True(t, body.Partial)

	rec = get(t, router, "/api/profiles/main/stations/sauna")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfilesAndExport(t *testing.T) {
	router := newTestRouter(t, httpapi.RouterOptions{})

	rec := get(t, router, "/api/profiles/")
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []queries.ProfileSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "main", summaries[0].Name)

	rec = get(t, router, "/api/profiles/main/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	doc, err := progress.ParseExportDocument(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "main", doc.Profile.Name)
}

func TestMetricsMount(t *testing.T) {
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hideout_up 1\n"))
	})
	router := newTestRouter(t, httpapi.RouterOptions{MetricsHandler: metricsHandler, MetricsPath: "/metrics"})

	rec := get(t, router, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hideout_up 1\n", rec.Body.String())

	rec = get(t, newTestRouter(t, httpapi.RouterOptions{}), "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
