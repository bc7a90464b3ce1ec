package ui_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/colombomap/internal/api"
	"github.com/johnwards/colombomap/internal/api/ui"
	"github.com/johnwards/colombomap/internal/testhelpers"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := api.NewRouter()
	require.NoError(t, ui.RegisterRoutes(r, testhelpers.NewCatalog(t), ui.Options{
		MapboxToken: "pk.test",
		MapboxStyle: "mapbox://styles/mapbox/streets-v12",
	}))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func getPage(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

var rowID = regexp.MustCompile(`<tr data-id="([^"]+)"`)

func rowIDs(body string) []string {
	var out []string
	for _, m := range rowID.FindAllStringSubmatch(body, -1) {
		out = append(out, m[1])
	}
	return out
}

func TestRootRedirectsToMap(t *testing.T) {
	srv := setupTestServer(t)

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, ui.MapPath, resp.Header.Get("Location"))
}

func TestMapPage(t *testing.T) {
	srv := setupTestServer(t)

	status, body := getPage(t, srv.URL+"/colombo-map")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "10 condos")
	assert.Contains(t, body, `id="map-boot"`)
	assert.Contains(t, body, `data-mode="clustered"`)
	assert.NotContains(t, body, `class="drawer open"`)

	_, body = getPage(t, srv.URL+"/colombo-map?area=Rajagiriya")
	assert.Contains(t, body, "2 condos")

	_, body = getPage(t, srv.URL+"/colombo-map?status=")
	assert.Contains(t, body, "0 condos")
}

func TestMapPageFocusOpensDrawer(t *testing.T) {
	srv := setupTestServer(t)

	_, body := getPage(t, srv.URL+"/colombo-map?focus=c-009")
	assert.Contains(t, body, `class="drawer open"`)
	assert.Contains(t, body, "Lake Crest")
	assert.Contains(t, body, `data-mode="photo-pinned"`)

	_, body = getPage(t, srv.URL+"/colombo-map?focus=c-999")
	assert.NotContains(t, body, `class="drawer open"`)
}

func TestMapPageInvalidFilter(t *testing.T) {
	srv := setupTestServer(t)

	status, body := getPage(t, srv.URL+"/colombo-map?status=Pre-Selling")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Invalid filter")
}

func TestMasterIndexSorting(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"c-001", "c-002", "c-003", "c-004", "c-005", "c-006", "c-007", "c-008", "c-009", "c-010"}},
		{"?sort=name", []string{"c-001", "c-006", "c-002", "c-008", "c-007", "c-005", "c-009", "c-010", "c-003", "c-004"}},
		{"?sort=floors", []string{"c-009", "c-007", "c-010", "c-005", "c-008", "c-003", "c-004", "c-006", "c-002", "c-001"}},
		{"?sort=-units", []string{"c-007", "c-002", "c-006", "c-001", "c-003", "c-004", "c-009", "c-008", "c-005", "c-010"}},
		{"?sort=bogus", []string{"c-001", "c-002", "c-003", "c-004", "c-005", "c-006", "c-007", "c-008", "c-009", "c-010"}},
		{"?developer=Urban+Towers+PLC&sort=name", []string{"c-009"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, body := getPage(t, srv.URL+"/master-index"+tt.query)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.want, rowIDs(body))
		})
	}
}

func TestMasterIndexLinksToMapFocus(t *testing.T) {
	srv := setupTestServer(t)

	_, body := getPage(t, srv.URL+"/master-index?q=altair")
	assert.Contains(t, body, `href="/colombo-map?focus=c-001"`)
	assert.Contains(t, body, `href="/condominiums/altair-colombo-02"`)
}

func TestCondoDetail(t *testing.T) {
	srv := setupTestServer(t)

	status, body := getPage(t, srv.URL+"/condominiums/altair-colombo-02")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<h1>Altair</h1>")
	assert.Contains(t, body, "68 floors")

	status, body = getPage(t, srv.URL+"/condominiums/harbor-one-colombo-03")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Not found")
	assert.Contains(t, body, `href="/colombo-map"`)
}

func TestLaunchesGrid(t *testing.T) {
	srv := setupTestServer(t)

	status, body := getPage(t, srv.URL+"/new-property-launch")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "6 pre-selling")
	assert.Contains(t, body, "Ready to Buy Projects")
	assert.Contains(t, body, "LKR 65,000,000 – LKR 85,000,000")
	assert.NotContains(t, body, `id="map-boot"`)

	_, body = getPage(t, srv.URL+"/new-property-launch?price=lt50")
	assert.Contains(t, body, "2 pre-selling")

	status, _ = getPage(t, srv.URL+"/new-property-launch?bedroom=two")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLaunchesMapView(t *testing.T) {
	srv := setupTestServer(t)

	_, body := getPage(t, srv.URL+"/new-property-launch?view=map")
	assert.Contains(t, body, `id="map-boot"`)
	assert.NotContains(t, body, "Ready to Buy Projects")

	_, body = getPage(t, srv.URL+"/new-property-launch?view=map&focus=nl-003")
	assert.Contains(t, body, `class="drawer open"`)
	assert.Contains(t, body, "VIMAN Ja-Ela")
}

func TestLaunchesSelectedFromGrid(t *testing.T) {
	srv := setupTestServer(t)

	_, body := getPage(t, srv.URL+"/new-property-launch?selected=nawala-studio-suites")
	assert.Contains(t, body, `class="drawer open"`)
	assert.Contains(t, body, "Studio, 1 BR")
}

func TestLaunchDetail(t *testing.T) {
	srv := setupTestServer(t)

	status, body := getPage(t, srv.URL+"/new-property-launch/harbor-one-colombo-03")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Harbor One")
	assert.Contains(t, body, "https://wa.me/?text=")
	assert.Contains(t, body, "Download brochure")
	assert.Contains(t, body, "Developer website")

	status, body = getPage(t, srv.URL+"/new-property-launch/negombo-beach-villas")
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "Download brochure")

	status, body = getPage(t, srv.URL+"/new-property-launch/altair-colombo-02")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Back to launches")
}

func TestStaticAssets(t *testing.T) {
	srv := setupTestServer(t)

	for _, path := range []string{"/static/css/app.css", "/static/js/map.js", "/static/img/condos/altair.svg", "/static/img/launches/viman-cover.svg"} {
		status, _ := getPage(t, srv.URL+path)
		assert.Equal(t, http.StatusOK, status, path)
	}
}

func TestUnknownPage(t *testing.T) {
	srv := setupTestServer(t)

	status, body := getPage(t, srv.URL+"/penthouses")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Not found")
}
