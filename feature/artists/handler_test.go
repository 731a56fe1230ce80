package artists

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"releasedrop/feature/catalog"
	"releasedrop/feature/releases/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, source catalog.Source) (*fiber.App, *Service) {
	app := fiber.New()
	svc, _ := setupService(t, source)
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)
	return app, svc
}

func TestHandleFollow(t *testing.T) {
	app, _ := setupTestApp(t, nil)
	body := `{"spotify_id":"` + mjSpotifyID + `","name":"Michael Jackson"}`

	req := httptest.NewRequest("POST", "/artists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var artist models.Artist
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&artist))
	assert.Equal(t, "Michael Jackson", artist.Name)

	req = httptest.NewRequest("POST", "/artists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	req = httptest.NewRequest("POST", "/artists", strings.NewReader(`{"spotify_id":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleList(t *testing.T) {
	app, svc := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/artists", nil))
	require.NoError(t, err)
	var artists []models.Artist
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&artists))
	assert.NotNil(t, artists)
	assert.Empty(t, artists)

	follow(t, svc)
	resp, err = app.Test(httptest.NewRequest("GET", "/artists", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&artists))
	require.Len(t, artists, 1)
	assert.Equal(t, mjSpotifyID, artists[0].SpotifyID)
}

func TestHandleRefresh(t *testing.T) {
	app, svc := setupTestApp(t, mjCatalog())
	mj := follow(t, svc)

	resp, err := app.Test(httptest.NewRequest("POST", "/artists/"+strconv.Itoa(int(mj.ID))+"/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var res RefreshResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, RefreshResult{Artist: "Michael Jackson", NewReleases: 2, TotalReleases: 2}, res)

	resp, err = app.Test(httptest.NewRequest("POST", "/artists/999/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/artists/abc/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleRefreshCatalogErrors(t *testing.T) {
	app, svc := setupTestApp(t, nil)
	mj := follow(t, svc)
	resp, err := app.Test(httptest.NewRequest("POST", "/artists/"+strconv.Itoa(int(mj.ID))+"/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	app, svc = setupTestApp(t, &fakeCatalog{albums: map[string][]catalog.Album{}})
	mj = follow(t, svc)
	resp, err = app.Test(httptest.NewRequest("POST", "/artists/"+strconv.Itoa(int(mj.ID))+"/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
}

func TestHandleReleases(t *testing.T) {
	app, svc := setupTestApp(t, mjCatalog())
	mj := follow(t, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/artists/"+strconv.Itoa(int(mj.ID))+"/releases", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var res ArtistReleases
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "Michael Jackson", res.Artist.Name)
	assert.Len(t, res.Releases, 4)
	for _, r := range res.Releases {
		assert.False(t, r.IsNew, r.Name)
	}
}

func TestHandleUnfollow(t *testing.T) {
	app, svc := setupTestApp(t, nil)
	mj := follow(t, svc)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/artists/"+strconv.Itoa(int(mj.ID)), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Unfollowed Michael Jackson", body["message"])

	resp, err = app.Test(httptest.NewRequest("DELETE", "/artists/"+strconv.Itoa(int(mj.ID)), nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
