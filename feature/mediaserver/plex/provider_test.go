package plex_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"releasedrop/core/reconcile"
	"releasedrop/core/transport"
	"releasedrop/feature/mediaserver/plex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sections = `{"MediaContainer":{"size":3,"Directory":[
	{"key":"1","title":"Music","type":"artist"},
	{"key":"2","title":"Movies","type":"movie"},
	{"key":"3","title":"Archive","type":"artist"}]}}`

const artists = `{"MediaContainer":{"size":2,"Metadata":[
	{"ratingKey":"100","key":"/library/metadata/100/children","title":"Michael Jackson"},
	{"ratingKey":"101","key":"/library/metadata/101/children","title":"Janet Jackson"}]}}`

const albums = `{"MediaContainer":{"size":3,"Metadata":[
	{"ratingKey":"200","key":"/library/metadata/200/children","title":"Thriller","parentTitle":"Michael Jackson"},
	{"ratingKey":"201","key":"/library/metadata/201/children","title":"Bad","parentTitle":"michael jackson"},
	{"ratingKey":"300","key":"/library/metadata/300/children","title":"Rhythm Nation","parentTitle":"Janet Jackson"}]}}`

const tracks = `{"MediaContainer":{"size":2,"Metadata":[
	{"ratingKey":"2001","title":"Billie Jean"},
	{"ratingKey":"2002","title":"Beat It"}]}}`

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/library/sections", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sections))
	})
	mux.HandleFunc("/library/sections/1/all", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("type") {
		case "8":
			_, _ = w.Write([]byte(artists))
		case "9":
			_, _ = w.Write([]byte(albums))
		default:
			http.Error(w, "bad type", http.StatusBadRequest)
		}
	})
	mux.HandleFunc("/library/metadata/200/children", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(tracks))
	})
	mux.HandleFunc("/identity", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"MediaContainer":{"machineIdentifier":"abc","version":"1.40"}}`))
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Plex-Token") != "token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newProvider(url, token string) *plex.Provider {
	return plex.New(plex.Config{URL: url, Token: token}, reconcile.DefaultMatcher(), nil)
}

func TestProvider_ListLibraries(t *testing.T) {
	srv := newServer(t)
	p := newProvider(srv.URL, "token")

	libs, err := p.ListLibraries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Library{{Key: "1", Title: "Music"}, {Key: "3", Title: "Archive"}}, libs)
}

func TestProvider_FindArtist(t *testing.T) {
	srv := newServer(t)
	p := newProvider(srv.URL, "token")

	ref, err := p.FindArtist(context.Background(), "1", "michael jackson")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, reconcile.ArtistRef{ID: "100", Title: "Michael Jackson"}, *ref)

	ref, err = p.FindArtist(context.Background(), "1", "Daft Punk")
	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestProvider_ListAlbums(t *testing.T) {
	srv := newServer(t)
	p := newProvider(srv.URL, "token")

	got, err := p.ListAlbums(context.Background(), "1", reconcile.ArtistRef{ID: "100"}, "Michael Jackson")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, reconcile.Album{
		ID:          "200",
		Key:         "/library/metadata/200/children",
		Title:       "Thriller",
		ArtistTitle: "Michael Jackson",
	}, got[0])
	assert.Equal(t, "Bad", got[1].Title)
}

func TestProvider_ListTracks(t *testing.T) {
	srv := newServer(t)
	p := newProvider(srv.URL, "token")

	got, err := p.ListTracks(context.Background(), reconcile.Album{ID: "200", Key: "/library/metadata/200/children"})
	require.NoError(t, err)
	assert.Equal(t, []reconcile.LibraryTrack{{Title: "Billie Jean"}, {Title: "Beat It"}}, got)

	// Falls back to the children path built from the id.
	got, err = p.ListTracks(context.Background(), reconcile.Album{ID: "200"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProvider_Unauthorized(t *testing.T) {
	srv := newServer(t)
	p := newProvider(srv.URL, "wrong")

	_, err := p.ListLibraries(context.Background())
	var se *transport.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)

	assert.Error(t, p.Ping(context.Background()))
}

func TestProvider_Ping(t *testing.T) {
	srv := newServer(t)
	assert.NoError(t, newProvider(srv.URL, "token").Ping(context.Background()))
}

func TestProvider_Unconfigured(t *testing.T) {
	p := newProvider("", "")
	ctx := context.Background()

	assert.False(t, p.Configured())
	assert.Equal(t, "plex", p.Name())

	libs, err := p.ListLibraries(ctx)
	assert.NoError(t, err)
	assert.Empty(t, libs)

	ref, err := p.FindArtist(ctx, "1", "Michael Jackson")
	assert.NoError(t, err)
	assert.Nil(t, ref)

	got, err := p.ListAlbums(ctx, "1", reconcile.ArtistRef{}, "Michael Jackson")
	assert.NoError(t, err)
	assert.Empty(t, got)

	tr, err := p.ListTracks(ctx, reconcile.Album{ID: "1"})
	assert.NoError(t, err)
	assert.Empty(t, tr)

	assert.ErrorIs(t, p.Ping(ctx), reconcile.ErrNotConfigured)
}

func TestProvider_EndToEnd(t *testing.T) {
	srv := newServer(t)
	engine := reconcile.NewEngine(newProvider(srv.URL, "token"), reconcile.DefaultMatcher())

	res := engine.ReconcileRelease(context.Background(), reconcile.Release{
		AlbumName:  "Thriller",
		ArtistName: "Michael Jackson",
		Tracks:     []reconcile.Track{{Name: "Billie Jean"}, {Name: "Thriller"}},
	})

	assert.True(t, res.InLibrary)
	assert.Equal(t, reconcile.MatchExact, res.MatchType)
	assert.Equal(t, "200", res.LibraryAlbumID)
	assert.Equal(t, []string{"Billie Jean"}, res.AvailableTracks)
	assert.Equal(t, []string{"Thriller"}, res.MissingTracks)
}
