package jellyfin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"releasedrop/core/reconcile"
	"releasedrop/feature/mediaserver/jellyfin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	*httptest.Server
	userCalls int32
	users     []map[string]string
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newServer(t *testing.T) *fakeServer {
	fs := &fakeServer{users: []map[string]string{{"Id": "u1", "Name": "admin"}, {"Id": "u2", "Name": "guest"}}}

	mux := http.NewServeMux()
	mux.HandleFunc("/Users", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fs.userCalls, 1)
		writeJSON(w, fs.users)
	})
	mux.HandleFunc("/Users/u1/Views", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"Items": []map[string]string{
			{"Id": "lib-music", "Name": "Music", "CollectionType": "music"},
			{"Id": "lib-movies", "Name": "Movies", "CollectionType": "movies"},
		}})
	})
	mux.HandleFunc("/Users/u1/Items", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("IncludeItemTypes") {
		case "MusicArtist":
			assert.Equal(t, "lib-music", q.Get("ParentId"))
			assert.Equal(t, "true", q.Get("Recursive"))
			assert.Equal(t, "50", q.Get("Limit"))
			writeJSON(w, map[string]any{"Items": []map[string]string{
				{"Id": "a1", "Name": "Daft Punk", "Type": "MusicArtist"},
				{"Id": "a2", "Name": "Daft Punk & Pharrell", "Type": "MusicArtist"},
			}})
		case "MusicAlbum":
			assert.Equal(t, "a1", q.Get("ArtistIds"))
			assert.Equal(t, "500", q.Get("Limit"))
			writeJSON(w, map[string]any{"Items": []map[string]string{
				{"Id": "al1", "Name": "Random Access Memory", "AlbumArtist": "Daft Punk"},
				{"Id": "al2", "Name": "Discovery", "AlbumArtist": "Daft Punk"},
			}})
		case "Audio":
			assert.Equal(t, "al1", q.Get("ParentId"))
			assert.Equal(t, "SortName", q.Get("SortBy"))
			writeJSON(w, map[string]any{"Items": []map[string]string{
				{"Id": "t1", "Name": "Give Life Back to Music"},
				{"Id": "t2", "Name": "Get Lucky"},
			}})
		default:
			http.Error(w, "unexpected", http.StatusBadRequest)
		}
	})
	mux.HandleFunc("/System/Info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"ServerName": "jf", "Version": "10.9"})
	})

	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Emby-Token") != "key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func newProvider(url string) *jellyfin.Provider {
	return jellyfin.New(jellyfin.Config{URL: url, APIKey: "key"}, reconcile.DefaultMatcher(), nil)
}

func TestProvider_ListLibraries(t *testing.T) {
	srv := newServer(t)
	libs, err := newProvider(srv.URL).ListLibraries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Library{{Key: "lib-music", Title: "Music"}}, libs)
}

func TestProvider_FindArtistAndAlbums(t *testing.T) {
	srv := newServer(t)
	p := newProvider(srv.URL)
	ctx := context.Background()

	ref, err := p.FindArtist(ctx, "lib-music", "Daft Punk")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "a1", ref.ID)

	albums, err := p.ListAlbums(ctx, "lib-music", *ref, "Daft Punk")
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Album{
		{ID: "al1", Title: "Random Access Memory", ArtistTitle: "Daft Punk"},
		{ID: "al2", Title: "Discovery", ArtistTitle: "Daft Punk"},
	}, albums)

	tracks, err := p.ListTracks(ctx, albums[0])
	require.NoError(t, err)
	assert.Equal(t, []reconcile.LibraryTrack{{Title: "Give Life Back to Music"}, {Title: "Get Lucky"}}, tracks)
}

func TestProvider_UserResolvedOnce(t *testing.T) {
	srv := newServer(t)
	p := newProvider(srv.URL)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.ListLibraries(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	_, err := p.ListLibraries(context.Background())
	require.NoError(t, err)

	// Concurrent callers may each start before the first lookup lands, but
	// once stored the id is never fetched again.
	calls := atomic.LoadInt32(&srv.userCalls)
	assert.GreaterOrEqual(t, calls, int32(1))
	assert.LessOrEqual(t, calls, int32(5))

	before := calls
	_, err = p.ListLibraries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, atomic.LoadInt32(&srv.userCalls))
}

func TestProvider_UserLookupSurvivesCancelledCaller(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Users":
			atomic.AddInt32(&calls, 1)
			time.Sleep(60 * time.Millisecond)
			writeJSON(w, []map[string]string{{"Id": "u1", "Name": "admin"}})
		case "/Users/u1/Views":
			writeJSON(w, map[string]any{"Items": []map[string]string{
				{"Id": "lib-music", "Name": "Music", "CollectionType": "music"},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	p := newProvider(srv.URL)

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = p.ListLibraries(short)
	}()

	time.Sleep(10 * time.Millisecond)
	libs, err := p.ListLibraries(context.Background())
	wg.Wait()

	require.NoError(t, err)
	assert.Len(t, libs, 1)
	assert.ErrorIs(t, firstErr, context.DeadlineExceeded)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestProvider_ConfiguredUser(t *testing.T) {
	srv := newServer(t)
	p := jellyfin.New(jellyfin.Config{URL: srv.URL, APIKey: "key", UserID: "u1"}, reconcile.DefaultMatcher(), nil)

	_, err := p.ListLibraries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&srv.userCalls))
}

func TestProvider_NoUsers(t *testing.T) {
	srv := newServer(t)
	srv.users = nil

	_, err := newProvider(srv.URL).ListLibraries(context.Background())
	assert.ErrorIs(t, err, jellyfin.ErrNoUsers)
}

func TestProvider_Ping(t *testing.T) {
	srv := newServer(t)
	assert.NoError(t, newProvider(srv.URL).Ping(context.Background()))

	bad := jellyfin.New(jellyfin.Config{URL: srv.URL, APIKey: "nope"}, reconcile.DefaultMatcher(), nil)
	assert.Error(t, bad.Ping(context.Background()))
}

func TestProvider_Unconfigured(t *testing.T) {
	p := jellyfin.New(jellyfin.Config{}, reconcile.DefaultMatcher(), nil)
	ctx := context.Background()

	assert.Equal(t, "jellyfin", p.Name())
	assert.False(t, p.Configured())

	libs, err := p.ListLibraries(ctx)
	assert.NoError(t, err)
	assert.Empty(t, libs)

	ref, err := p.FindArtist(ctx, "lib", "Daft Punk")
	assert.NoError(t, err)
	assert.Nil(t, ref)

	albums, err := p.ListAlbums(ctx, "lib", reconcile.ArtistRef{ID: "a1"}, "Daft Punk")
	assert.NoError(t, err)
	assert.Empty(t, albums)

	tracks, err := p.ListTracks(ctx, reconcile.Album{ID: "al1"})
	assert.NoError(t, err)
	assert.Empty(t, tracks)

	assert.ErrorIs(t, p.Ping(ctx), reconcile.ErrNotConfigured)
}

func TestProvider_EndToEndSimilar(t *testing.T) {
	srv := newServer(t)
	engine := reconcile.NewEngine(newProvider(srv.URL), reconcile.DefaultMatcher())

	res := engine.ReconcileRelease(context.Background(), reconcile.Release{
		AlbumName:  "Random Access Memories",
		ArtistName: "Daft Punk",
		Tracks:     []reconcile.Track{{Name: "Give Life Back to Music"}, {Name: "Get Lucky"}, {Name: "Contact"}},
	})

	assert.True(t, res.InLibrary)
	assert.Equal(t, reconcile.MatchSimilar, res.MatchType)
	assert.InDelta(t, 38.0/42.0, res.MatchConfidence, 1e-9)
	assert.Equal(t, "al1", res.LibraryAlbumID)
	assert.Equal(t, []string{"Give Life Back to Music", "Get Lucky"}, res.AvailableTracks)
	assert.Equal(t, []string{"Contact"}, res.MissingTracks)
}
