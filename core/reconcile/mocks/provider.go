package mocks

import (
	"context"

	"releasedrop/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Provider is a mock implementation of reconcile.Provider
type Provider struct {
	mock.Mock
}

func (m *Provider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Provider) ListLibraries(ctx context.Context) ([]reconcile.Library, error) {
	args := m.Called(ctx)
	if libs, ok := args.Get(0).([]reconcile.Library); ok {
		return libs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Provider) FindArtist(ctx context.Context, libraryKey, artistName string) (*reconcile.ArtistRef, error) {
	args := m.Called(ctx, libraryKey, artistName)
	if ref, ok := args.Get(0).(*reconcile.ArtistRef); ok {
		return ref, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Provider) ListAlbums(ctx context.Context, libraryKey string, artist reconcile.ArtistRef, artistName string) ([]reconcile.Album, error) {
	args := m.Called(ctx, libraryKey, artist, artistName)
	if albums, ok := args.Get(0).([]reconcile.Album); ok {
		return albums, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Provider) ListTracks(ctx context.Context, album reconcile.Album) ([]reconcile.LibraryTrack, error) {
	args := m.Called(ctx, album)
	if tracks, ok := args.Get(0).([]reconcile.LibraryTrack); ok {
		return tracks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Provider) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
