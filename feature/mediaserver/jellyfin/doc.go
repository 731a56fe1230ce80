// Package jellyfin adapts a Jellyfin server to the reconcile.Provider contract.
//
// Every item query is scoped to a user. The user comes from configuration or,
// when unset, is the first user the server lists; it is looked up once per
// provider. Music libraries are the user's views with collection type music.
package jellyfin
