package jellyfin

const (
	collectionMusic = "music"

	itemMusicArtist = "MusicArtist"
	itemMusicAlbum  = "MusicAlbum"
	itemAudio       = "Audio"

	artistSearchLimit = "50"
	albumListLimit    = "500"
)

type user struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

type item struct {
	ID             string `json:"Id"`
	Name           string `json:"Name"`
	Type           string `json:"Type"`
	CollectionType string `json:"CollectionType"`
	AlbumArtist    string `json:"AlbumArtist"`
}

type itemsResponse struct {
	Items            []item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}

type systemInfo struct {
	ServerName string `json:"ServerName"`
	Version    string `json:"Version"`
	ID         string `json:"Id"`
}
