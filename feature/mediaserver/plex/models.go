package plex

// Plex library section types and metadata types.
const (
	sectionTypeArtist = "artist"
	metadataArtist    = "8"
	metadataAlbum     = "9"
)

type envelope struct {
	MediaContainer mediaContainer `json:"MediaContainer"`
}

type mediaContainer struct {
	Size      int         `json:"size"`
	Directory []directory `json:"Directory"`
	Metadata  []metadata  `json:"Metadata"`
}

type directory struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type metadata struct {
	RatingKey   string `json:"ratingKey"`
	Key         string `json:"key"`
	Title       string `json:"title"`
	ParentTitle string `json:"parentTitle"`
	LeafCount   int    `json:"leafCount"`
}

type identity struct {
	MediaContainer struct {
		MachineIdentifier string `json:"machineIdentifier"`
		Version           string `json:"version"`
	} `json:"MediaContainer"`
}
