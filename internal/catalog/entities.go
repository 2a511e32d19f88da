package catalog

// Track represents a track match from the remote catalog.
type Track struct {
	ID         string
	Name       string
	Artist     string
	Album      string
	DurationMS int
	URI        string
}

// Album represents an album match from the remote catalog.
type Album struct {
	ID     string
	Name   string
	Artist string
	Year   int
	URI    string
}

// Artist represents an artist match from the remote catalog.
type Artist struct {
	ID   string
	Name string
	URI  string
}
