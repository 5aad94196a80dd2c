package domain

// Destination is an entry of the static destination catalog.
// The store never owns destinations; itineraries only copy the id and name.
type Destination struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Country string `json:"country" yaml:"country"`
	Image   string `json:"image" yaml:"image"`
}
