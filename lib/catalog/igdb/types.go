package igdb

// NamedEntity is the generic {id, name} shape igdb uses for
// platforms, genres, franchises, collections and alternative names.
type NamedEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Image struct {
	ID  int64  `json:"id"`
	Url string `json:"url"`
}

type InvolvedCompany struct {
	ID        int64       `json:"id"`
	Company   NamedEntity `json:"company"`
	Developer bool        `json:"developer"`
	Publisher bool        `json:"publisher"`
}

// Game is one record exactly as the catalog returns it. Optional
// fields stay at their zero value when the source omits them.
type Game struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Summary           string            `json:"summary"`
	FirstReleaseDate  int64             `json:"first_release_date"`
	Cover             *Image            `json:"cover"`
	Platforms         []NamedEntity     `json:"platforms"`
	Genres            []NamedEntity     `json:"genres"`
	InvolvedCompanies []InvolvedCompany `json:"involved_companies"`
	Screenshots       []Image           `json:"screenshots"`
	AlternativeNames  []NamedEntity     `json:"alternative_names"`
	Franchises        []NamedEntity     `json:"franchises"`
	Collections       []NamedEntity     `json:"collections"`
	TotalRating       float64           `json:"total_rating"`
	TotalRatingCount  int64             `json:"total_rating_count"`
	Category          int64             `json:"category"`
	ParentGame        int64             `json:"parent_game"`
}
