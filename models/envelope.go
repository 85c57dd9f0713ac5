package models

// Region descreve o centro da área pesquisada.
type Region struct {
	Center Coordinate `json:"center"`
}

// SearchEnvelope é o corpo de /businesses/search.
type SearchEnvelope struct {
	Total      int        `json:"total"`
	Businesses []Business `json:"businesses"`
	Region     *Region    `json:"region,omitempty"`
}

// ReviewsEnvelope é o corpo de /businesses/{id}/reviews.
type ReviewsEnvelope struct {
	Total             int      `json:"total"`
	Reviews           []Review `json:"reviews"`
	PossibleLanguages []string `json:"possible_languages"`
}
