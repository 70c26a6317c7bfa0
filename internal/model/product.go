package model

// Product backs the array map/filter demos.
type Product struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	InStock bool    `json:"inStock"`
}

// CatFact is the catfact.ninja /fact payload.
type CatFact struct {
	Fact   string `json:"fact"`
	Length int    `json:"length"`
}

// CatImage is the cataas "says" payload when json=true is requested.
type CatImage struct {
	URL string `json:"url"`
}
