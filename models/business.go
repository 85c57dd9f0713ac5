package models

// Coordinate é um par latitude/longitude em graus decimais.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Category representa uma categoria de negócio (ex: alias "tacos", title "Tacos").
type Category struct {
	Alias string `json:"alias" yaml:"alias"`
	Title string `json:"title" yaml:"title"`
}

// Address é o endereço físico de um negócio.
type Address struct {
	Address1       string   `json:"address1" yaml:"address1"`
	Address2       string   `json:"address2,omitempty" yaml:"address2"`
	Address3       string   `json:"address3,omitempty" yaml:"address3"`
	City           string   `json:"city" yaml:"city"`
	State          string   `json:"state" yaml:"state"`
	Country        string   `json:"country" yaml:"country"`
	ZipCode        string   `json:"zip_code,omitempty" yaml:"zip_code"`
	DisplayAddress []string `json:"display_address" yaml:"display_address"`
}

func (a Address) HasAddress2() bool { return a.Address2 != "" }
func (a Address) HasAddress3() bool { return a.Address3 != "" }
func (a Address) HasZipCode() bool { return a.ZipCode != "" }

// Business é o registro resumido devolvido pela busca.
type Business struct {
	ID          string      `json:"id" yaml:"id"`
	Alias       string      `json:"alias,omitempty" yaml:"alias"`
	Name        string      `json:"name" yaml:"name"`
	URL         string      `json:"url,omitempty" yaml:"url"`
	ImageURL    string      `json:"image_url,omitempty" yaml:"image_url"`
	Rating      float64     `json:"rating,omitempty" yaml:"rating"`
	ReviewCount int         `json:"review_count,omitempty" yaml:"review_count"`
	Price       string      `json:"price,omitempty" yaml:"price"`
	Phone       string      `json:"phone,omitempty" yaml:"phone"`
	IsClosed    bool        `json:"is_closed" yaml:"is_closed"`
	Categories  []Category  `json:"categories" yaml:"categories"`
	Coordinates *Coordinate `json:"coordinates,omitempty" yaml:"coordinates"`
	Location    *Address    `json:"location,omitempty" yaml:"location"`
	// Distance em metros a partir do ponto de busca. Ausente fora de buscas por localização.
	Distance *float64 `json:"distance,omitempty" yaml:"distance"`
}

func (b Business) HasCoordinates() bool { return b.Coordinates != nil }
func (b Business) HasLocation() bool { return b.Location != nil }
func (b Business) HasDistance() bool { return b.Distance != nil }

// HasCategory informa se o negócio pertence à categoria com o alias informado.
func (b Business) HasCategory(alias string) bool {
	for _, c := range b.Categories {
		if c.Alias == alias {
			return true
		}
	}
	return false
}
