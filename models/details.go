package models

// OpenTimes é uma janela de funcionamento em um dia da semana.
type OpenTimes struct {
	// Day vai de 0 (segunda) a 6 (domingo). O mesmo dia pode aparecer mais de uma vez.
	Day int `json:"day" yaml:"day"`
	// Start e End usam notação 24h sem separador ("0300", "1800").
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	// IsOvernight indica que End pertence ao dia seguinte.
	IsOvernight bool `json:"is_overnight" yaml:"is_overnight"`
}

// Hours agrupa as janelas de um tipo de horário (ex: "REGULAR").
type Hours struct {
	HoursType string      `json:"hours_type" yaml:"hours_type"`
	IsOpenNow bool        `json:"is_open_now" yaml:"is_open_now"`
	Open      []OpenTimes `json:"open" yaml:"open"`
}

// BusinessDetails é o registro completo devolvido por /businesses/{id}.
type BusinessDetails struct {
	ID          string      `json:"id" yaml:"id"`
	Alias       string      `json:"alias,omitempty" yaml:"alias"`
	Name        string      `json:"name" yaml:"name"`
	ImageURL    string      `json:"image_url,omitempty" yaml:"image_url"`
	IsClaimed   bool        `json:"is_claimed" yaml:"is_claimed"`
	IsClosed    bool        `json:"is_closed" yaml:"is_closed"`
	URL         string      `json:"url,omitempty" yaml:"url"`
	Price       string      `json:"price,omitempty" yaml:"price"`
	Rating      float64     `json:"rating,omitempty" yaml:"rating"`
	ReviewCount int         `json:"review_count,omitempty" yaml:"review_count"`
	Phone       string      `json:"phone,omitempty" yaml:"phone"`
	Photos      []string    `json:"photos" yaml:"photos"`
	Hours       []Hours     `json:"hours" yaml:"hours"`
	Categories  []Category  `json:"categories" yaml:"categories"`
	Coordinates *Coordinate `json:"coordinates,omitempty" yaml:"coordinates"`
	Location    *Address    `json:"location,omitempty" yaml:"location"`
}

// PriceLevel converte o campo Price ("$$") para Price. ok é false se ausente ou inválido.
func (d BusinessDetails) PriceLevel() (Price, bool) {
	if d.Price == "" {
		return 0, false
	}
	p, err := ParsePrice(d.Price)
	if err != nil {
		return 0, false
	}
	return p, true
}

// IsOpenNow é verdadeiro quando qualquer grupo de horários reporta aberto.
func (d BusinessDetails) IsOpenNow() bool {
	for _, h := range d.Hours {
		if h.IsOpenNow {
			return true
		}
	}
	return false
}
