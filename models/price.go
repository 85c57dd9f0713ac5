package models

import (
	"fmt"
	"strings"
)

// Price é o nível de preço de um negócio, de 1 ($) a 4 ($$$$).
type Price int

const (
	PriceInexpensive Price = iota + 1
	PriceModerate
	PricePricey
	PriceUltraHighEnd
)

// Valid informa se o nível está entre 1 e 4.
func (p Price) Valid() bool {
	return p >= PriceInexpensive && p <= PriceUltraHighEnd
}

func (p Price) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Price(%d)", int(p))
	}
	return strings.Repeat("$", int(p))
}

// PriceFromNumber converte o código numérico (1..4).
func PriceFromNumber(n int) (Price, error) {
	p := Price(n)
	if !p.Valid() {
		return 0, fmt.Errorf("cannot determine price from number: %d", n)
	}
	return p, nil
}

// ParsePrice converte a representação textual ("$", "$$", ...).
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "$") != "" {
		return 0, fmt.Errorf("cannot determine price from text: %q", s)
	}
	return PriceFromNumber(len(s))
}
