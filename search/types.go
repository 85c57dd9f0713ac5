package search

import "fmt"

// Limites impostos pela API.
const (
	MaxLimit          = 50
	MaxOffset         = 1000
	MaxRadiusInMeters = 40000
	MaxOpenAtHour     = 24
)

// SortType define a ordenação dos resultados.
type SortType string

const (
	SortBestMatch   SortType = "best_match"
	SortRating      SortType = "rating"
	SortReviewCount SortType = "review_count"
	SortDistance    SortType = "distance"
)

func (s SortType) Valid() bool {
	switch s {
	case SortBestMatch, SortRating, SortReviewCount, SortDistance:
		return true
	}
	return false
}

// Attribute é um filtro de característica do negócio.
type Attribute string

const (
	AttributeHotAndNew              Attribute = "hot_and_new"
	AttributeDeals                  Attribute = "deals"
	AttributeReservation            Attribute = "reservation"
	AttributeWaitlistReservation    Attribute = "waitlist_reservation"
	AttributeGenderNeutralRestrooms Attribute = "gender_neutral_restrooms"
	AttributeOpenToAll              Attribute = "open_to_all"
	AttributeWheelchairAccessible   Attribute = "wheelchair_accessible"
)

func (a Attribute) Valid() bool {
	switch a {
	case AttributeHotAndNew, AttributeDeals, AttributeReservation, AttributeWaitlistReservation,
		AttributeGenderNeutralRestrooms, AttributeOpenToAll, AttributeWheelchairAccessible:
		return true
	}
	return false
}

type openKind int

const (
	openUnset openKind = iota
	openNow
	openAt
)

// OpenFilter é o filtro de horário: nenhum, aberto agora, ou aberto em uma hora.
// O zero value é "nenhum".
type OpenFilter struct {
	kind openKind
	hour int
}

// OpenNowFilter filtra negócios abertos no momento da busca.
func OpenNowFilter() OpenFilter { return OpenFilter{kind: openNow} }

// OpenAtFilter filtra negócios abertos na hora informada.
func OpenAtFilter(hour int) OpenFilter { return OpenFilter{kind: openAt, hour: hour} }

func (o OpenFilter) IsSet() bool { return o.kind != openUnset }
func (o OpenFilter) IsOpenNow() bool { return o.kind == openNow }

// OpenAt devolve a hora e se o filtro é do tipo "aberto em".
func (o OpenFilter) OpenAt() (int, bool) {
	return o.hour, o.kind == openAt
}

func (o OpenFilter) String() string {
	switch o.kind {
	case openNow:
		return "open_now"
	case openAt:
		return fmt.Sprintf("open_at=%d", o.hour)
	default:
		return "unset"
	}
}
