package search

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/raywall/yelp-fusion-toolkit/apierr"
)

// Locale identifica idioma e país dos resultados, no formato "ll_CC".
type Locale struct {
	Code     string
	Country  string
	Language string
}

// Locales suportados pela API.
var (
	LocaleCzechRepublic      = Locale{"cs_CZ", "Czech Republic", "Czech"}
	LocaleDenmark            = Locale{"da_DK", "Denmark", "Danish"}
	LocaleAustria            = Locale{"de_AT", "Austria", "German"}
	LocaleSwitzerlandGerman  = Locale{"de_CH", "Switzerland", "German"}
	LocaleGermany            = Locale{"de_DE", "Germany", "German"}
	LocaleAustralia          = Locale{"en_AU", "Australia", "English"}
	LocaleBelgiumEnglish     = Locale{"en_BE", "Belgium", "English"}
	LocaleCanadaEnglish      = Locale{"en_CA", "Canada", "English"}
	LocaleSwitzerlandEnglish = Locale{"en_CH", "Switzerland", "English"}
	LocaleUnitedKingdom      = Locale{"en_GB", "United Kingdom", "English"}
	LocaleHongKongEnglish    = Locale{"en_HK", "Hong Kong", "English"}
	LocaleIreland            = Locale{"en_IE", "Republic of Ireland", "English"}
	LocaleMalaysiaEnglish    = Locale{"en_MY", "Malaysia", "English"}
	LocaleNewZealand         = Locale{"en_NZ", "New Zealand", "English"}
	LocalePhilippinesEnglish = Locale{"en_PH", "Philippines", "English"}
	LocaleSingapore          = Locale{"en_SG", "Singapore", "English"}
	LocaleUnitedStates       = Locale{"en_US", "United States", "English"}
	LocaleArgentina          = Locale{"es_AR", "Argentina", "Spanish"}
	LocaleChile              = Locale{"es_CL", "Chile", "Spanish"}
	LocaleSpain              = Locale{"es_ES", "Spain", "Spanish"}
	LocaleMexico             = Locale{"es_MX", "Mexico", "Spanish"}
	LocaleFinlandFinnish     = Locale{"fi_FI", "Finland", "Finnish"}
	LocaleBelgiumFrench      = Locale{"fr_BE", "Belgium", "French"}
	LocaleCanadaFrench       = Locale{"fr_CA", "Canada", "French"}
	LocaleSwitzerlandFrench  = Locale{"fr_CH", "Switzerland", "French"}
	LocaleFrance             = Locale{"fr_FR", "France", "French"}
	LocaleSwitzerlandItalian = Locale{"it_CH", "Switzerland", "Italian"}
	LocaleItaly              = Locale{"it_IT", "Italy", "Italian"}
	LocaleJapan              = Locale{"ja_JP", "Japan", "Japanese"}
	LocaleMalaysiaMalay      = Locale{"ms_MY", "Malaysia", "Malay"}
	LocaleNorway             = Locale{"nb_NO", "Norway", "Norwegian"}
	LocaleBelgiumDutch       = Locale{"nl_BE", "Belgium", "Dutch"}
	LocaleNetherlands        = Locale{"nl_NL", "The Netherlands", "Dutch"}
	LocalePoland             = Locale{"pl_PL", "Poland", "Polish"}
	LocaleBrazil             = Locale{"pt_BR", "Brazil", "Portuguese"}
	LocalePortugal           = Locale{"pt_PT", "Portugal", "Portuguese"}
	LocaleFinlandSwedish     = Locale{"sv_FI", "Finland", "Swedish"}
	LocaleSweden             = Locale{"sv_SE", "Sweden", "Swedish"}
	LocaleTurkey             = Locale{"tr_TR", "Turkey", "Turkish"}
	LocaleHongKongChinese    = Locale{"zh_HK", "Hong Kong", "Chinese"}
	LocaleTaiwan             = Locale{"zh_TW", "Taiwan", "Chinese"}
)

var knownLocales = []Locale{
	LocaleCzechRepublic, LocaleDenmark, LocaleAustria, LocaleSwitzerlandGerman, LocaleGermany,
	LocaleAustralia, LocaleBelgiumEnglish, LocaleCanadaEnglish, LocaleSwitzerlandEnglish,
	LocaleUnitedKingdom, LocaleHongKongEnglish, LocaleIreland, LocaleMalaysiaEnglish,
	LocaleNewZealand, LocalePhilippinesEnglish, LocaleSingapore, LocaleUnitedStates,
	LocaleArgentina, LocaleChile, LocaleSpain, LocaleMexico, LocaleFinlandFinnish,
	LocaleBelgiumFrench, LocaleCanadaFrench, LocaleSwitzerlandFrench, LocaleFrance,
	LocaleSwitzerlandItalian, LocaleItaly, LocaleJapan, LocaleMalaysiaMalay, LocaleNorway,
	LocaleBelgiumDutch, LocaleNetherlands, LocalePoland, LocaleBrazil, LocalePortugal,
	LocaleFinlandSwedish, LocaleSweden, LocaleTurkey, LocaleHongKongChinese, LocaleTaiwan,
}

// Locales devolve uma cópia do catálogo de locales conhecidos.
func Locales() []Locale {
	out := make([]Locale, len(knownLocales))
	copy(out, knownLocales)
	return out
}

// LookupLocale procura um locale do catálogo pelo código ("pt_BR").
func LookupLocale(code string) (Locale, bool) {
	for _, l := range knownLocales {
		if strings.EqualFold(l.Code, code) {
			return l, true
		}
	}
	return Locale{}, false
}

// Tag converte o código para uma tag BCP 47 ("pt_BR" -> pt-BR).
func (l Locale) Tag() (language.Tag, error) {
	return language.Parse(strings.Replace(l.Code, "_", "-", 1))
}

func (l Locale) String() string { return l.Code }

func (l Locale) validate() error {
	code := l.Code
	if code == "" {
		return apierr.BadArgument("locale code cannot be empty")
	}
	if len(code) != 5 || code[2] != '_' {
		return apierr.BadArgument("locale must take the form {language code}_{country code}, got %q", code)
	}
	tag, err := l.Tag()
	if err != nil {
		return apierr.Wrap(apierr.KindBadArgument, err, "invalid locale %q", code)
	}
	if _, conf := tag.Region(); conf == language.No {
		return apierr.BadArgument("locale %q has no country", code)
	}
	return nil
}
