package wordreference

// DefaultBaseUrl is the WordReference Italian conjugation endpoint.
// The verb is attached as the "v" query parameter.
const DefaultBaseUrl = "https://www.wordreference.com/conj/itverbs.aspx"

const userAgent = "coniugo/1.0 (+contact: you@example.com)"

type Auxiliary string

const (
	AuxiliaryAvere   Auxiliary = "avere"
	AuxiliaryEssere  Auxiliary = "essere"
	AuxiliaryUnknown Auxiliary = ""
)

// moodSchema is the structure WordReference renders for every Italian
// verb. The validator reports deviations from it; the page remains the
// source of truth for what actually gets extracted.
type moodSchema struct {
	Mood   string
	Tenses []string
}

var expectedSchema = []moodSchema{
	{"indicativo", []string{"presente", "imperfetto", "passato remoto", "futuro semplice"}},
	{"tempi composti", []string{"passato prossimo", "trapassato prossimo", "trapassato remoto", "futuro anteriore"}},
	{"congiuntivo", []string{"presente", "imperfetto", "passato", "trapassato"}},
	{"condizionale", []string{"presente", "passato"}},
	{"imperativo", []string{"presente"}},
}

// Stable person label orders. Rows extracted from the page are
// re-emitted in this order, with unrecognized labels appended in their
// original position.
var personOrderDefault = []string{
	"io", "tu", "lui, lei, Lei, egli", "noi", "voi", "loro, Loro, essi",
}

var personOrderImperative = []string{
	"", "(tu)", "(Lei)", "(noi)", "(voi)", "(Loro)",
}

func personOrder(mood string) []string {
	if mood == "imperativo" {
		return personOrderImperative
	}
	return personOrderDefault
}
