package conjugation

import (
	"coniugo-backend/lib/scrapers/wordreference"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sampleResult() wordreference.Result {
	table := wordreference.NewTable()
	table.Set("indicativo", "presente", "io", "metto")
	table.Set("indicativo", "presente", "tu", "metti")
	table.Set("indicativo", "imperfetto", "io", "mettevo")
	table.Set("congiuntivo", "presente", "io", "metta")
	return wordreference.Result{
		Queried:      "mettere",
		URL:          "https://example.com/conj?v=mettere",
		Auxiliary:    wordreference.AuxiliaryAvere,
		Conjugations: table,
	}
}

func encode(t *testing.T, result wordreference.Result) string {
	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	return string(encoded)
}

func TestNarrowRoundTrip(t *testing.T) {
	result := sampleResult()

	// selections covering every present key change nothing
	narrowed := Narrow(result,
		[]string{"indicativo", "congiuntivo"},
		[]string{"presente", "imperfetto"},
		[]string{"io", "tu"},
		false,
	)
	require.Empty(t, cmp.Diff(encode(t, result), encode(t, narrowed)))

	// selections disjoint from every present key empty the table
	narrowed = Narrow(result, []string{"imperativo"}, nil, nil, false)
	require.True(t, narrowed.Conjugations.Empty())
}

func TestNarrowByPerson(t *testing.T) {
	narrowed := Narrow(sampleResult(), nil, nil, []string{"TU"}, false)

	// tenses and moods left without persons are dropped
	conj := narrowed.Conjugations
	require.Equal(t, []string{"indicativo"}, conj.Moods())
	require.Equal(t, []string{"presente"}, conj.Tenses("indicativo"))
	require.Equal(t, []string{"tu"}, conj.Persons("indicativo", "presente"))
}

func TestNarrowPreservesOrder(t *testing.T) {
	narrowed := Narrow(sampleResult(), nil, []string{"presente"}, nil, false)
	require.Equal(t, []string{"indicativo", "congiuntivo"}, narrowed.Conjugations.Moods())
	require.Equal(t, []string{"io", "tu"}, narrowed.Conjugations.Persons("indicativo", "presente"))
}

func TestNarrowFullBypass(t *testing.T) {
	result := sampleResult()
	narrowed := Narrow(result, []string{"imperativo"}, nil, nil, true)
	require.Empty(t, cmp.Diff(encode(t, result), encode(t, narrowed)))
}

func TestNarrowDoesNotMutateSource(t *testing.T) {
	result := sampleResult()
	before := encode(t, result)
	Narrow(result, []string{"congiuntivo"}, nil, nil, false)
	require.Equal(t, before, encode(t, result))
}
