package wordreference

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableOrderPreserved(t *testing.T) {
	table := NewTable()
	table.Set("congiuntivo", "presente", "tu", "metta")
	table.Set("indicativo", "presente", "io", "metto")
	table.Set("indicativo", "imperfetto", "io", "mettevo")
	table.Set("indicativo", "presente", "tu", "metti")

	require.Equal(t, []string{"congiuntivo", "indicativo"}, table.Moods())
	require.Equal(t, []string{"presente", "imperfetto"}, table.Tenses("indicativo"))
	require.Equal(t, []string{"io", "tu"}, table.Persons("indicativo", "presente"))

	encoded, err := json.Marshal(table)
	require.NoError(t, err)
	require.Equal(t,
		`{"congiuntivo":{"presente":{"tu":"metta"}},`+
			`"indicativo":{"presente":{"io":"metto","tu":"metti"},`+
			`"imperfetto":{"io":"mettevo"}}}`,
		string(encoded),
	)

	var decoded Table
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, table.Moods(), decoded.Moods())
	require.Equal(t, table.Persons("indicativo", "presente"), decoded.Persons("indicativo", "presente"))
}

func TestTableSetTenseReplaces(t *testing.T) {
	table := NewTable()
	table.SetTense("indicativo", "presente", []PersonForm{{"io", "vecchio"}})
	table.SetTense("indicativo", "futuro semplice", []PersonForm{{"io", "metterò"}})
	table.SetTense("indicativo", "presente", []PersonForm{{"tu", "metti"}})

	// replaced content, original tense position
	require.Equal(t, []string{"presente", "futuro semplice"}, table.Tenses("indicativo"))
	require.Equal(t, []string{"tu"}, table.Persons("indicativo", "presente"))
}

func TestTableEmpty(t *testing.T) {
	table := NewTable()
	require.True(t, table.Empty())

	// a mood with no tenses still counts as extracted content
	table.AddMood("indicativo")
	require.False(t, table.Empty())
	require.True(t, table.HasMood("indicativo"))
	require.Empty(t, table.Tenses("indicativo"))

	encoded, err := json.Marshal(table)
	require.NoError(t, err)
	require.Equal(t, `{"indicativo":{}}`, string(encoded))
}

func TestOrderPersons(t *testing.T) {
	entries := []PersonForm{
		{"voi", "mettete"},
		{"io", "metto"},
		{"tu", "metti"},
	}
	ordered := orderPersons(entries, personOrderDefault)
	require.Equal(t, []PersonForm{
		{"io", "metto"},
		{"tu", "metti"},
		{"voi", "mettete"},
	}, ordered)
}

func TestOrderPersonsUnknownLabelsAppended(t *testing.T) {
	entries := []PersonForm{
		{"egli solo", "mette"},
		{"tu", "metti"},
		{"io", "metto"},
		{"essi tutti", "mettono"},
	}
	ordered := orderPersons(entries, personOrderDefault)
	require.Equal(t, []PersonForm{
		{"io", "metto"},
		{"tu", "metti"},
		{"egli solo", "mette"},
		{"essi tutti", "mettono"},
	}, ordered)
}

func TestDetectAuxiliary(t *testing.T) {
	build := func(ioForm string) *Table {
		table := NewTable()
		table.Set("tempi composti", "passato prossimo", "io", ioForm)
		return table
	}

	require.Equal(t, AuxiliaryEssere, detectAuxiliary(build("sono andato")))
	require.Equal(t, AuxiliaryEssere, detectAuxiliary(build("Ero andato")))
	require.Equal(t, AuxiliaryEssere, detectAuxiliary(build("sarò andato")))
	require.Equal(t, AuxiliaryAvere, detectAuxiliary(build("ho mangiato")))
	require.Equal(t, AuxiliaryAvere, detectAuxiliary(build("avevo mangiato")))
	require.Equal(t, AuxiliaryUnknown, detectAuxiliary(build("boh")))
	require.Equal(t, AuxiliaryUnknown, detectAuxiliary(NewTable()))
}

func TestResultJsonNulls(t *testing.T) {
	result := Result{Queried: "parlare", URL: "https://example.com/conj?v=parlare"}
	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	require.JSONEq(t,
		`{
			"queried": "parlare",
			"url": "https://example.com/conj?v=parlare",
			"model": null,
			"principal_forms": {},
			"auxiliary": null,
			"conjugations": {}
		}`,
		string(encoded),
	)
}

func TestCheckExpected(t *testing.T) {
	table := NewTable()
	for _, expected := range expectedSchema {
		for _, tense := range expected.Tenses {
			table.Set(expected.Mood, tense, "io", "x")
		}
	}
	require.Empty(t, checkExpected(table))

	partial := NewTable()
	partial.Set("indicativo", "presente", "io", "metto")
	messages := checkExpected(partial)
	require.Contains(t, messages, "missing mood: congiuntivo")
	require.Contains(t, messages, "missing tense(s) in indicativo: imperfetto, passato remoto, futuro semplice")
}
