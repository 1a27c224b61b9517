package conjugation

import (
	"coniugo-backend/lib/scrapers/wordreference"
	"coniugo-backend/lib/textutil"
)

// Narrow returns a copy of the result whose conjugation table only
// holds the selected moods, tenses and persons (case-insensitive, an
// empty selection matches everything). Tenses left without persons are
// dropped, then moods left without tenses. Key order is preserved and
// the source result is never mutated. With full set, the result is
// returned as-is.
func Narrow(result wordreference.Result, moods, tenses, persons []string, full bool) wordreference.Result {
	if full || result.Conjugations == nil {
		return result
	}

	moodSet := textutil.NewMatchSet(moods)
	tenseSet := textutil.NewMatchSet(tenses)
	personSet := textutil.NewMatchSet(persons)

	source := result.Conjugations
	narrowed := wordreference.NewTable()
	for _, mood := range source.Moods() {
		if !textutil.Match(moodSet, mood) {
			continue
		}
		for _, tense := range source.Tenses(mood) {
			if !textutil.Match(tenseSet, tense) {
				continue
			}
			for _, person := range source.Persons(mood, tense) {
				if !textutil.Match(personSet, person) {
					continue
				}
				form, _ := source.Form(mood, tense, person)
				narrowed.Set(mood, tense, person, form)
			}
		}
	}

	out := result
	out.Conjugations = narrowed
	return out
}
