package wordreference

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PersonForm is one extracted row of a tense table: the person label
// (exact text, case preserved, possibly empty for imperatives) and the
// normalized conjugated form.
type PersonForm struct {
	Person string
	Form   string
}

type personList struct {
	order []string
	forms map[string]string
}

func newPersonList() *personList {
	return &personList{forms: map[string]string{}}
}

func (p *personList) set(person, form string) {
	if _, seen := p.forms[person]; !seen {
		p.order = append(p.order, person)
	}
	p.forms[person] = form
}

type tenseList struct {
	order   []string
	persons map[string]*personList
}

func newTenseList() *tenseList {
	return &tenseList{persons: map[string]*personList{}}
}

func (t *tenseList) ensure(tense string) *personList {
	existing, seen := t.persons[tense]
	if seen {
		return existing
	}
	created := newPersonList()
	t.order = append(t.order, tense)
	t.persons[tense] = created
	return created
}

// Table is the three-level mood → tense → person → form mapping.
// Mood and tense keys keep first-seen insertion order; person order is
// whatever order entries were Set in. The zero value is not usable,
// construct with NewTable.
type Table struct {
	order []string
	moods map[string]*tenseList
}

func NewTable() *Table {
	return &Table{moods: map[string]*tenseList{}}
}

// AddMood registers a mood with no tenses yet. Re-adding an existing
// mood is a no-op, repeated page sections for one mood merge.
func (t *Table) AddMood(mood string) {
	t.ensureMood(mood)
}

func (t *Table) ensureMood(mood string) *tenseList {
	existing, seen := t.moods[mood]
	if seen {
		return existing
	}
	created := newTenseList()
	t.order = append(t.order, mood)
	t.moods[mood] = created
	return created
}

// SetTense replaces the contents of a tense with the given entries,
// preserving the tense's first-seen position if it already exists.
func (t *Table) SetTense(mood, tense string, entries []PersonForm) {
	persons := t.ensureMood(mood).ensure(tense)
	persons.order = nil
	persons.forms = map[string]string{}
	for _, e := range entries {
		persons.set(e.Person, e.Form)
	}
}

// Set inserts or overwrites a single form. A new person is appended at
// the end of its tense.
func (t *Table) Set(mood, tense, person, form string) {
	t.ensureMood(mood).ensure(tense).set(person, form)
}

func (t *Table) Moods() []string {
	return t.order
}

func (t *Table) HasMood(mood string) bool {
	_, ok := t.moods[mood]
	return ok
}

func (t *Table) Tenses(mood string) []string {
	tenses, ok := t.moods[mood]
	if !ok {
		return nil
	}
	return tenses.order
}

func (t *Table) Persons(mood, tense string) []string {
	tenses, ok := t.moods[mood]
	if !ok {
		return nil
	}
	persons, ok := tenses.persons[tense]
	if !ok {
		return nil
	}
	return persons.order
}

func (t *Table) Form(mood, tense, person string) (string, bool) {
	tenses, ok := t.moods[mood]
	if !ok {
		return "", false
	}
	persons, ok := tenses.persons[tense]
	if !ok {
		return "", false
	}
	form, ok := persons.forms[person]
	return form, ok
}

func (t *Table) Empty() bool {
	return t == nil || len(t.order) == 0
}

// MarshalJSON renders the nested object with keys in table order,
// which encoding/json's map marshalling would not preserve.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mood := range t.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJsonKey(&buf, mood); err != nil {
			return nil, err
		}
		tenses := t.moods[mood]
		buf.WriteByte('{')
		for j, tense := range tenses.order {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJsonKey(&buf, tense); err != nil {
				return nil, err
			}
			persons := tenses.persons[tense]
			buf.WriteByte('{')
			for k, person := range persons.order {
				if k > 0 {
					buf.WriteByte(',')
				}
				if err := writeJsonKey(&buf, person); err != nil {
					return nil, err
				}
				form, err := json.Marshal(persons.forms[person])
				if err != nil {
					return nil, err
				}
				buf.Write(form)
			}
			buf.WriteByte('}')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJsonKey(buf *bytes.Buffer, key string) error {
	encoded, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	buf.WriteByte(':')
	return nil
}

// UnmarshalJSON reads the nested object back, keeping key order as it
// appears in the document.
func (t *Table) UnmarshalJSON(data []byte) error {
	*t = *NewTable()

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		mood, err := readKey(dec)
		if err != nil {
			return err
		}
		t.AddMood(mood)
		if err := expectDelim(dec, '{'); err != nil {
			return err
		}
		for dec.More() {
			tense, err := readKey(dec)
			if err != nil {
				return err
			}
			if err := expectDelim(dec, '{'); err != nil {
				return err
			}
			var entries []PersonForm
			for dec.More() {
				person, err := readKey(dec)
				if err != nil {
					return err
				}
				formToken, err := dec.Token()
				if err != nil {
					return err
				}
				form, ok := formToken.(string)
				if !ok {
					return fmt.Errorf("conjugated form must be a string, got %v", formToken)
				}
				entries = append(entries, PersonForm{Person: person, Form: form})
			}
			if err := expectDelim(dec, '}'); err != nil {
				return err
			}
			t.SetTense(mood, tense, entries)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, delim json.Delim) error {
	token, err := dec.Token()
	if err != nil {
		return err
	}
	got, ok := token.(json.Delim)
	if !ok || got != delim {
		return fmt.Errorf("expected %q, got %v", delim.String(), token)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	token, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := token.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", token)
	}
	return key, nil
}
