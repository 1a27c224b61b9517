package wordreference

import (
	"context"
	"coniugo-backend/lib/htmlutil"
	"coniugo-backend/lib/textutil"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrEmptyVerb = errors.New("empty verb provided")
var ErrSchemaViolation = errors.New("page structure deviates from expected schema")

// Result is the complete outcome of one scrape. It is created fresh
// per call and never mutated afterwards.
type Result struct {
	Queried        string
	URL            string
	Model          string
	PrincipalForms map[string]string
	Auxiliary      Auxiliary
	Conjugations   *Table
}

// MarshalJSON emits null for an absent model or auxiliary.
func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Queried        string            `json:"queried"`
		URL            string            `json:"url"`
		Model          *string           `json:"model"`
		PrincipalForms map[string]string `json:"principal_forms"`
		Auxiliary      *Auxiliary        `json:"auxiliary"`
		Conjugations   *Table            `json:"conjugations"`
	}{
		Queried:        r.Queried,
		URL:            r.URL,
		PrincipalForms: r.PrincipalForms,
		Conjugations:   r.Conjugations,
	}
	if r.Model != "" {
		out.Model = &r.Model
	}
	if r.Auxiliary != AuxiliaryUnknown {
		out.Auxiliary = &r.Auxiliary
	}
	if out.PrincipalForms == nil {
		out.PrincipalForms = map[string]string{}
	}
	if out.Conjugations == nil {
		out.Conjugations = NewTable()
	}
	return json.Marshal(out)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var in struct {
		Queried        string            `json:"queried"`
		URL            string            `json:"url"`
		Model          *string           `json:"model"`
		PrincipalForms map[string]string `json:"principal_forms"`
		Auxiliary      *Auxiliary        `json:"auxiliary"`
		Conjugations   *Table            `json:"conjugations"`
	}
	err := json.Unmarshal(data, &in)
	if err != nil {
		return err
	}

	*r = Result{
		Queried:        in.Queried,
		URL:            in.URL,
		PrincipalForms: in.PrincipalForms,
		Conjugations:   in.Conjugations,
	}
	if in.Model != nil {
		r.Model = *in.Model
	}
	if in.Auxiliary != nil {
		r.Auxiliary = *in.Auxiliary
	}
	if r.PrincipalForms == nil {
		r.PrincipalForms = map[string]string{}
	}
	if r.Conjugations == nil {
		r.Conjugations = NewTable()
	}
	return nil
}

// Scrape fetches and extracts the conjugation page for one verb. The
// returned string slice holds schema validation diagnostics; in
// non-strict mode they are advisory and the result is still usable.
func (c *Client) Scrape(ctx context.Context, verb string) (Result, []string, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	verb = strings.TrimSpace(verb)
	if verb == "" {
		return Result{}, nil, ErrEmptyVerb
	}
	span.SetAttributes(attribute.String("verb", verb))

	link := c.conjugationUrl(verb)
	doc, err := c.fetchDocument(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return Result{}, nil, err
	}

	model, forms := parsePrincipalForms(doc)
	conjugations := parseConjugations(doc)
	auxiliary := detectAuxiliary(conjugations)

	diagnostics := checkExpected(conjugations)
	if len(diagnostics) > 0 {
		if c.strict {
			err := fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(diagnostics, " | "))
			span.RecordError(err)
			span.SetStatus(codes.Error, "schema violation")
			return Result{}, diagnostics, err
		}
		for _, d := range diagnostics {
			slog.WarnContext(ctx, "unexpected page structure", "verb", verb, "detail", d)
		}
	}

	return Result{
		Queried:        verb,
		URL:            link,
		Model:          model,
		PrincipalForms: forms,
		Auxiliary:      auxiliary,
		Conjugations:   conjugations,
	}, diagnostics, nil
}

// parsePrincipalForms reads the summary table holding the infinitive,
// gerund, participles and pronominal form, plus the optional model
// verb title above it. A page without the table yields empty forms.
func parsePrincipalForms(doc *goquery.Document) (model string, forms map[string]string) {
	forms = map[string]string{}

	title := doc.Find("h3").First()
	if title.Length() > 0 {
		model = strings.TrimSpace(title.Text())
	}

	firstRow := doc.Find("table#conjtable").First().Find("tr").First()
	cells := firstRow.Find("td")
	if cells.Length() == 0 {
		return model, forms
	}

	labels := htmlutil.CellLines(cells.Eq(0))
	var values []string
	if cells.Length() > 1 {
		values = htmlutil.CellLines(cells.Eq(1))
	}

	for i, label := range labels {
		label = strings.TrimRight(strings.ToLower(label), ":")
		value := ""
		if i < len(values) {
			value = values[i]
		}
		if label == "forma pronominale" {
			value = strings.TrimSpace(strings.ReplaceAll(value, "⇒", ""))
		}
		forms[label] = value
	}
	return model, forms
}

// parseConjugations walks every mood section (div.aa with an h4
// heading) and each tense table (table.neoConj) within it.
func parseConjugations(doc *goquery.Document) *Table {
	table := NewTable()

	doc.Find("div.aa").Each(func(_ int, section *goquery.Selection) {
		heading := section.Find("h4").First()
		if heading.Length() == 0 {
			return
		}
		mood := strings.ToLower(textutil.Normalize(heading.Text()))
		table.AddMood(mood)

		section.Find("table.neoConj").Each(func(_ int, tenseTable *goquery.Selection) {
			tense := parseTenseName(tenseTable)

			var entries []PersonForm
			tenseTable.Find("tr").Each(func(row int, tr *goquery.Selection) {
				if row == 0 {
					return
				}
				personHeader := tr.Find("th[scope=row]").First()
				formCell := tr.Find("td").First()
				if personHeader.Length() == 0 || formCell.Length() == 0 {
					return
				}
				entries = append(entries, PersonForm{
					Person: textutil.Normalize(personHeader.Text()),
					Form:   textutil.Normalize(formCell.Text()),
				})
			})

			table.SetTense(mood, tense, orderPersons(entries, personOrder(mood)))
		})
	})

	return table
}

func parseTenseName(tenseTable *goquery.Selection) string {
	header := tenseTable.Find("tr").First().Find("th[scope=col]").First()
	if header.Length() == 0 {
		return "?"
	}
	header.Find("span.arrow").Remove()
	tense := strings.ToLower(textutil.Normalize(header.Text()))
	if tense == "" {
		return "?"
	}
	return tense
}

// orderPersons re-emits the extracted rows so labels from the
// canonical list come first, in canonical order, followed by any
// remaining labels in extraction order. Purely presentational, no row
// is dropped or altered.
func orderPersons(entries []PersonForm, canonical []string) []PersonForm {
	// a repeated person label keeps its first position and last value
	index := map[string]int{}
	var unique []PersonForm
	for _, e := range entries {
		if i, seen := index[e.Person]; seen {
			unique[i].Form = e.Form
			continue
		}
		index[e.Person] = len(unique)
		unique = append(unique, e)
	}

	ordered := make([]PersonForm, 0, len(unique))
	emitted := map[string]bool{}
	for _, person := range canonical {
		i, ok := index[person]
		if !ok {
			continue
		}
		ordered = append(ordered, unique[i])
		emitted[person] = true
	}
	for _, e := range unique {
		if !emitted[e.Person] {
			ordered = append(ordered, e)
		}
	}
	return ordered
}

// detectAuxiliary classifies the verb's auxiliary from the first
// person passato prossimo. A heuristic, it only works because of the
// fixed structure of the source pages.
func detectAuxiliary(table *Table) Auxiliary {
	form, ok := table.Form("tempi composti", "passato prossimo", "io")
	if !ok {
		return AuxiliaryUnknown
	}
	form = strings.ToLower(form)
	for _, prefix := range []string{"sono ", "ero ", "sarò "} {
		if strings.HasPrefix(form, prefix) {
			return AuxiliaryEssere
		}
	}
	for _, prefix := range []string{"ho ", "avevo ", "avrò "} {
		if strings.HasPrefix(form, prefix) {
			return AuxiliaryAvere
		}
	}
	return AuxiliaryUnknown
}

// checkExpected compares extracted coverage against the expected
// schema and describes every gap.
func checkExpected(table *Table) []string {
	var messages []string
	for _, expected := range expectedSchema {
		if !table.HasMood(expected.Mood) {
			messages = append(messages, fmt.Sprintf("missing mood: %s", expected.Mood))
			continue
		}
		got := map[string]bool{}
		for _, tense := range table.Tenses(expected.Mood) {
			got[tense] = true
		}
		var missing []string
		for _, tense := range expected.Tenses {
			if !got[tense] {
				missing = append(missing, tense)
			}
		}
		if len(missing) > 0 {
			messages = append(messages, fmt.Sprintf(
				"missing tense(s) in %s: %s",
				expected.Mood, strings.Join(missing, ", "),
			))
		}
	}
	return messages
}
