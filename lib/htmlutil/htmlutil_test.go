package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func cellFromHtml(t *testing.T, fragment string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<table><tr>" + fragment + "</tr></table>",
	))
	require.NoError(t, err)
	cell := doc.Find("td").First()
	require.Equal(t, 1, len(cell.Nodes))
	return cell
}

func TestCellLinesInlineFormatting(t *testing.T) {
	cell := cellFromHtml(t, "<td>ho <b>mess</b><b>o</b></td>")
	require.Equal(t, []string{"ho messo"}, CellLines(cell))
}

func TestCellLinesBreaks(t *testing.T) {
	testCases := []struct {
		fragment string
		expected []string
	}{
		{"<td>a<br>b</td>", []string{"a", "b"}},
		{"<td><br></td>", nil},
		{"<td>solo</td>", []string{"solo"}},
		{"<td></td>", nil},
		{"<td>infinito:<br>gerundio:<br></td>", []string{"infinito:", "gerundio:"}},
		{"<td>ho <i>avut</i>o<br> sei </td>", []string{"ho avuto", "sei"}},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, CellLines(cellFromHtml(t, test.fragment)), test.fragment)
	}
}

func TestGetText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<p>uno <span>due</span> tre</p>",
	))
	require.NoError(t, err)
	p := doc.Find("p").First()
	require.Equal(t, "uno due tre", GetText(p.Nodes[0]))
}
