package htmlutil

import (
	"bytes"
	"coniugo-backend/lib/textutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// lineBreakToken stands in for <br> elements before text extraction so
// cells can be split on explicit line breaks only. NUL never appears in
// parsed html text content.
const lineBreakToken = "\x00br\x00"

func getTextWithBreaks(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.ElementNode && node.Data == "br" {
		buffer.WriteString(lineBreakToken)
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextWithBreaks(child, buffer)
		child = child.NextSibling
	}
}

// CellLines splits a table cell into normalized logical lines, breaking
// only at <br> elements. Inline formatting tags contribute their text
// as if absent, so "ho <b>mess</b><b>o</b>" stays a single "ho messo"
// line. Empty lines are dropped.
func CellLines(sel *goquery.Selection) []string {
	if sel == nil {
		return nil
	}
	var buffer bytes.Buffer
	for _, node := range sel.Nodes {
		getTextWithBreaks(node, &buffer)
	}

	var lines []string
	for _, part := range strings.Split(buffer.String(), lineBreakToken) {
		part = textutil.Normalize(part)
		if part != "" {
			lines = append(lines, part)
		}
	}
	return lines
}
