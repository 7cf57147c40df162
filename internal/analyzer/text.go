package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// plainText flattens engine-provided strings, which may carry HTML
// fragments, into whitespace-normalized text.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
