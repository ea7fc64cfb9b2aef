package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
)

// Script tags probed for an embedded JSON payload, in order.
var embeddedSelectors = []string{
	"#__NEXT_DATA__",
	"script#deals-data",
	"script[type='application/json']",
}

// EmbeddedJSON pulls a JSON payload out of an HTML page. Some feeds serve a
// rendered page whose data lives in a script tag instead of a JSON body.
func EmbeddedJSON(body string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", false
	}

	for _, sel := range embeddedSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" && gjson.Valid(text) {
			return text, true
		}
	}
	return "", false
}

// HTMLTitle returns the <title> of an HTML body, or "" when there is none.
// Error pages usually put something human-readable there, which makes for
// a better failure reason than a bare status code.
func HTMLTitle(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}
	title, _ := findTitle(doc)
	return strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(title, "\n", ""), "\r", ""))
}

func findTitle(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil {
			return n.FirstChild.Data, true
		}
		return "", true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result, ok := findTitle(c); ok {
			return result, ok
		}
	}
	return "", false
}
