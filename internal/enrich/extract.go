// In file: internal/enrich/extract.go
package enrich

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	summaryMaxChars = 800
	awardsMaxChars  = 600
)

var (
	citationRegex   = regexp.MustCompile(`\[[0-9]+\]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// cleanText strips citation markers and collapses whitespace.
func cleanText(text string) string {
	text = citationRegex.ReplaceAllString(text, "")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// splitSentences cuts text after sentence-ending punctuation followed by a
// space.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		if (runes[i] == '.' || runes[i] == '!' || runes[i] == '?') &&
			(runes[i+1] == ' ' || runes[i+1] == '\t') {
			sentences = append(sentences, strings.TrimSpace(string(runes[start:i+1])))
			start = i + 1
		}
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// extractSummary collects up to four sentences (capped at 800 characters)
// from the lead paragraphs of the article body.
func extractSummary(page *goquery.Document) string {
	container := page.Find("div.mw-parser-output").First()
	if container.Length() == 0 {
		return ""
	}

	var sentences []string
	totalLen := 0
	container.ChildrenFiltered("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		raw := cleanText(p.Text())
		if raw == "" {
			return true
		}
		for _, sentence := range splitSentences(raw) {
			sentences = append(sentences, sentence)
			totalLen += len(sentence)
			if len(sentences) >= 4 {
				break
			}
		}
		return len(sentences) < 4 && totalLen < summaryMaxChars
	})

	if len(sentences) > 4 {
		sentences = sentences[:4]
	}
	summary := strings.TrimSpace(strings.Join(sentences, " "))
	if len(summary) > summaryMaxChars {
		summary = summary[:summaryMaxChars]
	}
	return summary
}

// extractInfobox reads the article infobox, trying the table layouts first
// and then the div-based layouts some articles use.
func extractInfobox(page *goquery.Document) map[string]string {
	infobox := make(map[string]string)

	table := page.Find("table.infobox, table.infobox_v2").First()
	if table.Length() > 0 {
		collectTableRows(table, infobox)
		return infobox
	}

	box := page.Find("div.infobox").First()
	if box.Length() == 0 {
		return infobox
	}

	box.Find("div.infobox__row").Each(func(_ int, row *goquery.Selection) {
		key := cleanText(row.Find("div.infobox__label").First().Text())
		val := cleanText(row.Find("div.infobox__value, div.infobox__data").First().Text())
		if key != "" && val != "" {
			infobox[key] = val
		}
	})
	if len(infobox) > 0 {
		return infobox
	}

	labels := box.Find("dt")
	values := box.Find("dd")
	for i := 0; i < labels.Length() && i < values.Length(); i++ {
		key := cleanText(labels.Eq(i).Text())
		val := cleanText(values.Eq(i).Text())
		if key != "" && val != "" {
			infobox[key] = val
		}
	}
	if len(infobox) > 0 {
		return infobox
	}

	collectTableRows(box, infobox)
	return infobox
}

func collectTableRows(sel *goquery.Selection, infobox map[string]string) {
	sel.Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		value := row.Find("td").First()
		if header.Length() == 0 || value.Length() == 0 {
			return
		}
		key := cleanText(header.Text())
		val := cleanText(value.Text())
		if key != "" && val != "" {
			infobox[key] = val
		}
	})
}

// filterInfobox keeps the production facts worth surfacing to the user.
func filterInfobox(infobox map[string]string) map[string]string {
	priority := make(map[string]string)
	for key, value := range infobox {
		lowered := strings.ToLower(key)
		switch {
		case strings.Contains(lowered, "réalisation") || strings.Contains(lowered, "réalisateur"),
			strings.Contains(lowered, "sortie"),
			strings.Contains(lowered, "durée"),
			strings.Contains(lowered, "pays"),
			strings.Contains(lowered, "budget"),
			strings.Contains(lowered, "box-office") || strings.Contains(lowered, "box office"),
			strings.Contains(lowered, "entrées") || strings.Contains(lowered, "entrees"):
			priority[key] = value
		}
	}
	return priority
}

// extractAwards collects the text under the first "Récompenses"/"Prix"
// section heading, capped at 600 characters.
func extractAwards(page *goquery.Document) string {
	var result string
	page.Find("span.mw-headline").EachWithBreak(func(_ int, header *goquery.Selection) bool {
		title := strings.ToLower(strings.TrimSpace(header.Text()))
		if !strings.Contains(title, "récompense") && !strings.Contains(title, "prix") {
			return true
		}

		var chunks []string
		totalLen := 0
		for sibling := header.Parent().Next(); sibling.Length() > 0; sibling = sibling.Next() {
			name := goquery.NodeName(sibling)
			if strings.HasPrefix(name, "h") {
				break
			}
			if name == "p" || name == "ul" || name == "ol" {
				if chunk := cleanText(sibling.Text()); chunk != "" {
					chunks = append(chunks, chunk)
					totalLen += len(chunk)
				}
			}
			if totalLen >= awardsMaxChars {
				break
			}
		}

		result = strings.TrimSpace(strings.Join(chunks, " "))
		if len(result) > awardsMaxChars {
			result = result[:awardsMaxChars]
		}
		return false
	})
	return result
}
