package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/factgate/factgate/internal/document"
	"github.com/factgate/factgate/internal/model"
	"golang.org/x/net/html"
)

// Extractor extracts verifiable claims from a document's front matter and body
type Extractor struct {
	matchers []Matcher
}

// NewExtractor creates an extractor with the default matcher table
func NewExtractor() *Extractor {
	return &Extractor{matchers: DefaultMatchers()}
}

// Extract returns the document's claims, deduplicated and in the stable
// output order: severity ascending (critical first), then type lexicographic.
// The ordering is consumed by report readers and must not change.
func (e *Extractor) Extract(doc *document.Document) []model.Claim {
	var claims []model.Claim

	claims = append(claims, frontmatterClaims(doc)...)
	claims = append(claims, e.bodyClaims(doc)...)

	claims = dedupeClaims(claims)

	sort.SliceStable(claims, func(i, j int) bool {
		if claims[i].Severity.Rank() != claims[j].Severity.Rank() {
			return claims[i].Severity.Rank() < claims[j].Severity.Rank()
		}
		return claims[i].Type < claims[j].Type
	})

	// IDs are assigned after ordering so they are stable for identical input
	for i := range claims {
		claims[i].ID = fmt.Sprintf("claim-%03d", i+1)
	}

	return claims
}

// NeedsFactCheck is a cheap pre-filter: documents with no venue/location/event
// metadata and no fact-like body patterns (opinion pieces, essays) skip
// extraction entirely.
func (e *Extractor) NeedsFactCheck(doc *document.Document) bool {
	if doc.Venue() != "" || doc.Location() != "" || doc.EventPeriod() != "" {
		return true
	}

	body := doc.Body
	for _, m := range e.matchers {
		switch m.Type {
		case model.ClaimHours, model.ClaimLocation, model.ClaimPrice, model.ClaimEventPeriod:
			for _, p := range m.Patterns {
				if p.MatchString(body) {
					return true
				}
			}
		}
	}
	return false
}

// frontmatterClaims pulls structured claims from the known metadata fields
func frontmatterClaims(doc *document.Document) []model.Claim {
	fields := []struct {
		value string
		typ   model.ClaimType
	}{
		{doc.Venue(), model.ClaimVenueExists},
		{doc.Location(), model.ClaimLocation},
		{doc.Hours(), model.ClaimHours},
		{doc.Price(), model.ClaimPrice},
		{doc.EventPeriod(), model.ClaimEventPeriod},
	}

	var claims []model.Claim
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		claims = append(claims, model.Claim{
			Type:     f.typ,
			Text:     f.value,
			Value:    f.value,
			Severity: model.SeverityOf(f.typ),
		})
	}
	return claims
}

// bodyClaims runs the matcher table over the body line by line
func (e *Extractor) bodyClaims(doc *document.Document) []model.Claim {
	lines, offset := doc.BodyLines()

	var claims []model.Claim
	inFence := false

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		text := line
		if strings.Contains(text, "<") {
			text = stripHTML(text)
		}

		context := strings.TrimSpace(line)
		for _, m := range e.matchers {
			for _, p := range m.Patterns {
				for _, match := range p.FindAllString(text, -1) {
					claims = append(claims, model.Claim{
						Type:       m.Type,
						Text:       match,
						Value:      strings.TrimSpace(match),
						Severity:   model.SeverityOf(m.Type),
						Context:    context,
						LineNumber: offset + i,
					})
				}
			}
		}
	}

	return claims
}

// dedupeClaims collapses by (type, lowercased trimmed value), keeping the
// instance with the lower severity rank on conflict
func dedupeClaims(claims []model.Claim) []model.Claim {
	type key struct {
		typ   model.ClaimType
		value string
	}

	index := make(map[key]int)
	var unique []model.Claim

	for _, claim := range claims {
		k := key{claim.Type, strings.ToLower(strings.TrimSpace(claim.Value))}
		if at, seen := index[k]; seen {
			if claim.Severity.Rank() < unique[at].Severity.Rank() {
				unique[at] = claim
			}
			continue
		}
		index[k] = len(unique)
		unique = append(unique, claim)
	}

	return unique
}

// stripHTML extracts visible text from a line containing inline HTML,
// skipping script/style content
func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String()
}
