package document

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a markdown file with an optional YAML front-matter block.
// The raw front-matter text is preserved byte-for-byte: fixes rewrite the
// body only and the front matter passes through unchanged.
type Document struct {
	Path           string
	FrontmatterRaw string         // Original block including the --- delimiters, empty if none
	Frontmatter    map[string]any // Parsed front-matter keys
	Body           string
	BodyOffset     int // 1-based line number where the body starts in the file
}

// Parse splits content into front matter and body
func Parse(content []byte) (*Document, error) {
	text := string(content)

	doc := &Document{
		Frontmatter: map[string]any{},
		Body:        text,
		BodyOffset:  1,
	}

	// A front-matter block needs an opening delimiter line; a bare "---"
	// with nothing after it is body, same as an unterminated block
	if !strings.HasPrefix(text, "---\n") {
		return doc, nil
	}

	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		// Unterminated front matter: treat the whole file as body
		return doc, nil
	}

	yamlBlock := rest[:end]

	fm := map[string]any{}
	if err := yaml.Unmarshal([]byte(yamlBlock), &fm); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	rawEnd := len("---\n") + end + len("\n---")
	// Consume the newline after the closing delimiter
	if rawEnd < len(text) && text[rawEnd] == '\n' {
		rawEnd++
	}

	doc.FrontmatterRaw = text[:rawEnd]
	doc.Frontmatter = fm
	doc.Body = text[rawEnd:]
	doc.BodyOffset = strings.Count(doc.FrontmatterRaw, "\n") + 1

	return doc, nil
}

// Load reads and parses a document from disk
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Serialize reassembles the document: original front matter plus current body
func (d *Document) Serialize() []byte {
	return []byte(d.FrontmatterRaw + d.Body)
}

// Save writes the document back to the given path
func (d *Document) Save(path string) error {
	if err := os.WriteFile(path, d.Serialize(), 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Title returns the front-matter title, falling back to the first heading
func (d *Document) Title() string {
	if t := d.Field("title"); t != "" {
		return t
	}
	for _, line := range strings.Split(d.Body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// Field returns a front-matter value as a trimmed string, or "" if absent
func (d *Document) Field(keys ...string) string {
	for _, key := range keys {
		if v, ok := d.Frontmatter[key]; ok {
			s := strings.TrimSpace(fmt.Sprintf("%v", v))
			if s != "" && s != "<nil>" {
				return s
			}
		}
	}
	return ""
}

// Claim-bearing front-matter accessors. Each checks the canonical key and
// its accepted alias.

func (d *Document) Venue() string       { return d.Field("venue") }
func (d *Document) Location() string    { return d.Field("address", "location") }
func (d *Document) Hours() string       { return d.Field("openingHours", "hours") }
func (d *Document) Price() string       { return d.Field("ticketPrice", "price") }
func (d *Document) EventPeriod() string { return d.Field("eventDate", "period") }

// BodyLines returns the body split into lines, with the 1-based file line
// number of the first body line
func (d *Document) BodyLines() ([]string, int) {
	return strings.Split(d.Body, "\n"), d.BodyOffset
}
