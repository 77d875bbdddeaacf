package extract

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/factgate/factgate/internal/document"
	"github.com/factgate/factgate/internal/model"
)

func parseDoc(t *testing.T, content string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

const venueDoc = `---
title: 경복궁 방문 가이드
venue: 경복궁
address: 161 Sajik-ro, Jongno-gu, Seoul
openingHours: "09:00-18:00"
ticketPrice: 3000원
---

# 경복궁

운영시간: 09:00-18:00 (매주 화요일 휴무)

입장료는 3,000원입니다. 지하철 3호선 경복궁역 5번 출구에서 도보 5분.
`

func TestExtract_FrontmatterClaims(t *testing.T) {
	ext := NewExtractor()
	claims := ext.Extract(parseDoc(t, venueDoc))

	if len(claims) == 0 {
		t.Fatal("Expected claims from a venue document")
	}

	byType := map[model.ClaimType]model.Claim{}
	for _, c := range claims {
		if _, dup := byType[c.Type]; !dup {
			byType[c.Type] = c
		}
	}

	venue, ok := byType[model.ClaimVenueExists]
	if !ok {
		t.Fatal("Expected a venue_exists claim")
	}
	if venue.Value != "경복궁" {
		t.Errorf("Unexpected venue value %q", venue.Value)
	}
	if venue.Severity != model.SeverityCritical {
		t.Errorf("venue_exists must be critical, got %s", venue.Severity)
	}

	if loc, ok := byType[model.ClaimLocation]; !ok {
		t.Error("Expected a location claim")
	} else if loc.Severity != model.SeverityCritical {
		t.Errorf("location must be critical, got %s", loc.Severity)
	}

	if hours, ok := byType[model.ClaimHours]; !ok {
		t.Error("Expected an hours claim")
	} else if hours.Severity != model.SeverityMajor {
		t.Errorf("hours must be major, got %s", hours.Severity)
	}

	if price, ok := byType[model.ClaimPrice]; !ok {
		t.Error("Expected a price claim")
	} else if price.Severity != model.SeverityMinor {
		t.Errorf("price must be minor, got %s", price.Severity)
	}
}

func TestExtract_OrderingAndIDs(t *testing.T) {
	ext := NewExtractor()
	claims := ext.Extract(parseDoc(t, venueDoc))

	// Severity rank ascending, ties broken by type lexicographic
	for i := 1; i < len(claims); i++ {
		prev, cur := claims[i-1], claims[i]
		if prev.Severity.Rank() > cur.Severity.Rank() {
			t.Errorf("Severity order violated at %d: %s before %s", i, prev.Severity, cur.Severity)
		}
		if prev.Severity.Rank() == cur.Severity.Rank() && prev.Type > cur.Type {
			t.Errorf("Type order violated at %d: %s before %s", i, prev.Type, cur.Type)
		}
	}

	for i, c := range claims {
		want := fmt.Sprintf("claim-%03d", i+1)
		if c.ID != want {
			t.Errorf("Claim %d: expected ID %s, got %s", i, want, c.ID)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	ext := NewExtractor()
	doc := parseDoc(t, venueDoc)

	first := ext.Extract(doc)
	for run := 0; run < 5; run++ {
		if got := ext.Extract(doc); !reflect.DeepEqual(got, first) {
			t.Fatalf("Extraction not deterministic on run %d:\n%+v\nvs\n%+v", run, got, first)
		}
	}
}

func TestExtract_DedupeKeepsLowerRank(t *testing.T) {
	// Hours appear in both front matter (major, per type) and body; the
	// duplicate must collapse to one claim
	ext := NewExtractor()
	claims := ext.Extract(parseDoc(t, venueDoc))

	count := 0
	for _, c := range claims {
		if c.Type == model.ClaimHours && c.Value == "09:00-18:00" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected hours value deduplicated, got %d instances", count)
	}
}

func TestExtract_DedupeCaseInsensitive(t *testing.T) {
	// Same hours value in front matter and body, differing only in case
	doc := parseDoc(t, `---
venue: Seoul Museum
hours: Closed on Mondays
---
The museum is closed on mondays.
`)
	claims := NewExtractor().Extract(doc)

	count := 0
	for _, c := range claims {
		if c.Type == model.ClaimHours {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected case-insensitive dedupe to one hours claim, got %d", count)
	}
}

func TestExtract_CodeFencesSkipped(t *testing.T) {
	doc := parseDoc(t, "---\nvenue: Test Hall\n---\n" +
		"```\n운영시간: 09:00-18:00\n입장료 5,000원\n```\n\nPlain text.\n")
	claims := NewExtractor().Extract(doc)

	for _, c := range claims {
		if c.Type == model.ClaimHours || c.Type == model.ClaimPrice {
			t.Errorf("Claim extracted from code fence: %+v", c)
		}
	}
}

func TestExtract_LineNumbers(t *testing.T) {
	doc := parseDoc(t, "---\nvenue: Test Hall\n---\nline one\n운영시간: 10:00-17:00\n")
	claims := NewExtractor().Extract(doc)

	found := false
	for _, c := range claims {
		if c.Type == model.ClaimHours {
			found = true
			// Front matter is lines 1-3, body starts at 4, hours on line 5
			if c.LineNumber != 5 {
				t.Errorf("Expected line 5, got %d", c.LineNumber)
			}
		}
	}
	if !found {
		t.Fatal("Expected an hours claim from the body")
	}
}

func TestExtract_HTMLStripped(t *testing.T) {
	doc := parseDoc(t, "---\nvenue: Test Hall\n---\n<p>입장료 <strong>5,000원</strong></p>\n")
	claims := NewExtractor().Extract(doc)

	found := false
	for _, c := range claims {
		if c.Type == model.ClaimPrice {
			found = true
		}
	}
	if !found {
		t.Error("Expected price claim from HTML-wrapped text")
	}
}

func TestNeedsFactCheck(t *testing.T) {
	ext := NewExtractor()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"venue metadata", "---\nvenue: 경복궁\n---\nAn essay.\n", true},
		{"location metadata", "---\naddress: Seoul\n---\nText.\n", true},
		{"event metadata", "---\neventDate: 2025-05-01\n---\nText.\n", true},
		{"hours in body", "No metadata here.\n운영시간: 09:00-18:00\n", true},
		{"price in body", "Entry costs 5,000원 per adult.\n", true},
		{"opinion piece", "---\ntitle: Thoughts on travel\n---\nI think travel broadens the mind.\n", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ext.NeedsFactCheck(parseDoc(t, tt.content)); got != tt.want {
				t.Errorf("NeedsFactCheck = %v, want %v", got, tt.want)
			}
		})
	}
}
