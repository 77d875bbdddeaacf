package model

// Claim represents a verifiable factual assertion extracted from a document
type Claim struct {
	ID         string        `json:"id"`                   // Unique within one document
	Type       ClaimType     `json:"type"`                 // What kind of fact this is
	Text       string        `json:"text"`                 // The raw matched span
	Value      string        `json:"value"`                // Normalized payload (what gets verified)
	Severity   ClaimSeverity `json:"severity"`             // Derived one-to-one from Type
	Context    string        `json:"context,omitempty"`    // Enclosing line from the body
	LineNumber int           `json:"lineNumber,omitempty"` // 1-based line in the source file
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimVenueExists ClaimType = "venue_exists" // The venue itself exists under this name
	ClaimLocation    ClaimType = "location"     // Address or geographic position
	ClaimHours       ClaimType = "hours"        // Opening hours, closed days
	ClaimEventPeriod ClaimType = "event_period" // Start/end dates of an event
	ClaimPrice       ClaimType = "price"        // Ticket or entry price
	ClaimFacilities  ClaimType = "facilities"   // Floors, seats, amenities
	ClaimContact     ClaimType = "contact"      // Phone numbers
	ClaimTransport   ClaimType = "transport"    // Transit stops, exits
	ClaimHeritage    ClaimType = "heritage"     // Heritage/landmark designations
	ClaimTrail       ClaimType = "trail"        // Trail lengths, courses
	ClaimGeneral     ClaimType = "general"      // Anything else worth checking
)

// ClaimSeverity is the criticality band of a claim
type ClaimSeverity string

const (
	SeverityCritical ClaimSeverity = "critical"
	SeverityMajor    ClaimSeverity = "major"
	SeverityMinor    ClaimSeverity = "minor"
)

// Rank orders severities for sorting and dedup conflict resolution (critical first)
func (s ClaimSeverity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityMajor:
		return 1
	default:
		return 2
	}
}

// SeverityOf maps every claim type to its severity. The mapping is total:
// a type outside the known set falls through to minor.
func SeverityOf(t ClaimType) ClaimSeverity {
	switch t {
	case ClaimVenueExists, ClaimLocation:
		return SeverityCritical
	case ClaimHours, ClaimEventPeriod, ClaimHeritage:
		return SeverityMajor
	default:
		return SeverityMinor
	}
}
