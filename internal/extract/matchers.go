package extract

import (
	"regexp"

	"github.com/factgate/factgate/internal/model"
)

// Matcher binds a claim type to an ordered list of patterns. Matchers are
// data, not code: coverage is tested matcher-by-matcher and new patterns are
// added to the table, not to the extraction loop.
type Matcher struct {
	Type     model.ClaimType
	Patterns []*regexp.Regexp
}

// DefaultMatchers returns the body-text matcher table. Content is generated
// in Korean and English, so both families of patterns are carried.
func DefaultMatchers() []Matcher {
	return []Matcher{
		{
			Type: model.ClaimLocation,
			Patterns: []*regexp.Regexp{
				// Korean road addresses: 서울특별시 종로구 사직로 161
				regexp.MustCompile(`[가-힣]+(?:특별시|광역시|특별자치시|도)\s*[가-힣]+(?:시|군|구)\s*[가-힣0-9]+(?:로|길)\s*[0-9-]+`),
				regexp.MustCompile(`[가-힣]+(?:시|군|구)\s*[가-힣0-9]+(?:로|길)\s*[0-9-]+`),
				// Western street addresses: 161 Sajik-ro, 5 Main Street
				regexp.MustCompile(`\d+\s+[A-Z][A-Za-z-]+(?:\s[A-Z][A-Za-z-]+)*\s(?:Street|St\.?|Avenue|Ave\.?|Road|Rd\.?|Boulevard|Blvd\.?)\b`),
			},
		},
		{
			Type: model.ClaimHours,
			Patterns: []*regexp.Regexp{
				// HH:MM-HH:MM ranges, with - ~ or – separators
				regexp.MustCompile(`(?:[01]?\d|2[0-3]):[0-5]\d\s*[-~–]\s*(?:[01]?\d|2[0-3]):[0-5]\d`),
				// Closed-day phrases
				regexp.MustCompile(`(?:매주\s*)?[월화수목금토일]요일\s*(?:정기\s*)?휴무`),
				regexp.MustCompile(`(?i)closed\s+(?:on\s+)?(?:mon|tues|wednes|thurs|fri|satur|sun)days?`),
			},
		},
		{
			Type: model.ClaimEventPeriod,
			Patterns: []*regexp.Regexp{
				// Date ranges: 2025.03.01 ~ 2025.05.31, 2025-03-01~05-31
				regexp.MustCompile(`\d{4}[.\-/]\s?\d{1,2}[.\-/]\s?\d{1,2}\.?\s*[-~–]\s*(?:\d{4}[.\-/]\s?)?\d{1,2}[.\-/]\s?\d{1,2}\.?`),
				// Korean date ranges: 3월 1일부터 5월 31일까지
				regexp.MustCompile(`\d{1,2}월\s*\d{1,2}일\s*부터\s*\d{1,2}월\s*\d{1,2}일\s*까지`),
			},
		},
		{
			Type: model.ClaimPrice,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\d{1,3}(?:,\d{3})*\s*원`),
				regexp.MustCompile(`₩\s?\d{1,3}(?:,\d{3})*`),
				regexp.MustCompile(`KRW\s?\d{1,3}(?:,\d{3})*`),
				regexp.MustCompile(`\$\d+(?:\.\d{2})?`),
				regexp.MustCompile(`무료\s*(?:입장|관람|체험)?`),
			},
		},
		{
			Type: model.ClaimContact,
			Patterns: []*regexp.Regexp{
				// Korean phone numbers: 02-1234-5678, 031)123-4567, 010-1234-5678
				regexp.MustCompile(`0\d{1,2}[-.)]\s?\d{3,4}[-.]\s?\d{4}`),
			},
		},
		{
			Type: model.ClaimFacilities,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`지하\s?\d+층`),
				regexp.MustCompile(`(?:지상\s?)?\d+층\s*(?:규모|건물)`),
				regexp.MustCompile(`\d{1,3}(?:,\d{3})*\s*석`),
				regexp.MustCompile(`(?i)\d[\d,]*\s*seats`),
			},
		},
		{
			Type: model.ClaimTransport,
			Patterns: []*regexp.Regexp{
				// Station and exit mentions: 경복궁역 3번 출구, 3호선 안국역
				regexp.MustCompile(`[가-힣0-9]+역\s*\d+번\s*출구`),
				regexp.MustCompile(`\d+호선\s*[가-힣0-9]+역`),
				regexp.MustCompile(`[A-Z][a-z]+(?:\s[A-Z][a-z]+)*\sStation\b`),
			},
		},
		{
			Type: model.ClaimHeritage,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?:국보|보물|사적|명승|천연기념물|등록문화재)\s*제?\s?\d+호`),
				regexp.MustCompile(`(?:유네스코|UNESCO)\s*(?:세계\s?(?:문화\s?)?유산|World\s+Heritage)`),
			},
		},
		{
			Type: model.ClaimTrail,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\d+(?:\.\d+)?\s?km\s*(?:코스|구간|둘레길|산책로|트레일)`),
				regexp.MustCompile(`(?:둘레길|산책로|등산로)\s*\d+(?:\.\d+)?\s?km`),
			},
		},
	}
}
