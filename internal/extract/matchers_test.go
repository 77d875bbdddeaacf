package extract

import (
	"testing"

	"github.com/factgate/factgate/internal/model"
)

func matchesType(t *testing.T, typ model.ClaimType, text string) bool {
	t.Helper()
	for _, m := range DefaultMatchers() {
		if m.Type != typ {
			continue
		}
		for _, p := range m.Patterns {
			if p.MatchString(text) {
				return true
			}
		}
		return false
	}
	t.Fatalf("No matcher for type %s", typ)
	return false
}

func TestMatchers(t *testing.T) {
	tests := []struct {
		typ  model.ClaimType
		text string
		want bool
	}{
		{model.ClaimLocation, "서울특별시 종로구 사직로 161", true},
		{model.ClaimLocation, "종로구 사직로 161", true},
		{model.ClaimLocation, "161 Sajik-ro Street", true},
		{model.ClaimLocation, "a lovely neighborhood", false},

		{model.ClaimHours, "09:00-18:00", true},
		{model.ClaimHours, "9:30 ~ 17:30", true},
		{model.ClaimHours, "매주 화요일 휴무", true},
		{model.ClaimHours, "월요일 정기 휴무", true},
		{model.ClaimHours, "Closed on Mondays", true},
		{model.ClaimHours, "open late", false},

		{model.ClaimEventPeriod, "2025.03.01 ~ 2025.05.31", true},
		{model.ClaimEventPeriod, "2025-03-01~05-31", true},
		{model.ClaimEventPeriod, "3월 1일부터 5월 31일까지", true},
		{model.ClaimEventPeriod, "every spring", false},

		{model.ClaimPrice, "3,000원", true},
		{model.ClaimPrice, "₩ 15,000", true},
		{model.ClaimPrice, "KRW 5,000", true},
		{model.ClaimPrice, "$12.50", true},
		{model.ClaimPrice, "무료 입장", true},
		{model.ClaimPrice, "a small fee", false},

		{model.ClaimContact, "02-1234-5678", true},
		{model.ClaimContact, "010-1234-5678", true},
		{model.ClaimContact, "12345", false},

		{model.ClaimFacilities, "지하 1층", true},
		{model.ClaimFacilities, "3층 규모", true},
		{model.ClaimFacilities, "1,200석", true},
		{model.ClaimFacilities, "spacious interior", false},

		{model.ClaimTransport, "경복궁역 5번 출구", true},
		{model.ClaimTransport, "3호선 안국역", true},
		{model.ClaimTransport, "Gwanghwamun Station", true},
		{model.ClaimTransport, "take the bus", false},

		{model.ClaimHeritage, "국보 제1호", true},
		{model.ClaimHeritage, "보물 제823호", true},
		{model.ClaimHeritage, "유네스코 세계문화유산", true},
		{model.ClaimHeritage, "UNESCO World Heritage", true},
		{model.ClaimHeritage, "historically significant", false},

		{model.ClaimTrail, "4.7km 코스", true},
		{model.ClaimTrail, "둘레길 8.8km", true},
		{model.ClaimTrail, "a long walk", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ)+"/"+tt.text, func(t *testing.T) {
			if got := matchesType(t, tt.typ, tt.text); got != tt.want {
				t.Errorf("match(%s, %q) = %v, want %v", tt.typ, tt.text, got, tt.want)
			}
		})
	}
}
