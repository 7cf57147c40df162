package analyzer

import (
	"strconv"
	"strings"

	"github.com/raysh454/inspectra/internal/model"
)

// HygieneScore deducts a penalty per issue from 100, floored at 0.
//
// Named severities: Critical 25, Major 15, anything else 5.
// Numeric severities: 5→25, 4→15, 3→7, 2→3, 1→1.
func HygieneScore(issues []model.Issue) int {
	score := 100
	for _, is := range issues {
		score -= severityPenalty(is.Severity)
	}
	return model.ClampScore(score)
}

func severityPenalty(sev string) int {
	switch strings.ToLower(strings.TrimSpace(sev)) {
	case "critical", "5":
		return 25
	case "major", "4":
		return 15
	case "3":
		return 7
	case "2":
		return 3
	case "1":
		return 1
	default:
		return 5
	}
}

// normalizeSeverity accepts the string or numeric severities engines send.
func normalizeSeverity(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.Itoa(int(s))
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}
