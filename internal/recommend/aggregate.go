package recommend

import (
	"strings"

	"chart-signal/internal/domain"
)

type Evaluation struct {
	Score          int                   `json:"score"`
	Recommendation domain.Recommendation `json:"recommendation"`
}

// SplitLabels turns a label such as "Hammer, Doji" into its trimmed tags.
// An empty label yields no tags.
func SplitLabels(label string) []string {
	parts := strings.Split(label, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Score tallies every tag of every slot against that slot's table. Slots
// beyond the configured tables contribute nothing.
func Score(labels []string) int {
	score := 0
	for slot, label := range labels {
		table, ok := Table(slot)
		if !ok {
			continue
		}
		for _, tag := range SplitLabels(label) {
			score += int(table.Lookup(tag))
		}
	}
	return score
}

func FromScore(score int) domain.Recommendation {
	if score > 0 {
		return domain.RecommendationBuy
	}
	if score < 0 {
		return domain.RecommendationSell
	}
	return domain.RecommendationNeutral
}

func Evaluate(labels []string) Evaluation {
	score := Score(labels)
	return Evaluation{Score: score, Recommendation: FromScore(score)}
}

// Aggregate returns the overall recommendation for the four model labels.
func Aggregate(label1, label2, label3, label4 string) domain.Recommendation {
	return Evaluate([]string{label1, label2, label3, label4}).Recommendation
}
