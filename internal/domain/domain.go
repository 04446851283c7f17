package domain

import "time"

// ModelCount is the number of classifier slots a recommendation is built from.
const ModelCount = 4

type Recommendation string

const (
	RecommendationBuy     Recommendation = "Buy"
	RecommendationSell    Recommendation = "Sell"
	RecommendationNeutral Recommendation = "Neutral"
)

type Direction int

const (
	DirectionNeutral Direction = 0
	DirectionBullish Direction = 1
	DirectionBearish Direction = -1
)

func (d Direction) String() string {
	switch d {
	case DirectionBullish:
		return "bullish"
	case DirectionBearish:
		return "bearish"
	default:
		return "neutral"
	}
}

// Observation is one (class, confidence) pair reported by a model.
type Observation struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ClassificationResult is the outcome of running one model on one image.
// An empty Label with no probabilities means the model produced nothing.
type ClassificationResult struct {
	Label         string             `json:"label"`
	Probabilities map[string]float64 `json:"probabilities"`
}

func EmptyResult() ClassificationResult {
	return ClassificationResult{Label: "", Probabilities: map[string]float64{}}
}

func (r ClassificationResult) IsEmpty() bool {
	return r.Label == "" && len(r.Probabilities) == 0
}

type ModelSlot struct {
	Slot    int    `json:"slot"`
	ModelID string `json:"model_id"`
}

type ModelResult struct {
	Slot          int                `json:"slot"`
	ModelID       string             `json:"model_id"`
	Label         string             `json:"label"`
	Probabilities map[string]float64 `json:"probabilities"`
}

type Report struct {
	ID             string         `json:"id"`
	Digest         string         `json:"digest"`
	Results        []ModelResult  `json:"results"`
	Score          int            `json:"score"`
	Recommendation Recommendation `json:"recommendation"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Labels returns the top label of every result in slot order.
func (r Report) Labels() []string {
	labels := make([]string, len(r.Results))
	for i, res := range r.Results {
		labels[i] = res.Label
	}
	return labels
}
