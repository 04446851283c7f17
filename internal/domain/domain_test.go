package domain

import (
	"testing"
)

func TestDirectionString(t *testing.T) {
	if DirectionBullish.String() != "bullish" || DirectionBearish.String() != "bearish" || DirectionNeutral.String() != "neutral" {
		t.Errorf("unexpected direction strings: %s %s %s", DirectionBullish, DirectionBearish, DirectionNeutral)
	}
}

func TestEmptyResult(t *testing.T) {
	r := EmptyResult()
	if !r.IsEmpty() {
		t.Fatalf("expected empty result, got %+v", r)
	}
	if r.Probabilities == nil {
		t.Fatal("expected non-nil probabilities map")
	}
}

func TestResultNotEmptyWithLabel(t *testing.T) {
	r := ClassificationResult{Label: "Hammer", Probabilities: map[string]float64{"Hammer": 0.9}}
	if r.IsEmpty() {
		t.Fatalf("expected non-empty result: %+v", r)
	}
}

func TestReportLabels(t *testing.T) {
	r := Report{Results: []ModelResult{
		{Slot: 1, Label: "Hammer"},
		{Slot: 2, Label: ""},
		{Slot: 3, Label: "Double Top"},
		{Slot: 4, Label: "Buy"},
	}}
	labels := r.Labels()
	if len(labels) != 4 || labels[0] != "Hammer" || labels[1] != "" || labels[3] != "Buy" {
		t.Errorf("unexpected labels: %+v", labels)
	}
}
