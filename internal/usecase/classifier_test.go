package usecase

import (
	"testing"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
)

func TestClassifyPainChain(t *testing.T) {
	c := NewClassifier(models.DefaultThresholdSet())

	tests := []struct {
		price float64
		want  string
	}{
		{6.50, "NUCLEAR"},
		{6.00, "MARGIN_STRESS"}, // exact print does not breach the upper level
		{5.50, "MARGIN_STRESS"},
		{5.46, "PIN_BREAK"},
		{5.04, "PIN_BREAK"},
		{5.03, "SAFE"},
		{5.00, "SAFE"},
		{4.80, "SAFE"}, // exactly at the floor still counts as held
		{4.79, "NATURAL_FLOOR"},
		{4.50, "NATURAL_FLOOR"},
	}
	for _, tc := range tests {
		got := c.Classify(tc.price)
		if got.Name != tc.want {
			t.Errorf("Classify(%.2f) = %s, want %s", tc.price, got.Name, tc.want)
		}
	}
}

func TestClassifyHighestBreachDominates(t *testing.T) {
	c := NewClassifier(models.DefaultThresholdSet())
	got := c.Classify(100)
	if got.Name != "NUCLEAR" {
		t.Errorf("Classify(100) = %s, want the top level", got.Name)
	}
}

func TestPressureBands(t *testing.T) {
	c := NewClassifier(models.DefaultThresholdSet())

	tests := []struct {
		name      string
		imbalance float64
		want      string
	}{
		{"buying", 0.5, PressureBuying},
		{"selling", -0.5, PressureSelling},
		{"balanced zero", 0, PressureBalanced},
		{"balanced at positive edge", 0.3, PressureBalanced},
		{"balanced at negative edge", -0.3, PressureBalanced},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			obs := &models.Observation{Book: &models.BookDepth{Imbalance: tc.imbalance}}
			if got := c.Pressure(obs); got != tc.want {
				t.Errorf("Pressure(%v) = %q, want %q", tc.imbalance, got, tc.want)
			}
		})
	}
}

func TestPressureWithoutBook(t *testing.T) {
	c := NewClassifier(models.DefaultThresholdSet())
	if got := c.Pressure(&models.Observation{}); got != PressureUnknown {
		t.Errorf("Pressure without book = %q, want %q", got, PressureUnknown)
	}
}
