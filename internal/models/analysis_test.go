package models

import "testing"

func completeResult() *AnalysisResult {
	metric := func(name string) *ScoreMetric {
		return &ScoreMetric{Name: name, Score: 75, Feedback: "ok"}
	}
	return &AnalysisResult{
		OverallScore: 80,
		Summary:      "Resumo",
		Metrics: MetricSet{
			Copywriting:      metric("Copywriting"),
			Visuals:          metric("Visual"),
			Pacing:           metric("Ritmo"),
			Branding:         metric("Branding"),
			CTAEffectiveness: metric("CTA"),
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("Complete result passes", func(t *testing.T) {
		if err := completeResult().Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("Empty summary rejected", func(t *testing.T) {
		r := completeResult()
		r.Summary = ""
		if err := r.Validate(); err == nil {
			t.Error("Validate() accepted an empty summary")
		}
	})

	tests := []struct {
		name  string
		strip func(*AnalysisResult)
	}{
		{"copywriting", func(r *AnalysisResult) { r.Metrics.Copywriting = nil }},
		{"visuals", func(r *AnalysisResult) { r.Metrics.Visuals = nil }},
		{"pacing", func(r *AnalysisResult) { r.Metrics.Pacing = nil }},
		{"branding", func(r *AnalysisResult) { r.Metrics.Branding = nil }},
		{"cta_effectiveness", func(r *AnalysisResult) { r.Metrics.CTAEffectiveness = nil }},
	}
	for _, tt := range tests {
		t.Run("Missing "+tt.name, func(t *testing.T) {
			r := completeResult()
			tt.strip(r)
			if err := r.Validate(); err == nil {
				t.Errorf("Validate() accepted a result missing %s", tt.name)
			}
		})
	}
}

func TestMetricList(t *testing.T) {
	list := completeResult().MetricList()
	if len(list) != 5 {
		t.Fatalf("len(MetricList()) = %d, want 5", len(list))
	}
	for i, m := range list {
		if m == nil {
			t.Errorf("MetricList()[%d] = nil", i)
		}
	}
}
