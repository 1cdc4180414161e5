package models

import "fmt"

// ScoreMetric grades one evaluation dimension on a 0-100 scale. The score
// range is enforced by the model's output schema, not clamped locally.
type ScoreMetric struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// MetricSet holds the five dimensions every audit must grade. The fields
// are pointers so a response missing a dimension fails shape validation
// instead of decaying to a zero value.
type MetricSet struct {
	Copywriting      *ScoreMetric `json:"copywriting"`
	Visuals          *ScoreMetric `json:"visuals"`
	Pacing           *ScoreMetric `json:"pacing"`
	Branding         *ScoreMetric `json:"branding"`
	CTAEffectiveness *ScoreMetric `json:"cta_effectiveness"`
}

// ScriptSuggestion is one rewritten script variant produced by the audit.
type ScriptSuggestion struct {
	Title      string `json:"title"`
	Hook       string `json:"hook"`
	Body       string `json:"body"`
	CTA        string `json:"cta"`
	VisualCues string `json:"visual_cues"`
}

// AnalysisResult is the typed audit the dashboard renders.
type AnalysisResult struct {
	OverallScore     float64            `json:"overall_score"`
	Summary          string             `json:"summary"`
	Metrics          MetricSet          `json:"metrics"`
	Pros             []string           `json:"pros"`
	Cons             []string           `json:"cons"`
	BrandingAnalysis string             `json:"branding_analysis"`
	SuggestedScripts []ScriptSuggestion `json:"suggested_scripts"`
}

// MetricList returns the five metrics in display order. Entries may be
// nil on results that have not passed Validate.
func (r *AnalysisResult) MetricList() []*ScoreMetric {
	return []*ScoreMetric{
		r.Metrics.Copywriting,
		r.Metrics.Visuals,
		r.Metrics.Branding,
		r.Metrics.Pacing,
		r.Metrics.CTAEffectiveness,
	}
}

// Validate rejects partially filled results: either the response carries
// the complete audit shape or the whole thing is discarded.
func (r *AnalysisResult) Validate() error {
	if r.Summary == "" {
		return fmt.Errorf("analysis summary is required but was empty")
	}
	required := []struct {
		name   string
		metric *ScoreMetric
	}{
		{"copywriting", r.Metrics.Copywriting},
		{"visuals", r.Metrics.Visuals},
		{"pacing", r.Metrics.Pacing},
		{"branding", r.Metrics.Branding},
		{"cta_effectiveness", r.Metrics.CTAEffectiveness},
	}
	for _, m := range required {
		if m.metric == nil {
			return fmt.Errorf("metric %q missing from analysis", m.name)
		}
	}
	return nil
}
