package ai

import "google.golang.org/genai"

func metricSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":     {Type: genai.TypeString},
			"score":    {Type: genai.TypeNumber},
			"feedback": {Type: genai.TypeString},
		},
	}
}

// analysisSchema mirrors models.AnalysisResult field for field so the
// model is constrained to the exact shape the dashboard renders.
func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overall_score": {Type: genai.TypeNumber, Description: "Overall quality score 0-100"},
			"summary":       {Type: genai.TypeString, Description: "Brief summary of the video content"},
			"metrics": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"copywriting":       metricSchema(),
					"visuals":           metricSchema(),
					"pacing":            metricSchema(),
					"branding":          metricSchema(),
					"cta_effectiveness": metricSchema(),
				},
			},
			"pros": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"cons": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"branding_analysis": {Type: genai.TypeString, Description: "Analysis of color, tone, and positioning for aesthetics market"},
			"suggested_scripts": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString},
						"hook":        {Type: genai.TypeString},
						"body":        {Type: genai.TypeString},
						"cta":         {Type: genai.TypeString},
						"visual_cues": {Type: genai.TypeString},
					},
				},
			},
		},
	}
}
