package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"aesthetica/shared/config"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"413 status", errors.New("server returned 413"), KindPayloadTooLarge},
		{"Payload too large text", errors.New("Payload Too Large"), KindPayloadTooLarge},
		{"RPC failure", errors.New("RPC failed on upload"), KindTransportFailure},
		{"XHR error", errors.New("network: XHR error during send"), KindTransportFailure},
		{"Error code 6", errors.New("transport closed: error code: 6"), KindTransportFailure},
		{"400 status", errors.New("got 400 from API"), KindBadRequest},
		{"413 beats 400", errors.New("400 then 413 payload too large"), KindPayloadTooLarge},
		{"Transport beats 400", errors.New("400: rpc failed"), KindTransportFailure},
		{"Unmatched", errors.New("something odd happened"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Kind != tt.expected {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.err, got.Kind, tt.expected)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("Classify(%q) lost its cause", tt.err)
			}
		})
	}
}

func TestClassifyUnknownKeepsMessage(t *testing.T) {
	original := errors.New("quota exceeded for project")
	got := Classify(original)
	if got.Kind != KindUnknown {
		t.Fatalf("Kind = %v, want KindUnknown", got.Kind)
	}
	if got.Error() != original.Error() {
		t.Errorf("message = %q, want original %q", got.Error(), original.Error())
	}
}

const validResultJSON = `{
  "overall_score": 82,
  "summary": "Criativo sólido com hook forte.",
  "metrics": {
    "copywriting": {"name": "Copywriting", "score": 80, "feedback": "Boa estrutura AIDA."},
    "visuals": {"name": "Visual", "score": 85, "feedback": "Iluminação favorece."},
    "pacing": {"name": "Ritmo", "score": 78, "feedback": "Edição dinâmica."},
    "branding": {"name": "Branding", "score": 88, "feedback": "Passa autoridade."},
    "cta_effectiveness": {"name": "CTA", "score": 70, "feedback": "Pode ser mais direto."}
  },
  "pros": ["Hook forte", "Boa iluminação"],
  "cons": ["CTA genérico"],
  "branding_analysis": "Tom elegante, adequado para alto ticket.",
  "suggested_scripts": [
    {"title": "Versão 1", "hook": "h", "body": "b", "cta": "c", "visual_cues": "v"},
    {"title": "Versão 2", "hook": "h", "body": "b", "cta": "c", "visual_cues": "v"}
  ]
}`

func TestInterpretResponse(t *testing.T) {
	t.Run("Valid JSON", func(t *testing.T) {
		result, err := InterpretResponse(validResultJSON)
		if err != nil {
			t.Fatalf("InterpretResponse() error = %v", err)
		}
		if result.OverallScore != 82 {
			t.Errorf("OverallScore = %v, want 82", result.OverallScore)
		}
		if len(result.SuggestedScripts) != 2 {
			t.Errorf("len(SuggestedScripts) = %d, want 2", len(result.SuggestedScripts))
		}
	})

	t.Run("Fenced JSON is cleaned", func(t *testing.T) {
		fenced := "```json\n" + validResultJSON + "\n```"
		result, err := InterpretResponse(fenced)
		if err != nil {
			t.Fatalf("InterpretResponse() error = %v", err)
		}
		if result.Metrics.Branding == nil || result.Metrics.Branding.Name != "Branding" {
			t.Errorf("branding metric not parsed: %+v", result.Metrics.Branding)
		}
	})

	t.Run("Empty response", func(t *testing.T) {
		_, err := InterpretResponse("   ")
		assertKind(t, err, KindEmptyResponse)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := InterpretResponse("{not json")
		assertKind(t, err, KindParseFailure)
	})

	t.Run("Missing metric rejects whole result", func(t *testing.T) {
		partial := strings.Replace(validResultJSON, `"pacing"`, `"tempo"`, 1)
		_, err := InterpretResponse(partial)
		assertKind(t, err, KindParseFailure)
	})

	t.Run("Missing summary rejects whole result", func(t *testing.T) {
		partial := strings.Replace(validResultJSON, `"Criativo sólido com hook forte."`, `""`, 1)
		_, err := InterpretResponse(partial)
		assertKind(t, err, KindParseFailure)
	})
}

func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	var aerr *AnalysisError
	if !errors.As(err, &aerr) {
		t.Fatalf("error %T is not *AnalysisError", err)
	}
	if aerr.Kind != kind {
		t.Errorf("Kind = %v, want %v", aerr.Kind, kind)
	}
}

func TestBuildAuditPrompt(t *testing.T) {
	userContext := "Campanha de Botox Day, público feminino 35-50"
	prompt := buildAuditPrompt(userContext)

	if !strings.Contains(prompt, fmt.Sprintf("%q", userContext)) {
		t.Error("prompt does not embed the user context verbatim")
	}
	for _, dimension := range []string{"Copywriting e Roteiro", "Visual e Takes", "Branding e Comunicação", "CTA"} {
		if !strings.Contains(prompt, dimension) {
			t.Errorf("prompt missing evaluation dimension %q", dimension)
		}
	}
	if !strings.Contains(prompt, "2 versões OTIMIZADAS") {
		t.Error("prompt does not request exactly two rewritten scripts")
	}
}

func TestNewAnalyzerMissingCredential(t *testing.T) {
	cfg := &config.Config{}
	_, err := NewAnalyzer(context.Background(), cfg)
	assertKind(t, err, KindMissingCredential)
}

func TestUnconfiguredAnalyzer(t *testing.T) {
	_, err := Unconfigured{}.Analyze(context.Background(), nil, "")
	assertKind(t, err, KindMissingCredential)
}
