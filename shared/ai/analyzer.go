// Package ai sends creative audits to Gemini and turns the responses into
// typed results.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"aesthetica/internal/models"
	"aesthetica/shared/config"
	"aesthetica/shared/media"

	"google.golang.org/genai"
)

// Analyzer sends one schema-constrained audit request per video. Single
// attempt, no retries; timeouts are left to the transport.
type Analyzer struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewAnalyzer builds the Gemini client from explicit configuration. The
// credential is checked here, before any request can be attempted.
func NewAnalyzer(ctx context.Context, cfg *config.Config) (*Analyzer, error) {
	if cfg.AI.GeminiAPIKey == "" {
		return nil, &AnalysisError{Kind: KindMissingCredential, Message: msgMissingCredential}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Analyzer{
		client:      client,
		model:       cfg.AI.Model,
		temperature: cfg.AI.Temperature,
	}, nil
}

// Request is the immutable unit sent to the model: encoded payload,
// resolved media type, the user's free-text context and the declared
// response schema.
type Request struct {
	Payload     media.Payload
	MIMEType    string
	UserContext string
	Schema      *genai.Schema
}

// NewRequest encodes the asset and binds it to the audit schema.
func NewRequest(asset *models.MediaAsset, userContext string) *Request {
	return &Request{
		Payload:     media.Encode(asset.Data),
		MIMEType:    asset.ResolvedType,
		UserContext: userContext,
		Schema:      analysisSchema(),
	}
}

// Analyze runs the full pipeline for one asset: encode, invoke, interpret.
func (a *Analyzer) Analyze(ctx context.Context, asset *models.MediaAsset, userContext string) (*models.AnalysisResult, error) {
	if asset == nil {
		return nil, fmt.Errorf("asset cannot be nil")
	}

	req := NewRequest(asset, userContext)
	data, err := req.Payload.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode payload for %s: %w", asset.Name, err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, req.MIMEType),
		genai.NewPartFromText(buildAuditPrompt(req.UserContext)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
		Temperature:      genai.Ptr(a.temperature),
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, genCfg)
	if err != nil {
		log.Printf("Analysis request for %s failed: %v", asset.Name, err)
		return nil, Classify(err)
	}

	return InterpretResponse(result.Text())
}

// InterpretResponse turns the model's raw text into a validated result.
// Empty output is its own failure class: it usually means the video was
// too long or complex for the model to answer at all.
func InterpretResponse(text string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &AnalysisError{Kind: KindEmptyResponse, Message: msgEmptyResponse}
	}

	// The schema directive usually prevents markdown fences, but not
	// always.
	cleaned := stripCodeFences(text)

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &AnalysisError{
			Kind:    KindParseFailure,
			Message: fmt.Sprintf("failed to parse analysis response: %v", err),
			cause:   err,
		}
	}
	if err := result.Validate(); err != nil {
		return nil, &AnalysisError{Kind: KindParseFailure, Message: err.Error(), cause: err}
	}
	return &result, nil
}

func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// buildAuditPrompt embeds the user's context verbatim in the fixed
// instruction block: four evaluation dimensions plus exactly two
// rewritten script variants.
func buildAuditPrompt(userContext string) string {
	return fmt.Sprintf(`Atue como um especialista em marketing digital de classe mundial e diretor criativo focado no nicho de ESTÉTICA e BELEZA (Dermatologia, Harmonização, Cirurgia Plástica, Clínicas de Estética).

Analise o vídeo fornecido com extremo rigor técnico e estético.

Contexto Adicional do Usuário: "%s"

Sua tarefa é avaliar:
1. **Copywriting e Roteiro**: A estrutura AIDA está presente? O hook é forte? Retém atenção?
2. **Visual e Takes**: A iluminação favorece a estética? Os ângulos valorizam o profissional/procedimento? A edição é dinâmica?
3. **Branding e Comunicação**: A linguagem passa autoridade e elegância? (Essencial para estética de alto ticket).
4. **CTA**: É claro e direto?

Além da análise, crie 2 versões OTIMIZADAS de roteiro baseadas no conteúdo do vídeo, mas melhoradas para viralização e conversão.`, userContext)
}

// Unconfigured stands in for the analyzer when no API key is present.
// Every invocation fails with the missing-credential condition before any
// network call is attempted.
type Unconfigured struct{}

func (Unconfigured) Analyze(_ context.Context, _ *models.MediaAsset, _ string) (*models.AnalysisResult, error) {
	return nil, &AnalysisError{Kind: KindMissingCredential, Message: msgMissingCredential}
}
