package ai

import "strings"

// ErrorKind tags every analysis failure with its user-facing category.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMissingCredential
	KindPayloadTooLarge
	KindTransportFailure
	KindBadRequest
	KindEmptyResponse
	KindParseFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindTransportFailure:
		return "transport_failure"
	case KindBadRequest:
		return "bad_request"
	case KindEmptyResponse:
		return "empty_response"
	case KindParseFailure:
		return "parse_failure"
	default:
		return "unknown"
	}
}

// AnalysisError pairs a classified kind with the message shown to the
// user. Unknown errors carry the underlying message unchanged.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *AnalysisError) Error() string { return e.Message }

func (e *AnalysisError) Unwrap() error { return e.cause }

const (
	msgMissingCredential = "API Key não configurada. O app não funcionará corretamente."
	msgPayloadTooLarge   = "O arquivo de vídeo é muito grande. O limite da API para envio direto foi excedido. Tente comprimir o vídeo."
	msgTransportFailure  = "Falha na conexão ao enviar o vídeo. Isso geralmente ocorre com arquivos grandes (>50MB) devido a limitações do navegador. Por favor, comprima o vídeo ou tente um arquivo menor."
	msgBadRequest        = "Erro na requisição. O formato do vídeo pode não ser suportado ou o conteúdo foi bloqueado pela IA."
	msgEmptyResponse     = "A IA não retornou nenhuma resposta de texto. O vídeo pode ser muito longo ou complexo."
)

// classifyRules are evaluated in order against the lowercased error text;
// the first match wins. The substrings are not mutually exclusive, so the
// order is a deliberate tie-break: an error mentioning both 413 and 400
// is a size problem, not a bad request. The "rpc failed"/"xhr error"
// family is what oversized browser uploads (roughly >50 MB) typically
// produce.
var classifyRules = []struct {
	substrings []string
	kind       ErrorKind
	message    string
}{
	{[]string{"413", "payload too large"}, KindPayloadTooLarge, msgPayloadTooLarge},
	{[]string{"rpc failed", "xhr error", "error code: 6"}, KindTransportFailure, msgTransportFailure},
	{[]string{"400"}, KindBadRequest, msgBadRequest},
}

// Classify maps a transport or API error onto the fixed taxonomy.
// Substring sniffing on error text is inherited fragile behavior; the
// ordered rule table at least keeps the tie-break explicit.
func Classify(err error) *AnalysisError {
	text := strings.ToLower(err.Error())
	for _, rule := range classifyRules {
		for _, sub := range rule.substrings {
			if strings.Contains(text, sub) {
				return &AnalysisError{Kind: rule.kind, Message: rule.message, cause: err}
			}
		}
	}
	return &AnalysisError{Kind: KindUnknown, Message: err.Error(), cause: err}
}
