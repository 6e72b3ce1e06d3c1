package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/platform/config"

	"google.golang.org/genai"
)

// Extractor submits a document image to the extraction backend and
// returns the raw JSON payload for the document type.
type Extractor interface {
	Extract(ctx context.Context, req ExtractionRequest) (json.RawMessage, error)
}

// ExtractionRequest carries one document image plus its context.
type ExtractionRequest struct {
	MIMEType     string
	Data         []byte
	DocumentType domain.DocumentType
	CompanyName  string
}

// GeminiExtractor implements Extractor against the Gemini API with a
// JSON response constraint per document type.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates the extraction client.
func NewGeminiExtractor(ctx context.Context, cfg config.OCRConfig) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiExtractor{client: client, model: cfg.GetOCRModel()}, nil
}

// Extract sends the document inline and returns the model's JSON output.
func (g *GeminiExtractor) Extract(ctx context.Context, req ExtractionRequest) (json.RawMessage, error) {
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: req.MIMEType, Data: req.Data}},
			genai.NewPartFromText(extractionPrompt(req.DocumentType, req.CompanyName)),
		},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("extraction call: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("extraction returned an empty response")
	}
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("extraction returned malformed json")
	}
	return json.RawMessage(text), nil
}

func extractionPrompt(docType domain.DocumentType, companyName string) string {
	switch docType {
	case domain.DocCR:
		return `Read this commercial registration certificate and respond with JSON:
{"officialBusinessName": string|null, "ownerName": string|null, "taxNumber": string|null, "legalForm": string|null}
Use null for any field you cannot read with confidence.`
	case domain.DocIBAN:
		return `Read this bank letter or IBAN certificate and respond with JSON:
{"accountOwnerName": string, "ibanNumber": string, "bankName": string, "swiftCode": string}
Use an empty string for fields that are not present.`
	case domain.DocLogo:
		return `Assess whether this image is suitable as a business logo for an online storefront
(clear subject, no heavy blur, no offensive content, works at small sizes). Respond with JSON:
{"isSuitable": boolean, "reason": string, "suggestions": [string]}`
	case domain.DocCoverPhoto:
		return `Assess whether this image is suitable as a storefront cover photo
(landscape orientation, appetizing or inviting, not blurry). Respond with JSON:
{"isSuitable": boolean, "reason": string, "suggestions": [string]}`
	case domain.DocStorePhoto:
		return fmt.Sprintf(`This should be a photo of the physical storefront of the business %q.
Check whether the signage or surroundings match that business. Respond with JSON:
{"isMatch": boolean, "reason": string, "confidence": number between 0 and 1}`, companyName)
	case domain.DocMenu:
		return `Read this menu and respond with JSON mapping each category name to its items:
{"<category>": [{"name": string, "price": number, "description": string}]}
Prices must be plain numbers without currency symbols.`
	}
	return "Respond with an empty JSON object: {}"
}
