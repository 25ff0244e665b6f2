package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// maxInputChars bounds how much scraped page text is sent to the model.
const maxInputChars = 4000

// Forecast is the model's hint about expected price movement. It feeds
// the synthetic series generator downstream.
type Forecast struct {
	Trend      string  `json:"trend"`
	Volatility float64 `json:"volatility"`
}

// Recommendation is the structured guess returned by the model.
type Recommendation struct {
	Ticker      string    `json:"ticker"`
	AssetType   string    `json:"asset_type"`
	Action      string    `json:"action"`
	Confidence  int       `json:"confidence"`
	KeyInsight  string    `json:"key_insight"`
	Reasoning   string    `json:"reasoning"`
	Vibe        string    `json:"vibe"`
	MemeCaption string    `json:"meme_caption"`
	Forecast    *Forecast `json:"forecast,omitempty"`
}

// generator isolates the model call so tests can stub it.
type generator interface {
	generate(ctx context.Context, system string, temperature float32, text string) (string, error)
}

// Engine turns free-text content into a ticker recommendation using a
// persona prompt selected by the troll level.
type Engine struct {
	gen generator
}

// NewEngine wraps a genai client. The model name is e.g. "gemini-2.0-flash".
func NewEngine(client *genai.Client, model string) *Engine {
	return &Engine{gen: &genaiGenerator{client: client, model: model}}
}

// Analyze runs the persona analysis. trollLevel is clamped to [0,100];
// 0 is a sober analyst, 100 is maximum unhinged. A malformed model
// response is a distinct error, never retried here.
func (e *Engine) Analyze(ctx context.Context, text string, trollLevel int) (*Recommendation, error) {
	if trollLevel < 0 {
		trollLevel = 0
	}
	if trollLevel > 100 {
		trollLevel = 100
	}
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	raw, err := e.gen.generate(ctx, systemPrompt(trollLevel), temperatureFor(trollLevel),
		"Analyze this webpage content and give me the alpha:\n\n"+text)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(stripFences(raw)), &rec); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	if strings.TrimSpace(rec.Ticker) == "" {
		return nil, errors.New("model response missing ticker")
	}
	rec.Ticker = strings.ToUpper(strings.TrimSpace(rec.Ticker))
	if rec.AssetType == "" {
		rec.AssetType = "stock"
	}
	return &rec, nil
}

// temperatureFor maps the troll level onto sampling temperature 0.3..1.0.
func temperatureFor(level int) float32 {
	return float32(0.3 + float64(level)/100*0.7)
}

// stripFences removes a markdown code fence the model sometimes wraps
// around its JSON despite the response MIME type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) generate(ctx context.Context, system string, temperature float32, text string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		Temperature:       genai.Ptr(temperature),
		ResponseMIMEType:  "application/json",
		MaxOutputTokens:   500,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), cfg)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty model response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
