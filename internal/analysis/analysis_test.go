package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	system      string
	temperature float32
	text        string
	out         string
	err         error
}

func (s *stubGenerator) generate(_ context.Context, system string, temperature float32, text string) (string, error) {
	s.system = system
	s.temperature = temperature
	s.text = text
	return s.out, s.err
}

const validResponse = `{
	"ticker": "uber",
	"asset_type": "stock",
	"action": "BUY",
	"confidence": 85,
	"key_insight": "rain means rides",
	"reasoning": "people avoid the bus when it pours",
	"vibe": "MOONING",
	"meme_caption": "rainy season is earnings season",
	"forecast": {"trend": "UP", "volatility": 65}
}`

func TestAnalyze(t *testing.T) {
	gen := &stubGenerator{out: validResponse}
	e := &Engine{gen: gen}

	rec, err := e.Analyze(t.Context(), "heavy rainfall expected across the city this weekend", 50)
	require.NoError(t, err)
	require.Equal(t, "UBER", rec.Ticker)
	require.Equal(t, "stock", rec.AssetType)
	require.Equal(t, 85, rec.Confidence)
	require.NotNil(t, rec.Forecast)
	require.Equal(t, "UP", rec.Forecast.Trend)
	require.Equal(t, 65.0, rec.Forecast.Volatility)
}

func TestAnalyze_StripsCodeFences(t *testing.T) {
	gen := &stubGenerator{out: "```json\n" + validResponse + "\n```"}
	e := &Engine{gen: gen}

	rec, err := e.Analyze(t.Context(), "some webpage content", 50)
	require.NoError(t, err)
	require.Equal(t, "UBER", rec.Ticker)
}

func TestAnalyze_MalformedResponse(t *testing.T) {
	gen := &stubGenerator{out: "to the moon!!!"}
	e := &Engine{gen: gen}

	_, err := e.Analyze(t.Context(), "some webpage content", 50)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse model response")
}

func TestAnalyze_MissingTicker(t *testing.T) {
	gen := &stubGenerator{out: `{"asset_type": "stock"}`}
	e := &Engine{gen: gen}

	_, err := e.Analyze(t.Context(), "some webpage content", 50)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing ticker")
}

func TestAnalyze_GeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	e := &Engine{gen: gen}

	_, err := e.Analyze(t.Context(), "some webpage content", 50)
	require.Error(t, err)
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestAnalyze_DefaultsAssetType(t *testing.T) {
	gen := &stubGenerator{out: `{"ticker": "AAPL"}`}
	e := &Engine{gen: gen}

	rec, err := e.Analyze(t.Context(), "some webpage content", 50)
	require.NoError(t, err)
	require.Equal(t, "stock", rec.AssetType)
}

func TestAnalyze_TruncatesInput(t *testing.T) {
	gen := &stubGenerator{out: validResponse}
	e := &Engine{gen: gen}

	long := strings.Repeat("a", maxInputChars+500)
	_, err := e.Analyze(t.Context(), long, 50)
	require.NoError(t, err)
	require.LessOrEqual(t, len(gen.text), maxInputChars+100) // prompt prefix + truncated text
}

func TestAnalyze_ClampsTrollLevel(t *testing.T) {
	gen := &stubGenerator{out: validResponse}
	e := &Engine{gen: gen}

	_, err := e.Analyze(t.Context(), "some webpage content", -10)
	require.NoError(t, err)
	require.Equal(t, promptSerious, gen.system)
	require.InDelta(t, 0.3, float64(gen.temperature), 1e-6)

	_, err = e.Analyze(t.Context(), "some webpage content", 500)
	require.NoError(t, err)
	require.Equal(t, promptUnhinged, gen.system)
	require.InDelta(t, 1.0, float64(gen.temperature), 1e-6)
}

func TestSystemPromptTiers(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{0, promptSerious},
		{20, promptSerious},
		{21, promptBalanced},
		{40, promptBalanced},
		{41, promptGenZ},
		{60, promptGenZ},
		{61, promptSchizo},
		{80, promptSchizo},
		{81, promptUnhinged},
		{100, promptUnhinged},
	}
	for _, c := range cases {
		require.Equalf(t, c.want, systemPrompt(c.level), "level %d", c.level)
	}
}

func TestTemperatureFor(t *testing.T) {
	require.InDelta(t, 0.3, float64(temperatureFor(0)), 1e-6)
	require.InDelta(t, 0.65, float64(temperatureFor(50)), 1e-6)
	require.InDelta(t, 1.0, float64(temperatureFor(100)), 1e-6)
}
