package schema_test

import (
	"encoding/json"
	"testing"

	"finance_dashboard/internal/schema"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestValidate(t *testing.T) {
	validator, err := schema.NewValidator()
	require.NoError(t, err)

	testCases := []struct {
		name    string
		kind    schema.Kind
		payload string
		wantErr bool
	}{
		{
			name: "valid news",
			kind: schema.KindNews,
			payload: `{"articles": [
				{"title": "Rates hold", "url": "https://news.example.com/1", "source": "Example"}
			]}`,
		},
		{
			name:    "news article without url",
			kind:    schema.KindNews,
			payload: `{"articles": [{"title": "Rates hold"}]}`,
			wantErr: true,
		},
		{
			name:    "news wrong top-level type",
			kind:    schema.KindNews,
			payload: `["not", "an", "object"]`,
			wantErr: true,
		},
		{
			name: "valid movers",
			kind: schema.KindMovers,
			payload: `{"top_gainers": [
				{"ticker": "AAPL", "price": "198.11", "change_percentage": "2.4%"}
			]}`,
		},
		{
			name:    "movers missing list",
			kind:    schema.KindMovers,
			payload: `{"top_losers": []}`,
			wantErr: true,
		},
		{
			name: "valid indicator",
			kind: schema.KindIndicator,
			payload: `{"name": "Real GDP", "interval": "annual", "unit": "billions",
				"data": [{"date": "2025-01-01", "value": "27360.9"}]}`,
		},
		{
			name:    "indicator point without value",
			kind:    schema.KindIndicator,
			payload: `{"name": "Real GDP", "data": [{"date": "2025-01-01"}]}`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Validate(tc.kind, decode(t, tc.payload))
			if tc.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, schema.ErrInvalid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	validator, err := schema.NewValidator()
	require.NoError(t, err)

	err = validator.Validate(schema.Kind("weather"), map[string]any{})
	require.Error(t, err)
	require.NotErrorIs(t, err, schema.ErrInvalid)
}
