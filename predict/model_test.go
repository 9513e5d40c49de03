package predict

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeanAndNormalize(t *testing.T) {
	mean := Mean([]Distribution{
		{Positive: 0.6, Neutral: 0.2, Negative: 0.2},
		{Positive: 0.2, Neutral: 0.6, Negative: 0.2},
	})
	require.InDelta(t, 0.4, mean.Positive, 1e-9)
	require.InDelta(t, 0.4, mean.Neutral, 1e-9)
	require.InDelta(t, 0.2, mean.Negative, 1e-9)

	norm := Distribution{Positive: 2, Neutral: 1, Negative: 1}.Normalize()
	require.InDelta(t, 0.5, norm.Positive, 1e-9)
	require.InDelta(t, 0.25, norm.Neutral, 1e-9)
	require.InDelta(t, 0.25, norm.Negative, 1e-9)

	require.Equal(t, Distribution{}, Mean(nil))
	require.Equal(t, Distribution{}, Distribution{}.Normalize())
}

func TestFeaturesJSON(t *testing.T) {
	features := NewFeatures("Arsenal", "Chelsea",
		Distribution{Positive: 0.5, Neutral: 0.3, Negative: 0.2},
		Distribution{Positive: 0.1, Neutral: 0.1, Negative: 0.8},
		Odds{HomeWin: 1.9, Draw: 3.4, AwayWin: 4.2})

	raw, err := json.Marshal(features)
	require.Equal(t, nil, err)

	var fields map[string]any
	require.Equal(t, nil, json.Unmarshal(raw, &fields))
	require.Equal(t, "Arsenal", fields["Home"])
	require.Equal(t, "Chelsea", fields["Away"])
	require.Equal(t, 0.5, fields["HomeTeam_PositiveSentiment"])
	require.Equal(t, 0.8, fields["AwayTeam_NegativeSentiment"])
	require.Equal(t, 1.9, fields["AvgOdds_HomeWin"])
	require.Equal(t, 3.4, fields["AvgOdds_Draw"])
	require.Equal(t, 4.2, fields["AvgOdds_AwayWin"])
	require.Equal(t, 11, len(fields))
}
