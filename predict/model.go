package predict

import "context"

// Distribution is a sentiment class probability triple.
type Distribution struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

type Odds struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}

// Features is the input row of the match outcome models.
type Features struct {
	Home string `json:"Home"`
	Away string `json:"Away"`

	HomePositive float64 `json:"HomeTeam_PositiveSentiment"`
	HomeNeutral  float64 `json:"HomeTeam_NeutralSentiment"`
	HomeNegative float64 `json:"HomeTeam_NegativeSentiment"`
	AwayPositive float64 `json:"AwayTeam_PositiveSentiment"`
	AwayNeutral  float64 `json:"AwayTeam_NeutralSentiment"`
	AwayNegative float64 `json:"AwayTeam_NegativeSentiment"`

	AvgOddsHomeWin float64 `json:"AvgOdds_HomeWin"`
	AvgOddsDraw    float64 `json:"AvgOdds_Draw"`
	AvgOddsAwayWin float64 `json:"AvgOdds_AwayWin"`
}

type Outcome struct {
	HomeGoals float64 `json:"home_goals"`
	AwayGoals float64 `json:"away_goals"`
}

type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]Distribution, error)
}

type Predictor interface {
	Predict(ctx context.Context, features Features) (Outcome, error)
}

type OddsSource interface {
	Odds(ctx context.Context, home, away string) (Odds, error)
}

// MatchPredictor produces an outcome for a fixture from scratch.
type MatchPredictor interface {
	PredictMatch(ctx context.Context, home, away string) (Outcome, error)
}

func NewFeatures(home, away string, homeSentiment, awaySentiment Distribution, odds Odds) Features {
	return Features{
		Home:           home,
		Away:           away,
		HomePositive:   homeSentiment.Positive,
		HomeNeutral:    homeSentiment.Neutral,
		HomeNegative:   homeSentiment.Negative,
		AwayPositive:   awaySentiment.Positive,
		AwayNeutral:    awaySentiment.Neutral,
		AwayNegative:   awaySentiment.Negative,
		AvgOddsHomeWin: odds.HomeWin,
		AvgOddsDraw:    odds.Draw,
		AvgOddsAwayWin: odds.AwayWin,
	}
}

// Mean averages the distributions component-wise. The mean of nothing is
// the zero distribution.
func Mean(ds []Distribution) (mean Distribution) {
	if len(ds) == 0 {
		return
	}
	for _, d := range ds {
		mean.Positive += d.Positive
		mean.Neutral += d.Neutral
		mean.Negative += d.Negative
	}
	n := float64(len(ds))
	mean.Positive /= n
	mean.Neutral /= n
	mean.Negative /= n
	return
}

// Normalize scales d so its components sum to one.
func (d Distribution) Normalize() Distribution {
	sum := d.Positive + d.Neutral + d.Negative
	if sum == 0 {
		return d
	}
	return Distribution{
		Positive: d.Positive / sum,
		Neutral:  d.Neutral / sum,
		Negative: d.Negative / sum,
	}
}
