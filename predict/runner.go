package predict

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/zvonler/pitchpulse/model"
)

var ErrNoComments = errors.New("no comments found")

// Searcher returns the posts a search for term yields.
type Searcher interface {
	Run(ctx context.Context, term, subreddit string) ([]model.Post, error)
}

// Runner scrapes discussion for both teams of a fixture, scores it and
// feeds the scores with the bookmaker odds to the outcome models.
type Runner struct {
	Searcher   Searcher
	Subreddit  string
	Classifier Classifier
	Predictor  Predictor
	Odds       OddsSource
}

func (r *Runner) PredictMatch(ctx context.Context, home, away string) (outcome Outcome, err error) {
	var homeSentiment, awaySentiment Distribution
	if homeSentiment, err = r.TeamSentiment(ctx, home); err != nil {
		return
	}
	if awaySentiment, err = r.TeamSentiment(ctx, away); err != nil {
		return
	}

	var odds Odds
	if odds, err = r.Odds.Odds(ctx, home, away); err != nil {
		return
	}

	features := NewFeatures(home, away, homeSentiment, awaySentiment, odds)
	log.Printf("Predicting %s v %s from %+v", home, away, features)
	return r.Predictor.Predict(ctx, features)
}

// TeamSentiment is the normalized mean sentiment of the comments found by
// searching for team.
func (r *Runner) TeamSentiment(ctx context.Context, team string) (Distribution, error) {
	posts, err := r.Searcher.Run(ctx, team, r.Subreddit)
	if err != nil {
		return Distribution{}, fmt.Errorf("searching for %q: %w", team, err)
	}

	bodies := CommentBodies(posts)
	if len(bodies) == 0 {
		return Distribution{}, fmt.Errorf("%s: %w", team, ErrNoComments)
	}
	log.Printf("Classifying %d comments for %s", len(bodies), team)

	ds, err := r.Classifier.Classify(ctx, bodies)
	if err != nil {
		return Distribution{}, err
	}
	return Mean(ds).Normalize(), nil
}

// CommentBodies flattens the non-blank comment bodies of posts.
func CommentBodies(posts []model.Post) (bodies []string) {
	for _, p := range posts {
		for _, c := range p.Comments {
			if strings.TrimSpace(c.Body) != "" {
				bodies = append(bodies, c.Body)
			}
		}
	}
	return
}
