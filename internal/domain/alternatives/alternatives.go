// Package alternatives produces ranked variants of a primary build by
// re-running the compose/detect/score pipeline over deterministically
// perturbed requests.
//
// The perturbation is randomness-free: the playstyle rotates through its
// fixed cycle and, when the request has focus stats, their order is
// reversed. Identical inputs therefore always generate identical
// alternatives, which the test suite and the share pipeline depend on.
package alternatives

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kitforge/kitforge/internal/domain/catalog"
	"github.com/kitforge/kitforge/internal/domain/model"
)

// Default generation limits.
const (
	defaultMaxCount = 5
)

// Composer builds a loadout for a request.
type Composer interface {
	Compose(req model.BuildRequest, view catalog.View) (*model.Build, error)
}

// Detector finds synergies in a composed build.
type Detector interface {
	Detect(build *model.Build) []model.Synergy
}

// Scorer grades a composed build.
type Scorer interface {
	Score(build *model.Build, req model.BuildRequest) model.ScoreResult
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithMaxCount caps how many alternatives a single call may produce.
func WithMaxCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxCount = n
		}
	}
}

// Generator runs the pipeline over perturbed requests. The variants are
// independent pure computations over immutable inputs, so they are evaluated
// concurrently without locking.
type Generator struct {
	composer Composer
	detector Detector
	scorer   Scorer
	maxCount int
}

// New creates a Generator with configuration options.
func New(composer Composer, detector Detector, scorer Scorer, opts ...Option) *Generator {
	g := &Generator{
		composer: composer,
		detector: detector,
		scorer:   scorer,
		maxCount: defaultMaxCount,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate composes, detects and scores count variants of the request and
// returns them ranked by score descending (ties break on variant order).
// Variants whose composition fails under the perturbed constraints are
// skipped rather than failing the batch.
func (g *Generator) Generate(ctx context.Context, req model.BuildRequest, view catalog.View, count int) ([]*model.Build, error) {
	if count <= 0 {
		return nil, nil
	}
	if count > g.maxCount {
		count = g.maxCount
	}

	builds := make([]*model.Build, count)
	grp, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		variant := Perturb(req, i)
		slot := i
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			build, err := g.composer.Compose(variant, view)
			if err != nil {
				return nil // skip: perturbed constraints made this one illegal
			}
			build.Synergies = g.detector.Detect(build)
			score := g.scorer.Score(build, variant)
			build.Score = &score
			builds[slot] = build
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	out := make([]*model.Build, 0, count)
	for _, b := range builds {
		if b != nil {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score.Total > out[j].Score.Total
	})
	return out, nil
}

// Perturb derives the i-th variant request: the playstyle advances i+1
// steps around its fixed cycle and a non-empty focus set is reversed.
func Perturb(req model.BuildRequest, i int) model.BuildRequest {
	cycle := model.Playstyles()
	pos := 0
	for idx, ps := range cycle {
		if ps == req.Playstyle {
			pos = idx
			break
		}
	}
	variant := req
	variant.Playstyle = cycle[(pos+1+i)%len(cycle)]
	if !req.FocusStats.IsEmpty() {
		variant.FocusStats = req.FocusStats.Reversed()
	}
	return variant
}
