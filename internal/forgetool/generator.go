package forgetool

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"github.com/kitforge/kitforge/pkg/logger"
)

// Constants for random selection.
const (
	shapeDivisor = 4
)

// Share shape cases.
const (
	caseFreeText       = 0
	caseStructured     = 1
	caseTextWithFocus  = 2
	caseStructuredFull = 3
)

var (
	classes    = []string{"titan", "hunter", "warlock"}
	elements   = []string{"arc", "solar", "void", "stasis", "strand"}
	activities = []string{"general", "raid", "dungeon", "pvp", "nightfall", "gambit", "trials"}
	playstyles = []string{"balanced", "tank", "dps", "speed"}
	statNames  = []string{"mobility", "resilience", "recovery", "discipline", "intellect", "strength"}

	phrases = []string{
		"tanky titan build for raids",
		"solar warlock with grenade focus for dungeons",
		"fast hunter pvp build",
		"void titan for nightfall, max resilience and recovery",
		"dps warlock raid build with super focus",
		"arc hunter with melee and mobility for crucible",
		"stasis warlock for gambit",
		"strand titan dungeon build, grenades everywhere",
	}
)

// pickRandom returns a random element of the slice using crypto/rand.
func pickRandom(options []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(options))))
	return options[n.Int64()]
}

// generateShares creates the specified number of share submissions with
// unique submission IDs, mixing free-text and structured intent shapes.
func generateShares(ctx context.Context, config *Config, stats *Stats) ([]Share, error) {
	logger.Get().Info(ctx, "generating share submissions", logger.Int("numShares", config.NumShares))

	shares := make([]Share, config.NumShares)
	for i := 0; i < config.NumShares; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		shares[i] = generateSingleShare()
	}

	stats.SharesGenerated = len(shares)
	logger.Get().Info(ctx, "generated share submissions successfully", logger.Int("count", len(shares)))

	return shares, nil
}

// generateSingleShare creates one submission with a random intent shape.
func generateSingleShare() Share {
	share := Share{
		SubmissionID: uuid.New().String(),
	}

	shape, _ := rand.Int(rand.Reader, big.NewInt(shapeDivisor))
	switch shape.Int64() {
	case caseFreeText:
		share.Text = pickRandom(phrases)
	case caseStructured:
		share.Filters = &Filters{
			Class:    pickRandom(classes),
			Activity: pickRandom(activities),
		}
	case caseTextWithFocus:
		share.Text = pickRandom(phrases) + " with " + pickRandom(statNames) + " focus"
	case caseStructuredFull:
		share.Filters = &Filters{
			Class:      pickRandom(classes),
			Element:    pickRandom(elements),
			Activity:   pickRandom(activities),
			Playstyle:  pickRandom(playstyles),
			FocusStats: []string{pickRandom(statNames)},
		}
	}
	return share
}
