package forgetool

import (
	"fmt"
	"log"
	"sort"
)

// verifyResults checks consistency between individual ranks and the top list.
func verifyResults(config *Config, rankings, top []Entry) error {
	log.Println("verifying results...")

	if len(rankings) == 0 {
		return fmt.Errorf("no rankings to verify")
	}

	// Sort rankings by score (descending) to get the best builds first
	sortedRankings := make([]Entry, len(rankings))
	copy(sortedRankings, rankings)
	sort.Slice(sortedRankings, func(i, j int) bool {
		if sortedRankings[i].Score != sortedRankings[j].Score {
			return sortedRankings[i].Score > sortedRankings[j].Score
		}
		return sortedRankings[i].BuildID < sortedRankings[j].BuildID
	})

	if len(top) > 0 {
		if err := verifyTopConsistency(sortedRankings, top); err != nil {
			log.Printf("top list consistency warning: %v", err)
		} else {
			log.Println("top list consistency verified")
		}
	}

	displayTopBuilds(sortedRankings, top, config.Verbose)

	log.Println("result verification completed")
	return nil
}

// verifyTopConsistency checks the top list against the best known ranks.
func verifyTopConsistency(sortedRankings, top []Entry) error {
	if len(top) == 0 {
		return fmt.Errorf("empty top list")
	}

	// The best ranked build we know of must lead the top list, unless other
	// clients submitted builds we never saw.
	best := sortedRankings[0]
	lead := top[0]

	if best.Score > lead.Score {
		return fmt.Errorf("top entry %s (score %d) ranks below our best build %s (score %d)",
			lead.BuildID, lead.Score, best.BuildID, best.Score)
	}

	// The top list must be sorted by score descending.
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			return fmt.Errorf("top list not properly sorted: entry %d has higher score than entry %d", i, i-1)
		}
	}

	return nil
}

// displayTopBuilds shows the best builds from ranks and the top list.
func displayTopBuilds(sortedRankings, top []Entry, verbose bool) {
	topN := 10
	if len(sortedRankings) < topN {
		topN = len(sortedRankings)
	}

	log.Printf("top %d builds from rank lookups:", topN)
	for i := 0; i < topN; i++ {
		entry := sortedRankings[i]
		log.Printf("   %d. %s - score: %d tier: %s (%s/%s)", i+1, entry.BuildID, entry.Score, entry.Tier, entry.Class, entry.Activity)
	}

	if len(top) > 0 {
		listTopN := topN
		if len(top) < listTopN {
			listTopN = len(top)
		}

		log.Printf("top %d builds from community list:", listTopN)
		for i := 0; i < listTopN; i++ {
			entry := top[i]
			log.Printf("   %d. %s - score: %d tier: %s", i+1, entry.BuildID, entry.Score, entry.Tier)
		}
	}

	if verbose && len(sortedRankings) > 0 {
		avgScore := calculateAverageScore(sortedRankings)
		maxScore := sortedRankings[0].Score
		minScore := sortedRankings[len(sortedRankings)-1].Score

		log.Printf(`score statistics:
   Average: %.1f
   Maximum: %d
   Minimum: %d
`, avgScore, maxScore, minScore)
	}
}

// calculateAverageScore calculates the average score from rankings.
func calculateAverageScore(rankings []Entry) float64 {
	if len(rankings) == 0 {
		return 0
	}

	sum := 0
	for _, entry := range rankings {
		sum += entry.Score
	}

	return float64(sum) / float64(len(rankings))
}
