package extractor

import (
	"strconv"
	"strings"

	"github.com/poolexpert/concierge/internal/models"
)

// Score rates an extracted lead from 0 to 100. It is purely additive over
// the fields that are present, capped at 100, and reads no external state.
func Score(info models.ExtractedLeadInfo) int {
	score := 0

	// Contact info is most important
	if info.Email != "" {
		score += 25
	}
	if info.Phone != "" {
		score += 25
	}
	if info.Name != "" {
		score += 10
	}

	if info.Budget != "" {
		budget := budgetValue(info.Budget)
		switch {
		case budget >= 150000:
			score += 20
		case budget >= 80000:
			score += 15
		case budget >= 50000:
			score += 10
		default:
			score += 5
		}
	}

	if info.Timeline != "" {
		score += 5
	}
	if info.PoolType != "" {
		score += 5
	}
	if info.ProjectType != "" {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

// TierFor maps a score to its hot/warm/cold bucket.
func TierFor(score int) models.Tier {
	switch {
	case score >= 60:
		return models.TierHot
	case score >= 30:
		return models.TierWarm
	default:
		return models.TierCold
	}
}

func budgetValue(budget string) int {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(budget)
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}
