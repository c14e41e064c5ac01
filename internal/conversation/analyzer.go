package conversation

import (
	"regexp"
	"strings"

	"github.com/poolexpert/concierge/internal/models"
)

// Budget mentions in the $80k+ range qualify a prospect; the $50-75k range
// is noted but does not qualify on its own.
var (
	highBudgetPattern = regexp.MustCompile(`\$?(80|85|90|95|100|110|120|130|140|150|160|170|180|190|200)[k,]?`)
	midBudgetPattern  = regexp.MustCompile(`\$?(50|55|60|65|70|75)[k,]?`)
	timelinePattern   = regexp.MustCompile(`(2025|2026|next year|spring|summer|fall|winter|this year|soon)`)
)

// Analyze derives the funnel stage and qualification flags for a
// conversation. The state is computed from scratch on every call; nothing
// is carried over between turns.
func Analyze(messages []models.Message) models.ConversationState {
	state := models.ConversationState{
		MessageCount: len(messages),
		Stage:        models.StageRapport,
	}

	count := state.MessageCount
	switch {
	case count > 8:
		state.Stage = models.StageConvert
	case count > 5:
		state.Stage = models.StageQualify
	case count > 2:
		state.Stage = models.StageExplore
	}

	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(strings.ToLower(m.Content))
	}
	text := sb.String()

	if highBudgetPattern.MatchString(text) {
		state.BudgetQualified = true
		state.BudgetRange = "$80k+"
	} else if midBudgetPattern.MatchString(text) {
		state.BudgetRange = "$50-80k"
	}

	state.TimelineKnown = timelinePattern.MatchString(text)

	return state
}
