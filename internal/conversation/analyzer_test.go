package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poolexpert/concierge/internal/models"
)

func chat(contents ...string) []models.Message {
	msgs := make([]models.Message, 0, len(contents))
	role := models.RoleUser
	for _, c := range contents {
		msgs = append(msgs, models.Message{Role: role, Content: c})
		if role == models.RoleUser {
			role = models.RoleAssistant
		} else {
			role = models.RoleUser
		}
	}
	return msgs
}

func neutral(n int) []models.Message {
	contents := make([]string, n)
	for i := range contents {
		contents[i] = "hi"
	}
	return chat(contents...)
}

func TestStageBoundaries(t *testing.T) {
	cases := map[int]models.Stage{
		0: models.StageRapport,
		1: models.StageRapport,
		2: models.StageRapport,
		3: models.StageExplore,
		5: models.StageExplore,
		6: models.StageQualify,
		8: models.StageQualify,
		9: models.StageConvert,
	}
	for count, want := range cases {
		state := Analyze(neutral(count))
		assert.Equal(t, want, state.Stage, "count: %d", count)
		assert.Equal(t, count, state.MessageCount)
	}
}

func TestBudgetQualification(t *testing.T) {
	state := Analyze(chat("I want a pool", "great!", "my budget is around 90k"))
	assert.True(t, state.BudgetQualified)
	assert.Equal(t, "$80k+", state.BudgetRange)

	state = Analyze(chat("thinking maybe 60k"))
	assert.False(t, state.BudgetQualified)
	assert.Equal(t, "$50-80k", state.BudgetRange)

	state = Analyze(neutral(3))
	assert.False(t, state.BudgetQualified)
	assert.Empty(t, state.BudgetRange)
}

func TestTimelineDetection(t *testing.T) {
	assert.True(t, Analyze(chat("we want it done by next summer")).TimelineKnown)
	assert.True(t, Analyze(chat("hoping for 2026")).TimelineKnown)
	assert.True(t, Analyze(chat("pretty soon I hope")).TimelineKnown)
	assert.False(t, Analyze(neutral(4)).TimelineKnown)
}

func TestFlagsIndependentOfStage(t *testing.T) {
	// A single qualified message is still rapport stage.
	state := Analyze(chat("budget around 150k, want it this year"))
	assert.Equal(t, models.StageRapport, state.Stage)
	assert.True(t, state.BudgetQualified)
	assert.True(t, state.TimelineKnown)
}

func TestAnalyzeIsStateless(t *testing.T) {
	msgs := chat("budget is 90k")
	first := Analyze(msgs)
	second := Analyze(msgs)
	assert.Equal(t, first, second)
}
