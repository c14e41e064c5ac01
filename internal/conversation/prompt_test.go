package conversation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poolexpert/concierge/internal/models"
)

func TestComposeIncludesContext(t *testing.T) {
	prompt := Compose(models.ConversationState{
		MessageCount: 4,
		Stage:        models.StageExplore,
	})

	assert.True(t, strings.HasPrefix(prompt, "You are an AI Sales Concierge"))
	assert.Contains(t, prompt, "# CURRENT CONVERSATION CONTEXT")
	assert.Contains(t, prompt, "Messages exchanged: 4")
	assert.Contains(t, prompt, "Conversation stage: explore")
	assert.Contains(t, prompt, "Budget qualified: Not yet")
	assert.Contains(t, prompt, "Timeline: Unknown")
}

func TestComposeConvertDirective(t *testing.T) {
	qualified := Compose(models.ConversationState{
		MessageCount:    9,
		Stage:           models.StageConvert,
		BudgetQualified: true,
		TimelineKnown:   true,
	})
	assert.Contains(t, qualified, "ACTION REQUIRED")
	assert.Contains(t, qualified, "Budget qualified: Yes ($80k+)")
	assert.Contains(t, qualified, "Timeline: Soon")

	// Convert stage without a qualified budget keeps building rapport.
	unqualified := Compose(models.ConversationState{
		MessageCount: 9,
		Stage:        models.StageConvert,
	})
	assert.Contains(t, unqualified, "CONTINUE: Keep building rapport")
	assert.NotContains(t, unqualified, "ACTION REQUIRED")
}
