package production

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newsanchor/api-gateway/models"
)

func TestTransitionTable(t *testing.T) {
	allowed := [][2]string{
		{models.StatusGenerating, models.StatusProcessing},
		{models.StatusGenerating, models.StatusFailed},
		{models.StatusProcessing, models.StatusProcessing},
		{models.StatusProcessing, models.StatusReady},
		{models.StatusProcessing, models.StatusFailed},
		{models.StatusReady, models.StatusApproved},
		{models.StatusReady, models.StatusProcessing},
		{models.StatusApproved, models.StatusPublished},
		{models.StatusApproved, models.StatusProcessing},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s should be legal", tr[0], tr[1])
	}

	forbidden := [][2]string{
		{models.StatusGenerating, models.StatusReady},
		{models.StatusGenerating, models.StatusApproved},
		{models.StatusReady, models.StatusPublished},
		{models.StatusReady, models.StatusFailed},
		{models.StatusPublished, models.StatusProcessing},
		{models.StatusFailed, models.StatusGenerating},
		{models.StatusFailed, models.StatusProcessing},
		{models.StatusPublished, models.StatusApproved},
	}
	for _, tr := range forbidden {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s should be illegal", tr[0], tr[1])
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusFailed))
	assert.True(t, IsTerminal(models.StatusPublished))
	assert.False(t, IsTerminal(models.StatusReady))
	assert.False(t, IsTerminal(models.StatusGenerating))
}
