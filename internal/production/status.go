package production

import "newsanchor/api-gateway/models"

// transitions is the status state machine. generating -> processing ->
// ready -> approved -> published, failed reachable from both in-flight
// states, and the edit re-entry edge ready|approved -> processing.
// failed and published are terminal: recovery from failed is a fresh
// dispatch, never a transition.
var transitions = map[string]map[string]bool{
	models.StatusGenerating: {
		models.StatusProcessing: true,
		models.StatusFailed:     true,
	},
	models.StatusProcessing: {
		models.StatusProcessing: true, // progress ticks
		models.StatusReady:      true,
		models.StatusFailed:     true,
	},
	models.StatusReady: {
		models.StatusApproved:   true,
		models.StatusProcessing: true, // edit re-entry
	},
	models.StatusApproved: {
		models.StatusPublished:  true,
		models.StatusProcessing: true, // edit re-entry
	},
}

// CanTransition reports whether moving a record from one status to
// another is legal. Every mutator consults this before writing.
func CanTransition(from, to string) bool {
	return transitions[from][to]
}

// IsTerminal reports whether a status permits no further transitions.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}
