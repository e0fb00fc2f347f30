package models

// StreakState tracks consecutive days on which the daily goal was reached.
// Invariant: Longest >= Current.
type StreakState struct {
	Current           int    `json:"current"`
	Longest           int    `json:"longest"`
	LastCompletedDate string `json:"last_completed_date,omitempty"` // YYYY-MM-DD, empty when no day completed yet
	LastFinalizedDate string `json:"last_finalized_date,omitempty"` // YYYY-MM-DD of the last streak update, guards once-per-day finalization
}
