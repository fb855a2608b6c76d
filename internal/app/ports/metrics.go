package ports

// GameMetrics counts the headline outcomes the ops surface reports.
type GameMetrics interface {
	RecordTurn(action string, starvation bool)
	RecordEventResolved(eventID string)
	RecordHazardAttempt(method string, resolved bool)
	RecordHuntEnded(meatTaken int)
	RecordConflict()
	RecordFailure()
}
