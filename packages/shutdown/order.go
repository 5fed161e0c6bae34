package shutdown

// Background workers are stopped in the reverse order of their priority.
const (
	PriorityDatabase = iota
	PriorityFaucet
	PriorityPrometheus
	PriorityWebAPI
	PriorityHealthz
)
