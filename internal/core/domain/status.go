package domain

// RunStatus is the lifecycle state of a plan entry.
type RunStatus string

const (
	// StatusPending means the entry has not started.
	StatusPending RunStatus = "pending"
	// StatusRunning means the entry's body is executing.
	StatusRunning RunStatus = "running"
	// StatusCompleted means every line of the body succeeded.
	StatusCompleted RunStatus = "completed"
	// StatusFailed means the entry stopped the run.
	StatusFailed RunStatus = "failed"
	// StatusSkipped means the body was printed but not run.
	StatusSkipped RunStatus = "skipped"
)

// IsTerminal reports whether no further transition can happen.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusSkipped:
		return true
	default:
		return false
	}
}
