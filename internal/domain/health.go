package domain

// HealthStatus indicates doctor check outcomes.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck captures a single diagnostic result.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport aggregates checks.
type HealthReport struct {
	Checks []HealthCheck
}

// Failed returns the checks that ended in HealthError.
func (r HealthReport) Failed() []HealthCheck {
	var failed []HealthCheck
	for _, check := range r.Checks {
		if check.Status == HealthError {
			failed = append(failed, check)
		}
	}
	return failed
}
