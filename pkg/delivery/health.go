package delivery

// HealthStatus classifies overall queue health for operational dashboards
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// HealthInput carries the aggregate counters the assessment is computed
// from. FailureRate and RetryRecoveryRate are percentages over a recent
// window; the aggregation itself happens outside this package.
type HealthInput struct {
	Pending           int
	Sent              int
	Failed            int
	FailureRate       float64
	RetryRecoveryRate float64
}

// HealthReport is the result of a stateless health assessment
type HealthReport struct {
	Status          HealthStatus `json:"status"`
	Recommendations []string     `json:"recommendations,omitempty"`
}

// Assessment thresholds
const (
	criticalPendingThreshold = 1000
	warningPendingThreshold  = 500
	criticalFailureRate      = 20.0
	warningFailureRate       = 10.0
	warningRetryRecoveryRate = 30.0
)

// AssessHealth computes queue health from aggregate counters. It is pure:
// nothing is stored, and repeated calls with the same input yield the same
// report. Every triggered condition contributes a recommendation regardless
// of which one determined the overall status.
func AssessHealth(in HealthInput) HealthReport {
	report := HealthReport{Status: HealthHealthy}

	if in.Pending > criticalPendingThreshold {
		report.Status = HealthCritical
		report.Recommendations = append(report.Recommendations,
			"Queue backlog is very large; increase batch size or processing frequency")
	} else if in.Pending > warningPendingThreshold {
		report.Status = HealthWarning
		report.Recommendations = append(report.Recommendations,
			"Queue is growing; monitor pending count and consider a larger batch size")
	}

	if in.FailureRate > criticalFailureRate {
		report.Status = HealthCritical
		report.Recommendations = append(report.Recommendations,
			"Failure rate is high; check email and push transport availability")
	} else if in.FailureRate > warningFailureRate {
		if report.Status != HealthCritical {
			report.Status = HealthWarning
		}
		report.Recommendations = append(report.Recommendations,
			"Failure rate is elevated; review recent delivery errors")
	}

	if in.RetryRecoveryRate > warningRetryRecoveryRate {
		if report.Status != HealthCritical {
			report.Status = HealthWarning
		}
		report.Recommendations = append(report.Recommendations,
			"Many deliveries only succeed on retry; transports may be flaky")
	}

	return report
}
