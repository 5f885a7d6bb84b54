package types

import "time"

type ValidationResult struct {
	Destination RegistryKind `json:"destination"`
	OK          bool         `json:"ok"`
	Detail      string       `json:"detail,omitempty"`
}

type PushOutcome struct {
	Job         MirrorJob     `json:"job"`
	Destination RegistryKind  `json:"destination"`
	Attempts    int           `json:"attempts"`
	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
}

type RunReport struct {
	TotalJobs    int                `json:"total_jobs"`
	TotalPairs   int                `json:"total_pairs"`
	SuccessCount int                `json:"success_count"`
	FailureCount int                `json:"failure_count"`
	Duration     time.Duration      `json:"duration"`
	Outcomes     []*PushOutcome     `json:"outcomes,omitempty"`
	Failures     []*PushOutcome     `json:"failures,omitempty"`
	Validations  []ValidationResult `json:"validations,omitempty"`
	ValidateOnly bool               `json:"validate_only,omitempty"`
	DryRun       bool               `json:"dry_run,omitempty"`
}

func (r *RunReport) ValidationsOK() bool {
	for _, v := range r.Validations {
		if !v.OK {
			return false
		}
	}
	return true
}

func (r *RunReport) Succeeded() bool {
	return r.ValidationsOK() && r.FailureCount == 0
}
