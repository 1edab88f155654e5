package types

// SelfTestCheck records the outcome of one constraint scenario.
type SelfTestCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"` // Observed error, if any.
}

// SelfTestReport is the result of Planner.SelfTest.
type SelfTestReport struct {
	Checks []SelfTestCheck `json:"checks"`
	Passed bool            `json:"passed"`
}

// Record appends a check outcome and folds it into the overall result.
func (r *SelfTestReport) Record(name string, passed bool, detail string) {
	r.Checks = append(r.Checks, SelfTestCheck{Name: name, Passed: passed, Detail: detail})
	if !passed {
		r.Passed = false
	}
}
