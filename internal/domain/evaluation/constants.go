package evaluation

const (
	StatusPending  = "pendiente"
	StatusInReview = "en_revision"
	StatusApproved = "aprobada"
	StatusRejected = "reprobada"
)

// The reviewers do not follow a strict forward-only state machine; any
// status may be re-entered, so validity is just membership in the set.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

const (
	// EvaluatorSelfAssessment marks an evaluation nobody has reviewed yet.
	EvaluatorSelfAssessment = "Autoevaluación"

	// OriginalRecordedBy is the ledger actor for the employee's own entry.
	OriginalRecordedBy = "Empleado"
)
