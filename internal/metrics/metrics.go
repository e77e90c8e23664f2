package metrics

const Namespace = "garden"

const (
	OutcomeSuccess   = "success"
	OutcomeNotFound  = "not_found"
	OutcomeForbidden = "forbidden"
	OutcomeInvalid   = "invalid"
	OutcomeConflict  = "conflict"
	OutcomeError     = "error"
)
