package scheduler

// ViolationKind classifies a validation failure. Storage failures are
// never violations; they surface as plain errors.
type ViolationKind string

const (
	KindCohesion   ViolationKind = "cohesion"
	KindStructural ViolationKind = "structural"
	KindConflict   ViolationKind = "conflict"
)

// Violation is a single validation failure attached to a logical field.
type Violation struct {
	Field   string        `json:"field"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}
