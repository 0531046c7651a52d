package scheduler

import "context"

// Step is one stage of the validation pipeline. It may mutate the
// candidate (derived fields) and returns any violations it found. An
// error means storage failed, not that validation failed.
type Step func(ctx context.Context) ([]Violation, error)

// pipelineRun carries the shared state of a single validation pass:
// the candidate under validation and the activity snapshots, loaded at
// most once per pass.
type pipelineRun struct {
	store     Store
	cfg       Config
	cand      *Candidate
	snapshots []ActivitySnapshot
	loaded    bool
}

// steps returns the pipeline in its fixed order: cheap local cohesion
// checks, then derived-field computation (conflict detection needs the
// final end time), then relation structure, then the conflict query.
// The caller stops at the first step that reports violations.
func (r *pipelineRun) steps() []Step {
	return []Step{
		r.timeCohesion,
		r.blockedCohesion,
		r.autoEndTime,
		r.autoPrice,
		r.membership,
		r.conflicts,
	}
}

func (r *pipelineRun) run(ctx context.Context) ([]Violation, error) {
	for _, step := range r.steps() {
		violations, err := step(ctx)
		if err != nil {
			return nil, err
		}
		if len(violations) > 0 {
			return violations, nil
		}
	}
	return nil, nil
}

func (r *pipelineRun) timeCohesion(context.Context) ([]Violation, error) {
	if v := ValidateTimeCohesion(r.cand.StartTime, r.cand.EndTime); v != nil {
		return []Violation{*v}, nil
	}
	return nil, nil
}

func (r *pipelineRun) blockedCohesion(context.Context) ([]Violation, error) {
	if v := ValidateBlockedCohesion(r.cand.IsBlocked, r.cand.PreventsOverlap); v != nil {
		return []Violation{*v}, nil
	}
	return nil, nil
}

func (r *pipelineRun) loadSnapshots(ctx context.Context) error {
	if r.loaded || len(r.cand.ActivityIDs) == 0 {
		r.loaded = true
		return nil
	}
	snapshots, err := r.store.FetchActivitySnapshots(ctx, r.cand.ActivityIDs)
	if err != nil {
		return err
	}
	r.snapshots = snapshots
	r.loaded = true
	return nil
}

func (r *pipelineRun) autoEndTime(ctx context.Context) ([]Violation, error) {
	if err := r.loadSnapshots(ctx); err != nil {
		return nil, err
	}
	applyAutoEndTime(r.cand, r.snapshots)
	return nil, nil
}

func (r *pipelineRun) autoPrice(ctx context.Context) ([]Violation, error) {
	if err := r.loadSnapshots(ctx); err != nil {
		return nil, err
	}
	applyAutoPrice(r.cand, r.snapshots)
	return nil, nil
}

func (r *pipelineRun) membership(context.Context) ([]Violation, error) {
	return validateMembership(r.cand), nil
}

// conflicts checks each linked provider in turn and stops at the first
// one with a clash. The candidate interval is final by this point. A
// candidate that allows overlaps is exempt: conflicts only exist
// between two appointments that both prevent overlap.
func (r *pipelineRun) conflicts(ctx context.Context) ([]Violation, error) {
	if !r.cand.PreventsOverlap {
		return nil, nil
	}
	start, end := r.cand.Interval()
	for _, providerID := range r.cand.ProviderIDs {
		windows, err := r.store.FindOverlapping(ctx, providerID, r.cand.Date, start, end, r.cand.ID)
		if err != nil {
			return nil, err
		}
		desc := findConflict(r.cand, providerID, r.cfg.providerLabel(ctx, providerID), windows)
		if desc != nil {
			return []Violation{{
				Field:   "start_time",
				Kind:    KindConflict,
				Message: desc.Message(),
			}}, nil
		}
	}
	return nil, nil
}
