package scheduler

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/appointa/appointa/models"
)

// Store is the storage collaborator the engine validates and commits
// through. Implementations must make Transaction + LockSchedule close
// the check-then-act window between the conflict query and the commit.
type Store interface {
	// FindOverlapping returns committed appointments for the provider on
	// the date whose interval intersects (start, end), with
	// prevents_overlap set, excluding excludeID when non-zero.
	FindOverlapping(ctx context.Context, providerID uint, date time.Time, start, end models.TimeOfDay, excludeID uint) ([]AppointmentWindow, error)
	// FetchActivitySnapshots reads current price and duration for the
	// given activities.
	FetchActivitySnapshots(ctx context.Context, activityIDs []uint) ([]ActivitySnapshot, error)
	// Commit writes the appointment and all its relation rows atomically.
	Commit(ctx context.Context, c *Candidate) (*models.Appointment, error)
	// Transaction runs fn against a transactional view of the store.
	Transaction(ctx context.Context, fn func(Store) error) error
	// LockSchedule serializes writers for one provider's calendar date
	// until the surrounding transaction ends.
	LockSchedule(ctx context.Context, providerID uint, date time.Time) error
}

// Config decouples the engine from the identity system: providers are
// opaque ids, and an optional accessor supplies their display label for
// conflict messages.
type Config struct {
	ProviderLabel func(ctx context.Context, providerID uint) string
}

func (c Config) providerLabel(ctx context.Context, providerID uint) string {
	if c.ProviderLabel != nil {
		return c.ProviderLabel(ctx, providerID)
	}
	return strconv.FormatUint(uint64(providerID), 10)
}

// Service owns the validation pipeline and the save contract.
type Service struct {
	store Store
	cfg   Config
}

func NewService(store Store, cfg Config) *Service {
	return &Service{store: store, cfg: cfg}
}

// errRejected aborts the save transaction when validation fails; it
// never escapes ValidateAndSave.
var errRejected = errors.New("appointment rejected by validation")

// ValidateAndSave runs the full pipeline over the candidate and, if it
// passes, commits the appointment and its relation rows in one
// transaction. It returns either the saved appointment, a non-empty
// violation list, or a storage error - never a mix.
//
// Re-saving an existing appointment re-runs everything, including
// conflict detection against all linked providers.
func (s *Service) ValidateAndSave(ctx context.Context, c *Candidate) (*models.Appointment, []Violation, error) {
	var (
		saved      *models.Appointment
		violations []Violation
	)

	err := s.store.Transaction(ctx, func(tx Store) error {
		// Lock in a stable order so concurrent saves sharing providers
		// cannot deadlock.
		for _, providerID := range sortedUnique(c.ProviderIDs) {
			if err := tx.LockSchedule(ctx, providerID, c.Date); err != nil {
				return err
			}
		}

		run := &pipelineRun{store: tx, cfg: s.cfg, cand: c}
		found, err := run.run(ctx)
		if err != nil {
			return err
		}
		if len(found) > 0 {
			violations = found
			return errRejected
		}

		appointment, err := tx.Commit(ctx, c)
		if err != nil {
			return err
		}
		saved = appointment
		return nil
	})

	if errors.Is(err, errRejected) {
		return nil, violations, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return saved, nil, nil
}

// CheckConflict is the read-only preflight: it reports the first
// committed appointment clashing with the candidate for one provider,
// without touching anything. Callers use it to render available slots
// before submitting.
func (s *Service) CheckConflict(ctx context.Context, c *Candidate, providerID uint) (*ConflictDescriptor, error) {
	if !c.PreventsOverlap {
		return nil, nil
	}
	// Check the same interval a save would: the end time may still need
	// to be computed from the linked activities.
	if c.AutoEndTime && len(c.ActivityIDs) > 0 {
		snapshots, err := s.store.FetchActivitySnapshots(ctx, c.ActivityIDs)
		if err != nil {
			return nil, err
		}
		applyAutoEndTime(c, snapshots)
	}
	start, end := c.Interval()
	windows, err := s.store.FindOverlapping(ctx, providerID, c.Date, start, end, c.ID)
	if err != nil {
		return nil, err
	}
	return findConflict(c, providerID, s.cfg.providerLabel(ctx, providerID), windows), nil
}

func sortedUnique(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
