package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/appointa/appointa/models"
)

// -- Mock Store --

// memStore is an in-memory Store: appointments keyed by id, activities
// keyed by id, with switches to simulate storage failures.
type memStore struct {
	nextID       uint
	appointments map[uint]*Candidate
	activities   map[uint]ActivitySnapshot

	findErr   error
	fetchErr  error
	commitErr error

	lockCalls []string
	findCalls int
}

func newMemStore() *memStore {
	return &memStore{
		nextID:       1,
		appointments: make(map[uint]*Candidate),
		activities:   make(map[uint]ActivitySnapshot),
	}
}

func (m *memStore) addActivity(id uint, price string, duration time.Duration) {
	m.activities[id] = ActivitySnapshot{
		ActivityID: id,
		Price:      mustDecimal(price),
		Duration:   duration,
	}
}

func (m *memStore) FindOverlapping(_ context.Context, providerID uint, date time.Time, start, end models.TimeOfDay, excludeID uint) ([]AppointmentWindow, error) {
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}

	ids := make([]uint, 0, len(m.appointments))
	for id := range m.appointments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var windows []AppointmentWindow
	for _, id := range ids {
		stored := m.appointments[id]
		if excludeID != 0 && id == excludeID {
			continue
		}
		if !stored.PreventsOverlap || !stored.Date.Equal(date) {
			continue
		}
		linked := false
		for _, pid := range stored.ProviderIDs {
			if pid == providerID {
				linked = true
				break
			}
		}
		if !linked {
			continue
		}
		storedStart, storedEnd := stored.Interval()
		if storedStart < end && storedEnd > start {
			windows = append(windows, AppointmentWindow{ID: id, StartTime: storedStart, EndTime: storedEnd})
		}
	}
	return windows, nil
}

func (m *memStore) FetchActivitySnapshots(_ context.Context, activityIDs []uint) ([]ActivitySnapshot, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	var snapshots []ActivitySnapshot
	for _, id := range activityIDs {
		if snap, ok := m.activities[id]; ok {
			snapshots = append(snapshots, snap)
		}
	}
	return snapshots, nil
}

func (m *memStore) Commit(_ context.Context, c *Candidate) (*models.Appointment, error) {
	if m.commitErr != nil {
		return nil, m.commitErr
	}
	if c.ID == 0 {
		c.ID = m.nextID
		m.nextID++
	}
	stored := *c
	m.appointments[c.ID] = &stored

	appointment := &models.Appointment{
		Model:           gorm.Model{ID: c.ID},
		Date:            c.Date,
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		Status:          c.Status,
		Price:           c.Price,
		AutoPrice:       c.AutoPrice,
		AutoEndTime:     c.AutoEndTime,
		IsBlocked:       c.IsBlocked,
		PreventsOverlap: c.PreventsOverlap,
	}
	return appointment, nil
}

func (m *memStore) Transaction(_ context.Context, fn func(Store) error) error {
	return fn(m)
}

func (m *memStore) LockSchedule(_ context.Context, providerID uint, date time.Time) error {
	m.lockCalls = append(m.lockCalls, fmt.Sprintf("%d:%s", providerID, date.Format("2006-01-02")))
	return nil
}
