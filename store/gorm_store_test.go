package store

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/appointa/appointa/models"
	"github.com/appointa/appointa/scheduler"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.Appointment{},
		&models.AppointmentProvider{},
		&models.AppointmentRecipient{},
		&models.AppointmentActivity{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func timePtr(v models.TimeOfDay) *models.TimeOfDay {
	return &v
}

func testCandidate(providers ...uint) *scheduler.Candidate {
	return &scheduler.Candidate{
		Date:            time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       models.NewTimeOfDay(14, 0),
		EndTime:         timePtr(models.NewTimeOfDay(15, 0)),
		Status:          models.StatusPending,
		PreventsOverlap: true,
		ProviderIDs:     providers,
	}
}

func TestCommit_CreateAndReload(t *testing.T) {
	s := New(newTestDB(t))

	saved, err := s.Commit(context.Background(), testCandidate(1))
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
	if len(saved.Providers) != 1 || saved.Providers[0].ProviderID != 1 {
		t.Fatalf("provider rows = %+v, want one row for provider 1", saved.Providers)
	}
	if saved.StartTime != models.NewTimeOfDay(14, 0) {
		t.Fatalf("start time = %v, want 14:00", saved.StartTime)
	}
}

func TestCommit_UpdateKeepsCreatedAt(t *testing.T) {
	s := New(newTestDB(t))

	saved, err := s.Commit(context.Background(), testCandidate(1))
	if err != nil {
		t.Fatalf("initial commit failed: %v", err)
	}
	created := saved.CreatedAt
	if created.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	update := testCandidate(2)
	update.ID = saved.ID
	update.StartTime = models.NewTimeOfDay(16, 0)
	update.EndTime = timePtr(models.NewTimeOfDay(17, 0))

	resaved, err := s.Commit(context.Background(), update)
	if err != nil {
		t.Fatalf("update commit failed: %v", err)
	}
	if resaved.ID != saved.ID {
		t.Fatalf("update changed the id: %d != %d", resaved.ID, saved.ID)
	}
	if resaved.CreatedAt.IsZero() || resaved.CreatedAt.Unix() != created.Unix() {
		t.Fatalf("created_at changed on update: %v, want %v", resaved.CreatedAt, created)
	}
	if resaved.StartTime != models.NewTimeOfDay(16, 0) {
		t.Fatalf("start time = %v, want the updated 16:00", resaved.StartTime)
	}
	if len(resaved.Providers) != 1 || resaved.Providers[0].ProviderID != 2 {
		t.Fatalf("provider rows = %+v, want the replaced provider 2", resaved.Providers)
	}
}

func TestFindOverlapping_FiltersAndExcludes(t *testing.T) {
	s := New(newTestDB(t))
	ctx := context.Background()

	busy, err := s.Commit(ctx, testCandidate(1))
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	// Same provider, same date, overlapping range.
	windows, err := s.FindOverlapping(ctx, 1, busy.Date,
		models.NewTimeOfDay(14, 30), models.NewTimeOfDay(15, 30), 0)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(windows) != 1 || windows[0].ID != busy.ID {
		t.Fatalf("windows = %+v, want the committed appointment", windows)
	}

	// Excluding the appointment's own id empties the result.
	windows, err = s.FindOverlapping(ctx, 1, busy.Date,
		models.NewTimeOfDay(14, 30), models.NewTimeOfDay(15, 30), busy.ID)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("windows = %+v, want self excluded", windows)
	}

	// Touching range does not match.
	windows, err = s.FindOverlapping(ctx, 1, busy.Date,
		models.NewTimeOfDay(15, 0), models.NewTimeOfDay(16, 0), 0)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("windows = %+v, want no match for a touching range", windows)
	}

	// Other provider sees a free calendar.
	windows, err = s.FindOverlapping(ctx, 2, busy.Date,
		models.NewTimeOfDay(14, 30), models.NewTimeOfDay(15, 30), 0)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("windows = %+v, want no match for another provider", windows)
	}
}

func TestDelete_CascadesRelationRows(t *testing.T) {
	db := newTestDB(t)
	s := New(db)
	ctx := context.Background()

	saved, err := s.Commit(ctx, testCandidate(1))
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var rows int64
	if err := db.Model(&models.AppointmentProvider{}).Where("appointment_id = ?", saved.ID).Count(&rows).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("found %d orphaned provider rows after delete", rows)
	}
}
