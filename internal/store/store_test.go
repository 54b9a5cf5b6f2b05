package store

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"carwash-app-server/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newAppointment(ownerID, plate, date, clock string) *models.Appointment {
	return &models.Appointment{
		OwnerID:      ownerID,
		Plate:        plate,
		CustomerName: "Test Customer",
		Date:         date,
		Time:         clock,
		Service:      models.ServiceBasicWash,
		Price:        models.PriceForService(models.ServiceBasicWash),
		Status:       models.StatusPending,
	}
}

func TestAppointmentsByOwnerOrdering(t *testing.T) {
	appointments := NewAppointments(testDB(t))
	const owner = "owner-1"

	for _, booking := range []struct{ date, clock string }{
		{"2024-02-02", "09:00"},
		{"2024-02-01", "14:00"},
		{"2024-02-01", "08:30"},
	} {
		if _, err := appointments.Insert(newAppointment(owner, "AAA111", booking.date, booking.clock)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	listed, err := appointments.ByOwner(owner)
	if err != nil {
		t.Fatalf("by owner: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(listed))
	}

	want := []string{"2024-02-01 08:30", "2024-02-01 14:00", "2024-02-02 09:00"}
	for i, appointment := range listed {
		got := appointment.Date + " " + appointment.Time
		if got != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestAppointmentDeleteFreesSlot(t *testing.T) {
	appointments := NewAppointments(testDB(t))
	const owner = "owner-1"

	appointment := newAppointment(owner, "AAA111", "2024-02-01", "09:00")
	if _, err := appointments.Insert(appointment); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := appointments.Delete(owner, appointment.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	listed, err := appointments.ByOwner(owner)
	if err != nil {
		t.Fatalf("by owner: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("deleted appointment still listed: %d rows", len(listed))
	}

	onDate, err := appointments.ByOwnerAndDate(owner, "2024-02-01")
	if err != nil {
		t.Fatalf("by owner and date: %v", err)
	}
	if len(onDate) != 0 {
		t.Fatal("deleted appointment still occupies its date")
	}
}

func TestAppointmentDeleteScopedToOwner(t *testing.T) {
	appointments := NewAppointments(testDB(t))

	appointment := newAppointment("owner-1", "AAA111", "2024-02-01", "09:00")
	if _, err := appointments.Insert(appointment); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := appointments.Delete("owner-2", appointment.ID); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound for another owner, got %v", err)
	}
}

func TestLatestForPlate(t *testing.T) {
	appointments := NewAppointments(testDB(t))
	const owner = "owner-1"

	bookings := []struct {
		date, clock, service string
	}{
		{"2024-02-01", "09:00", models.ServiceBasicWash},
		{"2024-02-05", "08:00", models.ServicePremiumWash},
		{"2024-02-05", "15:00", models.ServicePolishWax}, // latest: same date, later time
	}
	for _, booking := range bookings {
		appointment := newAppointment(owner, "AAA111", booking.date, booking.clock)
		appointment.Service = booking.service
		if _, err := appointments.Insert(appointment); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	latest, err := appointments.LatestForPlate(owner, "AAA111")
	if err != nil {
		t.Fatalf("latest for plate: %v", err)
	}
	if latest == nil {
		t.Fatal("expected a latest appointment")
	}
	if latest.Service != models.ServicePolishWax {
		t.Fatalf("expected latest service %s, got %s", models.ServicePolishWax, latest.Service)
	}

	none, err := appointments.LatestForPlate(owner, "ZZZ999")
	if err != nil {
		t.Fatalf("latest for unknown plate: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil for a plate without history, got %+v", none)
	}
}

func TestRecordEvaluationStatusTransitions(t *testing.T) {
	db := testDB(t)
	appointments := NewAppointments(db)
	evaluations := NewEvaluations(db)
	const owner = "owner-1"

	presented := newAppointment(owner, "AAA111", "2024-02-01", "09:00")
	noShow := newAppointment(owner, "BBB222", "2024-02-01", "11:00")
	for _, appointment := range []*models.Appointment{presented, noShow} {
		if _, err := appointments.Insert(appointment); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	id, err := evaluations.Record(&models.Evaluation{
		OwnerID:         owner,
		AppointmentID:   presented.ID,
		Plate:           presented.Plate,
		AppointmentDate: presented.Date,
		Presented:       true,
		ACCondition:     models.ConditionGood,
		TireCondition:   models.ConditionFair,
		Rating:          4,
		Notes:           "Minor scratches on the rear bumper",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id == "" {
		t.Fatal("expected an evaluation id")
	}

	if _, err := evaluations.Record(&models.Evaluation{
		OwnerID:         owner,
		AppointmentID:   noShow.ID,
		Plate:           noShow.Plate,
		AppointmentDate: noShow.Date,
		Presented:       false,
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	reloaded, err := appointments.ByID(owner, presented.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != models.StatusEvaluated {
		t.Fatalf("expected status evaluated, got %s", reloaded.Status)
	}
	if reloaded.EvaluationID != id {
		t.Fatalf("expected appointment to link evaluation %s, got %s", id, reloaded.EvaluationID)
	}

	reloaded, err = appointments.ByID(owner, noShow.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != models.StatusNoShow {
		t.Fatalf("expected status no-show, got %s", reloaded.Status)
	}
}

// Recording twice for the same appointment is not prevented: a second
// evaluation row is created and the status is simply written again.
func TestRecordEvaluationNotIdempotent(t *testing.T) {
	db := testDB(t)
	appointments := NewAppointments(db)
	evaluations := NewEvaluations(db)
	const owner = "owner-1"

	appointment := newAppointment(owner, "AAA111", "2024-02-01", "09:00")
	if _, err := appointments.Insert(appointment); err != nil {
		t.Fatalf("insert: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := evaluations.Record(&models.Evaluation{
			OwnerID:         owner,
			AppointmentID:   appointment.ID,
			AppointmentDate: appointment.Date,
			Presented:       true,
			Rating:          5,
		}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	listed, err := evaluations.ByOwnerWithFilters(owner, EvaluationFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 evaluation rows, got %d", len(listed))
	}
}

func TestEvaluationFilters(t *testing.T) {
	db := testDB(t)
	evaluations := NewEvaluations(db)
	const owner = "owner-1"

	rows := []struct {
		date      string
		presented bool
	}{
		{"2024-01-05", true},
		{"2024-01-15", false},
		{"2024-02-01", true},
	}
	for _, row := range rows {
		if err := db.Create(&models.Evaluation{
			OwnerID:         owner,
			AppointmentID:   "apt-" + row.date,
			AppointmentDate: row.date,
			Presented:       row.presented,
		}).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	presentedOnly := true
	listed, err := evaluations.ByOwnerWithFilters(owner, EvaluationFilters{Presented: &presentedOnly})
	if err != nil {
		t.Fatalf("filter presented: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 presented evaluations, got %d", len(listed))
	}

	listed, err = evaluations.ByOwnerWithFilters(owner, EvaluationFilters{
		DateFrom: "2024-01-10",
		DateTo:   "2024-01-31",
	})
	if err != nil {
		t.Fatalf("filter range: %v", err)
	}
	if len(listed) != 1 || listed[0].AppointmentDate != "2024-01-15" {
		t.Fatalf("expected only the 2024-01-15 evaluation, got %d rows", len(listed))
	}
}

func TestDeleteEvaluationsBeforeThreshold(t *testing.T) {
	db := testDB(t)
	evaluations := NewEvaluations(db)
	const owner = "owner-1"

	for _, date := range []string{"2024-01-05", "2024-01-10", "2024-01-20"} {
		if err := db.Create(&models.Evaluation{
			OwnerID:         owner,
			AppointmentID:   "apt-" + date,
			AppointmentDate: date,
			Presented:       true,
		}).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// Threshold is inclusive: both 01-05 and 01-10 go.
	deleted, err := evaluations.DeleteBefore(owner, "2024-01-10")
	if err != nil {
		t.Fatalf("delete before: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	remaining, err := evaluations.ByOwnerWithFilters(owner, EvaluationFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 1 || remaining[0].AppointmentDate != "2024-01-20" {
		t.Fatalf("expected only the 2024-01-20 evaluation to remain, got %d rows", len(remaining))
	}
}

func TestDeleteAllEvaluationsScopedToOwner(t *testing.T) {
	db := testDB(t)
	evaluations := NewEvaluations(db)

	for _, owner := range []string{"owner-1", "owner-1", "owner-2"} {
		if err := db.Create(&models.Evaluation{
			OwnerID:         owner,
			AppointmentID:   "apt",
			AppointmentDate: "2024-01-05",
		}).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	deleted, err := evaluations.DeleteAllForOwner("owner-1")
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	others, err := evaluations.ByOwnerWithFilters("owner-2", EvaluationFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(others) != 1 {
		t.Fatalf("other owner's evaluations must survive, got %d", len(others))
	}
}

func TestVehiclePlateExists(t *testing.T) {
	vehicles := NewVehicles(testDB(t))
	const owner = "owner-1"

	if _, err := vehicles.Insert(&models.Vehicle{OwnerID: owner, Plate: "AAA111", CustomerName: "Customer"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	exists, err := vehicles.PlateExists(owner, "AAA111")
	if err != nil {
		t.Fatalf("plate exists: %v", err)
	}
	if !exists {
		t.Fatal("expected plate on file")
	}

	exists, err = vehicles.PlateExists("owner-2", "AAA111")
	if err != nil {
		t.Fatalf("plate exists: %v", err)
	}
	if exists {
		t.Fatal("plate must be scoped to its owner")
	}
}

func TestPendingBetween(t *testing.T) {
	db := testDB(t)
	appointments := NewAppointments(db)
	const owner = "owner-1"

	inside := newAppointment(owner, "AAA111", "2024-02-05", "09:00")
	outside := newAppointment(owner, "BBB222", "2024-01-01", "09:00")
	done := newAppointment(owner, "CCC333", "2024-02-06", "10:00")
	done.Status = models.StatusEvaluated
	for _, appointment := range []*models.Appointment{inside, outside, done} {
		if _, err := appointments.Insert(appointment); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	pending, err := appointments.PendingBetween(owner, "2024-02-01", "2024-02-08")
	if err != nil {
		t.Fatalf("pending between: %v", err)
	}
	if len(pending) != 1 || pending[0].Plate != "AAA111" {
		t.Fatalf("expected only the pending in-window appointment, got %d rows", len(pending))
	}
}
