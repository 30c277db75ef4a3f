package repairs

import (
	"context"
	"testing"

	"github.com/renewbay/renewbay-backend/pkg/enums"
	pkgerrors "github.com/renewbay/renewbay-backend/pkg/errors"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupRepairsTestDB(t)))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateTicket(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("blankDevice", func(t *testing.T) {
		_, err := svc.Create(ctx, "fix@example.com", CreateTicketInput{Device: "   "})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missingEmail", func(t *testing.T) {
		_, err := svc.Create(ctx, "", CreateTicketInput{Device: "iPhone"})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		dto, err := svc.Create(ctx, "Fix@Example.com", CreateTicketInput{
			DeviceType: "phone",
			Device:     "  iPhone 12  ",
			Issue:      "battery drains fast",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dto.Email != "fix@example.com" {
			t.Fatalf("expected lowercased email, got %s", dto.Email)
		}
		if dto.Device != "iPhone 12" {
			t.Fatalf("expected trimmed device, got %q", dto.Device)
		}
		if dto.Status != enums.RepairStatusInProgress.String() {
			t.Fatalf("expected in_progress, got %s", dto.Status)
		}
		if dto.Contacted {
			t.Fatal("expected contacted false")
		}
		if dto.ScheduledTime != "" || dto.AssignedTo != "" {
			t.Fatal("expected empty schedule and assignment")
		}
	})
}

func TestSetStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, "fix@example.com", CreateTicketInput{Device: "MacBook Air"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("invalidValue", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, dto.Ticket, "limbo")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missingTicket", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, "R-missing", enums.RepairStatusScheduled)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("forwardThenTerminal", func(t *testing.T) {
		updated, err := svc.SetStatus(ctx, dto.Ticket, enums.RepairStatusScheduled)
		if err != nil {
			t.Fatalf("scheduled: %v", err)
		}
		if updated.Status != enums.RepairStatusScheduled.String() {
			t.Fatalf("expected scheduled, got %s", updated.Status)
		}

		updated, err = svc.SetStatus(ctx, dto.Ticket, enums.RepairStatusCompleted)
		if err != nil {
			t.Fatalf("completed: %v", err)
		}
		if updated.Status != enums.RepairStatusCompleted.String() {
			t.Fatalf("expected completed, got %s", updated.Status)
		}

		_, err = svc.SetStatus(ctx, dto.Ticket, enums.RepairStatusDeclined)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("expected state conflict, got %v", err)
		}
	})

	t.Run("sameStatusIsNoOp", func(t *testing.T) {
		other, err := svc.Create(ctx, "fix@example.com", CreateTicketInput{Device: "iPad"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		dto, err := svc.SetStatus(ctx, other.Ticket, enums.RepairStatusInProgress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dto.Status != enums.RepairStatusInProgress.String() {
			t.Fatalf("expected in_progress, got %s", dto.Status)
		}
	})
}

func TestSchedule(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, "fix@example.com", CreateTicketInput{Device: "Pixel 6"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("requiresTime", func(t *testing.T) {
		_, err := svc.Schedule(ctx, dto.Ticket, "  ", "")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("setsTimeStatusAndNotes", func(t *testing.T) {
		updated, err := svc.Schedule(ctx, dto.Ticket, "2026-09-02T10:00", "bring charger")
		if err != nil {
			t.Fatalf("schedule: %v", err)
		}
		if updated.ScheduledTime != "2026-09-02T10:00" {
			t.Fatalf("unexpected scheduled time %s", updated.ScheduledTime)
		}
		if updated.Status != enums.RepairStatusScheduled.String() {
			t.Fatalf("expected scheduled, got %s", updated.Status)
		}
		if updated.StaffNotes != "bring charger" {
			t.Fatalf("unexpected notes %q", updated.StaffNotes)
		}
	})

	t.Run("notesAccumulate", func(t *testing.T) {
		updated, err := svc.Schedule(ctx, dto.Ticket, "2026-09-03T10:00", "rescheduled")
		if err != nil {
			t.Fatalf("schedule: %v", err)
		}
		if updated.StaffNotes != "bring charger\nrescheduled" {
			t.Fatalf("expected accumulated notes, got %q", updated.StaffNotes)
		}
	})

	t.Run("terminalConflicts", func(t *testing.T) {
		if _, err := svc.SetStatus(ctx, dto.Ticket, enums.RepairStatusDeclined); err != nil {
			t.Fatalf("decline: %v", err)
		}
		_, err := svc.Schedule(ctx, dto.Ticket, "2026-09-04T10:00", "")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("expected state conflict, got %v", err)
		}
	})
}

func TestContactedAndAssign(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, "fix@example.com", CreateTicketInput{Device: "Surface Pro"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.SetContacted(ctx, dto.Ticket, true)
	if err != nil {
		t.Fatalf("set contacted: %v", err)
	}
	if !updated.Contacted {
		t.Fatal("expected contacted true")
	}

	updated, err = svc.Assign(ctx, dto.Ticket, "  tech@renewbay.example  ")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if updated.AssignedTo != "tech@renewbay.example" {
		t.Fatalf("unexpected assignee %q", updated.AssignedTo)
	}

	if _, err := svc.SetContacted(ctx, "R-missing", true); pkgerrors.As(err) == nil {
		t.Fatal("expected error for missing ticket")
	}
}

func TestListCustomerTicketsRequiresEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ListCustomerTickets(context.Background(), " ", pagination.Params{Limit: 10})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
