package repairs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	"github.com/renewbay/renewbay-backend/pkg/ids"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

func setupRepairsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	tickets := `
CREATE TABLE IF NOT EXISTS repair_tickets (
  ticket TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  device_type TEXT,
  device TEXT NOT NULL,
  issue TEXT,
  image_path TEXT,
  preferred_time TEXT,
  scheduled_time TEXT,
  status TEXT NOT NULL DEFAULT 'in_progress',
  contacted INTEGER NOT NULL DEFAULT 0,
  staff_notes TEXT,
  assigned_to TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(tickets).Error)
	return db
}

func seedTicket(t *testing.T, db *gorm.DB, email string, mutate ...func(*models.RepairTicket)) *models.RepairTicket {
	t.Helper()

	ticket := &models.RepairTicket{
		Ticket: ids.New(ids.PrefixRepair),
		Email:  email,
		Device: "iPhone 12",
		Issue:  "cracked screen",
		Status: enums.RepairStatusInProgress,
	}
	for _, fn := range mutate {
		fn(ticket)
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

func TestRepositoryAppendNotes_accumulates(t *testing.T) {
	db := setupRepairsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ticket := seedTicket(t, db, "fix@example.com")

	affected, err := repo.AppendNotes(ctx, ticket.Ticket, "first note")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = repo.AppendNotes(ctx, ticket.Ticket, "second note")
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, ticket.Ticket)
	require.NoError(t, err)
	assert.Equal(t, "first note\nsecond note", stored.StaffNotes)
}

func TestRepositoryAppendNotes_missingTicket(t *testing.T) {
	db := setupRepairsTestDB(t)
	repo := NewRepository(db)

	affected, err := repo.AppendNotes(context.Background(), "R-ghost", "note")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestRepositoryList_filters(t *testing.T) {
	db := setupRepairsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedTicket(t, db, "a@example.com")
	seedTicket(t, db, "a@example.com", func(r *models.RepairTicket) {
		r.Status = enums.RepairStatusCompleted
	})
	seedTicket(t, db, "b@example.com")

	all, err := repo.List(ctx, Filters{}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byEmail, err := repo.List(ctx, Filters{Email: "A@example.com"}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)

	byStatus, err := repo.List(ctx, Filters{Status: enums.RepairStatusCompleted}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "a@example.com", byStatus[0].Email)
}

func TestRepositoryListByEmail_ownRowsOnly(t *testing.T) {
	db := setupRepairsTestDB(t)
	repo := NewRepository(db)

	seedTicket(t, db, "mine@example.com")
	seedTicket(t, db, "theirs@example.com")

	list, err := repo.ListByEmail(context.Background(), "Mine@Example.com", pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "mine@example.com", list[0].Email)
}

func TestRepositoryFindByID_backfillsStatus(t *testing.T) {
	db := setupRepairsTestDB(t)
	repo := NewRepository(db)

	// Simulate a legacy row imported without a status value.
	ticketID := ids.New(ids.PrefixRepair)
	require.NoError(t, db.Exec(
		`INSERT INTO repair_tickets (ticket, email, device, status) VALUES (?, ?, ?, '')`,
		ticketID, "legacy@example.com", "Old Laptop",
	).Error)

	stored, err := repo.FindByID(context.Background(), ticketID)
	require.NoError(t, err)
	assert.Equal(t, enums.RepairStatusInProgress, stored.Status)
}
