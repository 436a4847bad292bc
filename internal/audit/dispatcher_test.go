package audit_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/audit"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

func openAuditDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// A single connection keeps :memory: one database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := gdb.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func TestDispatchPersistsRow(t *testing.T) {
	gdb := openAuditDB(t)

	d := audit.NewDispatcher(audit.New(gdb), zerolog.Nop())

	userID := uint(3)
	entityID := uint(12)
	d.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_accepted",
		Entity:   "appointment",
		EntityID: &entityID,
		Metadata: map[string]any{"role": "interpreter"},
	})

	// Close drains the queue; the row must be durable afterwards.
	d.Close()

	var row models.AuditLog
	if err := gdb.First(&row).Error; err != nil {
		t.Fatalf("load audit row: %v", err)
	}
	if row.Action != "appointment_accepted" || row.Entity != "appointment" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.UserID == nil || *row.UserID != userID {
		t.Fatalf("userId = %v, want %d", row.UserID, userID)
	}
	if row.EntityID == nil || *row.EntityID != entityID {
		t.Fatalf("entityId = %v, want %d", row.EntityID, entityID)
	}
	if row.Metadata != `{"role":"interpreter"}` {
		t.Fatalf("metadata = %q", row.Metadata)
	}
}

func TestDispatchNeverBlocksWhenQueueIsFull(t *testing.T) {
	gdb := openAuditDB(t)

	d := audit.NewDispatcher(audit.New(gdb), zerolog.Nop())

	// Hold the only connection so the worker wedges on its first write and
	// the queue fills behind it.
	tx := gdb.Begin()
	if tx.Error != nil {
		t.Fatalf("begin: %v", tx.Error)
	}

	const total = 150 // well past the queue capacity

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < total; i++ {
			d.Dispatch(audit.Event{Action: "burst", Entity: "appointment"})
		}
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}

	// Release the worker and drain what survived.
	tx.Rollback()
	d.Close()

	var count int64
	if err := gdb.Model(&models.AuditLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count == 0 {
		t.Fatal("no events survived the burst")
	}
	if count >= total {
		t.Fatalf("persisted %d rows, expected overflow to be dropped", count)
	}
}
