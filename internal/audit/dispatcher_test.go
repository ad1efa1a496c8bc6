package audit

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.AuditLog{}))
	return gdb
}

func TestDispatch_WritesEntry(t *testing.T) {
	gdb := newTestDB(t)
	d := NewDispatcher(New(gdb), zap.NewNop())

	adminID := uint(7)
	targetID := uint(42)
	d.Dispatch(Event{
		Action:    ActionRoleChange,
		AdminID:   &adminID,
		TargetID:  &targetID,
		Details:   map[string]any{"from": "USER", "to": "ADMIN"},
		IPAddress: "10.0.0.1",
		UserAgent: "admin-ui",
	})

	assert.Eventually(t, func() bool {
		var n int64
		gdb.Model(&models.AuditLog{}).Count(&n)
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)

	var entry models.AuditLog
	require.NoError(t, gdb.First(&entry).Error)
	assert.Equal(t, ActionRoleChange, entry.Action)
	require.NotNil(t, entry.AdminID)
	assert.Equal(t, adminID, *entry.AdminID)
	require.NotNil(t, entry.TargetID)
	assert.Equal(t, targetID, *entry.TargetID)
	assert.Contains(t, entry.Details, `"to":"ADMIN"`)
	assert.Equal(t, "10.0.0.1", entry.IPAddress)
}

func TestDispatch_NilDetails(t *testing.T) {
	gdb := newTestDB(t)
	d := NewDispatcher(New(gdb), zap.NewNop())

	d.Dispatch(Event{Action: ActionSubscriptionCancel})

	assert.Eventually(t, func() bool {
		var n int64
		gdb.Model(&models.AuditLog{}).Count(&n)
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)

	var entry models.AuditLog
	require.NoError(t, gdb.First(&entry).Error)
	assert.Empty(t, entry.Details)
	assert.Nil(t, entry.AdminID)
}

func TestDispatch_NeverBlocksTheCaller(t *testing.T) {
	gdb := newTestDB(t)
	d := NewDispatcher(New(gdb), zap.NewNop())

	done := make(chan struct{})
	go func() {
		// Far more events than the queue holds; overflow is dropped, the
		// caller must return regardless.
		for i := 0; i < 1000; i++ {
			d.Dispatch(Event{Action: ActionAccountDelete})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
}
