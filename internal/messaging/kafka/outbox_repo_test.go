package kafka

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	ev := NewEvent("employee", "emp-1", "employee_created", "laundry.employee.lifecycle.v1", "req-1", []byte(`{}`))

	_, err := uuid.Parse(ev.ID)
	assert.NoError(t, err)
	assert.Equal(t, "employee", ev.AggregateType)
	assert.Equal(t, "emp-1", ev.AggregateID)
	assert.Equal(t, "employee_created", ev.EventType)
	assert.Equal(t, "laundry.employee.lifecycle.v1", ev.Topic)
	assert.Equal(t, "req-1", ev.RequestID)
	assert.Equal(t, OutboxStatusPending, ev.Status)
	assert.NoError(t, ValidateOutboxEvent(ev))
}

func TestOutboxRepository_Create_RejectsInvalidEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)

	// missing topic never reaches the database
	ev := NewEvent("employee", "emp-1", "employee_created", "", "", []byte(`{}`))
	assert.Error(t, repo.Create(context.Background(), ev))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_Create_InsertsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ev := NewEvent("inventory_item", "item-1", "inventory_stock_low", "laundry.inventory.stock.v1", "req-2", []byte(`{}`))
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(ev.ID, "req-2", "inventory_item", "item-1", "inventory_stock_low", "laundry.inventory.stock.v1", ev.Payload, OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	assert.NoError(t, repo.Create(context.Background(), ev))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed_SchedulesRetry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("ob-1", OutboxStatusFailed, "broker down", errorMessageMax, maxBackoffSteps, int(retryBackoffStep.Seconds())).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	assert.NoError(t, repo.MarkFailed(context.Background(), "ob-1", "broker down"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := NewEvent("employee", "emp-1", "employee_deleted", "laundry.employee.lifecycle.v1", "", []byte(`{}`))
	assert.NoError(t, ValidateOutboxEvent(valid))

	noID := valid
	noID.ID = ""
	assert.Error(t, ValidateOutboxEvent(noID))

	noPayload := valid
	noPayload.Payload = nil
	assert.Error(t, ValidateOutboxEvent(noPayload))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, ValidateOutboxEvent(badStatus))
}
