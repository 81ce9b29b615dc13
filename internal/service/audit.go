package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Leganyst/handig/internal/model"
	"github.com/Leganyst/handig/internal/repository"
)

// AuditLog пишет события изменений в таблицу events.
// Ошибка записи только логируется: запрос пользователя из-за неё не падает.
type AuditLog struct {
	events repository.EventRepository
	now    func() time.Time
}

func NewAuditLog(events repository.EventRepository) *AuditLog {
	return &AuditLog{events: events, now: func() time.Time { return time.Now().UTC() }}
}

func (a *AuditLog) Record(ctx context.Context, eventType model.EventType, subject string, providerID *string, details map[string]any) {
	if a == nil || a.events == nil {
		return
	}
	raw, err := json.Marshal(details)
	if err != nil {
		zap.L().Warn("audit: marshal details", zap.String("event_type", string(eventType)), zap.Error(err))
		raw = []byte("{}")
	}
	ev := &model.Event{
		ID:         uuid.NewString(),
		EventType:  eventType,
		Subject:    subject,
		ProviderID: providerID,
		Details:    datatypes.JSON(raw),
		CreatedAt:  a.now(),
	}
	if err := a.events.Create(ctx, ev); err != nil {
		zap.L().Error("audit: write event",
			zap.String("event_type", string(eventType)),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

const maxActivityLimit = 100

// Activity — последние события subject, новые первыми. limit <= 0 или > 100 означает 100.
func (a *AuditLog) Activity(ctx context.Context, subject string, limit int) ([]model.Event, error) {
	if limit <= 0 || limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	events, err := a.events.ListBySubject(ctx, subject, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return events, nil
}
