package gormrepo

import (
	"context"
	"encoding/json"

	"wagontrail/internal/adapter/repo/gorm/model"
	"wagontrail/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JournalRepo struct {
	db *gorm.DB
}

func NewJournalRepo(db *gorm.DB) JournalRepo {
	return JournalRepo{db: db}
}

func (r JournalRepo) Append(ctx context.Context, slotID string, events []ports.TrailEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.JournalEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.JournalEvent{
			SlotID:     slotID,
			Type:       e.Type,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r JournalRepo) ListBySlotID(ctx context.Context, slotID string, limit int) ([]ports.TrailEvent, error) {
	rows := []model.JournalEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.JournalEvent{SlotID: slotID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "occurred_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.TrailEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, ports.TrailEvent{
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
