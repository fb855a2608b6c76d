package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"wagontrail/internal/adapter/repo/gorm/model"
	"wagontrail/internal/app/ports"

	"gorm.io/gorm"
)

type TurnExecutionRepo struct {
	db *gorm.DB
}

func NewTurnExecutionRepo(db *gorm.DB) TurnExecutionRepo {
	return TurnExecutionRepo{db: db}
}

func (r TurnExecutionRepo) GetByIdempotencyKey(ctx context.Context, slotID, key string) (*ports.TurnExecutionRecord, error) {
	var m model.TurnExecution
	err := getDBFromCtx(ctx, r.db).
		Where(&model.TurnExecution{SlotID: slotID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	var result ports.TurnResult
	_ = json.Unmarshal(m.Result, &result)
	return &ports.TurnExecutionRecord{
		SlotID:         m.SlotID,
		IdempotencyKey: m.IdempotencyKey,
		Action:         m.Action,
		Result:         result,
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r TurnExecutionRepo) SaveExecution(ctx context.Context, execution ports.TurnExecutionRecord) error {
	resultJSON, _ := json.Marshal(execution.Result)
	m := model.TurnExecution{
		SlotID:         execution.SlotID,
		IdempotencyKey: execution.IdempotencyKey,
		Action:         execution.Action,
		Result:         resultJSON,
		AppliedAt:      execution.AppliedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		return err
	}
	return nil
}
