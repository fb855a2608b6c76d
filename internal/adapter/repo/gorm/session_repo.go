package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wagontrail/internal/adapter/repo/gorm/model"
	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"

	"gorm.io/gorm"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return SessionRepo{db: db}
}

func (r SessionRepo) GetBySlotID(ctx context.Context, slotID string) (*trail.Session, error) {
	var m model.TrailSession
	if err := getDBFromCtx(ctx, r.db).Where("slot_id = ?", slotID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var s trail.Session
	if err := json.Unmarshal(m.Doc, &s); err != nil {
		return nil, err
	}
	s.RNG = trail.RestoreRNG(uint32(m.RNGState))
	s.Version = m.Version
	return &s, nil
}

func (r SessionRepo) SaveWithVersion(ctx context.Context, session *trail.Session, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)

	doc, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if expectedVersion == 0 {
		m := model.TrailSession{
			SlotID:    session.SlotID,
			Doc:       doc,
			RNGState:  int64(session.RNGState()),
			Seed:      int64(session.Seed),
			Version:   session.Version,
			UpdatedAt: time.Now(),
		}
		if err := db.Create(&m).Error; err != nil {
			return err
		}
		return nil
	}

	updates := map[string]any{
		"doc":        doc,
		"rng_state":  int64(session.RNGState()),
		"version":    session.Version,
		"updated_at": time.Now(),
	}

	res := db.Model(&model.TrailSession{}).
		Where("slot_id = ? AND version = ?", session.SlotID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
