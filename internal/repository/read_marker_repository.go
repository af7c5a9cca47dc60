package repository

import (
	"context"

	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadMarkerRepository struct {
	db *gorm.DB
}

func NewReadMarkerRepository(db *gorm.DB) *ReadMarkerRepository {
	return &ReadMarkerRepository{db: db}
}

// InsertIgnore records markers for messageIDs, skipping ones that already
// exist. Concurrent callers never produce duplicates.
func (r *ReadMarkerRepository) InsertIgnore(ctx context.Context, memberID uint, messageIDs []uint) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	markers := lo.Map(lo.Uniq(messageIDs), func(id uint, _ int) models.ReadMarker {
		return models.ReadMarker{MemberID: memberID, MessageID: id}
	})
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&markers)
	return res.RowsAffected, res.Error
}

// MarkedAmong returns the subset of messageIDs memberID has a marker for.
func (r *ReadMarkerRepository) MarkedAmong(ctx context.Context, memberID uint, messageIDs []uint) ([]uint, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}
	var marked []uint
	err := r.db.WithContext(ctx).Model(&models.ReadMarker{}).
		Where("member_id = ? AND message_id IN ?", memberID, messageIDs).
		Pluck("message_id", &marked).Error
	return marked, err
}
