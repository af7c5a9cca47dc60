package repository

import (
	"context"

	"github.com/noteduco342/rep-messaging/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamInviteRepository struct {
	db *gorm.DB
}

func NewTeamInviteRepository(db *gorm.DB) *TeamInviteRepository {
	return &TeamInviteRepository{db: db}
}

func (r *TeamInviteRepository) FindGoal(ctx context.Context, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).First(&goal, goalID).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// CreateMany inserts the invites in one transaction and returns the invitee
// ids that got a new row. An invitee that already has a row for the goal is
// skipped. Nothing is written if any insert fails.
func (r *TeamInviteRepository) CreateMany(ctx context.Context, invites []models.TeamInvite) ([]uint, error) {
	var created []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created = nil
		for i := range invites {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&invites[i])
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				created = append(created, invites[i].InviteeID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *TeamInviteRepository) Find(ctx context.Context, goalID, inviteeID uint) (*models.TeamInvite, error) {
	var invite models.TeamInvite
	err := r.db.WithContext(ctx).
		Where("goal_id = ? AND invitee_id = ?", goalID, inviteeID).
		First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *TeamInviteRepository) ListByGoal(ctx context.Context, goalID uint) ([]models.TeamInvite, error) {
	var invites []models.TeamInvite
	err := r.db.WithContext(ctx).Where("goal_id = ?", goalID).Order("id ASC").Find(&invites).Error
	return invites, err
}

// Apply runs every change in one transaction. An answer also marks the
// invite read for the invitee.
func (r *TeamInviteRepository) Apply(ctx context.Context, changes []models.InviteChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			scope := tx.Model(&models.TeamInvite{}).Where("id = ?", change.InviteID)
			var err error
			switch {
			case change.Status != nil:
				err = scope.Updates(map[string]interface{}{
					"status":       *change.Status,
					"invitee_read": true,
				}).Error
			case change.AsInviter:
				err = scope.Update("inviter_read", true).Error
			default:
				err = scope.Update("invitee_read", true).Error
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TeamInviteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TeamInvite{}, id).Error
}

// ListPending builds the pending-invite aggregate for inviteeID: every
// unanswered invite joined with its goal title and inviter name.
func (r *TeamInviteRepository) ListPending(ctx context.Context, inviteeID uint) ([]models.PendingInvite, error) {
	var rows []models.PendingInvite
	err := r.db.WithContext(ctx).
		Table("team_invites AS ti").
		Select(`ti.id, ti.goal_id, ti.inviter_id, ti.invitee_id, ti.status, ti.inviter_read, ti.invitee_read,
			ti.created_at, COALESCE(g.title, '') AS goal_title, COALESCE(u.full_name, '') AS inviter_name`).
		Joins("LEFT JOIN goals g ON g.id = ti.goal_id").
		Joins("LEFT JOIN users u ON u.id = ti.inviter_id").
		Where("ti.invitee_id = ? AND ti.status = ?", inviteeID, models.InvitePending).
		Order("ti.created_at DESC, ti.id DESC").
		Scan(&rows).Error
	return rows, err
}

// MarkAllReadForInvitee flags every unread pending invite of inviteeID as
// read and returns the distinct inviters affected.
func (r *TeamInviteRepository) MarkAllReadForInvitee(ctx context.Context, inviteeID uint) ([]uint, error) {
	var inviters []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scope := tx.Model(&models.TeamInvite{}).
			Where("invitee_id = ? AND status = ? AND invitee_read = ?", inviteeID, models.InvitePending, false)
		if err := scope.Distinct("inviter_id").Pluck("inviter_id", &inviters).Error; err != nil {
			return err
		}
		if len(inviters) == 0 {
			return nil
		}
		return tx.Model(&models.TeamInvite{}).
			Where("invitee_id = ? AND status = ? AND invitee_read = ?", inviteeID, models.InvitePending, false).
			Update("invitee_read", true).Error
	})
	return inviters, err
}
