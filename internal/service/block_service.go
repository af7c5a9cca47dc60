package service

import (
	"context"

	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/repository"
)

// BlockService maintains the block list consulted by direct sends.
type BlockService struct {
	blocks repository.BlockRepositoryInterface
	users  repository.UserRepositoryInterface
	locks  *StreamLocks
}

func NewBlockService(blocks repository.BlockRepositoryInterface, users repository.UserRepositoryInterface, locks *StreamLocks) *BlockService {
	if locks == nil {
		locks = NewStreamLocks()
	}
	return &BlockService{blocks: blocks, users: users, locks: locks}
}

// Block stops blocked from messaging blocker. It takes the same pair lock
// as direct sends, so an in-process send either commits before the block or
// sees it.
func (s *BlockService) Block(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	if blockedID == 0 || blockedID == blockerID {
		return false, apperr.Validation("a valid member is required")
	}
	if _, err := s.users.FindByID(ctx, blockedID); err != nil {
		return false, storageErr(err, "member not found")
	}

	unlock := s.locks.Pair(blockerID, blockedID)
	defer unlock()
	created, err := s.blocks.Create(ctx, blockerID, blockedID)
	if err != nil {
		return false, apperr.Internal("failed to block member", err)
	}
	return created, nil
}

func (s *BlockService) Unblock(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	if blockedID == 0 {
		return false, apperr.Validation("a valid member is required")
	}
	removed, err := s.blocks.Delete(ctx, blockerID, blockedID)
	if err != nil {
		return false, apperr.Internal("failed to unblock member", err)
	}
	return removed, nil
}
