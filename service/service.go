// Package service holds the member use cases: join, update, lookup and
// removal. Input is validated before any store or cache I/O.
package service

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-member-cache/internal/logging"
	"github.com/goliatone/go-member-cache/member"
)

// Repository is the cache-aside repository the service delegates to.
// *repositorycache.Repository satisfies it.
type Repository interface {
	Save(ctx context.Context, m *member.Member) (*member.Member, error)
	FindOne(ctx context.Context, id int64) (*member.Member, error)
	Remove(ctx context.Context, m *member.Member) error
}

// MemberService implements the member use cases.
type MemberService struct {
	repo   Repository
	logger *slog.Logger
}

// New creates a MemberService. A nil logger uses the operational logger.
func New(repo Repository, logger *slog.Logger) *MemberService {
	return &MemberService{
		repo:   repo,
		logger: logging.OrOp(logger, "service"),
	}
}

// JoinMember validates and persists a new member, returning it with the
// generated id.
func (s *MemberService) JoinMember(ctx context.Context, m *member.Member) (*member.Member, error) {
	candidate := m.Clone()
	if err := member.ValidateNew(candidate); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, candidate)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "member joined", "member_id", saved.ID)
	return saved, nil
}

// UpdateMember applies the changes carried by m to the member with id.
// The id inside m is ignored.
func (s *MemberService) UpdateMember(ctx context.Context, m *member.Member, id int64) (*member.Member, error) {
	if err := member.ValidateID(id); err != nil {
		return nil, err
	}
	changes := m.Clone()
	if err := member.ValidateChanges(changes); err != nil {
		return nil, err
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := current.Clone()
	merged.Name = changes.Name

	saved, err := s.repo.Save(ctx, merged)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "member updated", "member_id", saved.ID)
	return saved, nil
}

// GetMemberInfo returns the member with id or a NotFound error.
func (s *MemberService) GetMemberInfo(ctx context.Context, id int64) (*member.Member, error) {
	if err := member.ValidateID(id); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

// RemoveMember deletes the member with id or returns a NotFound error.
func (s *MemberService) RemoveMember(ctx context.Context, id int64) error {
	if err := member.ValidateID(id); err != nil {
		return err
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, current); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "member removed", "member_id", id)
	return nil
}

func (s *MemberService) find(ctx context.Context, id int64) (*member.Member, error) {
	m, err := s.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, member.NotFound(id)
	}
	return m, nil
}
