package service

import (
	"context"

	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/pagination"
)

const (
	defaultChatLogPageSize = 20
	maxChatLogPageSize     = 100
)

type ListChatLogsInput struct {
	Cursor string
	Limit  int
}

type ListChatLogsOutput struct {
	Items   []*domain.ChatLog
	Cursor  string
	HasMore bool
}

// ChatLogService lists recorded chat turns for the admin screen
type ChatLogService struct {
	repo ChatLogRepositoryInterface
}

func NewChatLogService(repo ChatLogRepositoryInterface) *ChatLogService {
	return &ChatLogService{repo: repo}
}

// List returns one page of chat logs, newest first.
func (s *ChatLogService) List(ctx context.Context, input ListChatLogsInput) (*ListChatLogsOutput, error) {
	cursor, err := pagination.DecodeCursor(input.Cursor)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid cursor", err)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultChatLogPageSize
	}
	if limit > maxChatLogPageSize {
		limit = maxChatLogPageSize
	}

	page, err := s.repo.ListWithCursor(ctx, cursor, limit)
	if err != nil {
		return nil, err
	}

	items := page.Items
	if items == nil {
		items = []*domain.ChatLog{}
	}
	return &ListChatLogsOutput{
		Items:   items,
		Cursor:  page.NextCursor,
		HasMore: page.HasMore,
	}, nil
}
