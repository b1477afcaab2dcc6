package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/pagination"
	"github.com/media-confidence/aifaq/internal/service"
)

type ChatLogRepository struct {
	db dbtx
}

func NewChatLogRepository(pool *pgxpool.Pool) *ChatLogRepository {
	return &ChatLogRepository{db: pool}
}

func (r *ChatLogRepository) Create(ctx context.Context, l *domain.ChatLog) error {
	messages, err := json.Marshal(l.Messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	var diagnosis []byte
	if l.Diagnosis != nil {
		if diagnosis, err = json.Marshal(l.Diagnosis); err != nil {
			return fmt.Errorf("marshal diagnosis: %w", err)
		}
	}

	matched := l.MatchedFAQIDs
	if matched == nil {
		matched = []string{}
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO chat_logs (id, messages, reply, diagnosis, matched_faq_ids, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, messages, l.Reply, diagnosis, matched, l.CreatedAt,
	)
	return err
}

// ListWithCursor returns chat logs newest first.
func (r *ChatLogRepository) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) (*service.ChatLogPageResult, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, messages, reply, diagnosis, matched_faq_ids, created_at
			 FROM chat_logs
			 WHERE (created_at, id) < ($1, $2)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $3`,
			cursor.CreatedAt, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, messages, reply, diagnosis, matched_faq_ids, created_at
			 FROM chat_logs
			 ORDER BY created_at DESC, id DESC
			 LIMIT $1`,
			limit+1,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.ChatLog
	for rows.Next() {
		var l domain.ChatLog
		var messages, diagnosis []byte
		if err := rows.Scan(&l.ID, &messages, &l.Reply, &diagnosis, &l.MatchedFAQIDs, &l.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(messages, &l.Messages); err != nil {
			return nil, fmt.Errorf("decode messages of chat log %s: %w", l.ID, err)
		}
		if len(diagnosis) > 0 {
			l.Diagnosis = &domain.Diagnosis{}
			if err := json.Unmarshal(diagnosis, l.Diagnosis); err != nil {
				return nil, fmt.Errorf("decode diagnosis of chat log %s: %w", l.ID, err)
			}
		}
		items = append(items, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, next, hasMore := pagination.NextPage(items, limit,
		func(l *domain.ChatLog) string { return l.ID },
		func(l *domain.ChatLog) time.Time { return l.CreatedAt },
	)

	return &service.ChatLogPageResult{
		Items:      items,
		NextCursor: next,
		HasMore:    hasMore,
	}, nil
}
