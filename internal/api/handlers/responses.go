package handlers

import (
	"time"

	"github.com/media-confidence/aifaq/internal/domain"
)

const timeLayout = time.RFC3339

// 5xx messages shown to visitors.
const (
	msgFAQFetchFailed  = "FAQ の取得に失敗しました"
	msgFAQCreateFailed = "FAQ の作成に失敗しました"
	msgFAQUpdateFailed = "FAQ の更新に失敗しました"
	msgFAQDeleteFailed = "FAQ の削除に失敗しました"
	msgCatalogFailed   = "カタログの取得に失敗しました"
	msgChatLogFailed   = "チャット履歴の取得に失敗しました"
	// ChatFailureMessage is returned whenever a chat turn cannot be completed.
	ChatFailureMessage = "チャットの処理に失敗しました"
)

type DomainResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	NameJa      string `json:"nameJa"`
	Icon        string `json:"icon"`
	Description string `json:"description,omitempty"`
}

type KeywordResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

type FAQResponse struct {
	ID        string             `json:"id"`
	DomainID  string             `json:"domainId"`
	Question  string             `json:"question"`
	Episode   string             `json:"episode,omitempty"`
	Answer    string             `json:"answer"`
	Status    string             `json:"status"`
	Order     int                `json:"order"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
	Domain    *DomainResponse    `json:"domain,omitempty"`
	Keywords  []*KeywordResponse `json:"keywords"`
}

// FAQListResponse carries the count next to the data, unlike api.SuccessResponse.
type FAQListResponse struct {
	Success bool           `json:"success"`
	Data    []*FAQResponse `json:"data"`
	Count   int            `json:"count"`
}

type FAQDetailResponse struct {
	Success bool           `json:"success"`
	Data    *FAQResponse   `json:"data"`
	Related []*FAQResponse `json:"related"`
}

type ChatLogResponse struct {
	ID            string               `json:"id"`
	Messages      []domain.ChatMessage `json:"messages"`
	Reply         string               `json:"reply"`
	Diagnosis     *domain.Diagnosis    `json:"diagnosis"`
	MatchedFAQIDs []string             `json:"matchedFaqIds"`
	CreatedAt     string               `json:"createdAt"`
}

type ChatLogListResponse struct {
	Items   []*ChatLogResponse `json:"items"`
	Cursor  string             `json:"cursor,omitempty"`
	HasMore bool               `json:"hasMore"`
}

func domainToResponse(d *domain.Domain) *DomainResponse {
	if d == nil {
		return nil
	}
	return &DomainResponse{
		ID:          d.ID,
		Slug:        d.Slug,
		Name:        d.Name,
		NameJa:      d.NameJa,
		Icon:        d.Icon,
		Description: d.Description,
	}
}

func keywordToResponse(k *domain.Keyword) *KeywordResponse {
	return &KeywordResponse{
		ID:          k.ID,
		Slug:        k.Slug,
		Name:        k.Name,
		Category:    k.Category,
		Description: k.Description,
	}
}

func faqToResponse(f *domain.FAQ) *FAQResponse {
	keywords := make([]*KeywordResponse, 0, len(f.Keywords))
	for _, k := range f.Keywords {
		keywords = append(keywords, keywordToResponse(k))
	}
	return &FAQResponse{
		ID:        f.ID,
		DomainID:  f.DomainID,
		Question:  f.Question,
		Episode:   f.Episode,
		Answer:    f.Answer,
		Status:    string(f.Status),
		Order:     f.SortOrder,
		CreatedAt: f.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt: f.UpdatedAt.UTC().Format(timeLayout),
		Domain:    domainToResponse(f.Domain),
		Keywords:  keywords,
	}
}

func faqsToResponse(faqs []*domain.FAQ) []*FAQResponse {
	out := make([]*FAQResponse, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, faqToResponse(f))
	}
	return out
}

func chatLogToResponse(l *domain.ChatLog) *ChatLogResponse {
	ids := l.MatchedFAQIDs
	if ids == nil {
		ids = []string{}
	}
	return &ChatLogResponse{
		ID:            l.ID,
		Messages:      l.Messages,
		Reply:         l.Reply,
		Diagnosis:     l.Diagnosis,
		MatchedFAQIDs: ids,
		CreatedAt:     l.CreatedAt.UTC().Format(timeLayout),
	}
}
