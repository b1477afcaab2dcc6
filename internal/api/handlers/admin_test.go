package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminHandler() (*AdminHandler, *MockFAQService, *MockChatLogLister) {
	faqs := new(MockFAQService)
	logs := new(MockChatLogLister)
	return NewAdminHandler(faqs, logs), faqs, logs
}

func TestAdminHandler_ListFAQs_AllStatuses(t *testing.T) {
	handler, faqs, _ := newAdminHandler()

	draft := newTestFAQ("f-2")
	draft.Status = domain.FAQStatusDraft
	faqs.On("List", mock.Anything, service.FAQFilter{DomainSlug: "sales"}).
		Return([]*domain.FAQ{newTestFAQ("f-1"), draft}, nil)

	w := httptest.NewRecorder()
	handler.ListFAQs(w, httptest.NewRequest(http.MethodGet, "/api/admin/faq?domain=sales", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp FAQListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "draft", resp.Data[1].Status)
}

func TestAdminHandler_CreateFAQ(t *testing.T) {
	handler, faqs, _ := newAdminHandler()

	created := newTestFAQ("f-new")
	created.Status = domain.FAQStatusDraft
	created.SortOrder = 4
	faqs.On("Create", mock.Anything, service.CreateFAQInput{
		DomainID:   "d-sales",
		Question:   "Q",
		Answer:     "A",
		KeywordIDs: []string{"k-1", "k-2"},
	}).Return(created, nil)

	body := `{"domainId":"d-sales","question":"Q","answer":"A","keywordIds":["k-1","k-2"]}`
	w := httptest.NewRecorder()
	handler.CreateFAQ(w, httptest.NewRequest(http.MethodPost, "/api/admin/faq", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Success bool        `json:"success"`
		Data    FAQResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "f-new", resp.Data.ID)
	assert.Equal(t, 4, resp.Data.Order)
	assert.Equal(t, "draft", resp.Data.Status)
	faqs.AssertExpectations(t)
}

func TestAdminHandler_CreateFAQ_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad json", `{`, "invalid request body"},
		{"missing domain", `{"question":"Q","answer":"A"}`, "domainId is required"},
		{"missing question", `{"domainId":"d","answer":"A"}`, "question is required"},
		{"missing answer", `{"domainId":"d","question":"Q"}`, "answer is required"},
		{"bad status", `{"domainId":"d","question":"Q","answer":"A","status":"archived"}`, "invalid faq status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, faqs, _ := newAdminHandler()

			w := httptest.NewRecorder()
			handler.CreateFAQ(w, httptest.NewRequest(http.MethodPost, "/api/admin/faq", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			faqs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAdminHandler_CreateFAQ_UnknownReference(t *testing.T) {
	handler, faqs, _ := newAdminHandler()
	faqs.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: fk violation", domain.ErrUnknownReference))

	body := `{"domainId":"nope","question":"Q","answer":"A"}`
	w := httptest.NewRecorder()
	handler.CreateFAQ(w, httptest.NewRequest(http.MethodPost, "/api/admin/faq", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_UpdateFAQ_PartialFields(t *testing.T) {
	handler, faqs, _ := newAdminHandler()

	faqs.On("Update", mock.Anything, mock.MatchedBy(func(in service.UpdateFAQInput) bool {
		return in.ID == "f-1" &&
			in.Status != nil && *in.Status == domain.FAQStatusPublished &&
			in.KeywordIDs != nil && len(*in.KeywordIDs) == 0 &&
			in.Question == nil && in.Answer == nil && in.DomainID == nil
	})).Return(newTestFAQ("f-1"), nil)

	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/admin/faq/f-1",
		strings.NewReader(`{"status":"published","keywordIds":[]}`)), "id", "f-1")
	w := httptest.NewRecorder()
	handler.UpdateFAQ(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	faqs.AssertExpectations(t)
}

func TestAdminHandler_UpdateFAQ_OmittedKeywordsKept(t *testing.T) {
	handler, faqs, _ := newAdminHandler()

	faqs.On("Update", mock.Anything, mock.MatchedBy(func(in service.UpdateFAQInput) bool {
		return in.KeywordIDs == nil && in.Question != nil && *in.Question == "new"
	})).Return(newTestFAQ("f-1"), nil)

	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/admin/faq/f-1",
		strings.NewReader(`{"question":"new"}`)), "id", "f-1")
	w := httptest.NewRecorder()
	handler.UpdateFAQ(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	faqs.AssertExpectations(t)
}

func TestAdminHandler_UpdateFAQ_NotFound(t *testing.T) {
	handler, faqs, _ := newAdminHandler()
	faqs.On("Update", mock.Anything, mock.Anything).Return(nil, domain.ErrFAQNotFound)

	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/admin/faq/x",
		strings.NewReader(`{"answer":"A"}`)), "id", "x")
	w := httptest.NewRecorder()
	handler.UpdateFAQ(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"faq not found"}`, w.Body.String())
}

func TestAdminHandler_DeleteFAQ(t *testing.T) {
	handler, faqs, _ := newAdminHandler()
	faqs.On("Delete", mock.Anything, "f-1").Return(nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/admin/faq/f-1", nil), "id", "f-1")
	w := httptest.NewRecorder()
	handler.DeleteFAQ(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	faqs.AssertExpectations(t)
}

func TestAdminHandler_DeleteFAQ_StoreError(t *testing.T) {
	handler, faqs, _ := newAdminHandler()
	faqs.On("Delete", mock.Anything, "f-1").Return(assert.AnError)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/admin/faq/f-1", nil), "id", "f-1")
	w := httptest.NewRecorder()
	handler.DeleteFAQ(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"FAQ の削除に失敗しました"}`, w.Body.String())
}

func TestAdminHandler_ListChatLogs(t *testing.T) {
	handler, _, logs := newAdminHandler()

	logs.On("List", mock.Anything, service.ListChatLogsInput{Cursor: "abc", Limit: 5}).
		Return(&service.ListChatLogsOutput{
			Items: []*domain.ChatLog{{
				ID:        "log-1",
				Messages:  []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "hi"}},
				Reply:     "hello",
				CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			}},
			Cursor:  "next",
			HasMore: true,
		}, nil)

	w := httptest.NewRecorder()
	handler.ListChatLogs(w, httptest.NewRequest(http.MethodGet, "/api/admin/chat-logs?cursor=abc&limit=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{
		"items":[{"id":"log-1","messages":[{"role":"user","content":"hi"}],"reply":"hello","diagnosis":null,"matchedFaqIds":[],"createdAt":"2025-03-01T00:00:00Z"}],
		"cursor":"next","hasMore":true}}`, w.Body.String())
}

func TestAdminHandler_ListChatLogs_BadLimit(t *testing.T) {
	handler, _, logs := newAdminHandler()

	w := httptest.NewRecorder()
	handler.ListChatLogs(w, httptest.NewRequest(http.MethodGet, "/api/admin/chat-logs?limit=ten", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	logs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
