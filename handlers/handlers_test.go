package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"lexaid/config"
	"lexaid/database/repository/memory"
	"lexaid/handlers"
	"lexaid/models"
	"lexaid/routes"
	"lexaid/services/billing"
	"lexaid/services/drafting"
	"lexaid/services/records"
	"lexaid/services/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspaceStore struct {
	mu   sync.Mutex
	data map[string]models.Workspace
}

func (s *workspaceStore) Get(_ context.Context, uid, docType string) (*models.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.data[uid+"/"+docType]
	if !ok {
		return nil, nil
	}
	return &ws, nil
}

func (s *workspaceStore) Put(_ context.Context, uid string, ws *models.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[uid+"/"+ws.DocumentTypeID] = *ws
	return nil
}

func (s *workspaceStore) Delete(_ context.Context, uid, docType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, uid+"/"+docType)
	return nil
}

type cannedAI struct{}

func (cannedAI) DraftDocument(_ context.Context, req models.DraftRequest) (*models.DraftResponse, error) {
	return &models.DraftResponse{DraftDocument: "DRAFT: " + req.DocumentType}, nil
}

func (cannedAI) SuggestCitations(context.Context, models.CitationRequest) (*models.CitationResponse, error) {
	return &models.CitationResponse{Citations: []string{"Constitution of the Federal Republic of Nigeria 1999, s. 35"}}, nil
}

type server struct {
	t      *testing.T
	router *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	old := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "handler-test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = old })

	store := memory.NewStore()
	users := &user.DefaultUserService{Repo: store.Profiles(), TokenTTL: time.Hour}
	drafts := &records.DefaultDraftService{Drafts: store.Drafts(), Cases: store.Cases()}
	clauses := &records.DefaultClauseService{Clauses: store.Clauses()}
	cases := &records.DefaultCaseService{Cases: store.Cases(), Drafts: store.Drafts()}
	workspace := &drafting.DefaultWorkspaceService{
		Store:  &workspaceStore{data: map[string]models.Workspace{}},
		AI:     cannedAI{},
		Drafts: drafts,
		Cases:  cases,
	}

	hb := &handlers.HandlerBundle{
		Auth:             users,
		AuthHandler:      &handlers.AuthHandler{Auth: users},
		DocumentsHandler: &handlers.DocumentsHandler{},
		AIHandler:        &handlers.AIHandler{AI: cannedAI{}},
		DraftingHandler:  &handlers.DraftingHandler{Workspace: workspace},
		DraftHandler:     &handlers.DraftHandler{Drafts: drafts},
		ClauseHandler:    &handlers.ClauseHandler{Clauses: clauses},
		CaseHandler:      &handlers.CaseHandler{Cases: cases},
		ProfileHandler:   &handlers.ProfileHandler{Profiles: users},
		BillingHandler:   &handlers.BillingHandler{Billing: &billing.DefaultBillingService{Profiles: users, Currency: "USD"}},
		HealthHandler:    &handlers.HealthHandler{},
	}
	r := gin.New()
	routes.RegisterRoutes(r, hb, []string{"*"}, 1000)
	return &server{t: t, router: r}
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) register(email string) string {
	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": email, "password": "Str0ng!Pass"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var resp user.AuthResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDocumentCatalog(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodGet, "/api/documents", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 13)

	w = s.do(http.MethodGet, "/api/documents/legal-opinion", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode[struct {
		Form []map[string]any `json:"form"`
	}](t, w)
	assert.Len(t, doc.Form, 2)

	w = s.do(http.MethodGet, "/api/documents/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "/dashboard", decode[map[string]string](t, w)["redirect"])
}

func TestAuthFlow(t *testing.T) {
	s := newServer(t)
	token := s.register("ada@chambers.ng")

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "ada@chambers.ng", "password": "Str0ng!Pass"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "bo@chambers.ng", "password": "weak"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ada@chambers.ng", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/profile", "", nil).Code)
	w = s.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[models.UserProfile](t, w)
	assert.Equal(t, models.TrialPlanID, p.SubscriptionPlanID)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/profile", token, nil).Code)
}

func TestDraftingWorkspaceFlow(t *testing.T) {
	s := newServer(t)
	token := s.register("ada@chambers.ng")

	w := s.do(http.MethodPost, "/api/drafting/bail-application/generate", token, map[string]string{"facts": "Detained since May"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ws := decode[models.Workspace](t, w)
	assert.Equal(t, "DRAFT: Bail Application", ws.GeneratedDocument)

	w = s.do(http.MethodPut, "/api/drafting/bail-application/content", token, drafting.EditRequest{Content: "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.Workspace](t, w).Editing)

	w = s.do(http.MethodPost, "/api/drafting/bail-application/citations", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, decode[models.Workspace](t, w).Citations)

	w = s.do(http.MethodGet, "/api/drafting/bail-application/export?format=docx", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Bail_Application_")

	w = s.do(http.MethodGet, "/api/drafting/bail-application/export?format=rtf", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/drafting/bail-application/save", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	saved := decode[drafting.SaveResult](t, w)
	assert.Equal(t, "edited", saved.Draft.Content)
	assert.Contains(t, saved.Draft.Title, "Bail Application - ")

	w = s.do(http.MethodGet, "/api/drafts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Draft](t, w), 1)

	w = s.do(http.MethodGet, "/api/drafts/"+saved.Draft.ID+"/export?format=pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")
	assert.Contains(t, w.Body.String(), "window.print()")

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/drafting/bail-application", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/drafting/unknown", token, nil).Code)
}

func TestRecordsAreOwnerScoped(t *testing.T) {
	s := newServer(t)
	ada := s.register("ada@chambers.ng")
	bo := s.register("bo@chambers.ng")

	w := s.do(http.MethodPost, "/api/drafts", ada, models.DraftInput{DocumentType: "Affidavit", Title: "Affidavit of service", Content: "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	draft := decode[models.Draft](t, w)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/drafts/"+draft.ID, bo, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/drafts/"+draft.ID, bo, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPatch, "/api/drafts/"+draft.ID, ada, map[string]string{}).Code)

	w = s.do(http.MethodPost, "/api/cases", ada, models.CaseInput{Title: "FRN v. Bello"})
	require.Equal(t, http.StatusCreated, w.Code)
	cs := decode[models.Case](t, w)
	assert.Equal(t, models.CaseStatusOpen, cs.Status)

	w = s.do(http.MethodPost, "/api/cases/"+cs.ID+"/drafts/"+draft.ID, ada, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{draft.ID}, decode[models.Case](t, w).RelatedDocumentIDs)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/cases/"+cs.ID+"/drafts/"+draft.ID, bo, nil).Code)

	w = s.do(http.MethodPatch, "/api/cases/"+cs.ID, ada, map[string]string{"status": "Dormant"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/clauses", ada, models.ClauseInput{Title: "Arbitration", Content: "Any dispute..."})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.DefaultClauseCategory, decode[models.Clause](t, w).Category)

	w = s.do(http.MethodGet, "/api/clauses", bo, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.Clause](t, w))
}

func TestAIEndpoints(t *testing.T) {
	s := newServer(t)
	token := s.register("ada@chambers.ng")

	w := s.do(http.MethodPost, "/api/ai/citations", token, models.CitationRequest{DocumentContent: "text"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.CitationResponse](t, w).Citations, 1)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio", "note.wav")
	require.NoError(t, err)
	_, _ = part.Write([]byte("RIFF"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/ai/transcribe", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBillingEndpoints(t *testing.T) {
	s := newServer(t)
	token := s.register("ada@chambers.ng")

	w := s.do(http.MethodGet, "/api/billing/plans", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Plan](t, w), 4)

	w = s.do(http.MethodPost, "/api/billing/callback", token, models.PaymentCallback{Status: "cancelled", TransactionID: "1", PlanID: "plus"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	w = s.do(http.MethodPost, "/api/billing/checkout", token, map[string]string{"planId": "plus"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "service unavailable", decode[map[string]string](t, w)["error"])
}
