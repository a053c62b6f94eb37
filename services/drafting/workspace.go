package drafting

import (
	"context"
	"fmt"
	"time"

	"lexaid/models"
	"lexaid/services/catalog"
	"lexaid/services/export"
	"lexaid/services/intelligence"
	"lexaid/services/records"
	"lexaid/utils"

	"go.uber.org/zap"
)

// WorkspaceService drives the drafting page: generate, edit, cite, save, export.
type WorkspaceService interface {
	Get(ctx context.Context, userID, docTypeID string) (*models.Workspace, error)
	Generate(ctx context.Context, userID, docTypeID string, raw map[string]string) (*models.Workspace, error)
	ApplyEdits(ctx context.Context, userID, docTypeID string, edit EditRequest) (*models.Workspace, error)
	DiscardEdits(ctx context.Context, userID, docTypeID string) (*models.Workspace, error)
	SuggestCitations(ctx context.Context, userID, docTypeID string) (*models.Workspace, error)
	Save(ctx context.Context, userID, docTypeID string, req SaveRequest) (*SaveResult, error)
	Export(ctx context.Context, userID, docTypeID string, format export.Format) (*export.File, error)
	Reset(ctx context.Context, userID, docTypeID string) error
}

// EditRequest carries edited text. Apply commits it as the document;
// otherwise it is kept as an edit in progress.
type EditRequest struct {
	Content string `json:"content"`
	Apply   bool   `json:"apply"`
}

type SaveRequest struct {
	Title  string `json:"title"`
	CaseID string `json:"caseId"`
}

// SaveResult reports the saved draft and, when a case was named, the case
// after linking. The two writes are independent; LinkError is set when the
// draft was saved but could not be linked.
type SaveResult struct {
	Draft     *models.Draft `json:"draft"`
	Case      *models.Case  `json:"case,omitempty"`
	LinkError string        `json:"linkError,omitempty"`
}

type DefaultWorkspaceService struct {
	Store  WorkspaceStore
	AI     intelligence.AIService
	Drafts records.DraftService
	Cases  records.CaseService
	Now    func() time.Time
}

func (s *DefaultWorkspaceService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return utils.Now()
}

func lookup(docTypeID string) (catalog.DocumentTypeConfig, error) {
	dt, ok := catalog.Lookup(docTypeID)
	if !ok {
		return dt, fmt.Errorf("document type %q: %w", docTypeID, utils.ErrNotFound)
	}
	return dt, nil
}

// load returns the stored workspace or a fresh empty one.
func (s *DefaultWorkspaceService) load(ctx context.Context, userID, docTypeID string) (*models.Workspace, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("workspace store: %w", utils.ErrServiceUnavailable)
	}
	if _, err := lookup(docTypeID); err != nil {
		return nil, err
	}
	ws, err := s.Store.Get(ctx, userID, docTypeID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		ws = &models.Workspace{DocumentTypeID: docTypeID}
	}
	return ws, nil
}

func (s *DefaultWorkspaceService) put(ctx context.Context, userID string, ws *models.Workspace) (*models.Workspace, error) {
	ws.UpdatedAt = s.now()
	if err := s.Store.Put(ctx, userID, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func requireDocument(ws *models.Workspace) error {
	if !ws.HasDocument() {
		return utils.NewValidationError("document", "generate a document first")
	}
	return nil
}

func (s *DefaultWorkspaceService) Get(ctx context.Context, userID, docTypeID string) (*models.Workspace, error) {
	return s.load(ctx, userID, docTypeID)
}

// Generate drafts a new document. The stored workspace only changes when
// the model call succeeds.
func (s *DefaultWorkspaceService) Generate(ctx context.Context, userID, docTypeID string, raw map[string]string) (*models.Workspace, error) {
	if _, err := s.load(ctx, userID, docTypeID); err != nil {
		return nil, err
	}
	if s.AI == nil {
		return nil, fmt.Errorf("generative model: %w", utils.ErrServiceUnavailable)
	}
	dt, _ := lookup(docTypeID)

	resp, err := s.AI.DraftDocument(ctx, RequestFromSubmission(dt, raw))
	if err != nil {
		utils.GetLogger().Warn("Drafting failed", zap.String("userID", userID), zap.String("docType", docTypeID), zap.Error(err))
		return nil, err
	}

	return s.put(ctx, userID, &models.Workspace{
		DocumentTypeID:    docTypeID,
		GeneratedDocument: resp.DraftDocument,
		EditedContent:     resp.DraftDocument,
	})
}

func (s *DefaultWorkspaceService) ApplyEdits(ctx context.Context, userID, docTypeID string, edit EditRequest) (*models.Workspace, error) {
	ws, err := s.load(ctx, userID, docTypeID)
	if err != nil {
		return nil, err
	}
	if err := requireDocument(ws); err != nil {
		return nil, err
	}

	ws.EditedContent = edit.Content
	if edit.Apply {
		ws.GeneratedDocument = edit.Content
		ws.Editing = false
	} else {
		ws.Editing = true
	}
	return s.put(ctx, userID, ws)
}

func (s *DefaultWorkspaceService) DiscardEdits(ctx context.Context, userID, docTypeID string) (*models.Workspace, error) {
	ws, err := s.load(ctx, userID, docTypeID)
	if err != nil {
		return nil, err
	}
	if err := requireDocument(ws); err != nil {
		return nil, err
	}
	ws.EditedContent = ws.GeneratedDocument
	ws.Editing = false
	return s.put(ctx, userID, ws)
}

func (s *DefaultWorkspaceService) SuggestCitations(ctx context.Context, userID, docTypeID string) (*models.Workspace, error) {
	ws, err := s.load(ctx, userID, docTypeID)
	if err != nil {
		return nil, err
	}
	content := ws.CurrentContent()
	if content == "" {
		return nil, utils.NewValidationError("content", "draft or edit a document first to suggest citations")
	}
	if s.AI == nil {
		return nil, fmt.Errorf("generative model: %w", utils.ErrServiceUnavailable)
	}

	resp, err := s.AI.SuggestCitations(ctx, models.CitationRequest{DocumentContent: content})
	if err != nil {
		return nil, err
	}
	citations := append([]string{}, resp.Citations...)
	ws.Citations = &citations
	return s.put(ctx, userID, ws)
}

// DefaultDraftTitle is "<document name> - <YYYY-MM-DD>".
func DefaultDraftTitle(dt catalog.DocumentTypeConfig, now time.Time) string {
	return fmt.Sprintf("%s - %s", dt.Name, utils.DateStamp(now))
}

func (s *DefaultWorkspaceService) Save(ctx context.Context, userID, docTypeID string, req SaveRequest) (*SaveResult, error) {
	ws, err := s.load(ctx, userID, docTypeID)
	if err != nil {
		return nil, err
	}
	content := ws.CurrentContent()
	if content == "" {
		return nil, utils.NewValidationError("content", "there is no document content to save")
	}
	if s.Drafts == nil {
		return nil, fmt.Errorf("drafts: %w", utils.ErrServiceUnavailable)
	}
	dt, _ := lookup(docTypeID)

	title := req.Title
	if title == "" {
		title = DefaultDraftTitle(dt, s.now())
	}
	draft, err := s.Drafts.CreateDraft(ctx, userID, models.DraftInput{
		DocumentType: dt.Name,
		Title:        title,
		Content:      content,
	})
	if err != nil {
		return nil, err
	}

	result := &SaveResult{Draft: draft}
	if req.CaseID == "" {
		return result, nil
	}
	if s.Cases == nil {
		result.LinkError = utils.ErrServiceUnavailable.Error()
		return result, nil
	}
	c, err := s.Cases.LinkDraft(ctx, userID, req.CaseID, draft.ID)
	if err != nil {
		utils.GetLogger().Warn("Saved draft but could not link it to case",
			zap.String("draftID", draft.ID), zap.String("caseID", req.CaseID), zap.Error(err))
		result.LinkError = err.Error()
		return result, nil
	}
	result.Case = c
	return result, nil
}

func (s *DefaultWorkspaceService) Export(ctx context.Context, userID, docTypeID string, format export.Format) (*export.File, error) {
	ws, err := s.load(ctx, userID, docTypeID)
	if err != nil {
		return nil, err
	}
	dt, _ := lookup(docTypeID)
	return export.Render(dt.Name, ws.CurrentContent(), format, s.now())
}

func (s *DefaultWorkspaceService) Reset(ctx context.Context, userID, docTypeID string) error {
	if s.Store == nil {
		return fmt.Errorf("workspace store: %w", utils.ErrServiceUnavailable)
	}
	if _, err := lookup(docTypeID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, userID, docTypeID)
}
