package records

import (
	"context"
	"sync"
	"testing"
	"time"

	"lexaid/database/repository/memory"
	"lexaid/models"
	"lexaid/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingScheduler struct {
	mu    sync.Mutex
	cases []string
}

func (r *recordingScheduler) ScheduleHearingReminder(_ context.Context, c *models.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cases = append(r.cases, c.ID)
	return nil
}

type fixture struct {
	drafts  *DefaultDraftService
	clauses *DefaultClauseService
	cases   *DefaultCaseService
	sched   *recordingScheduler
}

func newFixture() fixture {
	store := memory.NewStore()
	sched := &recordingScheduler{}
	return fixture{
		drafts:  &DefaultDraftService{Drafts: store.Drafts(), Cases: store.Cases()},
		clauses: &DefaultClauseService{Clauses: store.Clauses()},
		cases:   &DefaultCaseService{Cases: store.Cases(), Drafts: store.Drafts(), Reminders: sched},
		sched:   sched,
	}
}

func ptr[T any](v T) *T { return &v }

func TestDraftCreateListOrderedByLastModified(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.drafts.CreateDraft(ctx, "alice", models.DraftInput{DocumentType: "Affidavit", Title: "One", Content: "1"})
	require.NoError(t, err)
	second, err := f.drafts.CreateDraft(ctx, "alice", models.DraftInput{DocumentType: "Affidavit", Title: "Two", Content: "2"})
	require.NoError(t, err)

	list, err := f.drafts.ListDrafts(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = f.drafts.UpdateDraft(ctx, "alice", first.ID, models.DraftPatch{Content: ptr("1b")})
	require.NoError(t, err)

	list, err = f.drafts.ListDrafts(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, "1b", list[0].Content)
}

func TestDraftValidation(t *testing.T) {
	f := newFixture()
	_, err := f.drafts.CreateDraft(context.Background(), "alice", models.DraftInput{DocumentType: "Affidavit"})
	var verr *utils.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestOwnerIsolation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	d, err := f.drafts.CreateDraft(ctx, "alice", models.DraftInput{DocumentType: "Affidavit", Title: "Mine", Content: "x"})
	require.NoError(t, err)
	_, err = f.clauses.CreateClause(ctx, "alice", models.ClauseInput{Title: "Force Majeure", Content: "..."})
	require.NoError(t, err)

	drafts, err := f.drafts.ListDrafts(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, drafts)
	clauses, err := f.clauses.ListClauses(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, clauses)

	_, err = f.drafts.GetDraft(ctx, "bob", d.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	_, err = f.drafts.UpdateDraft(ctx, "bob", d.ID, models.DraftPatch{Title: ptr("stolen")})
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.ErrorIs(t, f.drafts.DeleteDraft(ctx, "bob", d.ID), utils.ErrNotFound)
}

func TestClauseDefaultCategory(t *testing.T) {
	f := newFixture()
	c, err := f.clauses.CreateClause(context.Background(), "alice", models.ClauseInput{Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.Equal(t, "General", c.Category)
}

func TestClauseUpdateTwiceStrictlyIncreasesLastModified(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c, err := f.clauses.CreateClause(ctx, "alice", models.ClauseInput{Title: "Original", Content: "Body", Category: "Arbitration"})
	require.NoError(t, err)

	first, err := f.clauses.UpdateClause(ctx, "alice", c.ID, models.ClausePatch{Title: ptr("T")})
	require.NoError(t, err)
	second, err := f.clauses.UpdateClause(ctx, "alice", c.ID, models.ClausePatch{Title: ptr("T")})
	require.NoError(t, err)

	assert.Equal(t, "T", second.Title)
	assert.Equal(t, "Body", second.Content)
	assert.Equal(t, "Arbitration", second.Category)
	assert.True(t, first.LastModified.After(c.LastModified))
	assert.True(t, second.LastModified.After(first.LastModified))
}

func TestLinkDraftIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	d, err := f.drafts.CreateDraft(ctx, "alice", models.DraftInput{DocumentType: "Bail Application", Title: "Bail", Content: "x"})
	require.NoError(t, err)
	c, err := f.cases.CreateCase(ctx, "alice", models.CaseInput{Title: "State v. Okafor"})
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusOpen, c.Status)
	assert.Empty(t, c.RelatedDocumentIDs)

	linked, err := f.cases.LinkDraft(ctx, "alice", c.ID, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{d.ID}, linked.RelatedDocumentIDs)
	assert.True(t, linked.LastModified.After(c.LastModified))

	again, err := f.cases.LinkDraft(ctx, "alice", c.ID, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{d.ID}, again.RelatedDocumentIDs)
	assert.True(t, again.LastModified.Equal(linked.LastModified))
}

func TestLinkDraftRequiresSameOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	bobs, err := f.drafts.CreateDraft(ctx, "bob", models.DraftInput{DocumentType: "Affidavit", Title: "Bob", Content: "x"})
	require.NoError(t, err)
	c, err := f.cases.CreateCase(ctx, "alice", models.CaseInput{Title: "Case"})
	require.NoError(t, err)

	_, err = f.cases.LinkDraft(ctx, "alice", c.ID, bobs.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteDraftUnlinksFromCases(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	d, _ := f.drafts.CreateDraft(ctx, "alice", models.DraftInput{DocumentType: "Affidavit", Title: "A", Content: "x"})
	c, _ := f.cases.CreateCase(ctx, "alice", models.CaseInput{Title: "Case"})
	_, err := f.cases.LinkDraft(ctx, "alice", c.ID, d.ID)
	require.NoError(t, err)

	require.NoError(t, f.drafts.DeleteDraft(ctx, "alice", d.ID))
	got, err := f.cases.GetCase(ctx, "alice", c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RelatedDocumentIDs)
}

func TestUnlinkDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	d, _ := f.drafts.CreateDraft(ctx, "alice", models.DraftInput{DocumentType: "Affidavit", Title: "A", Content: "x"})
	c, _ := f.cases.CreateCase(ctx, "alice", models.CaseInput{Title: "Case"})
	_, err := f.cases.LinkDraft(ctx, "alice", c.ID, d.ID)
	require.NoError(t, err)

	got, err := f.cases.UnlinkDraft(ctx, "alice", c.ID, d.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RelatedDocumentIDs)

	_, err = f.cases.UnlinkDraft(ctx, "alice", c.ID, d.ID)
	assert.NoError(t, err)
}

func TestCaseValidationAndHearingReminders(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.cases.CreateCase(ctx, "alice", models.CaseInput{Title: "X", Status: "Archived"})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)

	hearing := time.Now().Add(72 * time.Hour).UTC()
	c, err := f.cases.CreateCase(ctx, "alice", models.CaseInput{Title: "X", Priority: models.CasePriorityHigh, NextAdjournmentDate: &hearing})
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, f.sched.cases)

	// Unchanged date: no new reminder.
	_, err = f.cases.UpdateCase(ctx, "alice", c.ID, models.CasePatch{CaseNotes: ptr("adjourned for mention")})
	require.NoError(t, err)
	assert.Len(t, f.sched.cases, 1)

	later := hearing.Add(24 * time.Hour)
	_, err = f.cases.UpdateCase(ctx, "alice", c.ID, models.CasePatch{NextAdjournmentDate: &later, Status: ptr(models.CaseStatusAdjourned)})
	require.NoError(t, err)
	assert.Len(t, f.sched.cases, 2)

	cleared, err := f.cases.UpdateCase(ctx, "alice", c.ID, models.CasePatch{ClearNextAdjournmentDate: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.NextAdjournmentDate)
	assert.Equal(t, models.CaseStatusAdjourned, cleared.Status)
}

func TestUnconfiguredRepositoriesAreUnavailable(t *testing.T) {
	ctx := context.Background()
	_, err := (&DefaultDraftService{}).ListDrafts(ctx, "alice")
	assert.ErrorIs(t, err, utils.ErrServiceUnavailable)
	_, err = (&DefaultClauseService{}).ListClauses(ctx, "alice")
	assert.ErrorIs(t, err, utils.ErrServiceUnavailable)
	_, err = (&DefaultCaseService{}).ListCases(ctx, "alice")
	assert.ErrorIs(t, err, utils.ErrServiceUnavailable)
}
