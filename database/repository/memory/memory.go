// Package memory provides in-memory repositories with the same semantics
// as the MongoDB ones. Services and handlers are tested against it.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	clauseRepo "lexaid/database/repository/clause"
	draftRepo "lexaid/database/repository/draft"
	caseRepo "lexaid/database/repository/legalcase"
	profileRepo "lexaid/database/repository/profile"
	"lexaid/models"
	"lexaid/utils"
)

var (
	_ draftRepo.DraftRepository     = (*DraftRepo)(nil)
	_ clauseRepo.ClauseRepository   = (*ClauseRepo)(nil)
	_ caseRepo.CaseRepository       = (*CaseRepo)(nil)
	_ profileRepo.ProfileRepository = (*ProfileRepo)(nil)
)

// Store holds all four collections behind one lock.
type Store struct {
	mu       sync.Mutex
	drafts   map[string]models.Draft
	clauses  map[string]models.Clause
	cases    map[string]models.Case
	profiles map[string]models.UserProfile
}

func NewStore() *Store {
	return &Store{
		drafts:   map[string]models.Draft{},
		clauses:  map[string]models.Clause{},
		cases:    map[string]models.Case{},
		profiles: map[string]models.UserProfile{},
	}
}

// Drafts, Clauses, Cases and Profiles expose the store through the repository interfaces.
func (s *Store) Drafts() *DraftRepo     { return &DraftRepo{s} }
func (s *Store) Clauses() *ClauseRepo   { return &ClauseRepo{s} }
func (s *Store) Cases() *CaseRepo       { return &CaseRepo{s} }
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{s} }

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, utils.ErrNotFound)
}

func byLastModified[T any](items []T, modified func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		mi, mj := modified(items[i]), modified(items[j])
		if !mi.Equal(mj) {
			return mi.After(mj)
		}
		return id(items[i]) < id(items[j])
	})
}

type DraftRepo struct{ s *Store }

func (r *DraftRepo) Create(_ context.Context, d *models.Draft) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.drafts[d.ID] = *d
	return nil
}

func (r *DraftRepo) ListByOwner(_ context.Context, userID string) ([]models.Draft, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Draft{}
	for _, d := range r.s.drafts {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	byLastModified(out, func(d models.Draft) time.Time { return d.LastModified }, func(d models.Draft) string { return d.ID })
	return out, nil
}

func (r *DraftRepo) GetByID(_ context.Context, userID, id string) (*models.Draft, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.drafts[id]
	if !ok || d.UserID != userID {
		return nil, notFound("draft", id)
	}
	return &d, nil
}

func (r *DraftRepo) Update(_ context.Context, d *models.Draft) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.drafts[d.ID]
	if !ok || cur.UserID != d.UserID {
		return notFound("draft", d.ID)
	}
	cur.DocumentType, cur.Title, cur.Content, cur.LastModified = d.DocumentType, d.Title, d.Content, d.LastModified
	r.s.drafts[d.ID] = cur
	return nil
}

func (r *DraftRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.drafts[id]
	if !ok || d.UserID != userID {
		return notFound("draft", id)
	}
	delete(r.s.drafts, id)
	return nil
}

type ClauseRepo struct{ s *Store }

func (r *ClauseRepo) Create(_ context.Context, c *models.Clause) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clauses[c.ID] = *c
	return nil
}

func (r *ClauseRepo) ListByOwner(_ context.Context, userID string) ([]models.Clause, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Clause{}
	for _, c := range r.s.clauses {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	byLastModified(out, func(c models.Clause) time.Time { return c.LastModified }, func(c models.Clause) string { return c.ID })
	return out, nil
}

func (r *ClauseRepo) GetByID(_ context.Context, userID, id string) (*models.Clause, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clauses[id]
	if !ok || c.UserID != userID {
		return nil, notFound("clause", id)
	}
	return &c, nil
}

func (r *ClauseRepo) Update(_ context.Context, c *models.Clause) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.clauses[c.ID]
	if !ok || cur.UserID != c.UserID {
		return notFound("clause", c.ID)
	}
	cur.Title, cur.Content, cur.Category, cur.LastModified = c.Title, c.Content, c.Category, c.LastModified
	r.s.clauses[c.ID] = cur
	return nil
}

func (r *ClauseRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clauses[id]
	if !ok || c.UserID != userID {
		return notFound("clause", id)
	}
	delete(r.s.clauses, id)
	return nil
}

type CaseRepo struct{ s *Store }

func copyCase(c models.Case) models.Case {
	c.RelatedDocumentIDs = append([]string{}, c.RelatedDocumentIDs...)
	if c.NextAdjournmentDate != nil {
		d := *c.NextAdjournmentDate
		c.NextAdjournmentDate = &d
	}
	return c
}

func (r *CaseRepo) Create(_ context.Context, c *models.Case) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.RelatedDocumentIDs == nil {
		c.RelatedDocumentIDs = []string{}
	}
	r.s.cases[c.ID] = copyCase(*c)
	return nil
}

func (r *CaseRepo) ListByOwner(_ context.Context, userID string) ([]models.Case, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Case{}
	for _, c := range r.s.cases {
		if c.UserID == userID {
			out = append(out, copyCase(c))
		}
	}
	byLastModified(out, func(c models.Case) time.Time { return c.LastModified }, func(c models.Case) string { return c.ID })
	return out, nil
}

func (r *CaseRepo) get(userID, id string) (models.Case, error) {
	c, ok := r.s.cases[id]
	if !ok || c.UserID != userID {
		return models.Case{}, notFound("case", id)
	}
	return c, nil
}

func (r *CaseRepo) GetByID(_ context.Context, userID, id string) (*models.Case, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, err := r.get(userID, id)
	if err != nil {
		return nil, err
	}
	c = copyCase(c)
	return &c, nil
}

func (r *CaseRepo) Update(_ context.Context, c *models.Case) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, err := r.get(c.UserID, c.ID)
	if err != nil {
		return err
	}
	next := copyCase(*c)
	next.RelatedDocumentIDs = cur.RelatedDocumentIDs
	next.CreatedAt = cur.CreatedAt
	r.s.cases[c.ID] = next
	return nil
}

func (r *CaseRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, err := r.get(userID, id); err != nil {
		return err
	}
	delete(r.s.cases, id)
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := []string{}
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (r *CaseRepo) AddRelatedDocument(_ context.Context, userID, caseID, draftID string, modified time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, err := r.get(userID, caseID)
	if err != nil {
		return false, err
	}
	if contains(c.RelatedDocumentIDs, draftID) {
		return false, nil
	}
	c.RelatedDocumentIDs = append(append([]string{}, c.RelatedDocumentIDs...), draftID)
	c.LastModified = modified
	r.s.cases[caseID] = c
	return true, nil
}

func (r *CaseRepo) RemoveRelatedDocument(_ context.Context, userID, caseID, draftID string, modified time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, err := r.get(userID, caseID)
	if err != nil {
		return false, err
	}
	if !contains(c.RelatedDocumentIDs, draftID) {
		return false, nil
	}
	c.RelatedDocumentIDs = without(c.RelatedDocumentIDs, draftID)
	c.LastModified = modified
	r.s.cases[caseID] = c
	return true, nil
}

func (r *CaseRepo) PullDocumentFromAll(_ context.Context, userID, draftID string, modified time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, c := range r.s.cases {
		if c.UserID == userID && contains(c.RelatedDocumentIDs, draftID) {
			c.RelatedDocumentIDs = without(c.RelatedDocumentIDs, draftID)
			c.LastModified = modified
			r.s.cases[id] = c
			n++
		}
	}
	return n, nil
}

type ProfileRepo struct{ s *Store }

func (r *ProfileRepo) Create(_ context.Context, p *models.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.profiles[p.UID]; exists {
		return fmt.Errorf("profile %s: %w", p.UID, utils.ErrConflict)
	}
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.PasswordHash != "" && r.passwordAccount(p.Email) != nil {
		return fmt.Errorf("email %s: %w", p.Email, utils.ErrConflict)
	}
	r.s.profiles[p.UID] = *p
	return nil
}

func (r *ProfileRepo) GetByUID(_ context.Context, uid string) (*models.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[uid]
	if !ok {
		return nil, notFound("profile", uid)
	}
	return &p, nil
}

func (r *ProfileRepo) GetByEmail(_ context.Context, email string) (*models.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, p := range r.s.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, notFound("profile", email)
}

func (r *ProfileRepo) passwordAccount(email string) *models.UserProfile {
	for _, p := range r.s.profiles {
		if p.Email == email && p.PasswordHash != "" {
			return &p
		}
	}
	return nil
}

func (r *ProfileRepo) GetPasswordAccount(_ context.Context, email string) (*models.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	if p := r.passwordAccount(email); p != nil {
		return p, nil
	}
	return nil, notFound("profile", email)
}

// mutate applies fn to the stored profile under the lock and returns a copy.
func (r *ProfileRepo) mutate(uid string, modified time.Time, fn func(p *models.UserProfile) error) (*models.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[uid]
	if !ok {
		return nil, notFound("profile", uid)
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	if modified.After(p.LastModified) {
		p.LastModified = modified
	}
	r.s.profiles[uid] = p
	out := p
	out.TransactionIDs = append([]string(nil), p.TransactionIDs...)
	return &out, nil
}

func boolPtr(b bool) *bool { return &b }

func (r *ProfileRepo) UpdateSettings(_ context.Context, uid string, in models.ProfileSettings, modified time.Time) (*models.UserProfile, error) {
	return r.mutate(uid, modified, func(p *models.UserProfile) error {
		if in.DisplayName != nil {
			p.DisplayName = *in.DisplayName
		}
		if in.PhoneNumber != nil {
			p.PhoneNumber = *in.PhoneNumber
		}
		if in.PhotoURL != nil {
			p.PhotoURL = *in.PhotoURL
		}
		if in.EmailNotifications != nil {
			p.EmailNotifications = boolPtr(*in.EmailNotifications)
		}
		if in.InAppNotifications != nil {
			p.InAppNotifications = boolPtr(*in.InAppNotifications)
		}
		if in.FCMToken != nil {
			p.FCMToken = *in.FCMToken
		}
		return nil
	})
}

func (r *ProfileRepo) RefreshIdentity(_ context.Context, id models.ProfileIdentity, modified time.Time) (*models.UserProfile, error) {
	return r.mutate(id.UID, modified, func(p *models.UserProfile) error {
		if id.Email != "" {
			email := strings.ToLower(strings.TrimSpace(id.Email))
			if other := r.passwordAccount(email); p.PasswordHash != "" && other != nil && other.UID != p.UID {
				return fmt.Errorf("email %s: %w", email, utils.ErrConflict)
			}
			p.Email = email
		}
		if id.DisplayName != "" {
			p.DisplayName = id.DisplayName
		}
		if id.PhotoURL != "" {
			p.PhotoURL = id.PhotoURL
		}
		return nil
	})
}

func applySubscription(p *models.UserProfile, sub models.Subscription) {
	start := sub.StartDate
	p.SubscriptionPlan = sub.PlanName
	p.SubscriptionPlanID = sub.PlanID
	if sub.ID != "" {
		p.SubscriptionID = sub.ID
	}
	p.SubscriptionStatus = sub.Status
	p.SubscriptionStartDate = &start
	p.SubscriptionEndDate = sub.EndDate
}

func (r *ProfileRepo) StartTrial(_ context.Context, uid string, trial models.Subscription, modified time.Time) (*models.UserProfile, error) {
	return r.mutate(uid, modified, func(p *models.UserProfile) error {
		if p.SubscriptionPlanID == "" {
			applySubscription(p, trial)
		}
		return nil
	})
}

func (r *ProfileRepo) SetSubscription(_ context.Context, uid string, sub models.Subscription, modified time.Time) (*models.UserProfile, error) {
	if sub.ID == "" {
		return nil, utils.NewValidationError("subscriptionId", "is required")
	}
	return r.mutate(uid, modified, func(p *models.UserProfile) error {
		for _, other := range r.s.profiles {
			if contains(other.TransactionIDs, sub.ID) {
				return fmt.Errorf("transaction %s already applied: %w", sub.ID, utils.ErrConflict)
			}
		}
		applySubscription(p, sub)
		p.TransactionIDs = append(append([]string(nil), p.TransactionIDs...), sub.ID)
		return nil
	})
}

func (r *ProfileRepo) SetTokenHash(_ context.Context, uid, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[uid]
	if !ok {
		return notFound("profile", uid)
	}
	p.TokenHash = hash
	r.s.profiles[uid] = p
	return nil
}
