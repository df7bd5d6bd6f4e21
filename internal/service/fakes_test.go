package service

import (
	"context"
	"sync"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the Mongo implementations'
// contracts: ownership filters behave like missing documents, Create
// assigns ids, and Get/List return copies so callers cannot mutate the
// store through returned pointers.

// --- users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	stored.CreatedAt = time.Now().UTC()
	r.users[id] = stored
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := user
	return &u, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, set repository.Fields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for key, value := range set {
		switch key {
		case "name":
			user.Name = value.(string)
		case "email":
			user.Email = value.(string)
		case "passwordHash":
			user.PasswordHash = value.(string)
		case "profileType":
			user.ProfileType = value.(string)
		case "role":
			user.Role = domain.Role(value.(string))
		case "status":
			user.Status = domain.UserStatus(value.(string))
		}
	}
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) SetLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.LastLoginAt = &at
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// --- sessions ---

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]domain.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s := session
	return &s, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, session := range r.sessions {
		if session.IsExpired(now) {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// --- clients ---

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[primitive.ObjectID]domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[primitive.ObjectID]domain.Client{}}
}

func (r *fakeClientRepo) List(_ context.Context, ownerID primitive.ObjectID, _ int) ([]domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Client{}
	for _, client := range r.clients {
		if client.TrainerID == ownerID {
			out = append(out, client)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Filter(ctx context.Context, ownerID primitive.ObjectID, eq repository.Fields, order int) ([]domain.Client, error) {
	all, _ := r.List(ctx, ownerID, order)
	out := []domain.Client{}
	for _, client := range all {
		if status, ok := eq["status"]; ok && string(client.Status) != status {
			continue
		}
		out = append(out, client)
	}
	return out, nil
}

func (r *fakeClientRepo) Get(_ context.Context, ownerID, id primitive.ObjectID) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[id]
	if !ok || client.TrainerID != ownerID {
		return nil, repository.ErrNotFound
	}
	c := client
	return &c, nil
}

func (r *fakeClientRepo) Create(_ context.Context, client *domain.Client) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *client
	stored.ID = id
	r.clients[id] = stored
	return id, nil
}

func (r *fakeClientRepo) Update(_ context.Context, ownerID, id primitive.ObjectID, set repository.Fields, _ []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[id]
	if !ok || client.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	for key, value := range set {
		switch key {
		case "name":
			client.Name = value.(string)
		case "goal":
			client.Goal = value.(string)
		case "status":
			client.Status = domain.ClientStatus(value.(string))
		case "defaultRate":
			client.DefaultRate = value.(float64)
		}
	}
	r.clients[id] = client
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[id]
	if !ok || client.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

// --- plans ---

type fakePlanRepo struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]domain.WorkoutPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[primitive.ObjectID]domain.WorkoutPlan{}}
}

func (r *fakePlanRepo) List(_ context.Context, ownerID primitive.ObjectID, _ int) ([]domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.WorkoutPlan{}
	for _, plan := range r.plans {
		if plan.TrainerID == ownerID {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) Filter(ctx context.Context, ownerID primitive.ObjectID, eq repository.Fields, order int) ([]domain.WorkoutPlan, error) {
	all, _ := r.List(ctx, ownerID, order)
	out := []domain.WorkoutPlan{}
	for _, plan := range all {
		if clientID, ok := eq["clientId"]; ok && plan.ClientID != clientID {
			continue
		}
		out = append(out, plan)
	}
	return out, nil
}

func (r *fakePlanRepo) Get(_ context.Context, ownerID, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok || plan.TrainerID != ownerID {
		return nil, repository.ErrNotFound
	}
	p := plan
	return &p, nil
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *plan
	stored.ID = id
	r.plans[id] = stored
	return id, nil
}

func (r *fakePlanRepo) Update(_ context.Context, ownerID, id primitive.ObjectID, set repository.Fields, _ []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok || plan.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	if name, ok := set["name"]; ok {
		plan.Name = name.(string)
	}
	r.plans[id] = plan
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok || plan.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

func (r *fakePlanRepo) DeleteByClientID(_ context.Context, ownerID, clientID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, plan := range r.plans {
		if plan.TrainerID == ownerID && plan.ClientID == clientID {
			delete(r.plans, id)
		}
	}
	return nil
}

// --- classes ---

type fakeClassRepo struct {
	mu      sync.Mutex
	classes map[primitive.ObjectID]domain.ScheduledClass
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: map[primitive.ObjectID]domain.ScheduledClass{}}
}

func copyClass(class domain.ScheduledClass) domain.ScheduledClass {
	out := class
	out.Roster = append([]domain.RosterEntry(nil), class.Roster...)
	return out
}

func (r *fakeClassRepo) List(_ context.Context, ownerID primitive.ObjectID, _ int) ([]domain.ScheduledClass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ScheduledClass{}
	for _, class := range r.classes {
		if class.TrainerID == ownerID {
			out = append(out, copyClass(class))
		}
	}
	return out, nil
}

func (r *fakeClassRepo) Filter(ctx context.Context, ownerID primitive.ObjectID, eq repository.Fields, order int) ([]domain.ScheduledClass, error) {
	all, _ := r.List(ctx, ownerID, order)
	out := []domain.ScheduledClass{}
	for _, class := range all {
		if status, ok := eq["status"]; ok && string(class.Status) != status {
			continue
		}
		out = append(out, class)
	}
	return out, nil
}

func (r *fakeClassRepo) Get(_ context.Context, ownerID, id primitive.ObjectID) (*domain.ScheduledClass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	class, ok := r.classes[id]
	if !ok || class.TrainerID != ownerID {
		return nil, repository.ErrNotFound
	}
	c := copyClass(class)
	return &c, nil
}

func (r *fakeClassRepo) Create(_ context.Context, class *domain.ScheduledClass) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := copyClass(*class)
	stored.ID = id
	r.classes[id] = stored
	return id, nil
}

func (r *fakeClassRepo) Update(_ context.Context, ownerID, id primitive.ObjectID, set repository.Fields, _ []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	class, ok := r.classes[id]
	if !ok || class.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	if roster, ok := set["roster"].([]domain.RosterEntry); ok {
		class.Roster = append([]domain.RosterEntry(nil), roster...)
	}
	if notes, ok := set["notes"].(string); ok {
		class.Notes = notes
	}
	r.classes[id] = class
	return nil
}

func (r *fakeClassRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	class, ok := r.classes[id]
	if !ok || class.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.classes, id)
	return nil
}

func (r *fakeClassRepo) MarkCheckIn(_ context.Context, ownerID, classID, clientID primitive.ObjectID, at time.Time, location string, rate float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	class, ok := r.classes[classID]
	if !ok || class.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	for i := range class.Roster {
		entry := &class.Roster[i]
		if entry.ClientID == clientID && !entry.CheckinDone {
			entry.CheckinDone = true
			entry.CheckinAt = &at
			entry.Location = location
			entry.BilledRate = rate
			r.classes[classID] = class
			return nil
		}
	}
	// Same shape as the real update: no matching not-yet-checked-in entry.
	return repository.ErrNotFound
}

func (r *fakeClassRepo) UpdateStatus(_ context.Context, ownerID, classID primitive.ObjectID, status domain.ClassStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	class, ok := r.classes[classID]
	if !ok || class.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	class.Status = status
	r.classes[classID] = class
	return nil
}

// --- transactions ---

type fakeTransactionRepo struct {
	mu  sync.Mutex
	txs map[primitive.ObjectID]domain.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{txs: map[primitive.ObjectID]domain.Transaction{}}
}

func (r *fakeTransactionRepo) List(_ context.Context, ownerID primitive.ObjectID, _ int) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Transaction{}
	for _, tx := range r.txs {
		if tx.TrainerID == ownerID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) Filter(ctx context.Context, ownerID primitive.ObjectID, eq repository.Fields, order int) ([]domain.Transaction, error) {
	all, _ := r.List(ctx, ownerID, order)
	out := []domain.Transaction{}
	for _, tx := range all {
		if kind, ok := eq["kind"]; ok && string(tx.Kind) != kind {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (r *fakeTransactionRepo) Get(_ context.Context, ownerID, id primitive.ObjectID) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok || tx.TrainerID != ownerID {
		return nil, repository.ErrNotFound
	}
	t := tx
	return &t, nil
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *domain.Transaction) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *tx
	stored.ID = id
	r.txs[id] = stored
	return id, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, ownerID, id primitive.ObjectID, set repository.Fields, _ []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok || tx.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	if amount, ok := set["amount"].(float64); ok {
		tx.Amount = amount
	}
	if description, ok := set["description"].(string); ok {
		tx.Description = description
	}
	r.txs[id] = tx
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok || tx.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.txs, id)
	return nil
}

func (r *fakeTransactionRepo) DeleteByClassID(_ context.Context, ownerID, classID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, tx := range r.txs {
		if tx.TrainerID == ownerID && tx.ClassID != nil && *tx.ClassID == classID {
			delete(r.txs, id)
		}
	}
	return nil
}

func (r *fakeTransactionRepo) BalanceForClient(_ context.Context, ownerID, clientID primitive.ObjectID) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, tx := range r.txs {
		if tx.TrainerID == ownerID && tx.ClientID != nil && *tx.ClientID == clientID {
			sum += tx.Amount
		}
	}
	return sum, nil
}

// --- assessments ---

type fakeAssessmentRepo struct {
	mu          sync.Mutex
	assessments map[primitive.ObjectID]domain.Assessment
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{assessments: map[primitive.ObjectID]domain.Assessment{}}
}

func (r *fakeAssessmentRepo) List(_ context.Context, ownerID primitive.ObjectID, _ int) ([]domain.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Assessment{}
	for _, a := range r.assessments {
		if a.TrainerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) Filter(ctx context.Context, ownerID primitive.ObjectID, eq repository.Fields, order int) ([]domain.Assessment, error) {
	all, _ := r.List(ctx, ownerID, order)
	out := []domain.Assessment{}
	for _, a := range all {
		if clientID, ok := eq["clientId"]; ok && a.ClientID != clientID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAssessmentRepo) Get(_ context.Context, ownerID, id primitive.ObjectID) (*domain.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assessments[id]
	if !ok || a.TrainerID != ownerID {
		return nil, repository.ErrNotFound
	}
	out := a
	return &out, nil
}

func (r *fakeAssessmentRepo) Create(_ context.Context, a *domain.Assessment) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *a
	stored.ID = id
	r.assessments[id] = stored
	return id, nil
}

func (r *fakeAssessmentRepo) Update(_ context.Context, ownerID, id primitive.ObjectID, set repository.Fields, _ []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assessments[id]
	if !ok || a.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	if notes, ok := set["notes"].(string); ok {
		a.Notes = notes
	}
	r.assessments[id] = a
	return nil
}

func (r *fakeAssessmentRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assessments[id]
	if !ok || a.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.assessments, id)
	return nil
}

// --- progress ---

type fakeProgressRepo struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]domain.ProgressEntry
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{entries: map[primitive.ObjectID]domain.ProgressEntry{}}
}

func (r *fakeProgressRepo) List(_ context.Context, ownerID primitive.ObjectID, _ int) ([]domain.ProgressEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ProgressEntry{}
	for _, e := range r.entries {
		if e.TrainerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) Filter(ctx context.Context, ownerID primitive.ObjectID, eq repository.Fields, order int) ([]domain.ProgressEntry, error) {
	all, _ := r.List(ctx, ownerID, order)
	out := []domain.ProgressEntry{}
	for _, e := range all {
		if kind, ok := eq["kind"]; ok && string(e.Kind) != kind {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeProgressRepo) Get(_ context.Context, ownerID, id primitive.ObjectID) (*domain.ProgressEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.TrainerID != ownerID {
		return nil, repository.ErrNotFound
	}
	out := e
	return &out, nil
}

func (r *fakeProgressRepo) Create(_ context.Context, e *domain.ProgressEntry) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *e
	stored.ID = id
	r.entries[id] = stored
	return id, nil
}

func (r *fakeProgressRepo) Update(_ context.Context, ownerID, id primitive.ObjectID, set repository.Fields, _ []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	if notes, ok := set["notes"].(string); ok {
		e.Notes = notes
	}
	r.entries[id] = e
	return nil
}

func (r *fakeProgressRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// --- history ---

type fakeHistoryRepo struct {
	mu      sync.Mutex
	records map[primitive.ObjectID]domain.WorkoutHistory
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{records: map[primitive.ObjectID]domain.WorkoutHistory{}}
}

func (r *fakeHistoryRepo) List(_ context.Context, ownerID primitive.ObjectID, _ int) ([]domain.WorkoutHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.WorkoutHistory{}
	for _, record := range r.records {
		if record.TrainerID == ownerID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) Filter(ctx context.Context, ownerID primitive.ObjectID, eq repository.Fields, order int) ([]domain.WorkoutHistory, error) {
	all, _ := r.List(ctx, ownerID, order)
	out := []domain.WorkoutHistory{}
	for _, record := range all {
		if clientID, ok := eq["clientId"]; ok && record.ClientID != clientID {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (r *fakeHistoryRepo) Get(_ context.Context, ownerID, id primitive.ObjectID) (*domain.WorkoutHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok || record.TrainerID != ownerID {
		return nil, repository.ErrNotFound
	}
	out := record
	return &out, nil
}

func (r *fakeHistoryRepo) Create(_ context.Context, record *domain.WorkoutHistory) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *record
	stored.ID = id
	r.records[id] = stored
	return id, nil
}

func (r *fakeHistoryRepo) Update(_ context.Context, ownerID, id primitive.ObjectID, set repository.Fields, _ []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok || record.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	if rating, ok := set["rating"]; ok {
		switch v := rating.(type) {
		case int:
			record.Rating = v
		case float64:
			record.Rating = int(v)
		}
	}
	r.records[id] = record
	return nil
}

func (r *fakeHistoryRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok || record.TrainerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

// --- tx runner ---

// fakeTxRunner runs the callback directly. Atomicity itself is the Mongo
// driver's concern; service tests only verify what gets executed inside.
type fakeTxRunner struct{}

func (fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
