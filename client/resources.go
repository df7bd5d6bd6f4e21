package client

import (
	"context"
	"net/url"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
)

// LoginResult is the payload returned by Login.
type LoginResult struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}

// Login authenticates and stores the returned token on the client (and in
// the token file, when configured).
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.post(ctx, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	if err := c.setToken(result.Token); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout revokes the server-side session and forgets the local token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/api/v1/auth/logout", nil, nil); err != nil {
		return err
	}
	return c.setToken("")
}

// Verify checks the stored token and returns the account it belongs to.
func (c *Client) Verify(ctx context.Context) (*domain.User, error) {
	var resp struct {
		Valid bool        `json:"valid"`
		User  domain.User `json:"user"`
	}
	if err := c.get(ctx, "/api/v1/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateProfile changes the caller's own account fields.
func (c *Client) UpdateProfile(ctx context.Context, payload map[string]any) (*domain.User, error) {
	var user domain.User
	if err := c.put(ctx, "/api/v1/auth/me", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Filters narrows list calls with field=value equality pairs.
type Filters map[string]string

func (f Filters) values() url.Values {
	if len(f) == 0 {
		return nil
	}
	v := url.Values{}
	for key, value := range f {
		v.Set(key, value)
	}
	return v
}

// --- Clients ---

func (c *Client) ListClients(ctx context.Context, filters Filters) ([]domain.Client, error) {
	var out []domain.Client
	err := c.get(ctx, "/api/v1/clients", filters.values(), &out)
	return out, err
}

func (c *Client) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	var out domain.Client
	if err := c.get(ctx, "/api/v1/clients/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClient(ctx context.Context, payload map[string]any) (*domain.Client, error) {
	var out domain.Client
	if err := c.post(ctx, "/api/v1/clients", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id string, payload map[string]any) (*domain.Client, error) {
	var out domain.Client
	if err := c.put(ctx, "/api/v1/clients/"+id, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/v1/clients/"+id)
}

// ClientBalance returns the signed sum of the client's ledger entries.
func (c *Client) ClientBalance(ctx context.Context, id string) (float64, error) {
	var out struct {
		Balance float64 `json:"balance"`
	}
	if err := c.get(ctx, "/api/v1/clients/"+id+"/balance", nil, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

// --- Workout plans ---

func (c *Client) ListWorkoutPlans(ctx context.Context, filters Filters) ([]domain.WorkoutPlan, error) {
	var out []domain.WorkoutPlan
	err := c.get(ctx, "/api/v1/workouts", filters.values(), &out)
	return out, err
}

func (c *Client) CreateWorkoutPlan(ctx context.Context, payload map[string]any) (*domain.WorkoutPlan, error) {
	var out domain.WorkoutPlan
	if err := c.post(ctx, "/api/v1/workouts", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateWorkoutPlan(ctx context.Context, id string, payload map[string]any) (*domain.WorkoutPlan, error) {
	var out domain.WorkoutPlan
	if err := c.put(ctx, "/api/v1/workouts/"+id, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteWorkoutPlan(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/v1/workouts/"+id)
}

// --- Scheduled classes ---

func (c *Client) ListClasses(ctx context.Context, filters Filters) ([]domain.ScheduledClass, error) {
	var out []domain.ScheduledClass
	err := c.get(ctx, "/api/v1/classes", filters.values(), &out)
	return out, err
}

func (c *Client) CreateClass(ctx context.Context, payload map[string]any) (*domain.ScheduledClass, error) {
	var out domain.ScheduledClass
	if err := c.post(ctx, "/api/v1/classes", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckIn marks a client's attendance; location and rate are optional
// overrides of the client's defaults.
func (c *Client) CheckIn(ctx context.Context, classID, clientID string, location string, rate *float64) (*domain.ScheduledClass, error) {
	payload := map[string]any{}
	if location != "" {
		payload["location"] = location
	}
	if rate != nil {
		payload["rate"] = *rate
	}
	var out domain.ScheduledClass
	if err := c.post(ctx, "/api/v1/classes/"+classID+"/checkin/"+clientID, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelClass cancels a class and reverses its charges.
func (c *Client) CancelClass(ctx context.Context, classID string) (*domain.ScheduledClass, error) {
	var out domain.ScheduledClass
	if err := c.post(ctx, "/api/v1/classes/"+classID+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Transactions ---

func (c *Client) ListTransactions(ctx context.Context, filters Filters) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := c.get(ctx, "/api/v1/transactions", filters.values(), &out)
	return out, err
}

func (c *Client) CreateTransaction(ctx context.Context, payload map[string]any) (*domain.Transaction, error) {
	var out domain.Transaction
	if err := c.post(ctx, "/api/v1/transactions", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Assessments & progress ---

func (c *Client) ListAssessments(ctx context.Context, filters Filters) ([]domain.Assessment, error) {
	var out []domain.Assessment
	err := c.get(ctx, "/api/v1/assessments", filters.values(), &out)
	return out, err
}

func (c *Client) CreateAssessment(ctx context.Context, payload map[string]any) (*domain.Assessment, error) {
	var out domain.Assessment
	if err := c.post(ctx, "/api/v1/assessments", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProgress(ctx context.Context, filters Filters) ([]domain.ProgressEntry, error) {
	var out []domain.ProgressEntry
	err := c.get(ctx, "/api/v1/progress", filters.values(), &out)
	return out, err
}

func (c *Client) CreateProgress(ctx context.Context, payload map[string]any) (*domain.ProgressEntry, error) {
	var out domain.ProgressEntry
	if err := c.post(ctx, "/api/v1/progress", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Exercise library ---

func (c *Client) ListExercises(ctx context.Context, filters Filters) ([]domain.Exercise, error) {
	var out []domain.Exercise
	err := c.get(ctx, "/api/v1/exercise-library", filters.values(), &out)
	return out, err
}

// ExerciseMediaURL returns a presigned download URL for the exercise's
// demo media.
func (c *Client) ExerciseMediaURL(ctx context.Context, id string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.get(ctx, "/api/v1/exercise-library/"+id+"/media", nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// --- Messages ---

func (c *Client) ListMessages(ctx context.Context, filters Filters) ([]domain.Message, error) {
	var out []domain.Message
	err := c.get(ctx, "/api/v1/messages", filters.values(), &out)
	return out, err
}

func (c *Client) SendMessage(ctx context.Context, payload map[string]any) (*domain.Message, error) {
	var out domain.Message
	if err := c.post(ctx, "/api/v1/messages", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMessage(ctx context.Context, id string, payload map[string]any) (*domain.Message, error) {
	var out domain.Message
	if err := c.put(ctx, "/api/v1/messages/"+id, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkMessageRead(ctx context.Context, id string) (*domain.Message, error) {
	var out domain.Message
	if err := c.put(ctx, "/api/v1/messages/"+id+"/read", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
