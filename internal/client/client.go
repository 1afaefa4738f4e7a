// Package client implements the HTTP client for the catalog API. The CLI
// subcommands are built on it; it is also usable as a library.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/stolasapp/barre/internal/sec"
	"github.com/stolasapp/barre/internal/storage"
	"github.com/stolasapp/barre/internal/storage/db"
)

// DefaultTimeout bounds a single API request.
const DefaultTimeout = 30 * time.Second

// APIError is the decoded error body of a failed request.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

// Error satisfies [error].
func (e *APIError) Error() string { return e.Message }

// Client talks to a catalog server. The zero value is not usable; construct
// with [New].
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the server at baseURL. An empty token makes an
// anonymous client; authenticated calls will fail until [Client.SetToken].
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// SetToken replaces the session token used for authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

// do runs one JSON round trip. A non-2xx response decodes into an [*APIError]
// and is returned as the error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		buf = bytes.NewBuffer(encoded)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: res.StatusCode}
		if err := json.NewDecoder(res.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = res.Status
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

type authBody struct {
	Message string  `json:"message"`
	User    db.User `json:"user"`
	Token   string  `json:"token"`
}

// Register creates an account and returns the authenticated session.
func (c *Client) Register(ctx context.Context, username, email, password string) (Session, error) {
	var body authBody
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &body)
	if err != nil {
		return Session{}, err
	}
	c.token = body.Token
	return Session{User: body.User, Token: body.Token}, nil
}

// Login authenticates an existing account and returns the session.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var body authBody
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &body)
	if err != nil {
		return Session{}, err
	}
	c.token = body.Token
	return Session{User: body.User, Token: body.Token}, nil
}

// Me returns the identity embedded in the current session token, as verified
// by the server.
func (c *Client) Me(ctx context.Context) (sec.Claims, error) {
	var body struct {
		User sec.Claims `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &body)
	return body.User, err
}

// BalletDraft is a ballet submission. Title, Composer, and Choreographer are
// required by the server.
type BalletDraft struct {
	Title           string  `json:"title"`
	Composer        string  `json:"composer"`
	Choreographer   string  `json:"choreographer"`
	YearPremiered   *int64  `json:"year_premiered,omitempty"`
	DifficultyLevel *string `json:"difficulty_level,omitempty"`
	DurationMinutes *int64  `json:"duration_minutes,omitempty"`
	Description     *string `json:"description,omitempty"`
}

// Ballets lists every ballet, alphabetically by title.
func (c *Client) Ballets(ctx context.Context) ([]db.Ballet, error) {
	var ballets []db.Ballet
	err := c.do(ctx, http.MethodGet, "/api/ballets", nil, &ballets)
	return ballets, err
}

// Ballet fetches a single ballet by ID.
func (c *Client) Ballet(ctx context.Context, id int64) (db.Ballet, error) {
	var ballet db.Ballet
	err := c.do(ctx, http.MethodGet, "/api/ballets/"+formatID(id), nil, &ballet)
	return ballet, err
}

// SubmitBallet submits a new ballet. Requires authentication.
func (c *Client) SubmitBallet(ctx context.Context, draft BalletDraft) (db.Ballet, error) {
	var body struct {
		Ballet db.Ballet `json:"ballet"`
	}
	err := c.do(ctx, http.MethodPost, "/api/ballets", draft, &body)
	return body.Ballet, err
}

// DeleteBallet removes a ballet and returns the deleted row. Requires an
// admin session.
func (c *Client) DeleteBallet(ctx context.Context, id int64) (db.Ballet, error) {
	var body struct {
		Ballet db.Ballet `json:"ballet"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/ballets/"+formatID(id), nil, &body)
	return body.Ballet, err
}

// BalletSteps returns a ballet's steps in sequence order.
func (c *Client) BalletSteps(ctx context.Context, id int64) ([]db.SequencedStep, error) {
	var steps []db.SequencedStep
	err := c.do(ctx, http.MethodGet, "/api/ballets/"+formatID(id)+"/steps", nil, &steps)
	return steps, err
}

// BalletsWithSteps returns every ballet merged with its step sequence.
func (c *Client) BalletsWithSteps(ctx context.Context) ([]storage.BalletWithSteps, error) {
	var merged []storage.BalletWithSteps
	err := c.do(ctx, http.MethodGet, "/api/ballets-with-steps", nil, &merged)
	return merged, err
}

// StepDraft is a step submission. All fields are required by the server.
type StepDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}

// Steps lists every step, alphabetically by name.
func (c *Client) Steps(ctx context.Context) ([]db.Step, error) {
	var steps []db.Step
	err := c.do(ctx, http.MethodGet, "/api/steps", nil, &steps)
	return steps, err
}

// Step fetches a single step by ID.
func (c *Client) Step(ctx context.Context, id int64) (db.Step, error) {
	var step db.Step
	err := c.do(ctx, http.MethodGet, "/api/steps/"+formatID(id), nil, &step)
	return step, err
}

// SubmitStep submits a new step. Requires authentication.
func (c *Client) SubmitStep(ctx context.Context, draft StepDraft) (db.Step, error) {
	var body struct {
		Step db.Step `json:"step"`
	}
	err := c.do(ctx, http.MethodPost, "/api/steps", draft, &body)
	return body.Step, err
}

// DeleteStep removes a step and returns the deleted row. Requires an admin
// session.
func (c *Client) DeleteStep(ctx context.Context, id int64) (db.Step, error) {
	var body struct {
		Step db.Step `json:"step"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/steps/"+formatID(id), nil, &body)
	return body.Step, err
}

// StepEquipment returns a step's equipment list.
func (c *Client) StepEquipment(ctx context.Context, id int64) ([]db.RequiredEquipment, error) {
	var equipment []db.RequiredEquipment
	err := c.do(ctx, http.MethodGet, "/api/steps/"+formatID(id)+"/equipment", nil, &equipment)
	return equipment, err
}

// StepsWithEquipment returns every step merged with its equipment.
func (c *Client) StepsWithEquipment(ctx context.Context) ([]storage.StepWithEquipment, error) {
	var merged []storage.StepWithEquipment
	err := c.do(ctx, http.MethodGet, "/api/steps-with-equipment", nil, &merged)
	return merged, err
}

// EquipmentDraft is an equipment submission. All fields are required by the
// server.
type EquipmentDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Equipment lists every equipment row, alphabetically by name.
func (c *Client) Equipment(ctx context.Context) ([]db.Equipment, error) {
	var equipment []db.Equipment
	err := c.do(ctx, http.MethodGet, "/api/equipment", nil, &equipment)
	return equipment, err
}

// EquipmentByID fetches a single equipment row.
func (c *Client) EquipmentByID(ctx context.Context, id int64) (db.Equipment, error) {
	var equipment db.Equipment
	err := c.do(ctx, http.MethodGet, "/api/equipment/"+formatID(id), nil, &equipment)
	return equipment, err
}

// SubmitEquipment submits a new equipment row. Requires authentication.
func (c *Client) SubmitEquipment(ctx context.Context, draft EquipmentDraft) (db.Equipment, error) {
	var body struct {
		Equipment db.Equipment `json:"equipment"`
	}
	err := c.do(ctx, http.MethodPost, "/api/equipment", draft, &body)
	return body.Equipment, err
}

// DeleteEquipment removes an equipment row and returns the deleted row.
// Requires an admin session.
func (c *Client) DeleteEquipment(ctx context.Context, id int64) (db.Equipment, error) {
	var body struct {
		Equipment db.Equipment `json:"equipment"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/equipment/"+formatID(id), nil, &body)
	return body.Equipment, err
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
