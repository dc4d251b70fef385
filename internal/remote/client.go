// Package remote talks to the dashboard's task and team API.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/yukikurage/team-dashboard/internal/models"
)

const (
	tasksPath = "/api/tasks"
	teamPath  = "/api/team"
)

// TaskService is the remote task store
type TaskService interface {
	FetchAll(ctx context.Context) ([]models.Task, error)
	Patch(ctx context.Context, patch models.TaskPatch) (models.Task, error)
}

// MemberService is the remote team directory
type MemberService interface {
	FetchMembers(ctx context.Context) ([]models.TeamMember, error)
	UpdateMember(ctx context.Context, id string, update models.MemberUpdate) (models.TeamMember, error)
}

// Client implements TaskService and MemberService over HTTP
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a Client with the given request timeout
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.fetch(ctx, tasksPath, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Patch(ctx context.Context, patch models.TaskPatch) (models.Task, error) {
	var task models.Task
	if err := c.write(ctx, http.MethodPatch, tasksPath, patch.ID, patch, &task); err != nil {
		return models.Task{}, err
	}
	if task.ID == "" {
		return models.Task{}, &PatchError{Path: tasksPath, ID: patch.ID, Err: ErrMissingID}
	}
	return task, nil
}

func (c *Client) FetchMembers(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := c.fetch(ctx, teamPath, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) UpdateMember(ctx context.Context, id string, update models.MemberUpdate) (models.TeamMember, error) {
	body := struct {
		ID string `json:"id"`
		models.MemberUpdate
	}{ID: id, MemberUpdate: update}

	var member models.TeamMember
	if err := c.write(ctx, http.MethodPut, teamPath, id, body, &member); err != nil {
		return models.TeamMember{}, err
	}
	if member.ID == "" {
		return models.TeamMember{}, &PatchError{Path: teamPath, ID: id, Err: ErrMissingID}
	}
	return member, nil
}

func (c *Client) fetch(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return &FetchError{Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	status, data, err := c.do(req)
	if err != nil {
		return &FetchError{Path: path, Err: err}
	}
	if status < 200 || status > 299 {
		return &FetchError{Path: path, StatusCode: status}
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return &FetchError{Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) write(ctx context.Context, method, path, id string, body, out any) error {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return &PatchError{Path: path, ID: id, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &PatchError{Path: path, ID: id, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, data, err := c.do(req)
	if err != nil {
		return &PatchError{Path: path, ID: id, Err: err}
	}
	if status < 200 || status > 299 {
		return &PatchError{Path: path, ID: id, StatusCode: status}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &PatchError{Path: path, ID: id, Err: ErrMissingID}
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return &PatchError{Path: path, ID: id, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}
