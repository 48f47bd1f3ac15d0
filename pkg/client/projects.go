package client

import "time"

// Project represents a project.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProjectKey  string    `json:"project_key"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectListResponse is the response from listing projects.
type ProjectListResponse struct {
	Projects []Project `json:"projects"`
	Count    int       `json:"count"`
}

// WorkflowStatus represents one step of a project's workflow.
type WorkflowStatus struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Code       string `json:"code"`
	StatusName string `json:"status_name"`
	OrderIndex int    `json:"order_index"`
	IsFinal    bool   `json:"is_final"`
	IsActive   bool   `json:"is_active"`
}

// StatusListResponse is the response from listing workflow statuses.
type StatusListResponse struct {
	Statuses []WorkflowStatus `json:"statuses"`
	Count    int              `json:"count"`
}

// CreateProjectRequest is the request to create a project.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	ProjectKey  string `json:"project_key"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// UpdateProjectRequest is the request to update a project.
type UpdateProjectRequest struct {
	Name        string `json:"name"`
	ProjectKey  string `json:"project_key"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
}

// ProjectCreate creates a project. The authenticated user becomes its owner.
func (c *Client) ProjectCreate(req CreateProjectRequest) (*Project, error) {
	var p Project
	if err := c.do("POST", "/projects", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProjectList lists all projects.
func (c *Client) ProjectList() (*ProjectListResponse, error) {
	var resp ProjectListResponse
	if err := c.do("GET", "/projects", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectGet retrieves a project by id.
func (c *Client) ProjectGet(id string) (*Project, error) {
	var p Project
	if err := c.do("GET", "/projects/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProjectUpdate overwrites a project's fields.
func (c *Client) ProjectUpdate(id string, req UpdateProjectRequest) (*Project, error) {
	var p Project
	if err := c.do("PUT", "/projects/"+id, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProjectDelete removes a project.
func (c *Client) ProjectDelete(id string) error {
	return c.do("DELETE", "/projects/"+id, nil, nil)
}

// ProjectStatuses lists a project's workflow statuses in display order.
func (c *Client) ProjectStatuses(id string) (*StatusListResponse, error) {
	var resp StatusListResponse
	if err := c.do("GET", "/projects/"+id+"/statuses", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
