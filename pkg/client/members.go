package client

import "time"

// Member represents a project membership.
type Member struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	JoinedAt  time.Time `json:"joined_at"`
}

// MemberListResponse is the response from listing members.
type MemberListResponse struct {
	Members []Member `json:"members"`
	Count   int      `json:"count"`
}

// MemberList lists all members of a project.
func (c *Client) MemberList(projectID string) (*MemberListResponse, error) {
	var resp MemberListResponse
	if err := c.do("GET", "/projects/"+projectID+"/members", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MemberAdd adds a member by user id. The caller must be an OWNER or ADMIN of
// the project.
func (c *Client) MemberAdd(projectID, userID, role string) (*Member, error) {
	var m Member
	body := map[string]string{"user_id": userID, "role": role}
	if err := c.do("POST", "/projects/"+projectID+"/members", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MemberAddByEmail adds a member by email, resolved through the user
// directory.
func (c *Client) MemberAddByEmail(projectID, email, role string) (*Member, error) {
	var m Member
	body := map[string]string{"email": email, "role": role}
	if err := c.do("POST", "/projects/"+projectID+"/members/by-email", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MemberSetRole overwrites a member's role.
func (c *Client) MemberSetRole(projectID, userID, role string) (*Member, error) {
	var m Member
	body := map[string]string{"role": role}
	if err := c.do("PUT", "/projects/"+projectID+"/members/"+userID+"/role", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MemberRemove deletes a membership.
func (c *Client) MemberRemove(projectID, userID string) error {
	return c.do("DELETE", "/projects/"+projectID+"/members/"+userID, nil, nil)
}
