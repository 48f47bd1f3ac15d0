package client

import (
	"encoding/json"
	"net/http"
)

// HealthStatus is the readiness report from the server.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Nats     string `json:"nats,omitempty"`
}

// Health checks server readiness. Health endpoints sit outside /api/v1 and
// need no identity.
func (c *Client) Health() (*HealthStatus, error) {
	req, err := http.NewRequest("GET", c.server+"/ready", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}
