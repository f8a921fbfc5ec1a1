// Package storage - Remote HTTP gateway
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"proposal-cost/internal/errors"
)

// RemoteStore talks to the managed proposal store over HTTP/JSON
type RemoteStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRemoteStore creates a remote gateway. A zero timeout falls back
// to 30 seconds.
func NewRemoteStore(baseURL, apiKey string, timeout time.Duration) *RemoteStore {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *RemoteStore) Save(ctx context.Context, record *Record) error {
	// Timestamps go out on a copy; the caller's record is only stamped
	// once the store has accepted the write.
	payload := *record
	payload.UpdatedAt = time.Now().UTC()

	var method, endpoint string
	if payload.ID == "" {
		payload.CreatedAt = payload.UpdatedAt
		method, endpoint = http.MethodPost, s.baseURL+"/proposals"
	} else {
		method, endpoint = http.MethodPut, s.baseURL+"/proposals/"+url.PathEscape(payload.ID)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Internal("failed to marshal proposal record", err)
	}

	data, err := s.do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	record.CreatedAt = payload.CreatedAt
	record.UpdatedAt = payload.UpdatedAt

	// The server assigns the id on create; adopt whatever it returns.
	var saved Record
	if err := json.Unmarshal(data, &saved); err == nil && saved.ID != "" {
		record.ID = saved.ID
	}
	return nil
}

func (s *RemoteStore) Get(ctx context.Context, id string) (*Record, error) {
	data, err := s.do(ctx, http.MethodGet, s.baseURL+"/proposals/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Parsing("failed to decode proposal record", err)
	}
	return &record, nil
}

func (s *RemoteStore) List(ctx context.Context, filter *ListFilter) ([]*Record, error) {
	endpoint := s.baseURL + "/proposals"
	if filter != nil {
		q := url.Values{}
		if filter.ClientID != "" {
			q.Set("client_id", filter.ClientID)
		}
		if filter.Limit > 0 {
			q.Set("limit", fmt.Sprintf("%d", filter.Limit))
		}
		if filter.Offset > 0 {
			q.Set("offset", fmt.Sprintf("%d", filter.Offset))
		}
		if encoded := q.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
	}

	data, err := s.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Parsing("failed to decode proposal list", err)
	}
	return records, nil
}

func (s *RemoteStore) Delete(ctx context.Context, id string) error {
	_, err := s.do(ctx, http.MethodDelete, s.baseURL+"/proposals/"+url.PathEscape(id), nil)
	return err
}

func (s *RemoteStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// do performs one request and maps the response status. The remote
// store's own error message is passed through verbatim.
func (s *RemoteStore) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Internal("failed to build gateway request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Network("proposal store unreachable", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Network("failed to read proposal store response", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errors.Unauthorized(remoteMessage(data, "authentication required"))
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NotFound("proposal", endpoint)
	case resp.StatusCode >= 400:
		return nil, errors.New(errors.TypeStorage, remoteMessage(data, resp.Status)).
			WithContext("status", resp.StatusCode)
	}
	return data, nil
}

// remoteMessage extracts the store's error message when the body
// carries one, otherwise falls back
func remoteMessage(data []byte, fallback string) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fallback
}
