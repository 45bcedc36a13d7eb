package client

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

	"shoplist/internal/shared"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(cfg *shared.ClientConfig) *Client {
	return &Client{
		BaseURL: strings.TrimRight(cfg.ServerURL, "/"),
		HTTP:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

func (c *Client) List(ctx context.Context) ([]shared.Item, error) {
	var items []shared.Item
	if err := c.do(ctx, http.MethodGet, "", nil, http.StatusOK, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Add(ctx context.Context, name, quantity any) (*shared.Item, error) {
	var it shared.Item
	in := shared.ItemInput{Name: name, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "", in, http.StatusCreated, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) Update(ctx context.Context, id string, name, quantity any) (*shared.Item, error) {
	var it shared.Item
	in := shared.ItemInput{Name: name, Quantity: quantity}
	if err := c.do(ctx, http.MethodPut, id, in, http.StatusOK, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, id, nil, http.StatusNoContent, nil)
}

func (c *Client) do(ctx context.Context, method, id string, in any, want int, out any) error {
	u := c.BaseURL + "/" + shared.ResourceName
	if id != "" {
		u += "/" + url.PathEscape(id)
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != want {
		var er shared.ErrorResponse
		if json.Unmarshal(b, &er) != nil || er.Error == "" {
			er.Error = strings.TrimSpace(string(b))
		}
		return &APIError{Status: resp.StatusCode, Message: er.Error}
	}
	if out == nil {
		return nil
	}
	return shared.DecodeJSON(b, out)
}
