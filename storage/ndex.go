package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/c360studio/cxrdf/cx"
)

// DefaultNDExURL is the public NDEx server.
const DefaultNDExURL = "https://www.ndexbio.org"

// NDExClient talks to the NDEx v2 REST API.
type NDExClient struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

// NDExOption configures an NDExClient.
type NDExOption func(*NDExClient)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) NDExOption {
	return func(n *NDExClient) {
		n.client = c
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) NDExOption {
	return func(n *NDExClient) {
		n.client = &http.Client{Timeout: d}
	}
}

// NewNDExClient creates a client for the server at baseURL. An empty
// baseURL selects DefaultNDExURL. Saving requires credentials; loading
// public networks does not.
func NewNDExClient(baseURL, username, password string, opts ...NDExOption) *NDExClient {
	if baseURL == "" {
		baseURL = DefaultNDExURL
	}
	c := &NDExClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements NetworkStore.
func (c *NDExClient) Name() string {
	return StoreNDEx
}

// Save creates a new network from doc and returns its NDEx UUID.
func (c *NDExClient) Save(ctx context.Context, name string, doc cx.Document) (string, error) {
	if c.username == "" || c.password == "" {
		return "", fmt.Errorf("ndex credentials: %w", ErrUnauthorized)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal network: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("CXNetworkStream", name+".cx")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/network", &buf)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(c.username, c.password)

	body, resp, err := c.do(req)
	if err != nil {
		return "", err
	}

	// NDEx answers with the new network's URL, in the Location header and
	// as a (sometimes quoted) body.
	location := resp.Header.Get("Location")
	if location == "" {
		location = strings.Trim(strings.TrimSpace(string(body)), `"`)
	}
	id := location[strings.LastIndex(location, "/")+1:]
	if id == "" {
		return "", errors.New("ndex response carries no network id")
	}
	return id, nil
}

// Load fetches the network with the given UUID as CX.
func (c *NDExClient) Load(ctx context.Context, id string) (cx.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/network/"+id, nil)
	if err != nil {
		return cx.Document{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	body, _, err := c.do(req)
	if err != nil {
		return cx.Document{}, err
	}
	return cx.Parse(body)
}

// do sends req and maps failure statuses to errors.
func (c *NDExClient) do(req *http.Request) ([]byte, *http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("ndex request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read ndex response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, resp, nil
}
