// Package network gives wisp's `http-*`/`ws-*` builtins a thin, stateless
// HTTP client and a registry of live WebSocket connections.
//
// Adapted from the teacher's HTTPRequest/HTTPGet/HTTPPost (http_client.go)
// and WebSocketConnect/Send/Receive/Close (websocket.go); the port
// scanning, packet capture, firewall, and IDS code that filled out the
// rest of the original package has no SPEC_FULL.md component to serve and
// is dropped (see DESIGN.md).
package network

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Response is a completed HTTP response, headers flattened to one value
// per name (comma-joined) the way wisp strings can represent directly.
type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       string
}

// Get performs an HTTP GET.
func Get(url string) (*Response, error) {
	return Request("GET", url, nil, nil)
}

// Post performs an HTTP POST with the given body and headers.
func Post(url string, body []byte, headers map[string]string) (*Response, error) {
	return Request("POST", url, headers, body)
}

// Request performs a generic HTTP request with a 30-second timeout.
func Request(method, url string, headers map[string]string, body []byte) (*Response, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(body))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "wisp/1.0")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	respHeaders := make(map[string]string, len(resp.Header))
	for k, v := range resp.Header {
		respHeaders[k] = strings.Join(v, ", ")
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    respHeaders,
		Body:       string(respBody),
	}, nil
}
