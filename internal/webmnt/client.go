package webmnt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultUserAgent is sent on every request; the server rejects unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:138.0) Gecko/20100101 Firefox/138.0"

const acceptHeader = "application/json, text/plain"

// maxErrorBody bounds how much of a failed response body is kept as the message.
const maxErrorBody = 4096

// BaseURL builds the webmnt endpoint root for host and port.
func BaseURL(host, port string) string {
	return fmt.Sprintf("http://%s:%s/webmonitor/webmnt", host, port)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to a webmnt server. It holds no token: every authenticated
// call takes the token explicitly so the caller owns renewal.
type Client struct {
	base      string
	userAgent string
	http      *http.Client
}

// NewClient creates a client for the server at opts.BaseURL.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{
		base:      strings.TrimRight(opts.BaseURL, "/"),
		userAgent: ua,
		http:      hc,
	}
}

// Authenticate exchanges credentials for a session token.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	const op = "auth"
	body, err := json.Marshal(creds)
	if err != nil {
		return "", parseError(op, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.base+"/auth", "", bytes.NewReader(body))
	if err != nil {
		return "", transportError(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", transportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Kind: KindAuth, Op: op, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", parseError(op, err)
	}
	if auth.Token == "" {
		return "", &Error{Kind: KindParse, Op: op, Status: resp.StatusCode, Message: "response carried no token"}
	}
	return auth.Token, nil
}

// ListSessions fetches one page of active sessions.
func (c *Client) ListSessions(ctx context.Context, token string, page uint, pageSize int) (Page, error) {
	const op = "list"
	q := url.Values{}
	q.Set("page", strconv.FormatUint(uint64(page), 10))
	q.Set("pageSize", strconv.Itoa(pageSize))

	resp, err := c.do(ctx, op, http.MethodGet, c.base+"?"+q.Encode(), token)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()

	var p Page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Page{}, parseError(op, err)
	}
	return p, nil
}

// DeleteSessions asks the server to terminate the given sessions. Success
// means the server accepted the request, not that the sessions are gone.
func (c *Client) DeleteSessions(ctx context.Context, token string, ids []string) error {
	const op = "delete"
	if len(ids) == 0 {
		return nil
	}
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = url.PathEscape(id)
	}

	resp, err := c.do(ctx, op, http.MethodDelete, c.base+"/"+strings.Join(escaped, ","), token)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// SendMessage broadcasts text to the given sessions.
func (c *Client) SendMessage(ctx context.Context, token string, ids []string, text string) (MessageResult, error) {
	const op = "msg"
	idList, err := json.Marshal(ids)
	if err != nil {
		return MessageResult{}, parseError(op, err)
	}
	q := url.Values{}
	q.Set("msg", text)
	q.Set("id", string(idList))

	resp, err := c.do(ctx, op, http.MethodGet, c.base+"/msg?"+q.Encode(), token)
	if err != nil {
		return MessageResult{}, err
	}
	defer resp.Body.Close()

	var res MessageResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return MessageResult{}, parseError(op, err)
	}
	return res, nil
}

// do sends an authenticated request and maps non-2xx statuses to typed
// errors. On success the caller owns the response body.
func (c *Client) do(ctx context.Context, op, method, target, token string) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, target, token, nil)
	if err != nil {
		return nil, transportError(op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(op, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp, nil
	}
	defer resp.Body.Close()

	kind := KindTransport
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		kind = KindAuth
	}
	msg := readErrorMessage(resp.Body)
	if msg == "" {
		msg = fmt.Sprintf("http %d", resp.StatusCode)
	}
	return nil, &Error{Kind: kind, Op: op, Status: resp.StatusCode, Message: msg}
}

func (c *Client) newRequest(ctx context.Context, method, target, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)
	if token != "" {
		req.Header.Set("Authorization", "token: "+token)
	}
	return req, nil
}

// readErrorMessage returns the {message} field of a JSON error body, or the
// raw trimmed body when it is not JSON.
func readErrorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	return strings.TrimSpace(string(raw))
}
