package webmnt_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kastheco/webmon/internal/webmnt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *webmnt.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return webmnt.NewClient(webmnt.Options{BaseURL: srv.URL + "/webmonitor/webmnt", Timeout: time.Second})
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "http://10.0.0.5:8080/webmonitor/webmnt", webmnt.BaseURL("10.0.0.5", "8080"))
}

func TestAuthenticate_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/webmonitor/webmnt/auth", r.URL.Path)
		assert.Equal(t, webmnt.DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json, text/plain", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds webmnt.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, webmnt.Credentials{Login: "admin", Password: "pw", Env: "prod"}, creds)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc123"}`))
	})

	tok, err := c.Authenticate(context.Background(), webmnt.Credentials{Login: "admin", Password: "pw", Env: "prod"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)
}

func TestAuthenticate_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid password"}`))
	})

	_, err := c.Authenticate(context.Background(), webmnt.Credentials{Login: "admin"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, webmnt.ErrAuth))
	assert.False(t, errors.Is(err, webmnt.ErrTransport))

	var we *webmnt.Error
	require.True(t, errors.As(err, &we))
	assert.Equal(t, http.StatusUnauthorized, we.Status)
	assert.Equal(t, "invalid password", we.Message)
}

func TestAuthenticate_RejectedPlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	})

	_, err := c.Authenticate(context.Background(), webmnt.Credentials{})
	require.Error(t, err)
	assert.ErrorIs(t, err, webmnt.ErrAuth)
	assert.Contains(t, err.Error(), "nope")
}

func TestAuthenticate_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":`))
	})

	_, err := c.Authenticate(context.Background(), webmnt.Credentials{})
	assert.ErrorIs(t, err, webmnt.ErrParse)
}

func TestAuthenticate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := webmnt.NewClient(webmnt.Options{BaseURL: base, Timeout: time.Second})
	_, err := c.Authenticate(context.Background(), webmnt.Credentials{})
	require.Error(t, err)
	assert.ErrorIs(t, err, webmnt.ErrTransport)
	kind, ok := webmnt.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, webmnt.KindTransport, kind)
}

func TestListSessions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/webmonitor/webmnt", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "token: tok", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"items":[
			{"id":"S1","userName":"ana","machineName":"ws01","threadID":42,"server":"srv","function":"MATA010",
			 "environment":"prod","dateTime":"2025-01-01 10:00","timeUp":"01:00:00","instructions":123456789012,
			 "instructionsPS":10,"comments":"","memory":2048,"sID":"x","idCTREE":7,"threadType":"Remote",
			 "inactiveTime":"00:05:00"}],"hasNext":true}`))
	})

	p, err := c.ListSessions(context.Background(), "tok", 2, 10)
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	assert.True(t, p.HasNext)

	it := p.Items[0]
	assert.Equal(t, "S1", it.ID)
	assert.Equal(t, "ana", it.UserName)
	assert.Equal(t, int32(42), it.ThreadID)
	assert.Equal(t, int64(123456789012), it.Instructions)
	assert.Equal(t, int32(7), it.CtreeID)
	assert.Equal(t, "Remote", it.ThreadType)
}

func TestListSessions_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized is auth", http.StatusUnauthorized, webmnt.ErrAuth},
		{"forbidden is auth", http.StatusForbidden, webmnt.ErrAuth},
		{"server error is transport", http.StatusInternalServerError, webmnt.ErrTransport},
		{"not found is transport", http.StatusNotFound, webmnt.ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := c.ListSessions(context.Background(), "tok", 0, 10)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var we *webmnt.Error
			require.ErrorAs(t, err, &we)
			assert.Equal(t, tt.status, we.Status)
			assert.Equal(t, "list", we.Op)
		})
	}
}

func TestListSessions_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})
	_, err := c.ListSessions(context.Background(), "tok", 0, 10)
	assert.ErrorIs(t, err, webmnt.ErrParse)
}

func TestListSessions_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := webmnt.NewClient(webmnt.Options{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := c.ListSessions(context.Background(), "tok", 0, 10)
	assert.ErrorIs(t, err, webmnt.ErrTransport)
}

func TestDeleteSessions(t *testing.T) {
	var calls int
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "token: tok", r.Header.Get("Authorization"))
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteSessions(context.Background(), "tok", []string{"S1", "S2"}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "/webmonitor/webmnt/S1,S2", gotPath)
}

func TestDeleteSessions_EmptyIsNoop(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { calls++ })
	require.NoError(t, c.DeleteSessions(context.Background(), "tok", nil))
	assert.Zero(t, calls)
}

func TestDeleteSessions_Failure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream down"}`))
	})
	err := c.DeleteSessions(context.Background(), "tok", []string{"S1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, webmnt.ErrTransport)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestSendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webmonitor/webmnt/msg", r.URL.Path)
		assert.Equal(t, "hello there", r.URL.Query().Get("msg"))

		var ids []string
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("id")), &ids))
		assert.Equal(t, []string{"S1", "S3"}, ids)

		_, _ = w.Write([]byte(`{"level":1,"message":"quota exceeded"}`))
	})

	res, err := c.SendMessage(context.Background(), "tok", []string{"S1", "S3"}, "hello there")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Level)
	assert.Equal(t, "quota exceeded", res.Message)
}

func TestSendMessage_ServerRejects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`token expired`))
	})

	_, err := c.SendMessage(context.Background(), "stale", []string{"S1"}, "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, webmnt.ErrAuth)
	assert.Contains(t, err.Error(), "token expired")
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "transport", webmnt.KindTransport.String())
	assert.Equal(t, "parse", webmnt.KindParse.String())
	assert.Equal(t, "auth", webmnt.KindAuth.String())
}
