package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/goleak"

	"github.com/muurk/maskedit/internal/config"
	"github.com/muurk/maskedit/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New(&Config{Registry: config.NewRegistry(), Instance: "test"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	_ = resp.Body.Close()
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if resp.ID != req.ID || resp.Op != req.Op {
		t.Fatalf("response %d/%s does not answer request %d/%s", resp.ID, resp.Op, req.ID, req.Op)
	}
	return resp
}

func TestNewRequiresRegistry(t *testing.T) {
	if _, err := New(&Config{}); err == nil {
		t.Error("New() without registry should fail")
	}
	srv, err := New(&Config{Registry: config.NewRegistry()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if srv.config.Path != "/ws" || !strings.HasPrefix(srv.config.Instance, "maskedit on ") {
		t.Errorf("defaults not applied: %+v", srv.config)
	}
}

func TestWebSocketSession(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts.URL)
	defer conn.Close()

	resp := roundTrip(t, conn, Request{ID: 1, Op: OpCommand, Command: &session.Command{Kind: session.KindTypeChar, Text: "1"}})
	if resp.Error == "" {
		t.Fatal("command before open should fail")
	}

	resp = roundTrip(t, conn, Request{ID: 2, Op: OpOpen, Profile: "time"})
	if resp.Error != "" || resp.Output.Text != "00:00" || len(resp.Tokens) != 3 {
		t.Fatalf("open: %+v", resp)
	}

	cmd := session.TypeChar('1')
	resp = roundTrip(t, conn, Request{ID: 3, Op: OpCommand, Command: &cmd})
	if resp.Error != "" || resp.Output.Text != "10:00" || !resp.Output.Changed {
		t.Fatalf("type: %+v", resp)
	}

	inc := session.Increment(decimal.NewFromInt(1), true)
	resp = roundTrip(t, conn, Request{ID: 4, Op: OpCommand, Command: &inc})
	if resp.Error != "" || resp.Output.Text != "11:00" {
		t.Fatalf("increment: %+v", resp)
	}

	resp = roundTrip(t, conn, Request{ID: 5, Op: OpSetSelection, Selection: &session.Selection{Start: 3}})
	if resp.Output.Selection != (session.Selection{Start: 3}) {
		t.Errorf("set_selection: %+v", resp.Output.Selection)
	}

	resp = roundTrip(t, conn, Request{ID: 6, Op: OpTokens})
	if len(resp.Tokens) != 3 || resp.Tokens[0].Text != "11" {
		t.Errorf("tokens: %+v", resp.Tokens)
	}
}

func TestWebSocketRawJSON(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts.URL)
	defer conn.Close()

	raw := []string{
		`{"id":1,"op":"open","mask":"00/00","text":"12/99"}`,
		`{"id":2,"op":"command","command":{"kind":"increment","amount":1,"selection":{"start":3,"length":0}}}`,
	}
	var last Response
	for _, msg := range raw {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("WriteMessage() error = %v", err)
		}
		if err := conn.ReadJSON(&last); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if last.Error != "" {
			t.Fatalf("request %s failed: %s", msg, last.Error)
		}
	}
	if last.Output.Text != "13/00" {
		t.Errorf("after increment = %q, want %q", last.Output.Text, "13/00")
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
	if err := conn.ReadJSON(&last); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !strings.HasPrefix(last.Error, "invalid request") {
		t.Errorf("error = %q", last.Error)
	}
}

func TestFieldSessionErrors(t *testing.T) {
	sess := &fieldSession{registry: config.NewRegistry()}

	tests := []struct {
		name string
		req  Request
	}{
		{"unknown profile", Request{Op: OpOpen, Profile: "nope"}},
		{"empty open", Request{Op: OpOpen}},
		{"bad mask", Request{Op: OpOpen, Mask: `00\`}},
		{"length mismatch", Request{Op: OpOpen, Mask: "00", Text: "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := sess.handle(tt.req); resp.Error == "" {
				t.Errorf("handle(%+v) succeeded", tt.req)
			}
		})
	}

	if resp := sess.handle(Request{Op: OpOpen, Profile: "date", Text: "2024/12/31"}); resp.Error != "" {
		t.Fatalf("open date: %s", resp.Error)
	}
	for _, req := range []Request{
		{Op: OpCommand},
		{Op: OpSetSelection},
		{Op: "bogus"},
		{Op: OpCommand, Command: &session.Command{Kind: "bogus"}},
	} {
		if resp := sess.handle(req); resp.Error == "" {
			t.Errorf("handle(%+v) succeeded", req)
		}
	}

	resp := sess.handle(Request{Op: OpSetMask, Mask: "00:00", Text: "12:34", Reset: true})
	if resp.Error != "" || resp.Output.Mask != "00:00" || len(resp.Tokens) != 3 {
		t.Errorf("set_mask: %+v", resp)
	}
}

func TestHTTPEndpoints(t *testing.T) {
	_, ts := newTestServer(t)
	defer http.DefaultClient.CloseIdleConnections()

	resp, err := http.Get(ts.URL + "/profiles")
	if err != nil {
		t.Fatalf("GET /profiles error = %v", err)
	}
	var profiles map[string][]string
	err = json.NewDecoder(resp.Body).Decode(&profiles)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if len(profiles["profiles"]) == 0 {
		t.Errorf("profiles = %v", profiles)
	}

	resp, err = http.Get(ts.URL + "/version")
	if err != nil {
		t.Fatalf("GET /version error = %v", err)
	}
	var info map[string]string
	err = json.NewDecoder(resp.Body).Decode(&info)
	_ = resp.Body.Close()
	if err != nil || info["version"] == "" {
		t.Errorf("version = %v, err %v", info, err)
	}

	resp, err = http.Post(ts.URL+"/version", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /version error = %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /version status = %d", resp.StatusCode)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	srv, err := New(&Config{Host: "127.0.0.1", Registry: config.NewRegistry(), Instance: "test"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	conn := dial(t, "http://"+srv.Addr().String())
	defer conn.Close()
	roundTrip(t, conn, Request{ID: 1, Op: OpOpen, Profile: "time"})
	if n := srv.GetActiveConnections(); n != 1 {
		t.Errorf("GetActiveConnections() = %d, want 1", n)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection still open after shutdown")
	}
}

func TestRunFailsOnBadWatchPath(t *testing.T) {
	srv, err := New(&Config{
		Host:      "127.0.0.1",
		Registry:  config.NewRegistry(),
		Instance:  "test",
		WatchPath: filepath.Join(t.TempDir(), "missing", "profiles.yaml"),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	addr := srv.Addr().String()

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(context.Background()) }()
	select {
	case err := <-errc:
		if err == nil {
			t.Fatal("Run() succeeded with an unwatchable profiles path")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
	}

	if conn, err := net.DialTimeout("tcp", addr, time.Second); err == nil {
		conn.Close()
		t.Errorf("listener on %s still accepts connections", addr)
	}
}

func TestShutdownRefusesNewSessions(t *testing.T) {
	srv, ts := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	conn := dial(t, ts.URL)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("session accepted after shutdown")
	}
	if n := srv.GetActiveConnections(); n != 0 {
		t.Errorf("GetActiveConnections() = %d, want 0", n)
	}
}
