package admin_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/go-hotel-client/admin"
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/resources/schemas"
	"github.com/hoteldesk/go-hotel-client/rest"
)

type seenRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

func (r seenRequest) String() string {
	return r.Method + " " + r.Path
}

type failure struct {
	status int
	body   string
}

// fakeBackend is an in-memory hotel API speaking the REST contract of the admin screens.
type fakeBackend struct {
	mu       sync.Mutex
	records  map[string][]map[string]any
	nextID   int
	requests []seenRequest
	failures map[string]failure
	server   *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{records: map[string][]map[string]any{}, failures: map[string]failure{}, nextID: 100}
	b.server = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) seed(resource string, records ...map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records[resource] = append(b.records[resource], records...)
}

// fail makes every request with the given method answer status and body.
func (b *fakeBackend) fail(method string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method] = failure{status: status, body: body}
}

func (b *fakeBackend) restore(method string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, method)
}

func (b *fakeBackend) seen() []seenRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]seenRequest(nil), b.requests...)
}

func (b *fakeBackend) resetSeen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

func (b *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := seenRequest{Method: r.Method, Path: r.URL.EscapedPath(), Auth: r.Header.Get("Authorization")}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &seen.Body)
	}
	b.requests = append(b.requests, seen)

	if f, ok := b.failures[r.Method]; ok {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
		return
	}
	if r.Header.Get("Authorization") != "Bearer test-token" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/"), "/"), "/")
	resource, id := parts[0], ""
	if len(parts) > 1 {
		id = parts[1]
	}
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && id == "":
		list := b.records[resource]
		if list == nil {
			list = []map[string]any{}
		}
		_ = json.NewEncoder(w).Encode(list)
	case r.Method == http.MethodPost && id == "":
		b.nextID++
		record := map[string]any{"id": fmt.Sprintf("r%d", b.nextID)}
		for k, v := range seen.Body {
			record[k] = v
		}
		b.records[resource] = append(b.records[resource], record)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(record)
	case r.Method == http.MethodPut && id != "":
		for i, record := range b.records[resource] {
			if record["id"] == id {
				replaced := map[string]any{"id": id}
				for k, v := range seen.Body {
					replaced[k] = v
				}
				b.records[resource][i] = replaced
				_ = json.NewEncoder(w).Encode(replaced)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodDelete && id != "":
		for i, record := range b.records[resource] {
			if record["id"] == id {
				b.records[resource] = append(b.records[resource][:i], b.records[resource][i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type notifications struct {
	all []admin.Notification
}

func (n *notifications) Notify(note admin.Notification) {
	n.all = append(n.all, note)
}

func (n *notifications) errors() []admin.Notification {
	var out []admin.Notification
	for _, note := range n.all {
		if note.Level == admin.LevelError {
			out = append(out, note)
		}
	}
	return out
}

func newRest(t *testing.T, b *fakeBackend) *rest.UntypedHotelRest {
	t.Helper()
	client, err := rest.NewUntypedHotelRest(&core.Config{
		BaseURL:     b.server.URL,
		Credentials: core.NewStaticCredentials("test-token"),
	})
	require.NoError(t, err)
	return client
}

// newRoomsScreen mounts a rooms screen and waits for the first load.
func newRoomsScreen(t *testing.T, b *fakeBackend) (*admin.Screen, *notifications) {
	t.Helper()
	notes := &notifications{}
	screen := admin.NewScreen(schemas.Rooms(), newRest(t, b).Rooms, notes, admin.WithErrorHold(10*time.Millisecond))
	run(screen, screen.Mount())
	require.Equal(t, admin.StateIdle, screen.State())
	return screen, notes
}

// run executes cmd and feeds every resulting message back to the screen until nothing is left.
func run(screen *admin.Screen, cmd tea.Cmd) {
	for cmd != nil {
		cmd = screen.Update(cmd())
	}
}

func fillRoom(form *admin.Form, number, roomType, price, occupancy string) {
	form.SetText("roomNumber", number)
	form.SetText("roomType", roomType)
	form.SetText("price", price)
	form.SetText("maxOccupancy", occupancy)
}

func rowStrings(screen *admin.Screen) []string {
	var out []string
	for _, row := range screen.Rows() {
		out = append(out, row.String())
	}
	return out
}

func room(id, number, roomType string, price float64, occupancy int, status string) map[string]any {
	return map[string]any{
		"id":           id,
		"roomNumber":   number,
		"roomType":     roomType,
		"price":        price,
		"maxOccupancy": occupancy,
		"status":       status,
	}
}
