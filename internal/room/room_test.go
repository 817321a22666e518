package room

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(NewSigner("test-secret", time.Hour), "http://localhost:3000/", ttl, nil)
}

func TestManager_CreateAndGet(t *testing.T) {
	m := newTestManager(time.Hour)

	r, hostToken, err := m.Create("  Backend loop  ", "", "Grace")
	require.NoError(t, err)
	assert.Regexp(t, `^meet-[0-9a-z]{8}$`, r.ID)
	assert.Equal(t, "Backend loop", r.Title)
	assert.Equal(t, TypeTechnical, r.Type)
	assert.Equal(t, "http://localhost:3000/live-interview/"+r.ID, r.Link)
	assert.NotEmpty(t, hostToken)

	got, err := m.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Title, got.Title)
	assert.Empty(t, got.Participants)

	_, err = m.Get("meet-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_CreateValidation(t *testing.T) {
	m := newTestManager(time.Hour)

	_, _, err := m.Create(" ", TypeGeneral, "Grace")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, _, err = m.Create("Loop", Type("panel"), "Grace")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestManager_Invite(t *testing.T) {
	m := newTestManager(time.Hour)
	r, _, err := m.Create("Loop", TypeBehavioral, "Grace")
	require.NoError(t, err)

	inv, err := m.Invite(r.ID, "ada@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, RoleParticipant, inv.Role)
	assert.True(t, strings.HasPrefix(inv.Link, "http://localhost:3000/live-interview/"+r.ID+"?token="))

	hub, claims, err := m.Authorize(r.ID, inv.Token)
	require.NoError(t, err)
	assert.NotNil(t, hub)
	assert.Equal(t, "ada@example.com", claims.Name)

	_, err = m.Invite(r.ID, "not-an-email", RoleObserver)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = m.Invite(r.ID, "ada@example.com", RoleHost)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = m.Invite("meet-missing", "ada@example.com", RoleObserver)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_AuthorizeRejectsOtherRoomToken(t *testing.T) {
	m := newTestManager(time.Hour)
	a, tokenA, err := m.Create("A", TypeGeneral, "Grace")
	require.NoError(t, err)
	b, _, err := m.Create("B", TypeGeneral, "Grace")
	require.NoError(t, err)

	_, _, err = m.Authorize(a.ID, tokenA)
	assert.NoError(t, err)

	_, _, err = m.Authorize(b.ID, tokenA)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RoomsExpire(t *testing.T) {
	m := newTestManager(20 * time.Millisecond)
	r, _, err := m.Create("Short", TypeGeneral, "Grace")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := m.Get(r.ID)
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func serveRoom(t *testing.T, m *Manager) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roomID := strings.TrimPrefix(r.URL.Path, "/ws/rooms/")
		hub, claims, err := m.Authorize(roomID, r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(hub, conn, claims).Serve()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, roomID, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/rooms/" + roomID + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUntil(t *testing.T, conn *websocket.Conn, typ string) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		if msg.Type == typ {
			return msg
		}
	}
}

func TestHub_RelaysChat(t *testing.T) {
	m := newTestManager(time.Hour)
	t.Cleanup(m.Close)
	r, hostToken, err := m.Create("Loop", TypeTechnical, "Grace")
	require.NoError(t, err)
	inv, err := m.Invite(r.ID, "ada@example.com", RoleParticipant)
	require.NoError(t, err)

	srv := serveRoom(t, m)
	host := dial(t, srv, r.ID, hostToken)
	readUntil(t, host, MessageJoin)

	guest := dial(t, srv, r.ID, inv.Token)
	joined := readUntil(t, host, MessageJoin)
	assert.Equal(t, "ada@example.com", joined.Sender)

	assert.Eventually(t, func() bool {
		got, err := m.Get(r.ID)
		return err == nil && len(got.Participants) == 2 && got.Participants[0].IsHost
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, guest.WriteJSON(map[string]string{"content": "Hello from the candidate"}))

	for _, conn := range []*websocket.Conn{host, guest} {
		msg := readUntil(t, conn, MessageChat)
		assert.Equal(t, "ada@example.com", msg.Sender)
		assert.Equal(t, "Hello from the candidate", msg.Content)
		assert.NotEmpty(t, msg.ID)
	}

	guest.Close()
	left := readUntil(t, host, MessageLeave)
	assert.Equal(t, "ada@example.com", left.Sender)
}

func TestHub_RejectsBadToken(t *testing.T) {
	m := newTestManager(time.Hour)
	r, _, err := m.Create("Loop", TypeTechnical, "Grace")
	require.NoError(t, err)

	srv := serveRoom(t, m)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/rooms/" + r.ID + "?token=garbage"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
