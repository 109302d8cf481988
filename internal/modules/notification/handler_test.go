package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"parvarish/internal/domain"
	"parvarish/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer fakes the access middleware by reading the identity from the
// query string.
func newServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		if id := c.Query("id"); id != "" {
			c.Set(middleware.CtxUserID, id)
			c.Set(middleware.CtxRole, c.Query("role"))
		}
		c.Next()
	})
	NewHandler(hub, nil).RegisterRoutes(api)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/bookings/events?" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestStream_RequiresIdentity(t *testing.T) {
	srv := newServer(t, NewHub())

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/bookings/events"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNotifier_DeliversToParties(t *testing.T) {
	hub := NewHub()
	t.Cleanup(hub.Close)
	srv := newServer(t, hub)

	daycareConn := dial(t, srv, "id=d1&role=daycare")
	parentConn := dial(t, srv, "id=p1&role=parent")
	otherConn := dial(t, srv, "id=p2&role=parent")

	require.Eventually(t, func() bool {
		return hub.IsOnline("daycare:d1") && hub.IsOnline("parent:p1") && hub.IsOnline("parent:p2")
	}, 2*time.Second, 10*time.Millisecond)

	n := NewNotifier(hub)
	b := &domain.Booking{ID: "b1", ParentID: "p1", DaycareID: "d1", Status: domain.BookingPending}

	n.NotifyBookingCreated(context.Background(), b)
	ev := readEvent(t, daycareConn)
	assert.Equal(t, EventBookingCreated, ev.Type)
	assert.Equal(t, "b1", ev.BookingID)

	b.Status = domain.BookingApproved
	n.NotifyBookingStatusChanged(context.Background(), b, domain.BookingPending)

	for _, conn := range []*websocket.Conn{parentConn, daycareConn} {
		ev := readEvent(t, conn)
		assert.Equal(t, EventBookingStatusChanged, ev.Type)
		assert.Equal(t, domain.BookingApproved, ev.Status)
		assert.Equal(t, domain.BookingPending, ev.PreviousStatus)
	}

	// the unrelated parent receives nothing
	require.NoError(t, otherConn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := otherConn.ReadMessage()
	assert.Error(t, err)
}

type stalledSender struct {
	release chan struct{}
	mu      sync.Mutex
	keys    []string
}

func (s *stalledSender) SendTo(key string, _ any) int {
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	return 1
}

func TestNotifier_DoesNotBlockOnStalledStream(t *testing.T) {
	stalled := &stalledSender{release: make(chan struct{})}
	n := &Notifier{hub: stalled, now: time.Now}
	b := &domain.Booking{ID: "b1", ParentID: "p1", DaycareID: "d1", Status: domain.BookingApproved}

	returned := make(chan struct{})
	go func() {
		n.NotifyBookingStatusChanged(context.Background(), b, domain.BookingPending)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("notify blocked on a stalled stream")
	}

	close(stalled.release)
	n.Wait()

	stalled.mu.Lock()
	defer stalled.mu.Unlock()
	assert.Equal(t, []string{"parent:p1", "daycare:d1"}, stalled.keys)
}

func TestHub_UnregisterOnClose(t *testing.T) {
	hub := NewHub()
	srv := newServer(t, hub)

	conn := dial(t, srv, "id=d9&role=daycare")
	require.Eventually(t, func() bool { return hub.IsOnline("daycare:d9") }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()

	assert.Eventually(t, func() bool { return !hub.IsOnline("daycare:d9") }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, hub.SendTo("daycare:d9", Event{}))
}

func TestAccountKey(t *testing.T) {
	assert.Equal(t, "parent:42", AccountKey(domain.RoleParent, "42"))
	assert.NotEqual(t, AccountKey(domain.RoleParent, "42"), AccountKey(domain.RoleDaycare, "42"))
}
