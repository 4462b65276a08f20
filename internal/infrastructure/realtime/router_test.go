package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialPair returns a server-side Connection attached to the router and the
// matching client socket.
func dialPair(t *testing.T, router *Router, memberID string) (*Connection, *websocket.Conn) {
	t.Helper()

	accepted := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		accepted <- ws
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	serverWS := <-accepted
	conn := NewConnection(memberID, serverWS)
	router.Attach(conn)
	t.Cleanup(func() { router.Detach(conn) })
	return conn, client
}

func readMessage(t *testing.T, client *websocket.Conn) string {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

func expectNoMessage(t *testing.T, client *websocket.Conn) {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := client.ReadMessage()
	assert.Error(t, err)
}

func TestRouterBroadcastToJoinedMembers(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	alice, aliceClient := dialPair(t, router, "10")
	bob, bobClient := dialPair(t, router, "20")
	_, carolClient := dialPair(t, router, "30")

	router.Join("1", alice)
	router.Join("1", bob)

	delivered := router.Broadcast("1", []byte("hello room"), "")
	assert.Equal(t, 2, delivered)

	assert.Equal(t, "hello room", readMessage(t, aliceClient))
	assert.Equal(t, "hello room", readMessage(t, bobClient))
	expectNoMessage(t, carolClient)
}

func TestRouterBroadcastExcludesMember(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	alice, aliceClient := dialPair(t, router, "10")
	bob, bobClient := dialPair(t, router, "20")
	router.Join("1", alice)
	router.Join("1", bob)

	delivered := router.Broadcast("1", []byte("from alice"), "10")
	assert.Equal(t, 1, delivered)

	assert.Equal(t, "from alice", readMessage(t, bobClient))
	expectNoMessage(t, aliceClient)
}

func TestRouterLeaveStopsDelivery(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	alice, aliceClient := dialPair(t, router, "10")
	router.Join("1", alice)
	router.Leave("1", alice)

	delivered := router.Broadcast("1", []byte("anyone"), "")
	assert.Zero(t, delivered)
	expectNoMessage(t, aliceClient)
}

func TestRouterNotifyMember(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	_, aliceClient := dialPair(t, router, "10")

	ok := router.NotifyMember("10", []byte("direct"))
	assert.True(t, ok)
	assert.Equal(t, "direct", readMessage(t, aliceClient))

	assert.False(t, router.NotifyMember("99", []byte("nobody home")))
}

func TestRouterAttachReplacesPreviousSession(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	_, oldClient := dialPair(t, router, "10")
	_, newClient := dialPair(t, router, "10")

	ok := router.NotifyMember("10", []byte("second socket"))
	assert.True(t, ok)
	assert.Equal(t, "second socket", readMessage(t, newClient))

	// The replaced socket was closed by the router.
	require.NoError(t, oldClient.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := oldClient.ReadMessage()
	assert.Error(t, err)
}
