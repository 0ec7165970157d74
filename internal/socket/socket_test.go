package socket_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyapp/hoygo/internal/hoytest"
	"github.com/hoyapp/hoygo/internal/models"
	"github.com/hoyapp/hoygo/internal/socket"
)

func newSocket(srv *hoytest.Server) *socket.Service {
	return socket.New(socket.Options{
		URL:        srv.WSURL(),
		Token:      func() string { return srv.Tokens().AccessToken },
		UserID:     func() string { return "user-1" },
		BackoffMin: 20 * time.Millisecond,
		BackoffMax: 100 * time.Millisecond,
	})
}

func waitForClients(t *testing.T, srv *hoytest.Server, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return srv.SocketClientCount() == n
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConnectAndJoin(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	sock := newSocket(srv)
	require.NoError(t, sock.Connect(context.Background()))
	defer sock.Close()

	assert.Equal(t, socket.Connected, sock.State())
	waitForClients(t, srv, 1)

	select {
	case ev := <-srv.EmittedEvents():
		assert.Equal(t, models.EventJoin, ev.Event)
		assert.JSONEq(t, `{"userId":"user-1"}`, string(ev.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("join announcement never arrived")
	}
}

func TestConnectRejectsBadToken(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	sock := socket.New(socket.Options{
		URL:   srv.WSURL(),
		Token: func() string { return "bogus" },
	})

	err := sock.Connect(context.Background())
	require.Error(t, err)
	assert.Equal(t, socket.Disconnected, sock.State())
}

func TestReceiveEvent(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	sock := newSocket(srv)
	require.NoError(t, sock.Connect(context.Background()))
	defer sock.Close()

	waitForClients(t, srv, 1)

	received := make(chan json.RawMessage, 1)
	sock.On(models.EventReceiveMessage, func(payload json.RawMessage) {
		received <- payload
	})

	msg := models.Message{ID: "msg-9", ConversationID: "conv-1", Body: "ping"}
	require.NoError(t, srv.Push(models.EventReceiveMessage, msg))

	select {
	case payload := <-received:
		var got models.Message
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, "msg-9", got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("pushed event never dispatched")
	}
}

func TestOffRemovesHandlers(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	sock := newSocket(srv)
	require.NoError(t, sock.Connect(context.Background()))
	defer sock.Close()

	waitForClients(t, srv, 1)

	received := make(chan json.RawMessage, 1)
	sock.On(models.EventTyping, func(payload json.RawMessage) {
		received <- payload
	})
	sock.Off(models.EventTyping)

	require.NoError(t, srv.Push(models.EventTyping, models.TypingEvent{ConversationID: "conv-1"}))

	select {
	case <-received:
		t.Fatal("handler ran after Off")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestEmit(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	sock := newSocket(srv)

	err := sock.Emit(models.EventTyping, models.TypingRequest{ConversationID: "conv-1"})
	assert.ErrorIs(t, err, socket.ErrNotConnected)

	require.NoError(t, sock.Connect(context.Background()))
	defer sock.Close()
	waitForClients(t, srv, 1)

	// Skip past the join announcement.
	<-srv.EmittedEvents()

	require.NoError(t, sock.Emit(models.EventTyping, models.TypingRequest{ConversationID: "conv-1", Typing: true}))

	select {
	case ev := <-srv.EmittedEvents():
		assert.Equal(t, models.EventTyping, ev.Event)
	case <-time.After(2 * time.Second):
		t.Fatal("emitted event never reached the server")
	}
}

func TestReconnectAfterDrop(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	states := make(chan socket.State, 16)
	sock := socket.New(socket.Options{
		URL:           srv.WSURL(),
		Token:         func() string { return srv.Tokens().AccessToken },
		UserID:        func() string { return "user-1" },
		BackoffMin:    20 * time.Millisecond,
		BackoffMax:    100 * time.Millisecond,
		OnStateChange: func(st socket.State) { states <- st },
	})

	require.NoError(t, sock.Connect(context.Background()))
	defer sock.Close()
	waitForClients(t, srv, 1)

	srv.DropSocketClients()

	require.Eventually(t, func() bool {
		return srv.SocketClientCount() == 1 && sock.State() == socket.Connected
	}, 5*time.Second, 20*time.Millisecond)

	var sawDisconnected bool
	for len(states) > 0 {
		if <-states == socket.Disconnected {
			sawDisconnected = true
		}
	}
	assert.True(t, sawDisconnected, "drop must surface as a disconnect")
}

func TestCloseDuringReconnectPreventsRedial(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	sock := newSocket(srv)
	require.NoError(t, sock.Connect(context.Background()))
	waitForClients(t, srv, 1)

	// Drop the connection so the reconnect loop starts its backoff
	// sleep, then close while no connection exists.
	srv.DropSocketClients()
	require.Eventually(t, func() bool {
		return sock.State() == socket.Disconnected
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, sock.Close())

	// Outlive several backoff periods; the loop must not dial again.
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, socket.Disconnected, sock.State())
	assert.Equal(t, 0, srv.SocketClientCount())
}

func TestCloseStopsReconnect(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	sock := newSocket(srv)
	require.NoError(t, sock.Connect(context.Background()))
	waitForClients(t, srv, 1)

	require.NoError(t, sock.Close())
	assert.Equal(t, socket.Disconnected, sock.State())

	waitForClients(t, srv, 0)

	// Give a would-be reconnect loop time to misbehave.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 0, srv.SocketClientCount())
	assert.Equal(t, socket.Disconnected, sock.State())
}
