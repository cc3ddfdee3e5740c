package client

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// newEchoServer 起一个回显服务器，收到什么原样发回，用于验证收发闭环
func newEchoServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			mt, msg, err := ws.ReadMessage()
			if err != nil {
				return
			}
			if err := ws.WriteMessage(mt, msg); err != nil {
				return
			}
		}
	}))
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitForState(t *testing.T, c *Conn, want ConnState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("conn state = %v, want %v", c.State(), want)
}

func TestConnLifecycle(t *testing.T) {
	srv, url := newEchoServer(t)
	defer srv.Close()

	c := NewConn(url, &Metrics{})
	defer c.Close()
	if c.State() != StateDisconnected {
		t.Fatalf("initial state = %v, want disconnected", c.State())
	}
	c.EnsureConnected()
	waitForState(t, c, StateConnected)

	pkt := EncodePacket(PlayerInputMsg{Jump: true})
	if !c.Send(pkt) {
		t.Fatalf("send on a connected conn failed")
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		if msg, ok := c.TryRecv(); ok {
			if !bytes.Equal(msg, pkt) {
				t.Fatalf("echo = %v, want %v", msg, pkt)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("echo never arrived")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestConnDialFailureStaysDisconnected(t *testing.T) {
	m := &Metrics{}
	c := NewConn("ws://127.0.0.1:1/ws", m)
	defer c.Close()
	c.EnsureConnected()
	if got := m.Snapshot()["dials"]; got != 1 {
		t.Fatalf("dial attempts = %d, want 1", got)
	}
	waitForState(t, c, StateDisconnected)
	if c.Send([]byte{1}) {
		t.Fatalf("send while disconnected succeeded")
	}
	if _, ok := c.TryRecv(); ok {
		t.Fatalf("recv while disconnected returned a message")
	}
}

func TestConnRedialBackoff(t *testing.T) {
	m := &Metrics{}
	c := NewConn("ws://127.0.0.1:1/ws", m)
	defer c.Close()
	c.EnsureConnected()
	waitForState(t, c, StateDisconnected)
	// 冷却期内的补连请求应被忽略
	c.EnsureConnected()
	if got := m.Snapshot()["dials"]; got != 1 {
		t.Fatalf("dial attempts = %d, want 1 (backoff not honored)", got)
	}
}

func TestServerCloseFlipsToDisconnected(t *testing.T) {
	srv, url := newEchoServer(t)
	defer srv.Close()

	c := NewConn(url, &Metrics{})
	defer c.Close()
	c.EnsureConnected()
	waitForState(t, c, StateConnected)

	srv.CloseClientConnections()
	waitForState(t, c, StateDisconnected)
}

// newFlakyThenEchoServer 起一个首连即断的服务器：第一条连接握手后立刻被
// 服务端关闭，之后的连接正常回显。返回的通道在首连关闭后解除阻塞。
func newFlakyThenEchoServer(t *testing.T) (*httptest.Server, string, chan struct{}) {
	t.Helper()
	var accepts atomic.Int64
	firstClosed := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		if accepts.Add(1) == 1 {
			ws.Close()
			close(firstClosed)
			return
		}
		for {
			mt, msg, err := ws.ReadMessage()
			if err != nil {
				return
			}
			if err := ws.WriteMessage(mt, msg); err != nil {
				return
			}
		}
	}))
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http"), firstClosed
}

// TestReconnectAfterEarlyDropStaysConnected 首连早夭后重连，第一代迟亡的
// 旧泵不得把新连接标回断开态，连接死亡也必须武装重拨冷却。
func TestReconnectAfterEarlyDropStaysConnected(t *testing.T) {
	srv, url, firstClosed := newFlakyThenEchoServer(t)
	defer srv.Close()

	m := &Metrics{}
	c := NewConn(url, m)
	defer c.Close()

	c.EnsureConnected()
	select {
	case <-firstClosed:
	case <-time.After(2 * time.Second):
		t.Fatalf("server never dropped the first connection")
	}
	waitForState(t, c, StateDisconnected)

	// 泵退场也要武装冷却，紧随其后的补连请求应被忽略
	c.EnsureConnected()
	if got := m.Snapshot()["dials"]; got != 1 {
		t.Fatalf("dial attempts = %d, want 1 (no cooldown armed after pump death)", got)
	}

	// 按帧节奏持续补连，直到第二条连接建立
	deadline := time.Now().Add(3 * time.Second)
	for c.State() != StateConnected {
		if time.Now().After(deadline) {
			t.Fatalf("second connection never established")
		}
		c.EnsureConnected()
		time.Sleep(5 * time.Millisecond)
	}
	if got := m.Snapshot()["dials"]; got != 2 {
		t.Fatalf("dial attempts = %d, want 2", got)
	}

	// 持续喂包：第一代残留的写泵最多偷走一条就退场，不得改动共享状态
	pkt := EncodePacket(PlayerInputMsg{Jump: true})
	for i := 0; i < 20; i++ {
		c.Send(pkt)
		time.Sleep(10 * time.Millisecond)
		if c.State() == StateDisconnected {
			t.Fatalf("live session flipped to disconnected after %d sends", i+1)
		}
	}
	deadline = time.Now().Add(2 * time.Second)
	for {
		if msg, ok := c.TryRecv(); ok {
			if bytes.Equal(msg, pkt) {
				break
			}
			continue
		}
		if time.Now().After(deadline) {
			t.Fatalf("echo never arrived on the second connection")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if c.State() != StateConnected {
		t.Fatalf("conn state = %v, want connected", c.State())
	}
}

// TestLargestMapMessageWithinReadLimit 满容量地图整包编码后必须落在读上限内，
// 否则顶格地图会在读端杀掉连接而不是走正常的丢弃路径
func TestLargestMapMessageWithinReadLimit(t *testing.T) {
	msg := MapDataMsg{Width: MaxMapTiles / 64, Height: 64, Tiles: make([]int32, MaxMapTiles)}
	b := EncodePacket(msg)
	if len(b) > maxMsgSize {
		t.Fatalf("largest map message = %d bytes, read limit = %d", len(b), maxMsgSize)
	}
	if _, err := DecodePacket(b); err != nil {
		t.Fatalf("decode cap-sized map: %v", err)
	}
}
