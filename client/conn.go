package client

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// ConnState 连接状态机：断开 → 连接中 → 已连接 → 断开
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

const (
	dialTimeout = time.Second // 单次握手的时间上限
	redialDelay = time.Second // 两次握手尝试的最短间隔
	writeWait   = 5 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second

	// 读上限取协议中最大的报文：整包地图 = 判别字节 + 宽高 + 全部 tile
	maxMsgSize = 9 + 4*MaxMapTiles

	inboundSize  = 256
	outboundSize = 64
)

// Conn 连接管理：拨号在后台进行，读写各一个泵协程，Tick 侧的收发全部非阻塞。
// 活性探测靠 ping/pong 加读超时：对端失联会在超时内让读泵退场。
type Conn struct {
	url     string
	metrics *Metrics

	state    atomic.Int32
	nextDial atomic.Int64                   // unix 纳秒，下次允许拨号的时刻
	ws       atomic.Pointer[websocket.Conn] // 当前这一代的连接；泵退场时由所属代清空

	inbound  chan []byte
	outbound chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func NewConn(url string, m *Metrics) *Conn {
	c := &Conn{
		url:      url,
		metrics:  m,
		inbound:  make(chan []byte, inboundSize),
		outbound: make(chan []byte, outboundSize),
		done:     make(chan struct{}),
	}
	c.state.Store(int32(StateDisconnected))
	return c
}

// State 当前连接状态
func (c *Conn) State() ConnState {
	return ConnState(c.state.Load())
}

// EnsureConnected 断开时发起一次后台拨号；已在连接中或已连接则直接返回。
// 拨号不会阻塞 Tick；失败回到断开态，冷却一段时间后允许重试。
func (c *Conn) EnsureConnected() {
	if time.Now().UnixNano() < c.nextDial.Load() {
		return
	}
	if !c.state.CompareAndSwap(int32(StateDisconnected), int32(StateConnecting)) {
		return
	}
	c.metrics.IncDialAttempt()
	go c.dial()
}

func (c *Conn) dial() {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	ws, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		c.nextDial.Store(time.Now().Add(redialDelay).UnixNano())
		c.state.Store(int32(StateDisconnected))
		Log.Debugf("dial %s: %v", c.url, err)
		return
	}
	select {
	case <-c.done:
		// 拨号期间整个连接已被关闭
		_ = ws.Close()
		c.state.Store(int32(StateDisconnected))
		return
	default:
	}
	c.ws.Store(ws)
	c.state.Store(int32(StateConnected))
	Log.Infof("connected to %s", c.url)
	go c.readPump(ws)
	go c.writePump(ws)
}

// Send 非阻塞入队；未连接或队列已满返回 false。
// 被丢弃的是一帧按键快照，下一帧会重新全量发送，无需重试。
func (c *Conn) Send(b []byte) bool {
	if c.State() != StateConnected {
		return false
	}
	select {
	case c.outbound <- b:
		return true
	default:
		c.metrics.IncSendDropped()
		return false
	}
}

// TryRecv 非阻塞收取一条完整入站消息
func (c *Conn) TryRecv() ([]byte, bool) {
	select {
	case msg := <-c.inbound:
		return msg, true
	default:
		return nil, false
	}
}

// Close 主动关闭（退出时调用）；幂等
func (c *Conn) Close() {
	c.closeOnce.Do(func() { close(c.done) })
	if ws := c.ws.Load(); ws != nil {
		_ = ws.Close()
	}
	c.state.Store(int32(StateDisconnected))
}

// readPump 读协程：收到的完整消息压入 inbound 队列，满则丢弃保实时。
// 只操作启动它的那一条连接，不回读 c.ws。
func (c *Conn) readPump(ws *websocket.Conn) {
	defer c.retire(ws)
	ws.SetReadLimit(maxMsgSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			Log.Infof("read closed: %v", err)
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		c.metrics.AddPacketIn(len(msg))
		select {
		case c.inbound <- msg:
		default:
			c.metrics.IncRecvDropped()
		}
	}
}

// writePump 写协程：串行写出 outbound 队列并按周期发 ping
func (c *Conn) writePump(ws *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.retire(ws)
	for {
		select {
		case msg := <-c.outbound:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}
			c.metrics.AddPacketOut(len(msg))
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// retire 泵退场：关闭所退的连接。仅当它仍是当前连接时才置断开态并
// 武装重拨冷却；迟亡的旧泵只关自己的 socket，不得改动共享状态。
func (c *Conn) retire(ws *websocket.Conn) {
	_ = ws.Close()
	if c.ws.CompareAndSwap(ws, nil) {
		c.nextDial.Store(time.Now().Add(redialDelay).UnixNano())
		c.state.Store(int32(StateDisconnected))
	}
}
