package client

import (
	"sync/atomic"
)

// Metrics 客户端运行指标（调试面板展示，也便于排查联机问题）
type Metrics struct {
	Ticks            int64 // 已推进的帧数
	PacketsIn        int64 // 收到的报文数
	PacketsOut       int64 // 发出的报文数
	BytesIn          int64 // 收到的字节数
	BytesOut         int64 // 发出的字节数
	MalformedPackets int64 // 字段解码失败被丢弃的报文数
	UnknownPackets   int64 // 判别字节未识别的报文数
	SendDropped      int64 // 发送队列满被丢弃的报文数
	RecvDropped      int64 // 接收队列满被丢弃的报文数
	DialAttempts     int64 // 发起的连接尝试次数
}

func (m *Metrics) IncTick() { atomic.AddInt64(&m.Ticks, 1) }
func (m *Metrics) AddPacketIn(n int) {
	atomic.AddInt64(&m.PacketsIn, 1)
	atomic.AddInt64(&m.BytesIn, int64(n))
}
func (m *Metrics) AddPacketOut(n int) {
	atomic.AddInt64(&m.PacketsOut, 1)
	atomic.AddInt64(&m.BytesOut, int64(n))
}
func (m *Metrics) IncMalformedPacket() { atomic.AddInt64(&m.MalformedPackets, 1) }
func (m *Metrics) IncUnknownPacket()   { atomic.AddInt64(&m.UnknownPackets, 1) }
func (m *Metrics) IncSendDropped()     { atomic.AddInt64(&m.SendDropped, 1) }
func (m *Metrics) IncRecvDropped()     { atomic.AddInt64(&m.RecvDropped, 1) }
func (m *Metrics) IncDialAttempt()     { atomic.AddInt64(&m.DialAttempts, 1) }

// Snapshot 返回只读副本，调试面板渲染用
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"ticks":     atomic.LoadInt64(&m.Ticks),
		"pkts_in":   atomic.LoadInt64(&m.PacketsIn),
		"pkts_out":  atomic.LoadInt64(&m.PacketsOut),
		"bytes_in":  atomic.LoadInt64(&m.BytesIn),
		"bytes_out": atomic.LoadInt64(&m.BytesOut),
		"malformed": atomic.LoadInt64(&m.MalformedPackets),
		"unknown":   atomic.LoadInt64(&m.UnknownPackets),
		"send_drop": atomic.LoadInt64(&m.SendDropped),
		"recv_drop": atomic.LoadInt64(&m.RecvDropped),
		"dials":     atomic.LoadInt64(&m.DialAttempts),
	}
}
