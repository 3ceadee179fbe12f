// Package osc listens for OSC parameter updates on UDP and queues them for
// the frame scheduler. Two addressing schemes are accepted under the /u/
// namespace: /u/<name> targets a parameter the preprocessor discovered, and
// /u/<n> writes slot n directly. Everything else is silently dropped.
package osc

import (
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/wgslbox/common"
	"github.com/charmbracelet/log"
	goosc "github.com/hypebeast/go-osc/osc"
)

// Update is one queued parameter change.
type Update struct {
	// Name is the parameter name or decimal slot string from the address.
	Name string

	// Value is the 32-bit float payload.
	Value float32
}

// addressPrefix is the namespace every accepted message lives under.
const addressPrefix = "/u/"

// ParseAddress splits an OSC address into the parameter name under /u/.
//
// Parameters:
//   - addr: the full OSC address (e.g. "/u/bass")
//
// Returns:
//   - string: the parameter name or decimal slot string
//   - bool: false when the address is outside the /u/ namespace
func ParseAddress(addr string) (string, bool) {
	name, ok := strings.CutPrefix(addr, addressPrefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// ResolveSlot maps a parameter name to an osc array slot: a decimal name in
// [0, 64) addresses its slot directly, otherwise the name is looked up in
// the manifest's discovered parameters.
//
// Parameters:
//   - name: the parameter name from ParseAddress
//   - params: the manifest's osc parameter list in slot order
//
// Returns:
//   - int: the slot index
//   - bool: false when the name matches nothing (the update is dropped)
func ResolveSlot(name string, params []string) (int, bool) {
	if n, err := strconv.Atoi(name); err == nil {
		if n >= 0 && n < common.OscSlotCount {
			return n, true
		}
		return 0, false
	}
	for i, p := range params {
		if p == name {
			if i > common.OscSlotCount-1 {
				return common.OscSlotCount - 1, true
			}
			return i, true
		}
	}
	return 0, false
}

// Listener receives OSC packets on a background goroutine and hands the
// queued updates to the scheduler once per frame.
type Listener interface {
	// Start begins listening. Returns immediately; receive errors after a
	// successful bind are logged, not fatal.
	//
	// Returns:
	//   - error: an error if the UDP socket cannot be bound
	Start() error

	// Drain removes and returns all queued updates in arrival order.
	//
	// Returns:
	//   - []Update: the pending updates, possibly empty
	Drain() []Update

	// Enqueue inserts an update locally, bypassing the network. Used by the
	// runtime's SetOsc control.
	//
	// Parameters:
	//   - addr: the full OSC address
	//   - value: the float payload
	Enqueue(addr string, value float32)

	// Close stops the listener.
	//
	// Returns:
	//   - error: an error if the socket cannot be closed
	Close() error
}

// listener is the go-osc backed implementation; it doubles as the server's
// packet dispatcher.
type listener struct {
	addr string

	mu      sync.Mutex
	pending []Update

	conn net.PacketConn
}

var _ Listener = &listener{}
var _ goosc.Dispatcher = &listener{}

// NewListener creates a Listener bound to the given UDP address.
//
// Parameters:
//   - addr: the listen address (e.g. "0.0.0.0:8000")
//
// Returns:
//   - Listener: the listener, not yet started
func NewListener(addr string) Listener {
	return &listener{addr: addr}
}

func (l *listener) Start() error {
	conn, err := net.ListenPacket("udp", l.addr)
	if err != nil {
		return err
	}
	l.conn = conn
	server := &goosc.Server{
		Addr:       l.addr,
		Dispatcher: l,
	}
	go func() {
		if err := server.Serve(conn); err != nil {
			log.Warn("osc listener stopped", "addr", l.addr, "err", err)
		}
	}()
	return nil
}

// Dispatch implements goosc.Dispatcher, unwrapping bundles and queueing the
// first numeric (float32, float64 or int32) argument of each /u/ message as
// a float32.
func (l *listener) Dispatch(packet goosc.Packet) {
	switch p := packet.(type) {
	case *goosc.Message:
		l.dispatchMessage(p)
	case *goosc.Bundle:
		for _, msg := range p.Messages {
			l.dispatchMessage(msg)
		}
		for _, nested := range p.Bundles {
			l.Dispatch(nested)
		}
	}
}

func (l *listener) dispatchMessage(msg *goosc.Message) {
	name, ok := ParseAddress(msg.Address)
	if !ok {
		return
	}
	for _, arg := range msg.Arguments {
		switch v := arg.(type) {
		case float32:
			l.push(Update{Name: name, Value: v})
			return
		case float64:
			l.push(Update{Name: name, Value: float32(v)})
			return
		case int32:
			l.push(Update{Name: name, Value: float32(v)})
			return
		}
	}
}

func (l *listener) push(u Update) {
	l.mu.Lock()
	l.pending = append(l.pending, u)
	l.mu.Unlock()
}

func (l *listener) Drain() []Update {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.pending) == 0 {
		return nil
	}
	out := l.pending
	l.pending = nil
	return out
}

func (l *listener) Enqueue(addr string, value float32) {
	if name, ok := ParseAddress(addr); ok {
		l.push(Update{Name: name, Value: value})
	}
}

func (l *listener) Close() error {
	if l.conn != nil {
		return l.conn.Close()
	}
	return nil
}
