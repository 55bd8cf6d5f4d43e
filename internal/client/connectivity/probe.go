package connectivity

import (
	"context"
	"net"
	"time"
)

// Probe answers "is the network reachable right now". It must not block for
// longer than the context allows.
type Probe interface {
	Reachable(ctx context.Context) bool
}

type ProbeFunc func(ctx context.Context) bool

func (f ProbeFunc) Reachable(ctx context.Context) bool { return f(ctx) }

// InterfaceProbe reports reachable when at least one network interface is up,
// is not a loopback and has an address assigned. This is the operating
// system's view of connectivity, not a round trip to the API.
type InterfaceProbe struct {
	list func() ([]net.Interface, error)
}

func NewInterfaceProbe() *InterfaceProbe {
	return &InterfaceProbe{list: net.Interfaces}
}

func (p *InterfaceProbe) Reachable(ctx context.Context) bool {
	ifaces, err := p.list()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}

// DialProbe reports reachable when a TCP connection to Addr succeeds.
type DialProbe struct {
	Addr    string
	Timeout time.Duration
	dialer  func(ctx context.Context, network, addr string) (net.Conn, error)
}

func NewDialProbe(addr string, timeout time.Duration) *DialProbe {
	d := &net.Dialer{}
	return &DialProbe{Addr: addr, Timeout: timeout, dialer: d.DialContext}
}

func (p *DialProbe) Reachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	conn, err := p.dialer(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// All is reachable only when every probe is.
type All []Probe

func (a All) Reachable(ctx context.Context) bool {
	for _, p := range a {
		if !p.Reachable(ctx) {
			return false
		}
	}
	return true
}
