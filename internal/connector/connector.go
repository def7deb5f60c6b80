package connector

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalidArgument is returned when a connector is built from invalid values.
var ErrInvalidArgument = errors.New("invalid argument")

// Connector describes where a server listens.
// It is immutable: hash and string form are computed once in New.
type Connector struct {
	secure  bool
	scheme  string
	address string
	port    int

	hash uint64
	str  string
}

// New validates its arguments and builds a Connector.
func New(secure bool, scheme, address string, port int) (Connector, error) {
	if scheme == "" {
		return Connector{}, fmt.Errorf("the scheme can not be empty: %w", ErrInvalidArgument)
	}
	if address == "" {
		return Connector{}, fmt.Errorf("the address can not be empty: %w", ErrInvalidArgument)
	}
	if port <= 0 {
		return Connector{}, fmt.Errorf("the port must be > 0, got %d: %w", port, ErrInvalidArgument)
	}

	c := Connector{
		secure:  secure,
		scheme:  scheme,
		address: address,
		port:    port,
	}
	c.hash = c.computeHash()
	c.str = c.computeString()
	return c, nil
}

// Secure reports whether this is a secure (TLS) connector.
func (c Connector) Secure() bool { return c.secure }

// Scheme returns the scheme, e.g. "http".
func (c Connector) Scheme() string { return c.scheme }

// Address returns the address the connector binds to.
func (c Connector) Address() string { return c.address }

// Port returns the system port.
func (c Connector) Port() int { return c.port }

// HostPort returns "address:port", suitable for net.Listen.
func (c Connector) HostPort() string {
	return net.JoinHostPort(c.address, strconv.Itoa(c.port))
}

// Equal reports whether both connectors carry the same four values.
func (c Connector) Equal(other Connector) bool {
	return c.secure == other.secure &&
		c.port == other.port &&
		c.address == other.address &&
		c.scheme == other.scheme
}

// Hash returns a structural hash over (secure, port, address, scheme).
func (c Connector) Hash() uint64 { return c.hash }

// String returns "scheme://address:port (secure|not secure)".
func (c Connector) String() string { return c.str }

func (c Connector) computeHash() uint64 {
	d := xxhash.New()
	var buf [9]byte
	if c.secure {
		buf[0] = 1
	}
	binary.LittleEndian.PutUint64(buf[1:], uint64(c.port))
	_, _ = d.Write(buf[:])
	// length prefixes keep ("ab","c") and ("a","bc") apart
	_, _ = d.WriteString(strconv.Itoa(len(c.address)))
	_, _ = d.WriteString(c.address)
	_, _ = d.WriteString(strconv.Itoa(len(c.scheme)))
	_, _ = d.WriteString(c.scheme)
	return d.Sum64()
}

func (c Connector) computeString() string {
	state := "not secure"
	if c.secure {
		state = "secure"
	}
	return c.scheme + "://" + c.address + ":" + strconv.Itoa(c.port) + " (" + state + ")"
}
