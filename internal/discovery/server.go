package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Server represents a maskedit server found on the network
type Server struct {
	// Instance is the advertised instance name (e.g., "maskedit on lab-pc")
	Instance string

	// Hostname is the mDNS hostname (e.g., "lab-pc.local.")
	Hostname string

	// IP is the address to connect to, IPv4 preferred
	IP string

	// Port is the HTTP port of the server
	Port int

	// Path is the WebSocket endpoint path (TXT "path", default "/ws")
	Path string

	// Version is the server version (TXT "version")
	Version string

	// Metadata contains every TXT record
	Metadata map[string]string

	// DiscoveredAt is when the server was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the server
func (s *Server) String() string {
	return fmt.Sprintf("%s (%s) at %s", s.Instance, s.Hostname, net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
}

// BaseURL returns the HTTP base URL for the server
func (s *Server) BaseURL() string {
	return "http://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// WebSocketURL returns the URL of the server's session endpoint
func (s *Server) WebSocketURL() string {
	return "ws://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port)) + s.Path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Server) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
