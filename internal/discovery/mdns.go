package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/maskedit/internal/logging"
)

const (
	// ServiceType is the mDNS service type maskedit servers advertise
	ServiceType = "_maskedit._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for server discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPath is the WebSocket path assumed when the TXT record has none
	DefaultPath = "/ws"
)

// Scanner handles mDNS server discovery
type Scanner struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan collects every server that answers before the timeout or ctx ends.
func (s *Scanner) Scan(ctx context.Context) ([]*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu      sync.Mutex
		servers []*Server
		seen    = make(map[string]bool)
	)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-entries:
				if !ok {
					return
				}
				srv := parseServiceEntry(entry)
				if srv == nil {
					continue
				}
				mu.Lock()
				if !seen[srv.Instance] {
					seen[srv.Instance] = true
					servers = append(servers, srv)
				}
				mu.Unlock()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	logging.Debug("mDNS scan finished", zap.Int("servers", len(servers)))
	return append([]*Server(nil), servers...), nil
}

// Find waits for the server with the given instance name.
func (s *Scanner) Find(ctx context.Context, instance string) (*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Server, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-entries:
				if !ok {
					return
				}
				if srv := parseServiceEntry(entry); srv != nil && srv.Instance == instance {
					found <- srv
					cancel()
					return
				}
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case srv := <-found:
		return srv, nil
	case <-ctx.Done():
		select {
		case srv := <-found:
			return srv, nil
		default:
		}
		return nil, fmt.Errorf("server %q not found within timeout", instance)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Server.
// Returns nil if the entry has no instance name or no address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Server {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" || entry.Port == 0 {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		k, v, _ := strings.Cut(txt, "=")
		metadata[k] = v
	}

	path := metadata["path"]
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return &Server{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Path:         path,
		Version:      metadata["version"],
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// TXTRecords builds the TXT records advertised for a server.
func TXTRecords(version, path string, profiles []string) []string {
	txt := []string{"version=" + version, "path=" + path}
	if len(profiles) > 0 {
		txt = append(txt, "profiles="+strings.Join(profiles, ","))
	}
	return txt
}

// Advertise registers the service and keeps it announced until ctx is done.
func Advertise(ctx context.Context, instance string, port int, txt []string) error {
	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("Advertising via mDNS",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port))

	<-ctx.Done()
	server.Shutdown()
	logging.Debug("mDNS advertisement stopped", zap.String("instance", instance))
	return nil
}

// Scan is a convenience function to scan with a custom timeout
func Scan(ctx context.Context, timeout time.Duration) ([]*Server, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.Scan(ctx)
}
