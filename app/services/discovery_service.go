package services

import (
	"fmt"
	"net"
	"sync"

	"SalesDashboard/app/config"

	"github.com/grandcat/zeroconf"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// DiscoveryServiceType is the mDNS service type the dashboard announces
const DiscoveryServiceType = "_salesdash._tcp"

// DiscoveryService announces the dashboard on the local network via mDNS/Zeroconf
type DiscoveryService struct {
	cfg    config.DiscoveryConfig
	port   int
	log    *zap.Logger
	mu     sync.Mutex
	server *zeroconf.Server
}

// NewDiscoveryService creates a discovery service for the HTTP port
func NewDiscoveryService(cfg config.DiscoveryConfig, port int, log *zap.Logger) *DiscoveryService {
	return &DiscoveryService{cfg: cfg, port: port, log: log.Named("mdns")}
}

// Start registers the service. It is a no-op when discovery is disabled.
func (s *DiscoveryService) Start() error {
	if !s.cfg.Enabled {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return nil
	}

	server, err := zeroconf.Register(
		s.cfg.ServiceName,    // Service instance name
		DiscoveryServiceType, // Service type
		"local.",             // Domain
		s.port,
		[]string{"version=1.0", "path=/api/dashboard"},
		nil, // All interfaces
	)
	if err != nil {
		return fmt.Errorf("mDNS: failed to register service: %w", err)
	}

	s.server = server
	s.log.Info("Service announced", zap.String("type", DiscoveryServiceType), zap.Int("port", s.port))
	return nil
}

// Stop withdraws the announcement
func (s *DiscoveryService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		s.server.Shutdown()
		s.server = nil
		s.log.Info("Service announcement stopped")
	}
}

// DashboardURLs returns one dashboard URL per local IPv4 address
func (s *DiscoveryService) DashboardURLs() []string {
	var urls []string
	for _, ip := range getLocalIPAddresses() {
		urls = append(urls, fmt.Sprintf("http://%s:%d/", ip, s.port))
	}
	return urls
}

// DashboardURL returns the first LAN URL, falling back to localhost
func (s *DiscoveryService) DashboardURL() string {
	if urls := s.DashboardURLs(); len(urls) > 0 {
		return urls[0]
	}
	return fmt.Sprintf("http://localhost:%d/", s.port)
}

// QRCodePNG renders data as a PNG QR code of size pixels
func QRCodePNG(data string, size int) ([]byte, error) {
	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	qr.DisableBorder = false
	return qr.PNG(size)
}

// getLocalIPAddresses returns all non-loopback IPv4 addresses of interfaces that are up
func getLocalIPAddresses() []string {
	var ips []string

	interfaces, err := net.Interfaces()
	if err != nil {
		return ips
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip = ip.To4(); ip != nil {
				ips = append(ips, ip.String())
			}
		}
	}
	return ips
}
