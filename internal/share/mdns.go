package share

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_artboard._tcp"

// Advertise registers the mirror on the local network so viewers started
// with -join auto can find it. Close the returned server on shutdown.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,
		serviceType,
		"",
		"",
		port,
		[]net.IP{firstIPv4()},
		[]string{"path=" + BoardPath},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[SHARE] Advertising %s on port %d", serviceType, port)
	return server, nil
}

// Browse returns the mirror URLs answering within timeout.
func Browse(timeout time.Duration) ([]string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan []string)
	go func() {
		var urls []string
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			urls = append(urls, URL(e.AddrV4.String(), e.Port))
		}
		done <- urls
	}()

	err := mdns.Query(&mdns.QueryParam{
		Service:     serviceType,
		Domain:      "local",
		Timeout:     timeout,
		Entries:     entries,
		DisableIPv6: true,
	})
	close(entries)
	urls := <-done
	if err != nil {
		return nil, fmt.Errorf("mDNS query: %w", err)
	}
	return urls, nil
}
