package extractor

import (
	"bufio"
	"fmt"
	"io"
	"regexp"

	"netgrapher/internal/domain"
)

var (
	// destination  gateway  genmask  flags ...
	linuxRouteRow = regexp.MustCompile(`^([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+[A-Z!]+`)
	// destination  netmask  gateway  interface  metric
	windowsRouteRow = regexp.MustCompile(`^\s*([\d.]+)\s+([\d.]+)\s+([\d.]+|On-link)\s+([\d.]+)\s+\d+`)
)

// Routing tables describe reachability, not adjacency: the hosts they
// reveal are the gateways, and those never get an edge. Destination
// columns name networks rather than hosts and are ignored.

// LinuxRoute parses `route -n` / `netstat -rn` output captured on Linux
type LinuxRoute struct{}

func (*LinuxRoute) Descriptor() domain.Descriptor {
	return domain.Descriptor{Type: domain.DumpTypeRoute, OS: domain.DumpOSLinux}
}

func (*LinuxRoute) Extract(r io.Reader, centreIP string) (*Result, error) {
	if centreIP == "" {
		return nil, &domain.ValidationError{
			Reason: "routing tables do not contain the IP of the centre node; supply it with -i",
		}
	}

	var discovered []domain.Node
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		// 0.0.0.0  10.137.2.1  0.0.0.0  UG  0 0 0 eth0
		m := linuxRouteRow.FindStringSubmatch(scanner.Text())
		if len(m) < 4 {
			continue
		}
		if gw := m[2]; gw != "0.0.0.0" {
			discovered = append(discovered, domain.NewNode(gw))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	return &Result{Centre: domain.NewNode(centreIP), Discovered: discovered}, nil
}

// WindowsRoute parses the IPv4 table of `route print` output captured on
// Windows. On-link rows have no gateway host and are skipped.
type WindowsRoute struct{}

func (*WindowsRoute) Descriptor() domain.Descriptor {
	return domain.Descriptor{Type: domain.DumpTypeRoute, OS: domain.DumpOSWindows}
}

func (*WindowsRoute) Extract(r io.Reader, centreIP string) (*Result, error) {
	if centreIP == "" {
		return nil, &domain.ValidationError{
			Reason: "routing tables do not contain the IP of the centre node; supply it with -i",
		}
	}

	var discovered []domain.Node
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		//   0.0.0.0          0.0.0.0       10.0.0.1       10.0.0.12    25
		m := windowsRouteRow.FindStringSubmatch(scanner.Text())
		if len(m) < 5 {
			continue
		}
		if gw := m[3]; gw != "On-link" && gw != "0.0.0.0" {
			discovered = append(discovered, domain.NewNode(gw))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	return &Result{Centre: domain.NewNode(centreIP), Discovered: discovered}, nil
}
