package extractor

import (
	"bufio"
	"fmt"
	"io"
	"regexp"

	"netgrapher/internal/domain"
)

var (
	// only the first address field matters; the timing columns are noise
	linuxTracerouteHop = regexp.MustCompile(`^\s+\d+\s+([\w.]+)`)
	// tracert puts the address last, after three probe columns
	windowsTracertHop = regexp.MustCompile(`^\s*\d+(?:\s+(?:<?\d+ ms|\*)){3}\s+([\w.]+)\s*$`)
)

// LinuxTraceroute parses `traceroute` output captured on Linux. The dump
// never identifies the origin host, so the centre IP must be supplied;
// hops that timed out (`*`) are skipped.
type LinuxTraceroute struct{}

func (*LinuxTraceroute) Descriptor() domain.Descriptor {
	return domain.Descriptor{Type: domain.DumpTypeTraceroute, OS: domain.DumpOSLinux}
}

func (*LinuxTraceroute) Extract(r io.Reader, centreIP string) (*Result, error) {
	if centreIP == "" {
		return nil, &domain.ValidationError{
			Reason: "traceroute dumps do not contain the IP of the centre node; supply it with -i",
		}
	}

	var hops []domain.Node
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		//  1  10.137.4.1  0.550 ms  0.463 ms  0.383 ms
		if m := linuxTracerouteHop.FindStringSubmatch(scanner.Text()); len(m) == 2 {
			hops = append(hops, domain.NewNode(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	return &Result{Centre: domain.NewNode(centreIP), Discovered: hops}, nil
}

// WindowsTraceroute parses `tracert` output captured on Windows. Same
// contract as the linux variant: centre IP required, timed-out hops
// skipped.
type WindowsTraceroute struct{}

func (*WindowsTraceroute) Descriptor() domain.Descriptor {
	return domain.Descriptor{Type: domain.DumpTypeTraceroute, OS: domain.DumpOSWindows}
}

func (*WindowsTraceroute) Extract(r io.Reader, centreIP string) (*Result, error) {
	if centreIP == "" {
		return nil, &domain.ValidationError{
			Reason: "tracert dumps do not contain the IP of the centre node; supply it with -i",
		}
	}

	var hops []domain.Node
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		//   1    <1 ms    <1 ms    <1 ms  10.0.0.1
		if m := windowsTracertHop.FindStringSubmatch(scanner.Text()); len(m) == 2 {
			hops = append(hops, domain.NewNode(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	return &Result{Centre: domain.NewNode(centreIP), Discovered: hops}, nil
}
