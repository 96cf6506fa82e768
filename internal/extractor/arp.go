package extractor

import (
	"bufio"
	"fmt"
	"io"
	"regexp"

	"netgrapher/internal/domain"
)

// ARP host lines carry both an IP and a hardware address; windows dumps
// use hyphen-separated MACs, the unix families use colons.
var (
	windowsARPInterface = regexp.MustCompile(`^Interface: (.+) ---`)
	windowsARPHost      = regexp.MustCompile(`^  ([\w.]+)\s+(([0-9a-f]{2}-){5}[0-9a-f]{2})`)
	linuxARPHost        = regexp.MustCompile(`^([\w.]+)\s+\w+\s+(([0-9a-f]{2}:){5}[0-9a-f]{2})`)
	openbsdARPHost      = regexp.MustCompile(`^([\w.]+)\s+(([0-9a-f]{2}:){5}[0-9a-f]{2})`)
)

// WindowsARP parses `arp -a` output captured on Windows. The interface
// marker line identifies the centre node; when the operator also supplied
// a centre IP the two must agree.
type WindowsARP struct{}

func (*WindowsARP) Descriptor() domain.Descriptor {
	return domain.Descriptor{Type: domain.DumpTypeARP, OS: domain.DumpOSWindows}
}

func (*WindowsARP) Extract(r io.Reader, centreIP string) (*Result, error) {
	var (
		localIP    string
		discovered []domain.Node
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		// Interface: 10.137.2.16 --- 0x11
		if m := windowsARPInterface.FindStringSubmatch(line); len(m) == 2 {
			localIP = m[1]
			if centreIP != "" && localIP != centreIP {
				return nil, &domain.ValidationError{
					Reason:   "centre IP in the ARP dump disagrees with the supplied value",
					Expected: centreIP,
					Found:    localIP,
				}
			}
			continue
		}

		//   10.137.2.1            fe-ff-ff-ff-ff-ff     dynamic
		if m := windowsARPHost.FindStringSubmatch(line); len(m) >= 3 {
			discovered = append(discovered, domain.NewNodeWithMAC(m[1], m[2]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	if localIP == "" {
		if centreIP == "" {
			return nil, &domain.ValidationError{
				Reason: "no interface marker in the ARP dump and no centre IP supplied",
			}
		}
		localIP = centreIP
	}

	return &Result{Centre: domain.NewNode(localIP), Discovered: discovered}, nil
}

// LinuxARP parses `arp -n` output captured on Linux. The dump does not
// identify the interface it was taken on, so the centre IP must be
// supplied by the operator.
type LinuxARP struct{}

func (*LinuxARP) Descriptor() domain.Descriptor {
	return domain.Descriptor{Type: domain.DumpTypeARP, OS: domain.DumpOSLinux}
}

func (*LinuxARP) Extract(r io.Reader, centreIP string) (*Result, error) {
	if centreIP == "" {
		return nil, &domain.ValidationError{
			Reason: "linux ARP dumps do not contain the IP of the centre node; supply it with -i",
		}
	}

	var discovered []domain.Node
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		// 10.137.1.8  ether  00:16:3e:5e:6c:06  C  vif2.0
		if m := linuxARPHost.FindStringSubmatch(scanner.Text()); len(m) >= 3 {
			discovered = append(discovered, domain.NewNodeWithMAC(m[1], m[2]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	return &Result{Centre: domain.NewNode(centreIP), Discovered: discovered}, nil
}

// OpenBSDARP parses `arp -an` table output captured on OpenBSD. Like the
// linux variant it needs the centre IP supplied by the operator.
type OpenBSDARP struct{}

func (*OpenBSDARP) Descriptor() domain.Descriptor {
	return domain.Descriptor{Type: domain.DumpTypeARP, OS: domain.DumpOSOpenBSD}
}

func (*OpenBSDARP) Extract(r io.Reader, centreIP string) (*Result, error) {
	if centreIP == "" {
		return nil, &domain.ValidationError{
			Reason: "openbsd ARP dumps do not contain the IP of the centre node; supply it with -i",
		}
	}

	var discovered []domain.Node
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		// 10.0.0.1  fe:e1:ba:d0:74:65  em0 19m59s
		if m := openbsdARPHost.FindStringSubmatch(scanner.Text()); len(m) >= 3 {
			discovered = append(discovered, domain.NewNodeWithMAC(m[1], m[2]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	return &Result{Centre: domain.NewNode(centreIP), Discovered: discovered}, nil
}
