package extractor

import (
	"errors"
	"strings"
	"testing"

	"netgrapher/internal/domain"
)

func TestLinuxRouteExtract(t *testing.T) {
	dump := `Kernel IP routing table
Destination     Gateway         Genmask         Flags Metric Ref    Use Iface
0.0.0.0         10.137.2.1      0.0.0.0         UG    0      0        0 eth0
10.137.2.0      0.0.0.0         255.255.255.0   U     0      0        0 eth0
192.168.7.0     10.137.2.254    255.255.255.0   UG    0      0        0 eth0
`

	t.Run("discovers gateways only", func(t *testing.T) {
		res, err := (&LinuxRoute{}).Extract(strings.NewReader(dump), "10.137.2.16")
		if err != nil {
			t.Fatalf("Extract returned error: %v", err)
		}

		if res.Centre.IP != "10.137.2.16" {
			t.Errorf("centre = %s", res.Centre)
		}
		want := []string{"10.137.2.1", "10.137.2.254"}
		if len(res.Discovered) != len(want) {
			t.Fatalf("expected %d gateways, got %d: %v", len(want), len(res.Discovered), res.Discovered)
		}
		for i, ip := range want {
			if res.Discovered[i].IP != ip {
				t.Errorf("gateway %d = %s, want %s", i, res.Discovered[i], ip)
			}
		}
	})

	t.Run("missing centre IP fails validation", func(t *testing.T) {
		_, err := (&LinuxRoute{}).Extract(strings.NewReader(dump), "")
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestWindowsRouteExtract(t *testing.T) {
	dump := `===========================================================================
Active Routes:
Network Destination        Netmask          Gateway       Interface  Metric
          0.0.0.0          0.0.0.0         10.0.0.1        10.0.0.12     25
         10.0.0.0    255.255.255.0          On-link         10.0.0.12    281
    192.168.50.0    255.255.255.0       10.0.0.254        10.0.0.12     26
===========================================================================
`

	res, err := (&WindowsRoute{}).Extract(strings.NewReader(dump), "10.0.0.12")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	want := []string{"10.0.0.1", "10.0.0.254"}
	if len(res.Discovered) != len(want) {
		t.Fatalf("expected %d gateways, got %d: %v", len(want), len(res.Discovered), res.Discovered)
	}
	for i, ip := range want {
		if res.Discovered[i].IP != ip {
			t.Errorf("gateway %d = %s, want %s", i, res.Discovered[i], ip)
		}
	}
}

func TestRegistry(t *testing.T) {
	t.Run("lookup miss is an UnsupportedFormatError", func(t *testing.T) {
		r := DefaultRegistry()
		_, err := r.Lookup(domain.Descriptor{Type: domain.DumpTypeTraceroute, OS: domain.DumpOSOpenBSD})
		var uerr *domain.UnsupportedFormatError
		if !errors.As(err, &uerr) {
			t.Fatalf("expected UnsupportedFormatError, got %v", err)
		}
	})

	t.Run("default registry covers the built-ins", func(t *testing.T) {
		r := DefaultRegistry()
		for _, d := range []domain.Descriptor{
			{Type: domain.DumpTypeARP, OS: domain.DumpOSWindows},
			{Type: domain.DumpTypeARP, OS: domain.DumpOSLinux},
			{Type: domain.DumpTypeARP, OS: domain.DumpOSOpenBSD},
			{Type: domain.DumpTypeTraceroute, OS: domain.DumpOSLinux},
			{Type: domain.DumpTypeTraceroute, OS: domain.DumpOSWindows},
			{Type: domain.DumpTypeRoute, OS: domain.DumpOSLinux},
			{Type: domain.DumpTypeRoute, OS: domain.DumpOSWindows},
		} {
			e, err := r.Lookup(d)
			if err != nil {
				t.Errorf("Lookup(%s): %v", d, err)
				continue
			}
			if e.Descriptor() != d {
				t.Errorf("extractor for %s declares %s", d, e.Descriptor())
			}
		}
	})

	t.Run("double registration fails", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register(&LinuxARP{}); err != nil {
			t.Fatalf("first register: %v", err)
		}
		if err := r.Register(&LinuxARP{}); err == nil {
			t.Fatal("expected an error on duplicate registration")
		}
	})
}
