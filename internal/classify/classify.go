// Package classify guesses what kind of diagnostic dump a text file
// contains by sniffing its content against a table of signature patterns.
package classify

import (
	"bufio"
	"fmt"
	"io"
	"regexp"

	"netgrapher/internal/domain"
)

// signature ties a content pattern to the descriptor it implies
type signature struct {
	descriptor domain.Descriptor
	pattern    *regexp.Regexp
}

// Classifier resolves a dump descriptor from file content. The signature
// table is ordered: earlier entries win when several patterns would match
// the same line.
type Classifier struct {
	signatures []signature
}

// NewClassifier builds a classifier with the built-in signature table.
// The table is constructed once and owned by the returned value; there is
// no package-level state.
func NewClassifier() *Classifier {
	return &Classifier{
		signatures: []signature{
			{
				descriptor: domain.Descriptor{Type: domain.DumpTypeARP, OS: domain.DumpOSWindows},
				pattern:    regexp.MustCompile(`^Interface:\s+`),
			},
			{
				descriptor: domain.Descriptor{Type: domain.DumpTypeARP, OS: domain.DumpOSLinux},
				pattern:    regexp.MustCompile(`^Address\s+HWtype\s+HWaddress\s+Flags\s+Mask\s+Iface$`),
			},
			{
				descriptor: domain.Descriptor{Type: domain.DumpTypeARP, OS: domain.DumpOSOpenBSD},
				pattern:    regexp.MustCompile(`^Host\s+Ethernet\sAddress\s+Netif\sExpire\sFlags$`),
			},
			{
				descriptor: domain.Descriptor{Type: domain.DumpTypeTraceroute, OS: domain.DumpOSLinux},
				pattern:    regexp.MustCompile(`^traceroute to .+ \([\d.]+\), \d+ hops max, \d+ byte packets$`),
			},
			{
				descriptor: domain.Descriptor{Type: domain.DumpTypeRoute, OS: domain.DumpOSLinux},
				pattern:    regexp.MustCompile(`^Kernel IP routing table$`),
			},
			{
				descriptor: domain.Descriptor{Type: domain.DumpTypeRoute, OS: domain.DumpOSLinux},
				pattern:    regexp.MustCompile(`^Destination\s+Gateway\s+Genmask\s+Flags\sMetric\sRef\s+Use\sIface$`),
			},
			{
				descriptor: domain.Descriptor{Type: domain.DumpTypeRoute, OS: domain.DumpOSWindows},
				pattern:    regexp.MustCompile(`^===========================================================================`),
			},
		},
	}
}

// Classify reads the input line by line exactly once and returns the
// descriptor of the first signature that matches any line. When no line
// matches any pattern the unknown descriptor is returned with a nil
// error; only I/O failures produce an error. Classify never has side
// effects on the graph.
func (c *Classifier) Classify(r io.Reader) (domain.Descriptor, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		for _, sig := range c.signatures {
			if sig.pattern.MatchString(line) {
				return sig.descriptor, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.UnknownDescriptor, fmt.Errorf("read dump: %w", err)
	}
	return domain.UnknownDescriptor, nil
}

// SupportedTypes lists the dump types the signature table knows about,
// in table order without duplicates
func (c *Classifier) SupportedTypes() []domain.DumpType {
	seen := make(map[domain.DumpType]bool)
	var types []domain.DumpType
	for _, sig := range c.signatures {
		if !seen[sig.descriptor.Type] {
			seen[sig.descriptor.Type] = true
			types = append(types, sig.descriptor.Type)
		}
	}
	return types
}

// SupportedOSes lists the operating systems the signature table knows
// about, in table order without duplicates
func (c *Classifier) SupportedOSes() []domain.DumpOS {
	seen := make(map[domain.DumpOS]bool)
	var oses []domain.DumpOS
	for _, sig := range c.signatures {
		if !seen[sig.descriptor.OS] {
			seen[sig.descriptor.OS] = true
			oses = append(oses, sig.descriptor.OS)
		}
	}
	return oses
}
