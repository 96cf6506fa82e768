package domain

// DumpType represents the kind of diagnostic dump a file contains
type DumpType string

const (
	DumpTypeARP        DumpType = "arp"
	DumpTypeRoute      DumpType = "route"
	DumpTypeTraceroute DumpType = "traceroute"
	DumpTypeUnknown    DumpType = "unknown"
)

// DumpOS represents the operating system the dump was captured on
type DumpOS string

const (
	DumpOSLinux   DumpOS = "linux"
	DumpOSWindows DumpOS = "windows"
	DumpOSOpenBSD DumpOS = "openbsd"
	DumpOSUnknown DumpOS = "unknown"
)

// Descriptor pairs a dump type with the operating system that produced it.
// Extractors declare the descriptor they support; the classifier resolves
// one from file content when the caller does not supply it.
type Descriptor struct {
	Type DumpType `json:"type"`
	OS   DumpOS   `json:"os"`
}

// UnknownDescriptor is returned when classification finds no match
var UnknownDescriptor = Descriptor{Type: DumpTypeUnknown, OS: DumpOSUnknown}

// IsKnown reports whether both halves of the descriptor are resolved
func (d Descriptor) IsKnown() bool {
	return d.Type != DumpTypeUnknown && d.Type != "" &&
		d.OS != DumpOSUnknown && d.OS != ""
}

func (d Descriptor) String() string {
	return string(d.Type) + "/" + string(d.OS)
}
