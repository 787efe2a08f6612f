package acl

import (
	"fmt"
)

// Capability names a permission that can be granted to an address.
type Capability string

const (
	CapCreateProposal Capability = "create_proposal"
	CapModifyQuorum   Capability = "modify_quorum"
	CapModifySupport  Capability = "modify_support"
	CapConfigure      Capability = "configure"
	CapMint           Capability = "mint"
	CapManageACL      Capability = "manage_acl"
)

var allCapabilities = []Capability{
	CapCreateProposal,
	CapModifyQuorum,
	CapModifySupport,
	CapConfigure,
	CapMint,
	CapManageACL,
}

// AllCapabilities returns every known capability.
func AllCapabilities() []Capability {
	caps := make([]Capability, len(allCapabilities))
	copy(caps, allCapabilities)
	return caps
}

func (c Capability) Valid() bool {
	for _, known := range allCapabilities {
		if c == known {
			return true
		}
	}
	return false
}

func (c Capability) String() string {
	return string(c)
}

// CapabilityFromString parses a capability name as given on the command line.
func CapabilityFromString(s string) (Capability, error) {
	c := Capability(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown capability %q, expected one of %v", s, allCapabilities)
	}
	return c, nil
}
