package models

type Capability string

const (
	CapabilityScreenShare Capability = "screen-share"
	CapabilityWatchParty  Capability = "watch-party"
)

func (c Capability) Valid() bool {
	return c == CapabilityScreenShare || c == CapabilityWatchParty
}
