package model

// SpendRule is the spend-permission variant applied to a locked
// envelope. The variant is keyed by envelope name, not derived from
// the Locked flag alone: emergency may spend up to its allocation,
// savings may never be spent from directly.
type SpendRule string

const (
	// SpendUnrestricted places no limit on additions.
	SpendUnrestricted SpendRule = "unrestricted"
	// SpendCeiling rejects an addition that would push total spend
	// past the envelope's allocation.
	SpendCeiling SpendRule = "ceiling"
	// SpendForbidden rejects every addition.
	SpendForbidden SpendRule = "forbidden"
)

var spendRules = map[string]SpendRule{
	EnvelopePersonal:  SpendUnrestricted,
	EnvelopeTravel:    SpendUnrestricted,
	EnvelopeEmergency: SpendCeiling,
	EnvelopeSavings:   SpendForbidden,
}

// RuleFor returns the spend rule for an envelope name. The rule only
// takes effect while the envelope's Locked flag is set; an unlocked
// envelope is always unrestricted.
func RuleFor(name string) SpendRule {
	if rule, ok := spendRules[name]; ok {
		return rule
	}
	return SpendUnrestricted
}
