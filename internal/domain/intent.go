package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentAddFlour
	IntentRemoveFlour
	IntentRenameFlour
	IntentReweighFlour
	IntentSetMass  // payload: field + grams
	IntentSetRatio // payload: field + percent
	IntentApplyPreset
	IntentListPresets
	IntentListFlourTypes
	IntentSummary
	IntentReset
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentAddFlour:
		return "add_flour"
	case IntentRemoveFlour:
		return "remove_flour"
	case IntentRenameFlour:
		return "rename_flour"
	case IntentReweighFlour:
		return "reweigh_flour"
	case IntentSetMass:
		return "set_mass"
	case IntentSetRatio:
		return "set_ratio"
	case IntentApplyPreset:
		return "apply_preset"
	case IntentListPresets:
		return "list_presets"
	case IntentListFlourTypes:
		return "list_flour_types"
	case IntentSummary:
		return "summary"
	case IntentReset:
		return "reset"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action. Target addresses a flour line
// (1-based position or ID) or a preset; Value carries the raw numeric
// argument, validated later at the input boundary.
type Intent struct {
	Type    IntentType
	Field   Field
	Target  string
	Name    string
	Value   string
	Payload string // original input
}
