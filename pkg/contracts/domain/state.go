package domain

// TxState is a canonical transaction state label. After ingestion every
// record carries either one of the fixed canonical states below or a
// capitalized fallback label for source values nobody taught us about.
type TxState string

const (
	StateRemitted  TxState = "Remitted"
	StatePublished TxState = "Published"
	StateRejected  TxState = "Rejected"
	StateOnHold    TxState = "On hold"
	StateStuck     TxState = "Stuck"
	StateInReview  TxState = "In review"
	StateInProcess TxState = "In process"
	StateAmlReview TxState = "Aml review"
	StateNoConfig  TxState = "No config"
	StateUnknown   TxState = "Unknown"
)

// CanonicalStates lists the fixed state vocabulary in display order.
// Fallback labels produced for unrecognized source values are not included.
func CanonicalStates() []TxState {
	return []TxState{
		StateRemitted,
		StatePublished,
		StateRejected,
		StateOnHold,
		StateStuck,
		StateInReview,
		StateInProcess,
		StateAmlReview,
		StateNoConfig,
		StateUnknown,
	}
}

// FallbackColor is used for Unknown and any non-canonical fallback state.
const FallbackColor = "#6b7280"

var stateColors = map[TxState]string{
	StateRemitted:  "#10b981",
	StatePublished: "#3b82f6",
	StateRejected:  "#ef4444",
	StateOnHold:    "#f59e0b",
	StateStuck:     "#dc2626",
	StateInReview:  "#8b5cf6",
	StateInProcess: "#06b6d4",
	StateAmlReview: "#ec4899",
	StateNoConfig:  "#6b7280",
}

// HexColor returns the display color for the state. Non-canonical states
// resolve to FallbackColor so the UI renders them visibly neutral instead
// of failing a free-form lookup.
func (s TxState) HexColor() string {
	if c, ok := stateColors[s]; ok {
		return c
	}
	return FallbackColor
}

// Canonical reports whether the state belongs to the fixed vocabulary.
func (s TxState) Canonical() bool {
	_, ok := stateColors[s]
	return ok || s == StateUnknown
}
