package core

// Provenance identifies which tier of a fallback chain supplied rendered data.
type Provenance string

// Provenance values, in fallback order.
const (
	ProvenanceNone      Provenance = ""
	ProvenancePrimary   Provenance = "primary"
	ProvenanceSecondary Provenance = "secondary"
	ProvenanceRetained  Provenance = "retained"
	ProvenanceHydrated  Provenance = "hydrated"
	ProvenanceEmbedded  Provenance = "embedded"
)

func (p Provenance) String() string {
	if p == ProvenanceNone {
		return "none"
	}
	return string(p)
}
