// Package schema defines the default extraction schema for condition files.
//
// The labels come from the timing exports produced by the acquisition
// software: one identifier column plus global and per-component start, end
// and duration measurements, all in seconds. Deployments with different
// exports can override the list via the EXTRACT_COLUMNS environment
// variable.
package schema

// DefaultColumns is the ordered list of columns extracted from every
// uploaded condition file when no override is configured. Order is
// preserved in the consolidated output.
var DefaultColumns = []string{
	"K",
	"Início global (s)",
	"Fim global (s)",
	"Duração global (s)",
	"Comp1 início (s)",
	"Comp1 fim (s)",
	"Comp1 duração (s)",
	"Comp2 início (s)",
	"Comp2 fim (s)",
	"Comp2 duração (s)",
}

// ProvenanceColumn is the name of the column prepended to consolidated
// output identifying the originating file.
const ProvenanceColumn = "Arquivo"

// ConditionColumn is the name of the column identifying the condition label
// in range-mode output.
const ConditionColumn = "Condição"
