package dbcapabilities

import "strings"

// DatabaseID is the canonical identifier for a store technology this
// project can adapt. Use these constants to look up capability
// information.
type DatabaseID string

const (
	XTDB       DatabaseID = "xtdb"
	PostgreSQL DatabaseID = "postgres"
)

// Capability describes what a store supports of the conventional
// relational surface. Translators consult these flags to decide which
// constructs to discard, rewrite, or reject.
type Capability struct {
	// Human-friendly vendor or product name, e.g., "XTDB".
	Name string `json:"name"`

	// Canonical ID used across the codebase (see DatabaseID constants).
	ID DatabaseID `json:"id"`

	// ReservedIDColumn is the physical column name the store requires for
	// the primary key, empty when the store has no such convention.
	ReservedIDColumn string `json:"reservedIdColumn,omitempty"`

	// Transaction surface.
	SupportsSavepoints         bool `json:"supportsSavepoints"`
	RequiresExplicitAccessMode bool `json:"requiresExplicitAccessMode"`

	// Identity generation.
	SupportsServerGeneratedIDs bool `json:"supportsServerGeneratedIds"`
	ReportsAffectedRows        bool `json:"reportsAffectedRows"`

	// Constraint surface.
	SupportsForeignKeys      bool `json:"supportsForeignKeys"`
	SupportsCheckConstraints bool `json:"supportsCheckConstraints"`
	SupportsUniqueTogether   bool `json:"supportsUniqueTogether"`

	// Statement surface.
	SupportsIgnoreConflicts bool `json:"supportsIgnoreConflicts"`
	SupportsColumnDefaults  bool `json:"supportsColumnDefaults"`
	SupportsRandomOrdering  bool `json:"supportsRandomOrdering"`
	SupportsInetType        bool `json:"supportsInetType"`

	// Index surface.
	SupportsPartialIndexes    bool `json:"supportsPartialIndexes"`
	SupportsCoveringIndexes   bool `json:"supportsCoveringIndexes"`
	SupportsExpressionIndexes bool `json:"supportsExpressionIndexes"`

	// Text columns without a declared length limit.
	UnlimitedTextLength bool `json:"unlimitedTextLength"`

	// Common aliases (directory names, drivers, env labels) that map to
	// this store.
	Aliases []string `json:"aliases,omitempty"`
}

// All is a registry of capabilities keyed by the canonical store ID.
var All = map[DatabaseID]Capability{
	XTDB: {
		Name:                       "XTDB",
		ID:                         XTDB,
		ReservedIDColumn:           "_id",
		SupportsSavepoints:         false,
		RequiresExplicitAccessMode: true,
		SupportsServerGeneratedIDs: false,
		ReportsAffectedRows:        false,
		SupportsForeignKeys:        false,
		SupportsCheckConstraints:   false,
		SupportsUniqueTogether:     false,
		SupportsIgnoreConflicts:    false,
		SupportsColumnDefaults:     false,
		SupportsRandomOrdering:     false,
		SupportsInetType:           false,
		SupportsPartialIndexes:     false,
		SupportsCoveringIndexes:    false,
		SupportsExpressionIndexes:  true,
		UnlimitedTextLength:        true,
		Aliases:                    []string{"xtdb2"},
	},
	PostgreSQL: {
		Name:                       "PostgreSQL",
		ID:                         PostgreSQL,
		SupportsSavepoints:         true,
		RequiresExplicitAccessMode: false,
		SupportsServerGeneratedIDs: true,
		ReportsAffectedRows:        true,
		SupportsForeignKeys:        true,
		SupportsCheckConstraints:   true,
		SupportsUniqueTogether:     true,
		SupportsIgnoreConflicts:    true,
		SupportsColumnDefaults:     true,
		SupportsRandomOrdering:     true,
		SupportsInetType:           true,
		SupportsPartialIndexes:     true,
		SupportsCoveringIndexes:    true,
		SupportsExpressionIndexes:  true,
		UnlimitedTextLength:        true,
		Aliases:                    []string{"postgresql", "pgsql"},
	},
}

// Get returns capabilities for the given ID.
func Get(id DatabaseID) (Capability, bool) {
	cap, ok := All[id]
	return cap, ok
}

// MustGet returns capabilities for the given ID and panics if not found.
func MustGet(id DatabaseID) Capability {
	cap, ok := All[id]
	if !ok {
		panic("dbcapabilities: unknown store id: " + string(id))
	}
	return cap
}

// ParseID resolves a name or alias to a canonical DatabaseID.
func ParseID(name string) (DatabaseID, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if _, ok := All[DatabaseID(needle)]; ok {
		return DatabaseID(needle), true
	}
	for id, cap := range All {
		for _, alias := range cap.Aliases {
			if alias == needle {
				return id, true
			}
		}
	}
	return "", false
}

// GetByName returns the Capability for a name or alias.
func GetByName(name string) (Capability, bool) {
	id, ok := ParseID(name)
	if !ok {
		return Capability{}, false
	}
	return All[id], true
}
