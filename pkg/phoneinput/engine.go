package phoneinput

// Engine is the numbering-plan capability the input relies on. Implementations
// may fail or panic; Input treats any failure as "format nothing" and keeps
// accepting what the user types.
type Engine interface {
	// Format lays out national digits (no calling code) the way the region
	// writes them, e.g. "2025551234" for US becomes "(202) 555-1234". Partial
	// numbers are formatted as far as they go.
	Format(nationalDigits, regionCode string) (string, error)

	// MaxLengthExceeded reports whether a full number ("+<calling code><national digits>")
	// is longer than any plan behind that calling code allows.
	MaxLengthExceeded(fullNumber string) bool

	// IsValid is advisory only and never gates a keystroke.
	IsValid(fullNumber string) bool
}
