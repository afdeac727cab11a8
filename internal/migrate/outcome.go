package migrate

// Outcome is the normalized shape of a migration unit's reported result.
// Three forms exist: a Direct status with optional detail, a Wrapped list
// of sub-results, and Unrecognized for anything else. Modeling the shapes
// as a variant keeps classification free of optional-field probing.
type Outcome interface {
	outcome()
}

// Direct carries a top-level status plus optional error or reason detail.
type Direct struct {
	Status Status
	Error  string
	Reason string
}

// Wrapped carries a list of sub-results. Classification unwraps exactly
// the first entry, one level deep.
type Wrapped struct {
	Results []Outcome
}

// Unrecognized is any result without a status or sub-results.
type Unrecognized struct{}

func (Direct) outcome()       {}
func (Wrapped) outcome()      {}
func (Unrecognized) outcome() {}

// Class is the statistics bucket assigned to one migration.
type Class int

const (
	ClassApplied Class = iota
	ClassFailed
	ClassSkipped
)

// String returns the bucket name for logging.
func (c Class) String() string {
	switch c {
	case ClassApplied:
		return "applied"
	case ClassFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Detail defaults applied when a migration unit reports a status without
// any accompanying text.
const (
	defaultErrorDetail = "Unknown error"
	defaultSkipReason  = "Unknown"
)

// Classification is the verdict for a single migration: the statistics
// bucket plus the error detail or skip reason, where one applies.
type Classification struct {
	Class  Class
	Detail string
}

// Classify maps a Runner invocation to a Classification.
//
// An invocation error always classifies as failed. Otherwise the outcome
// decides: applied/complete count as applied, error counts as failed with
// the detail defaulting to "Unknown error", skipped counts as skipped
// with the reason defaulting to "Unknown". A Wrapped outcome with at
// least one sub-result is unwrapped exactly once and the same rules are
// re-applied to its first entry. Everything else, including a nil or
// Unrecognized outcome and a Wrapped outcome nested past one level, is
// counted as skipped with no detail.
func Classify(outcome Outcome, err error) Classification {
	if err != nil {
		return Classification{Class: ClassFailed, Detail: err.Error()}
	}
	return classifyOutcome(outcome, true)
}

func classifyOutcome(outcome Outcome, unwrap bool) Classification {
	switch o := outcome.(type) {
	case Direct:
		return classifyDirect(o)
	case Wrapped:
		if unwrap && len(o.Results) > 0 {
			return classifyOutcome(o.Results[0], false)
		}
	}
	return Classification{Class: ClassSkipped}
}

func classifyDirect(o Direct) Classification {
	switch o.Status {
	case StatusApplied, StatusComplete:
		return Classification{Class: ClassApplied}
	case StatusError:
		detail := o.Error
		if detail == "" {
			detail = defaultErrorDetail
		}
		return Classification{Class: ClassFailed, Detail: detail}
	case StatusSkipped:
		reason := o.Reason
		if reason == "" {
			reason = defaultSkipReason
		}
		return Classification{Class: ClassSkipped, Detail: reason}
	}
	return Classification{Class: ClassSkipped}
}
