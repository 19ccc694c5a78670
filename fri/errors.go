package fri

import "errors"

// Every error below is terminal for the proof under verification: FRI is a
// deterministic predicate and any failure means reject. Errors are wrapped
// with layer, query and position context at the failure site.
var (
	ErrInvalidInput               = errors.New("fri: invalid input")
	ErrDomainTooLarge             = errors.New("fri: evaluation domain too large for field")
	ErrMerkleAuthenticationFailed = errors.New("fri: merkle authentication failed")
	ErrLeafHashMismatch           = errors.New("fri: revealed values do not hash to the authenticated leaf")
	ErrLayerInconsistency         = errors.New("fri: folded evaluation missing from next layer")
	ErrRemainderMismatch          = errors.New("fri: remainder disagrees with folded queries")
	ErrRemainderDegreeViolation   = errors.New("fri: remainder exceeds degree bound")
)
