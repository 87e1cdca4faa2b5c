package engine

import (
	"fmt"

	pkgerrors "github.com/dxdlab/dxd/pkg/errors"
)

// invariantViolation wraps a recovered panic (a malformed cover/uncover
// pairing, an out-of-range arena index, or similar internal-state
// corruption) as a reported error rather than crashing the process.
func invariantViolation(r any) error {
	return pkgerrors.Wrap(pkgerrors.ErrCodeInvariant, fmt.Errorf("%v", r), "engine: recovered from invariant violation")
}
