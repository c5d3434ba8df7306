package normalize

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrUnknownEnemy = errors.New("enemy type not in catalog")
)
