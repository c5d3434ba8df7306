package wcl

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrAuth          = errors.New("authentication failed")
	ErrGraphQL       = errors.New("graphql query failed")
	ErrNoFights      = errors.New("report has no fights")
	ErrFightNotFound = errors.New("fight not found in report")
	ErrBadReportURL  = errors.New("invalid report url")
)
