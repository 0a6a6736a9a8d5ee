// Package repository defines error types that are reused across
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrUnavailable signals that a reservation attempt cannot
// proceed because the target offer is gone or sold out, while
// ErrStoreUnavailable signals that the backing database was never
// configured for this process.
package repository

import "errors"

// ErrUnavailable is returned by OfferRepo.ReserveOne when the offer
// does not exist or its quantity is already zero. The two cases are
// deliberately not distinguished: callers receive one generic failure
// and handlers translate it into an HTTP 400 response. Losing the
// race for the last bag is a routine outcome, not an exceptional one.
var ErrUnavailable = errors.New("offer sold out or not found")

// ErrStoreUnavailable is returned by every repository method when the
// process was started without a database configuration. Handlers
// should translate this into an HTTP 500 response; the condition is
// fatal for the request but not for the process.
var ErrStoreUnavailable = errors.New("database not configured")
