package form

import "errors"

// ErrSubmitInFlight is returned by Submit while a simulated request is
// still loading.
var ErrSubmitInFlight = errors.New("submission already in progress")
