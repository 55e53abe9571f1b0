package hc

import "errors"

// ErrHcPlaneMismatch means the three color-plane symbols decoded to
// different (version, ECL) pairs, so they cannot be the three planes of
// one high-capacity composite (§4.9).
var ErrHcPlaneMismatch = errors.New("hc: plane metadata mismatch")
