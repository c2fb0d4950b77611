// Copyright (c) 2026 the talkie authors
// released under the ISC license

package lib

// SemVer is the overall version of talkie.
const SemVer = "0.3.0"
