// Package id generates deterministic, human-readable identifiers for trips
// and steps by slugifying a name and appending date components.
//
// Generation is deterministic: the same name and date always produce the same
// id. Collisions between distinct records that share a name at the same date
// granularity are possible and surface as a primary-key violation in the
// store — disambiguation is the caller's concern.
package id

import (
	"time"

	"github.com/gosimple/slug"
)

// WithYear returns "<slug>-<yyyy>", e.g. "south-america-2014".
// Used for trip ids, where year granularity is enough to tell apart
// recurring trips with the same name. A zero date yields the bare slug.
func WithYear(name string, date time.Time) string {
	if date.IsZero() {
		return slug.Make(name)
	}
	return slug.Make(name) + "-" + date.Format("2006")
}

// WithFullDate returns "<slug>-<yyyy-mm-dd>", e.g. "lake-titicaca-2014-03-28".
// Used for step ids, so same-named steps on different days of the same trip
// do not collide. A zero date yields the bare slug.
func WithFullDate(name string, date time.Time) string {
	if date.IsZero() {
		return slug.Make(name)
	}
	return slug.Make(name) + "-" + date.Format("2006-01-02")
}
