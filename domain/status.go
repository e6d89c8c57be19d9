package domain

import (
	"math"
	"time"
)

// RecentDays is how long a block counts as new or updated.
const RecentDays = 15

type Status int

const (
	StatusNone Status = iota
	StatusNew
	StatusUpdated
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusUpdated:
		return "updated"
	}
	return ""
}

// Badge is the label shown next to a block title.
func (s Status) Badge() string {
	switch s {
	case StatusNew:
		return "YENİ"
	case StatusUpdated:
		return "GÜNCELLENDİ"
	}
	return ""
}

// daysApart is the ceiling of the absolute distance in days, so anything
// within the same 24h counts as one day.
func daysApart(a, b time.Time) int {
	return int(math.Ceil(math.Abs(a.Sub(b).Hours()) / 24))
}

// StatusOf classifies a block by its dates. Creation is checked first.
func StatusOf(created, updated Date, now time.Time) Status {
	if !created.IsZero() && daysApart(now, created.Time) <= RecentDays {
		return StatusNew
	}
	if !updated.IsZero() && daysApart(now, updated.Time) <= RecentDays {
		return StatusUpdated
	}
	return StatusNone
}

// Status of the block relative to now.
func (b InformationBlock) Status(now time.Time) Status {
	return StatusOf(b.CreatedAt, b.UpdatedAt, now)
}
