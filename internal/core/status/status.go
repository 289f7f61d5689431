// Package status maps raw feed state codes onto a small set of display statuses
//
// The table follows the live-score feed convention
//
//	0        not started
//	1..5     in play (first half, half time, second half, extra time, penalties)
//	-1       full time
//	-10..-14 cancelled, undecided, abandoned, interrupted, postponed
//
// Codes outside the table classify as Unknown instead of failing
package status

import "strings"

// Status is the semantic status of a record
type Status string

const (
	// Live is an event in play
	Live Status = "live"
	// Upcoming is an event that has not started
	Upcoming Status = "upcoming"
	// Other is a known state that is neither live nor upcoming
	Other Status = "other"
	// Unknown is a state code missing from the table
	Unknown Status = "unknown"
)

// Raw state codes used by the feeds
const (
	CodeNotStarted  = 0
	CodeFirstHalf   = 1
	CodeHalfTime    = 2
	CodeSecondHalf  = 3
	CodeExtraTime   = 4
	CodePenalties   = 5
	CodeFullTime    = -1
	CodeCancelled   = -10
	CodeUndecided   = -11
	CodeAbandoned   = -12
	CodeInterrupted = -13
	CodePostponed   = -14
)

// Tone is the display style token a view uses to paint a status
type Tone string

const (
	ToneLive     Tone = "live"
	ToneUpcoming Tone = "upcoming"
	ToneMuted    Tone = "muted"
)

// Classification is the result of Classify
type Classification struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Tone   Tone   `json:"tone"`
}

// UnknownLabel is the label of codes missing from the table
const UnknownLabel = "Unknown"

var table = map[int]Classification{
	CodeNotStarted:  {Upcoming, "Not Started", ToneUpcoming},
	CodeFirstHalf:   {Live, "First Half", ToneLive},
	CodeHalfTime:    {Live, "Half Time", ToneLive},
	CodeSecondHalf:  {Live, "Second Half", ToneLive},
	CodeExtraTime:   {Live, "Extra Time", ToneLive},
	CodePenalties:   {Live, "Penalties", ToneLive},
	CodeFullTime:    {Other, "Full Time", ToneMuted},
	CodeCancelled:   {Other, "Cancelled", ToneMuted},
	CodeUndecided:   {Other, "To Be Determined", ToneMuted},
	CodeAbandoned:   {Other, "Abandoned", ToneMuted},
	CodeInterrupted: {Other, "Interrupted", ToneMuted},
	CodePostponed:   {Other, "Postponed", ToneMuted},
}

// Classify maps a raw state code to its status, label and tone
func Classify(code int) Classification {
	if c, ok := table[code]; ok {
		return c
	}
	return Classification{Status: Unknown, Label: UnknownLabel, Tone: ToneMuted}
}

// Of is shorthand for Classify(code).Status
func Of(code int) Status { return Classify(code).Status }

// IsLive reports whether code is an in play state
func IsLive(code int) bool { return Of(code) == Live }

// IsUpcoming reports whether code is a not started state
func IsUpcoming(code int) bool { return Of(code) == Upcoming }

// Rank is the fixed sort order of statuses, lower sorts first
func Rank(s Status) int {
	switch s {
	case Live:
		return 0
	case Upcoming:
		return 1
	case Other:
		return 2
	default:
		return 3
	}
}

// textCodes maps football-data.org match statuses onto the same code space
var textCodes = map[string]int{
	"SCHEDULED": CodeNotStarted,
	"TIMED":     CodeNotStarted,
	"LIVE":      CodeFirstHalf,
	"IN_PLAY":   CodeFirstHalf,
	"PAUSED":    CodeHalfTime,
	"FINISHED":  CodeFullTime,
	"AWARDED":   CodeFullTime,
	"POSTPONED": CodePostponed,
	"SUSPENDED": CodeInterrupted,
	"CANCELLED": CodeCancelled,
}

// NoCode is returned by FromText for statuses it does not know, it is outside the table
const NoCode = 99

// FromText converts a textual match status into a raw state code
func FromText(s string) int {
	if c, ok := textCodes[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return c
	}
	return NoCode
}
