package transaction

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Reason explains why a raw record was filtered out.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonState       Reason = "state"
	ReasonMissingKeys Reason = "missing_keys"
	ReasonEmptyValue  Reason = "empty_value"
	ReasonDate        Reason = "date"
)

// KeySet is a set of record keys.
type KeySet map[string]struct{}

func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// DefaultRequiredKeys are the keys every record must carry to be considered.
var DefaultRequiredKeys = []string{"id", "date", "state", "operationAmount", "description", "to"}

// CheckRecord returns ReasonNone if raw is an executed operation with all
// required keys, no empty values and a well-formed date.
func CheckRecord(raw RawRecord, required KeySet) Reason {
	state, _ := raw["state"].(string)
	if state == "" || strings.ToLower(state) != "executed" {
		return ReasonState
	}
	for k := range required {
		if _, ok := raw[k]; !ok {
			return ReasonMissingKeys
		}
	}
	for _, v := range raw {
		if isEmpty(v) {
			return ReasonEmptyValue
		}
	}
	if !CheckDate(raw["date"]) {
		return ReasonDate
	}
	return ReasonNone
}

// CheckDate reports whether v is a "<date>T<time>" string that parses.
func CheckDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	if len(strings.Split(s, "T")) != 2 {
		return false
	}
	_, ok = ValidateDate(s)
	return ok
}

// MustParseDate returns the timestamp of a record that already passed
// CheckDate. It panics on anything else.
func MustParseDate(raw RawRecord) time.Time {
	t, err := parseTimestamp(raw["date"].(string))
	if err != nil {
		panic(fmt.Sprintf("transaction: unfiltered record date %q: %v", raw["date"], err))
	}
	return t
}

// Screen keeps the records that pass CheckRecord, in input order, and counts
// the rejected ones per reason.
func Screen(records []RawRecord, required KeySet) ([]RawRecord, map[Reason]int) {
	kept := make([]RawRecord, 0, len(records))
	rejected := make(map[Reason]int)
	for _, r := range records {
		if reason := CheckRecord(r, required); reason != ReasonNone {
			rejected[reason]++
			continue
		}
		kept = append(kept, r)
	}
	return kept, rejected
}

// SortByDate orders records most recent first. Records with equal dates keep
// their relative order. Every record must have passed CheckDate.
func SortByDate(records []RawRecord) {
	slices.SortStableFunc(records, func(a, b RawRecord) int {
		return MustParseDate(b).Compare(MustParseDate(a))
	})
}

// Sorted returns the filtered records ordered by date, most recent first.
func Sorted(records []RawRecord, required KeySet) []RawRecord {
	kept, _ := Screen(records, required)
	SortByDate(kept)
	return kept
}

// FilterAndSort is Sorted wrapped in a single-pass Feed.
func FilterAndSort(records []RawRecord, required KeySet) *Feed {
	return NewFeed(Sorted(records, required))
}
