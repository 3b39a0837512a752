package transaction

import (
	"encoding/json"
	"testing"
)

func validRaw() RawRecord {
	return RawRecord{
		"id":    json.Number("863064926"),
		"state": "EXECUTED",
		"date":  "2019-12-08T22:46:21.935582",
		"operationAmount": map[string]any{
			"amount":   "41096.24",
			"currency": map[string]any{"name": "USD", "code": "USD"},
		},
		"description": "Открытие вклада",
		"to":          "Счет 90424923579946435907",
	}
}

func withField(key string, value any) RawRecord {
	r := validRaw()
	r[key] = value
	return r
}

func without(key string) RawRecord {
	r := validRaw()
	delete(r, key)
	return r
}

func TestCheckRecord(t *testing.T) {
	required := NewKeySet(DefaultRequiredKeys...)

	tests := []struct {
		name   string
		raw    RawRecord
		reason Reason
	}{
		{"valid", validRaw(), ReasonNone},
		{"lowercase state", withField("state", "executed"), ReasonNone},
		{"empty state", withField("state", ""), ReasonState},
		{"missing state", without("state"), ReasonState},
		{"canceled", withField("state", "CANCELED"), ReasonState},
		{"non-string state", withField("state", json.Number("1")), ReasonState},
		{"missing description", without("description"), ReasonMissingKeys},
		{"missing to", without("to"), ReasonMissingKeys},
		{"null description", withField("description", nil), ReasonEmptyValue},
		{"zero id", withField("id", json.Number("0")), ReasonEmptyValue},
		{"empty optional from", withField("from", ""), ReasonEmptyValue},
		{"empty amount object", withField("operationAmount", map[string]any{}), ReasonEmptyValue},
		{"day out of range", withField("date", "2019-12-32T22:46:21.935582"), ReasonDate},
		{"no separator", withField("date", "2019-12-3122:46:21.935582"), ReasonDate},
		{"date only", withField("date", "2018-10-14"), ReasonDate},
		{"two separators", withField("date", "2019-12-08T22:46T21"), ReasonDate},
		{"non-string date", withField("date", []any{json.Number("2019")}), ReasonDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckRecord(tt.raw, required); got != tt.reason {
				t.Errorf("got %q, want %q", got, tt.reason)
			}
		})
	}
}

func TestCheckDate(t *testing.T) {
	tests := []struct {
		input any
		want  bool
	}{
		{"2018-10-14T08:21:33.419441", true},
		{"2018-10-1408:21:33.419441", false},
		{"2018-10-14T28:21:33.419441", false},
		{"2018-10-14", false},
		{"2019-12-08T8:46:21", false},
		{"2018-09-31T08:21:33.419441", false},
		{"2013-02-29T08:21:33.419441", false},
		{2013, false},
	}

	for _, tt := range tests {
		if got := CheckDate(tt.input); got != tt.want {
			t.Errorf("CheckDate(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMustParseDate_PanicsOnUnfilteredInput(t *testing.T) {
	tests := []struct {
		name string
		date any
	}{
		{"day out of range", "2019-12-32T22:46:21.935582"},
		{"no separator", "2019-12-3122:46:21.935582"},
		{"truncated", "2019-12-32T"},
		{"not a string", []any{json.Number("2019")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			MustParseDate(withField("date", tt.date))
		})
	}
}

func TestScreen(t *testing.T) {
	records := []RawRecord{
		validRaw(),
		withField("state", "CANCELED"),
		without("to"),
		withField("description", ""),
		withField("date", "2019-02-29T10:00:00"),
		withField("id", json.Number("2")),
	}

	kept, rejected := Screen(records, NewKeySet(DefaultRequiredKeys...))
	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2", len(kept))
	}
	if kept[1]["id"] != json.Number("2") {
		t.Errorf("input order not preserved: %v", kept[1]["id"])
	}
	want := map[Reason]int{ReasonState: 1, ReasonMissingKeys: 1, ReasonEmptyValue: 1, ReasonDate: 1}
	for reason, n := range want {
		if rejected[reason] != n {
			t.Errorf("rejected[%s] = %d, want %d", reason, rejected[reason], n)
		}
	}
}

func TestFilterAndSort(t *testing.T) {
	dates := []string{
		"2018-07-11T02:26:18.671407",
		"2019-12-08T22:46:21.935582",
		"2018-04-04T17:33:34.701093",
		"2019-12-08T22:46:21.935582",
		"2018-07-11T02:26:18.671406",
	}
	records := make([]RawRecord, 0, len(dates)+1)
	for i, d := range dates {
		r := withField("date", d)
		r["id"] = json.Number(string(rune('1' + i)))
		records = append(records, r)
	}
	records = append(records, withField("state", "CANCELED"))

	feed := FilterAndSort(records, NewKeySet(DefaultRequiredKeys...))
	if feed.Remaining() != len(dates) {
		t.Fatalf("remaining = %d, want %d", feed.Remaining(), len(dates))
	}

	var got []RawRecord
	for {
		r, ok := feed.Next()
		if !ok {
			break
		}
		got = append(got, r)
	}
	for i := 1; i < len(got); i++ {
		prev, cur := MustParseDate(got[i-1]), MustParseDate(got[i])
		if prev.Before(cur) {
			t.Errorf("not descending at %d: %v before %v", i, prev, cur)
		}
	}

	// equal timestamps keep input order
	if got[0]["id"] != json.Number("2") || got[1]["id"] != json.Number("4") {
		t.Errorf("unstable order: %v, %v", got[0]["id"], got[1]["id"])
	}

	if _, ok := feed.Next(); ok {
		t.Error("drained feed returned a record")
	}
}

func TestCheckRecord_CustomKeys(t *testing.T) {
	r := without("to")
	if got := CheckRecord(r, NewKeySet("id", "date", "state")); got != ReasonNone {
		t.Errorf("got %q, want kept with reduced key set", got)
	}
}
