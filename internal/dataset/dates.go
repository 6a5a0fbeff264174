package dataset

import "time"

// dateLayouts are tried in order when coercing a declared date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseDate coerces a raw cell into the canonical timestamp type.
// Unparseable or empty values become nil, the explicit missing marker; a
// bad date must not fail the whole load.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
