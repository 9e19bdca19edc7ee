package sheets

import (
	"time"

	"leadgate/internal/lead"
)

// Sheet timestamps are human-readable, localized, second precision. The
// USER_ENTERED write mode lets the spreadsheet coerce them to dates.
const timestampLayout = "02/01/2006, 15:04:05"

// Header returns the fixed 7-column header row.
func Header() []any {
	return []any{"Timestamp", "Name", "Email", "Phone", "Challenge", "TimePreference", "Source"}
}

// Row renders one lead in header order.
func Row(rec lead.Record, loc *time.Location) []any {
	return []any{
		rec.Timestamp.In(loc).Format(timestampLayout),
		rec.Name,
		rec.Email,
		rec.Phone,
		rec.Challenge,
		rec.TimePreference,
		lead.ChannelLabel,
	}
}
