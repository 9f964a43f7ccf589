package availability

import (
	"fmt"
	"strings"

	"seaview/internal/domains/availability/model"
)

const dateStampLayout = "20060102T150405Z"

// renderCalendar writes the snapshot as an RFC 5545 VCALENDAR with all-day
// events, the format the booking platforms expect when importing our feed.
// Only locally owned ranges are exported; re-exporting a platform's own
// entries back to it would echo them in a loop.
func renderCalendar(snapshot model.Snapshot, propertyName string) []byte {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//"+escapeText(propertyName)+"//Availability//EN")
	writeLine(&b, "CALSCALE:GREGORIAN")

	stamp := snapshot.ComputedAt.UTC().Format(dateStampLayout)

	for _, occupied := range snapshot.Ranges {
		if occupied.Source != model.SourceDirect && occupied.Source != model.SourceBlocked {
			continue
		}

		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, fmt.Sprintf("UID:%s-%s@%s", occupied.Source, occupied.Reference, escapeText(propertyName)))
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, "DTSTART;VALUE=DATE:"+occupied.Range.Start.Format("20060102"))
		writeLine(&b, "DTEND;VALUE=DATE:"+occupied.Range.End.Format("20060102"))
		writeLine(&b, "SUMMARY:Not available")
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")

	return []byte(b.String())
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

func escapeText(value string) string {
	replacer := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")

	return replacer.Replace(value)
}
