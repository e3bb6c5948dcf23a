package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is one VEVENT in an exported calendar.
type Event struct {
	UID         uuid.UUID
	Summary     string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
}

const icsTimeLayout = "20060102T150405Z"

// Render produces an iCalendar document for the given events. Lines end
// with CRLF and all instants are UTC, per RFC 5545.
func Render(prodID string, events []Event) string {
	var b strings.Builder

	write := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	write("BEGIN:VCALENDAR")
	write("VERSION:2.0")
	write("PRODID:-//" + escape(prodID) + "//EN")
	write("CALSCALE:GREGORIAN")
	write("METHOD:PUBLISH")

	now := time.Now().UTC().Format(icsTimeLayout)

	for _, ev := range events {
		write("BEGIN:VEVENT")
		write("UID:" + ev.UID.String())
		write("DTSTAMP:" + now)
		write("DTSTART:" + ev.StartsAt.UTC().Format(icsTimeLayout))
		write("DTEND:" + ev.EndsAt.UTC().Format(icsTimeLayout))
		write(fold("SUMMARY:" + escape(ev.Summary)))
		if ev.Description != "" {
			write(fold("DESCRIPTION:" + escape(ev.Description)))
		}
		if ev.Location != "" {
			write(fold("LOCATION:" + escape(ev.Location)))
		}
		write("END:VEVENT")
	}

	write("END:VCALENDAR")
	return b.String()
}

// escape quotes the characters RFC 5545 reserves in text values.
func escape(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
		"\r", "",
	)
	return r.Replace(s)
}

// fold breaks content lines longer than 75 octets, continuing each
// fragment with a leading space. Folds land between characters, never
// inside a multi-byte sequence.
func fold(line string) string {
	const limit = 75
	if len(line) <= limit {
		return line
	}

	var b strings.Builder
	for len(line) > limit {
		cut := limit
		for cut > 0 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
	}
	b.WriteString(line)
	return b.String()
}

// EventTitle builds the exported summary for a scheduled session.
func EventTitle(sessionTitle, hostName string) string {
	if hostName == "" {
		return sessionTitle
	}
	return fmt.Sprintf("%s with %s", sessionTitle, hostName)
}
