package astro

import "time"

// Event is an entry in the celestial-events calendar.
type Event struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // local civil HH:MM
	Name        string `json:"event"`
	Description string `json:"description"`
}

// UpcomingEvents lists calendar events over the next daysAhead days starting
// from the given date. The calendar is a deterministic placeholder keyed on
// the day of month; no ephemeris is computed.
func UpcomingEvents(from time.Time, daysAhead int) []Event {
	var events []Event

	for i := 0; i < daysAhead; i++ {
		date := from.AddDate(0, 0, i)

		if date.Day()%7 == 0 {
			events = append(events, Event{
				Date:        date.Format("2006-01-02"),
				Time:        "21:30",
				Name:        "Jupiter at opposition",
				Description: "Jupiter will be closest to Earth and fully illuminated",
			})
		}

		if date.Day()%14 == 0 {
			events = append(events, Event{
				Date:        date.Format("2006-01-02"),
				Time:        "02:00",
				Name:        "Geminids Meteor Shower peak",
				Description: "Best viewing after midnight, up to 60 meteors per hour",
			})
		}
	}

	return events
}
