// Package timezones provides deterministic IANA timezone data and a
// "timezone" widget that renders it as a select grouped by region.
//
// Register adds the widget to a widgets.Registry; Rule validates submitted
// zone names against the same list. The backing data is loaded from the
// embedded list under data/iana_timezones.txt.
package timezones
