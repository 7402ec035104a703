// Package staffdir extracts contact records from staff directory search
// results and enumerates a whole directory through a search form that
// caps the number of results per query.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package staffdir
