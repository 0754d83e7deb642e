// Package faapi provides an HTTP API over Fur Affinity. It fetches pages
// from the site on demand, parses them into structured records, and serves
// them as JSON.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package faapi
