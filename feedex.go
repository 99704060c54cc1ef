// Package feedex extracts structured post data from LinkedIn "Recent
// Activity" export archives (MHTML). It decodes the archive, locates
// post fragments with fallback CSS selector chains, scores the result
// for completeness, and optionally enriches records with company and
// location data via a remote language model.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, gemini/).
package feedex
