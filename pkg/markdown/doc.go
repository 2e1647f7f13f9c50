// Package markdown renders update bodies and reads and writes Keep a
// Changelog files.
//
// Render turns an update body into HTML with GitHub flavored markdown. Raw
// HTML in the source is dropped.
//
// ParseChangelog splits a Keep a Changelog file into one Entry per version
// heading; WriteChangelog produces such a file from entries.
package markdown
