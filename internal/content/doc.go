// Package content discovers the localized page fragments of a site and reads
// everything a page needs from disk: its body, the optional extra-head and
// extra-scripts fragments, and its last-modified time.
//
// The content tree is laid out as <root>/<lang>/<file>. The language is the
// directory directly above the file.
package content
