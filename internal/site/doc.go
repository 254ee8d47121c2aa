// Package site drives a build: it loads the template and lookup tables,
// discovers the content tree, assembles every page and writes it to the
// mirrored path under the output root.
//
// A build is one synchronous pass. Watch repeats it whenever an input
// changes.
package site
