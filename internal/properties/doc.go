// Package properties reads and writes line-oriented key=value build property
// files such as android/gradle.properties. Parsing keeps every line, including
// comments, blank lines, and lines it does not understand, so a file can be
// read, edited, and written back without losing anything a person put there.
package properties
