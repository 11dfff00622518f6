// Package all links every puzzle year into a binary. gen adds a file
// here the first time it scaffolds a puzzle for a new year.
package all
