// Package shell provides the shell snippets rpg appends to startup files.
// The cursor-hide block shows the text cursor only for SSH sessions and hides
// it on the local console (POSIX shells and fish).
package shell
