// Package boinc writes the user table as BOINC <user> records.
//
// Records are concatenated with no XML declaration or root element; the
// consumer supplies its own envelope.
package boinc

import (
	"bufio"
	"io"

	"github.com/dmitrijs2005/fath2boinc/internal/filex"
	"github.com/dmitrijs2005/fath2boinc/internal/models"
)

// Encode writes one <user> block per user, ordered by CPID.
func Encode(w io.Writer, users models.Users) error {
	for _, u := range users.Sorted() {
		if _, err := io.WriteString(w, u.XML()); err != nil {
			return err
		}
	}
	return nil
}

// Store overwrites path with the encoded records.
func Store(path string, users models.Users) error {
	return filex.WriteFile(path, func(w *bufio.Writer) error {
		return Encode(w, users)
	})
}
