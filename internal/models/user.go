// Package models defines the participant record that flows through the
// credit pipeline and its two external line formats.
package models

import (
	"sort"
	"strconv"
	"strings"
)

// CPIDLength is the number of hex digits in a Cross-Project IDentifier.
const CPIDLength = 32

// User is a single participant keyed by CPID.
//
// ExpavgTime is in Unix seconds; zero means the average was never updated.
type User struct {
	CPID         string
	TotalCredit  float64
	ExpavgCredit float64
	ExpavgTime   float64
}

// NewUser returns a zero-credit user that has never been observed.
func NewUser(cpid string) *User {
	return &User{CPID: cpid}
}

// IsMD5Hex reports whether s looks like an MD5 digest rendered as hex
// (either case).
func IsMD5Hex(s string) bool {
	if len(s) != CPIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// FormatCredit renders v as fixed-point with eight fractional digits.
func FormatCredit(v float64) string {
	return strconv.FormatFloat(v, 'f', 8, 64)
}

// CSV returns the checkpoint line for u, LF-terminated:
//
//	total_credit,expavg_credit,expavg_time,cpid
func (u *User) CSV() string {
	var b strings.Builder
	b.WriteString(FormatCredit(u.TotalCredit))
	b.WriteByte(',')
	b.WriteString(FormatCredit(u.ExpavgCredit))
	b.WriteByte(',')
	b.WriteString(FormatCredit(u.ExpavgTime))
	b.WriteByte(',')
	b.WriteString(u.CPID)
	b.WriteByte('\n')
	return b.String()
}

// XML returns the BOINC <user> block for u, one element per line.
func (u *User) XML() string {
	var b strings.Builder
	b.WriteString("<user>\n")
	b.WriteString("<total_credit>" + FormatCredit(u.TotalCredit) + "</total_credit>\n")
	b.WriteString("<expavg_credit>" + FormatCredit(u.ExpavgCredit) + "</expavg_credit>\n")
	b.WriteString("<expavg_time>" + FormatCredit(u.ExpavgTime) + "</expavg_time>\n")
	b.WriteString("<cpid>" + u.CPID + "</cpid>\n")
	b.WriteString("</user>\n")
	return b.String()
}

// Users is the user table, keyed by CPID.
type Users map[string]*User

// Ensure returns the user for cpid, creating a zero-initialized one if the
// table has none yet.
func (t Users) Ensure(cpid string) *User {
	u, ok := t[cpid]
	if !ok {
		u = NewUser(cpid)
		t[cpid] = u
	}
	return u
}

// Sorted returns the users ordered by CPID.
func (t Users) Sorted() []*User {
	out := make([]*User, 0, len(t))
	for _, u := range t {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CPID < out[j].CPID })
	return out
}
