// Package extract provides pure text-extraction helpers for sniffing contact
// data out of free-text answers. The patterns are deliberately loose: a run of
// 10 or 11 digits anywhere in the text counts as phone-shaped, and anything
// matching local@domain.tld counts as email-shaped.
package extract

import "regexp"

var (
	phoneRunPattern = regexp.MustCompile(`\d{10,11}`)
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// Phone returns the first 10-11 digit run found in the text.
func Phone(text string) (string, bool) {
	match := phoneRunPattern.FindString(text)
	return match, match != ""
}

// Email returns the first email-shaped substring found in the text.
func Email(text string) (string, bool) {
	match := emailPattern.FindString(text)
	return match, match != ""
}

// HasPhone reports whether the text contains a phone-shaped digit run.
func HasPhone(text string) bool {
	return phoneRunPattern.MatchString(text)
}

// HasEmail reports whether the text contains an email-shaped substring.
func HasEmail(text string) bool {
	return emailPattern.MatchString(text)
}
