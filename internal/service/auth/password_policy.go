package auth

import (
	"fmt"
	"strings"
	"unicode"
)

// commonPasswords is a short list of passwords rejected outright. It covers
// the overwhelmingly frequent entries from published breach corpora; the
// point is to stop the worst offenders, not to be exhaustive.
var commonPasswords = map[string]struct{}{
	"password":   {},
	"password1":  {},
	"passw0rd":   {},
	"123456":     {},
	"1234567":    {},
	"12345678":   {},
	"123456789":  {},
	"1234567890": {},
	"qwerty":     {},
	"qwerty123":  {},
	"qwertyuiop": {},
	"abc123":     {},
	"iloveyou":   {},
	"admin":      {},
	"admin123":   {},
	"welcome":    {},
	"welcome1":   {},
	"monkey":     {},
	"dragon":     {},
	"letmein":    {},
	"sunshine":   {},
	"princess":   {},
	"football":   {},
	"baseball":   {},
	"salom123":   {},
}

// PasswordPolicy validates password strength at registration. The rules
// mirror a conventional four-validator stack: minimum length, similarity to
// user attributes, common-password list and all-numeric rejection.
type PasswordPolicy struct {
	MinLength int
}

// NewPasswordPolicy creates a policy with the given minimum length.
// A minimum of zero falls back to 8.
func NewPasswordPolicy(minLength int) *PasswordPolicy {
	if minLength <= 0 {
		minLength = 8
	}
	return &PasswordPolicy{MinLength: minLength}
}

// Validate checks the password against every rule and returns the list of
// failure messages, empty when the password is acceptable. The username and
// email are used for the similarity check.
func (p *PasswordPolicy) Validate(password, username, email string) []string {
	var problems []string

	if len(password) < p.MinLength {
		problems = append(problems, fmt.Sprintf(
			"This password is too short. It must contain at least %d characters.", p.MinLength))
	}

	if tooSimilar(password, username) || tooSimilar(password, emailLocalPart(email)) {
		problems = append(problems, "The password is too similar to the username.")
	}

	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		problems = append(problems, "This password is too common.")
	}

	if password != "" && allNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}

	return problems
}

// tooSimilar reports whether the password and a user attribute overlap
// enough to make the password guessable: either contains the other,
// case-insensitively. Attributes shorter than 3 runes are ignored.
func tooSimilar(password, attribute string) bool {
	if len(attribute) < 3 || password == "" {
		return false
	}
	p := strings.ToLower(password)
	a := strings.ToLower(attribute)
	return strings.Contains(p, a) || strings.Contains(a, p)
}

func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

func allNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
