package user

import "regexp"

const (
	MinAge = 0
	MaxAge = 150
)

// The last segment accepts '.' and '-' anywhere, so "a@b.c." and "a@b.c-" are valid.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// ValidateEmail reports whether email has the local-part@domain.tld shape.
// An empty email is never valid.
func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}

	return emailPattern.MatchString(email)
}

func ValidateAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}
