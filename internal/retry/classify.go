package retry

import "strings"

// ErrorClass is the failure taxonomy used to decide retry behavior
type ErrorClass string

const (
	ClassNetwork    ErrorClass = "network"
	ClassRateLimit  ErrorClass = "rate_limit"
	ClassAuth       ErrorClass = "auth"
	ClassTimeout    ErrorClass = "timeout"
	ClassServer     ErrorClass = "server"
	ClassValidation ErrorClass = "validation"
	ClassUnknown    ErrorClass = "unknown"
)

// Retryable reports whether failures of this class are worth retrying.
// Auth and validation errors cannot be fixed by retrying; unknown fails
// closed and is not retried either.
func (c ErrorClass) Retryable() bool {
	switch c {
	case ClassNetwork, ClassRateLimit, ClassTimeout, ClassServer:
		return true
	default:
		return false
	}
}

// classifiers are checked in order; the first substring hit wins.
// Rate limit and auth come before server so "429" and "401" are not
// swallowed by broader status-text matches.
var classifiers = []struct {
	class      ErrorClass
	substrings []string
}{
	{ClassRateLimit, []string{"rate limit", "too many requests", "429", "quota"}},
	{ClassAuth, []string{"401", "403", "unauthorized", "forbidden", "invalid api key", "authentication"}},
	{ClassTimeout, []string{"timeout", "timed out", "deadline exceeded"}},
	{ClassValidation, []string{"400", "bad request", "invalid request", "validation"}},
	{ClassServer, []string{"500", "502", "503", "504", "internal server error", "bad gateway", "service unavailable", "overloaded"}},
	{ClassNetwork, []string{"connection refused", "connection reset", "no such host", "broken pipe", "network", "eof"}},
}

// Classify maps an error to its class by inspecting the error text.
// Best-effort: anything unrecognized is unknown.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}

	msg := strings.ToLower(err.Error())
	for _, c := range classifiers {
		for _, s := range c.substrings {
			if strings.Contains(msg, s) {
				return c.class
			}
		}
	}
	return ClassUnknown
}
