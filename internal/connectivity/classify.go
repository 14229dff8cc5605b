// Package connectivity classifies API failures and probes whether the
// configured credentials can reach the fleet-management API.
//
// Nothing in this package returns an error. Every failure becomes a Result.
package connectivity

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strings"
	"syscall"

	"xytectl/internal/api"
)

// State is the outcome of a connectivity probe.
type State string

const (
	StateConnected    State = "connected"
	StateAuthRequired State = "auth_required"
	StateMissingKey   State = "missing_key"
	StateNetworkError State = "network_error"
	StateTimeout      State = "timeout"
	StateRateLimited  State = "rate_limited"
	StateUnknownError State = "unknown_error"
	StateNotChecked   State = "not_checked"
)

// ErrorClass is the coarse failure taxonomy used for retry decisions.
type ErrorClass string

const (
	ClassAuth       ErrorClass = "auth"
	ClassMissingKey ErrorClass = "missing_key"
	ClassNetwork    ErrorClass = "network"
	ClassTimeout    ErrorClass = "timeout"
	ClassRateLimit  ErrorClass = "rate_limit"
	ClassUnknown    ErrorClass = "unknown"
)

// Retriable is false exactly for auth and missing_key.
func (c ErrorClass) Retriable() bool {
	return c != ClassAuth && c != ClassMissingKey
}

// State maps a class onto the probe state that reports it.
func (c ErrorClass) State() State {
	switch c {
	case ClassAuth:
		return StateAuthRequired
	case ClassMissingKey:
		return StateMissingKey
	case ClassNetwork:
		return StateNetworkError
	case ClassTimeout:
		return StateTimeout
	case ClassRateLimit:
		return StateRateLimited
	default:
		return StateUnknownError
	}
}

var missingKeyPattern = regexp.MustCompile(`(?i)missing\s+(api\s+)?key|api\s+key\s+(is\s+)?(missing|required|not\s+(set|configured))|no\s+api\s+key`)

var timeoutPattern = regexp.MustCompile(`(?i)\btimed?\s?out\b|deadline exceeded|etimedout`)

var networkPattern = regexp.MustCompile(`(?i)connection refused|econnrefused|no such host|enotfound|eai_again|network is unreachable|connection reset|econnreset|broken pipe|\beof\b`)

// Classify maps err onto an ErrorClass. A nil error is ClassUnknown; callers
// only classify failures.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			if errors.Is(err, api.ErrMissingAPIKey) || missingKeyPattern.MatchString(apiErr.Message) {
				return ClassMissingKey
			}
			return ClassAuth
		case apiErr.StatusCode == 429:
			return ClassRateLimit
		case apiErr.StatusCode == 408:
			return ClassTimeout
		case apiErr.StatusCode >= 500:
			return ClassNetwork
		}
	}

	if errors.Is(err, api.ErrMissingAPIKey) {
		return ClassMissingKey
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ClassTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTimeout
	}
	if errors.Is(err, syscall.ETIMEDOUT) {
		return ClassTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ENETUNREACH) {
		return ClassNetwork
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return ClassTimeout
		}
		return ClassNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ClassNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case missingKeyPattern.MatchString(msg):
		return ClassMissingKey
	case timeoutPattern.MatchString(msg):
		return ClassTimeout
	case networkPattern.MatchString(msg):
		return ClassNetwork
	}
	return ClassUnknown
}
