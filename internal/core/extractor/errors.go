package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrCancelled is returned when the user interrupts a probe or download.
var ErrCancelled = errors.New("operation cancelled")

// EngineError wraps a failed yt-dlp invocation together with the most
// relevant line of its stderr.
type EngineError struct {
	Op     string // "probe" or "download"
	URL    string
	Detail string // last "ERROR:" line reported by yt-dlp, if any
	Err    error
}

func (e *EngineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("yt-dlp %s failed: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("yt-dlp %s failed: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// errorDetail picks the last ERROR: line from yt-dlp stderr, falling back to
// the last non-empty line.
func errorDetail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if last == "" {
			last = line
		}
		if rest, ok := strings.CutPrefix(line, "ERROR:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return last
}

// Reason is a coarse classification of a failure, used to pick a friendlier
// message for the user.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonCancelled
	ReasonPrivate
	ReasonUnavailable
	ReasonFormat
	ReasonSignIn
	ReasonCopyright
	ReasonRateLimited
	ReasonNetwork
)

var reasonPatterns = []struct {
	reason   Reason
	patterns []string
}{
	// private must be checked before sign-in: yt-dlp's private video message
	// also asks the user to sign in.
	{ReasonPrivate, []string{"private video", "video is private"}},
	{ReasonCopyright, []string{"copyright"}},
	{ReasonSignIn, []string{"sign in to confirm", "age-restricted", "age restricted", "members-only", "join this channel"}},
	{ReasonFormat, []string{"requested format is not available", "no video formats found", "unsupported format"}},
	{ReasonUnavailable, []string{"video unavailable", "is not available", "has been removed", "does not exist"}},
	{ReasonRateLimited, []string{"http error 429", "too many requests"}},
	{ReasonNetwork, []string{"unable to download webpage", "network is unreachable", "connection refused", "connection reset", "timed out", "no such host", "getaddrinfo failed", "temporary failure in name resolution"}},
}

// Classify maps an error to a Reason by matching known substrings of the
// yt-dlp error text.
func Classify(err error) Reason {
	if err == nil {
		return ReasonUnknown
	}
	if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
		return ReasonCancelled
	}

	msg := strings.ToLower(err.Error())
	for _, rp := range reasonPatterns {
		for _, p := range rp.patterns {
			if strings.Contains(msg, p) {
				return rp.reason
			}
		}
	}
	return ReasonUnknown
}
