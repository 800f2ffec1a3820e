package filelist

import "strings"

// Status represents the outcome recorded for an item.
type Status string

const (
	StatusPending          Status = "pending"
	StatusConverted        Status = "converted"
	StatusSkippedExtension Status = "skipped_extension"
	StatusSkippedNonTarget Status = "skipped_non_target"
	StatusSkippedUnchanged Status = "skipped_unchanged"
	StatusFailedRead       Status = "failed_read"
	StatusFailedException  Status = "failed_exception"
	StatusFailedNotExist   Status = "failed_not_exist"
)

var allStatuses = []Status{
	StatusPending,
	StatusConverted,
	StatusSkippedExtension,
	StatusSkippedNonTarget,
	StatusSkippedUnchanged,
	StatusFailedRead,
	StatusFailedException,
	StatusFailedNotExist,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether the status is the result of processing.
func (s Status) IsTerminal() bool {
	_, ok := statusSet[s]
	return ok && s != StatusPending
}

// IsSkipped reports whether the item was intentionally left alone.
func (s Status) IsSkipped() bool {
	return strings.HasPrefix(string(s), "skipped_")
}

// IsFailed reports whether processing the item failed.
func (s Status) IsFailed() bool {
	return strings.HasPrefix(string(s), "failed_")
}

// Label returns a short human-readable form for tables and prompts.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConverted:
		return "converted"
	case StatusSkippedExtension:
		return "skipped (extension)"
	case StatusSkippedNonTarget:
		return "skipped (not target language)"
	case StatusSkippedUnchanged:
		return "skipped (unchanged)"
	case StatusFailedRead:
		return "failed (read)"
	case StatusFailedException:
		return "failed (error)"
	case StatusFailedNotExist:
		return "failed (missing)"
	default:
		return string(s)
	}
}
