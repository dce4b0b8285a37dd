package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ApprovalStatus gates visibility of ingested records. Every committed row
// starts pending; approved and rejected are terminal for the approval
// lifecycle (field edits remain possible without touching status).
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

var (
	ErrUnknownStatus  = errors.New("unknown approval status")
	ErrAlreadyDecided = errors.New("approval already decided")
)

var allowedStatuses = map[ApprovalStatus]struct{}{
	StatusPending:  {},
	StatusApproved: {},
	StatusRejected: {},
}

func NormalizeApprovalStatus(status string) (ApprovalStatus, error) {
	trimmed := ApprovalStatus(strings.ToLower(strings.TrimSpace(status)))
	if _, ok := allowedStatuses[trimmed]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return trimmed, nil
}

// DecideApproval validates a moderation transition. Repeating an already
// applied decision is a no-op success (changed=false). Flipping between the
// two terminal states is refused, and nothing ever re-enters pending.
func DecideApproval(current, target ApprovalStatus) (changed bool, err error) {
	if _, ok := allowedStatuses[target]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownStatus, target)
	}
	if target == StatusPending {
		return false, fmt.Errorf("%w: cannot re-enter pending", ErrAlreadyDecided)
	}
	if current == target {
		return false, nil
	}
	if current != StatusPending {
		return false, fmt.Errorf("%w: %s -> %s", ErrAlreadyDecided, current, target)
	}
	return true, nil
}
