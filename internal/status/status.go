// Package status models the order status as a tagged variant instead of the
// flat string the wire uses. The cancellation family (refund and the cancel_*
// reason codes) collapses into a single Cancelled display state carrying the
// concrete reason; serialization maps back to the flat wire domain.
package status

import (
	"errors"
	"strings"

	"github.com/protektor-crm/orderdesk/internal/enum"
)

var (
	ErrUnknownStatus = errors.New("unknown status value")
	ErrNoReason      = errors.New("cancelled status requires a reason")
)

// Display value shown for any member of the cancellation family.
const DisplayCancelled = enum.StatusCancelled

// Status is either an active order state or a cancellation with a concrete
// reason code. The zero value is "new".
type Status struct {
	kind   string
	reason string
}

// Active returns a non-cancellation status.
func Active(kind string) Status {
	if kind == "" {
		kind = enum.StatusNew
	}
	return Status{kind: kind}
}

// Cancelled returns a cancellation status with the given reason code.
// The legacy alias "cancelled_refund" is folded into "refund".
func Cancelled(reason string) Status {
	if reason == "cancelled_refund" {
		reason = enum.StatusRefund
	}
	return Status{kind: enum.StatusCancelled, reason: reason}
}

// IsCancelReason reports whether v is a concrete cancellation reason code.
func IsCancelReason(v string) bool {
	return v == enum.StatusRefund || v == "cancelled_refund" || strings.HasPrefix(v, "cancel_")
}

var activeKinds = map[string]bool{
	enum.StatusNew:       true,
	enum.StatusNewPaid:   true,
	enum.StatusReserve:   true,
	enum.StatusTransfer:  true,
	enum.StatusDelivery:  true,
	enum.StatusCallback:  true,
	enum.StatusCompleted: true,
}

var cancelReasons = map[string]bool{
	enum.StatusRefund:            true,
	enum.StatusCancelNoAnswer:    true,
	enum.StatusCancelNotSuitYear: true,
	enum.StatusCancelWrongOrder:  true,
	enum.StatusCancelFoundOther:  true,
	enum.StatusCancelDelivTerms:  true,
	enum.StatusCancelNoQuantity:  true,
	enum.StatusCancelIncomplete:  true,
}

// FromWire parses a flat wire status. Members of the cancellation family come
// back as Cancelled with the reason preserved, so hydrating an order whose
// wire status is e.g. "cancel_no_answer" displays "cancelled" with that
// reason selected.
func FromWire(v string) (Status, error) {
	switch {
	case v == enum.StatusCancelled:
		// Parent state without a reason yet; valid in the UI, not on the wire.
		return Status{kind: enum.StatusCancelled}, nil
	case IsCancelReason(v):
		return Cancelled(v), nil
	case activeKinds[v]:
		return Active(v), nil
	}
	return Status{}, ErrUnknownStatus
}

// Wire serializes for submission. A cancellation is sent as its concrete
// reason code, never the literal "cancelled"; refund is sent verbatim as
// "refund". A cancellation without a chosen reason is an error.
func (s Status) Wire() (string, error) {
	if s.kind != enum.StatusCancelled {
		if s.kind == "" {
			return enum.StatusNew, nil
		}
		return s.kind, nil
	}
	if s.reason == "" {
		return "", ErrNoReason
	}
	return s.reason, nil
}

// Display returns the value the status selector shows: the parent "cancelled"
// state for any cancellation, the kind itself otherwise.
func (s Status) Display() string {
	if s.kind == "" {
		return enum.StatusNew
	}
	return s.kind
}

// Reason returns the concrete cancellation reason, or "" for active statuses.
func (s Status) Reason() string { return s.reason }

// IsCancellation reports whether the status belongs to the cancellation family.
func (s Status) IsCancellation() bool { return s.kind == enum.StatusCancelled }

// WithReason sets the cancellation reason, forcing the cancelled display
// state the way choosing a reason in the form flips the status selector.
func (s Status) WithReason(reason string) Status {
	return Cancelled(reason)
}

// ValidReason reports whether reason is one of the fixed reason codes.
func ValidReason(reason string) bool { return cancelReasons[reason] }

// ValidWire reports whether v is acceptable in a submitted payload.
func ValidWire(v string) bool {
	return activeKinds[v] || cancelReasons[v]
}
