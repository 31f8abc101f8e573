package order

import (
	"fmt"
	"strings"

	"vendorbot/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──accept──> Accepted ──assign──> Assigned ──deliver──> Delivered
//	   │
//	   └────reject────> Rejected
//
// Rejected and Delivered are final. No action applies twice and none skips a state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the vendor has not decided yet.
	Pending

	// Accepted means the vendor will fulfil the order.
	Accepted

	// Rejected means the vendor declined the order. Final.
	Rejected

	// Assigned means a delivery agent has been given the order.
	Assigned

	// Delivered means the order reached the customer. Final.
	Delivered
)

// Action is a vendor decision applied to an order.
type Action string

const (
	Accept  Action = "accept"
	Reject  Action = "reject"
	Assign  Action = "assign"
	Deliver Action = "deliver"
)

// getTransitions is the full transition table. Anything missing is invalid.
func getTransitions() map[Status]map[Action]Status {
	return map[Status]map[Action]Status{
		Pending:  {Accept: Accepted, Reject: Rejected},
		Accepted: {Assign: Assigned},
		Assigned: {Deliver: Delivered},
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		Rejected:  "rejected",
		Assigned:  "assigned",
		Delivered: "delivered",
	}
}

// ParseStatus maps a state name ("pending", "Accepted", ...) to its Status.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", s))
}

// ParseAction maps an action name to its Action.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case Accept, Reject, Assign, Deliver:
		return a, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", s))
}

// Validate checks that s is one of the defined statuses (Unknown excluded).
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lower-case state name, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no action can leave s.
func (s Status) IsFinal() bool {
	return s == Rejected || s == Delivered
}

// Next returns the status reached by applying action to s, or an
// InvalidTransitionError naming the current state.
func (s Status) Next(action Action) (Status, error) {
	if next, ok := getTransitions()[s][action]; ok {
		return next, nil
	}
	return Unknown, errs.NewInvalidTransitionError(s.String(), string(action))
}

// Allowed lists the actions valid from s, in table order.
func (s Status) Allowed() []Action {
	allowed := make([]Action, 0, 2)
	for _, a := range []Action{Accept, Reject, Assign, Deliver} {
		if _, ok := getTransitions()[s][a]; ok {
			allowed = append(allowed, a)
		}
	}
	return allowed
}

// ValidateCanHaveAgent checks the agent invariant: an agent contact is present
// exactly when the status is Assigned or Delivered.
func (s Status) ValidateCanHaveAgent(agent bool) error {
	requiresAgent := s == Assigned || s == Delivered

	if agent && !requiresAgent {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a delivery agent", s.String()),
		)
	}

	if !agent && requiresAgent {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no delivery agent", s.String()),
		)
	}

	return nil
}
