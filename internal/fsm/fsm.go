// Package fsm holds the allowed status transitions of every entity that has a
// lifecycle. Actions consult it before writing a new status.
package fsm

import "tesBack/internal/models"

type Machine string

const (
	Property    Machine = "property"
	Appointment Machine = "appointment"
	Review      Machine = "review"
	Agent       Machine = "agent"
)

type set map[string]struct{}

var transitions = map[Machine]map[string]set{
	// Editing a property sends it back to pending from any state.
	Property: {
		models.PropertyPending:  {models.PropertyActive: {}, models.PropertyRejected: {}, models.PropertyPending: {}},
		models.PropertyActive:   {models.PropertyPending: {}},
		models.PropertyRejected: {models.PropertyPending: {}},
	},
	// pending -> pending is a reschedule.
	Appointment: {
		models.AppointmentPending: {
			models.AppointmentConfirmed: {},
			models.AppointmentCancelled: {},
			models.AppointmentPending:   {},
		},
		models.AppointmentConfirmed: {
			models.AppointmentCompleted: {},
			models.AppointmentCancelled: {},
			models.AppointmentPending:   {},
		},
		models.AppointmentCompleted: {},
		models.AppointmentCancelled: {},
	},
	Review: {
		models.ReviewPending:   {models.ReviewPublished: {}},
		models.ReviewPublished: {},
	},
	Agent: {
		models.AgentPending:  {models.AgentApproved: {}, models.AgentRejected: {}},
		models.AgentApproved: {},
		models.AgentRejected: {},
	},
}

// CanTransition reports whether m allows moving from one status to another.
func CanTransition(m Machine, from, to string) bool {
	allowed, ok := transitions[m][from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(m Machine, status string) bool {
	allowed, ok := transitions[m][status]
	return ok && len(allowed) == 0
}
