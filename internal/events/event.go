// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"salesdesk_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCreated is published when a new lead enters the pipeline.
type LeadCreated struct {
	BaseEvent
	LeadID      string `json:"leadId"`
	CompanyName string `json:"companyName"`
	Source      string `json:"source"` // "manual" or "place_search"
}

func (e LeadCreated) EventName() string { return "leads.created" }

// LeadStatusChanged is published when a lead moves between kanban columns.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    string `json:"leadId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// StageCompleted is published when the operator marks an activation stage complete.
type StageCompleted struct {
	BaseEvent
	LeadID    string `json:"leadId"`
	Stage     string `json:"stage"`
	NextStage string `json:"nextStage,omitempty"`
}

func (e StageCompleted) EventName() string { return "leads.stage.completed" }

// =============================================================================
// Document Domain Events
// =============================================================================

// DocumentVerified is published when document intake ends in a verified slot.
type DocumentVerified struct {
	BaseEvent
	LeadID       string `json:"leadId"`
	DocumentType string `json:"documentType"`
	Attempts     int    `json:"attempts"`
}

func (e DocumentVerified) EventName() string { return "documents.verified" }

// DocumentNeedsReview is published when intake fails and the slot needs manual entry.
type DocumentNeedsReview struct {
	BaseEvent
	LeadID       string `json:"leadId"`
	DocumentType string `json:"documentType"`
	Reason       string `json:"reason"`
	Attempts     int    `json:"attempts"`
}

func (e DocumentNeedsReview) EventName() string { return "documents.needs_review" }

// =============================================================================
// Contract Domain Events
// =============================================================================

// ContractSent is published after the contract email is dispatched.
type ContractSent struct {
	BaseEvent
	LeadID      string `json:"leadId"`
	CompanyName string `json:"companyName"`
	Recipient   string `json:"recipient"`
}

func (e ContractSent) EventName() string { return "contracts.sent" }

// =============================================================================
// Scheduler Domain Events
// =============================================================================

// FollowUpDue is published by the worker when a scheduled follow-up fires.
type FollowUpDue struct {
	BaseEvent
	LeadID string `json:"leadId"`
	Status string `json:"status"` // lead status at scheduling time
}

func (e FollowUpDue) EventName() string { return "leads.follow_up.due" }
