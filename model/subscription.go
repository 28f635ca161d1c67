package model

import (
	"time"
)

// ExpiredSentinel marks a tracked entry whose expiration has been applied.
const ExpiredSentinel = "E"

// AnnotationSpecific is the trailing marker some writers append to the date.
const AnnotationSpecific = " (specific)"

// TrackedEntry is one cache key and the raw value stored under it.
type TrackedEntry struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type DecisionKind int

const (
	DecisionMalformed DecisionKind = iota
	DecisionAlreadyExpired
	DecisionDueNow
	DecisionDueLater
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionAlreadyExpired:
		return "already_expired"
	case DecisionDueNow:
		return "due_now"
	case DecisionDueLater:
		return "due_later"
	default:
		return "malformed"
	}
}

// Decision is the outcome of evaluating one tracked entry at a point in time.
// ExpireAt and Delay are only set for DueNow and DueLater.
type Decision struct {
	ID         string
	Kind       DecisionKind
	ExpireAt   time.Time
	Delay      time.Duration
	Annotation string
	Err        error
}

// Immediate reports whether the applier should run without waiting.
func (d Decision) Immediate() bool {
	return d.Kind == DecisionAlreadyExpired || d.Kind == DecisionDueNow
}

// PassSummary describes one scan-evaluate cycle.
type PassSummary struct {
	PassID         string        `json:"pass_id"`
	Trigger        string        `json:"trigger"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
	Keys           int           `json:"keys"`
	AlreadyExpired int           `json:"already_expired"`
	DueNow         int           `json:"due_now"`
	DueLater       int           `json:"due_later"`
	Malformed      int           `json:"malformed"`
	Missing        int           `json:"missing"`
	Failed         int           `json:"failed"`
}

// Record counts a decision into the summary.
func (s *PassSummary) Record(kind DecisionKind) {
	switch kind {
	case DecisionAlreadyExpired:
		s.AlreadyExpired++
	case DecisionDueNow:
		s.DueNow++
	case DecisionDueLater:
		s.DueLater++
	default:
		s.Malformed++
	}
}

// Subscriber is the mirrored row in the relational users table.
type Subscriber struct {
	ID         uint   `gorm:"primaryKey;column:id"`
	FBID       string `gorm:"column:fbid;uniqueIndex;size:64"`
	ExpireDate string `gorm:"column:expireDate;size:64"`
}

func (Subscriber) TableName() string {
	return "users"
}
