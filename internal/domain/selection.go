package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanSelection is a plan as chosen inside one quote or contract.
type PlanSelection struct {
	ID             string
	OriginType     OriginType
	OriginID       string
	PlanID         string
	CustomName     string
	ReferencePrice decimal.Decimal
	CreatedAt      time.Time
}

// TaskSelection copies a catalog task into a plan selection together with its
// per-document flags. It has no live link to the catalog once created.
type TaskSelection struct {
	ID              string
	PlanSelectionID string
	TaskID          string
	Included        bool
	VisibleToCrew   bool
	Observation     string
	CreatedAt       time.Time
}

// StagedTask is a working copy of a catalog task inside a document being composed.
type StagedTask struct {
	TaskID        string
	Name          string
	Included      bool
	VisibleToCrew bool
	Observation   string
}

// AddedPlan is a plan committed to a document being composed, with its tasks.
type AddedPlan struct {
	PlanID         string
	Name           string
	CustomName     string
	ReferencePrice decimal.Decimal
	Tasks          []StagedTask
}

// DisplayName prefers the custom name over the catalog name.
func (a AddedPlan) DisplayName() string {
	return CoalesceStr(a.CustomName, a.Name)
}

// SelectionWithTasks is a persisted plan selection joined with its tasks.
type SelectionWithTasks struct {
	Selection PlanSelection
	Tasks     []TaskSelection
}
