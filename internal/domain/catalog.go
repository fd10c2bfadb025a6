package domain

import "time"

// Plan is a catalog bundle of maintenance tasks offered as a service tier.
type Plan struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Task struct {
	ID        string
	PlanID    string
	Name      string
	Kind      TaskKind
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlanWithTasks is a catalog plan joined with the tasks it owns.
type PlanWithTasks struct {
	Plan  Plan
	Tasks []Task
}

// TaskByID returns the catalog task with the given id, if the plan owns it.
func (p PlanWithTasks) TaskByID(id string) (Task, bool) {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

type City struct {
	ID     string
	Name   string
	Region string
}

// Team is a field crew that performs visits.
type Team struct {
	ID     string
	Name   string
	Leader string
}
