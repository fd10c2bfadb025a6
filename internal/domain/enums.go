package domain

import (
	"fmt"
	"strings"
	"time"
)

type ClientStatus string

const (
	ClientProspect ClientStatus = "prospect"
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

type QuoteStatus string

const (
	QuotePending   QuoteStatus = "pending"
	QuoteSent      QuoteStatus = "sent"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteDiscarded QuoteStatus = "discarded"
)

type ContractStatus string

const (
	ContractActive    ContractStatus = "active"
	ContractSuspended ContractStatus = "suspended"
	ContractFinished  ContractStatus = "finished"
	ContractCancelled ContractStatus = "cancelled"
)

type VisitStatus string

const (
	VisitScheduled   VisitStatus = "scheduled"
	VisitInProgress  VisitStatus = "in_progress"
	VisitCompleted   VisitStatus = "completed"
	VisitRescheduled VisitStatus = "rescheduled"
	VisitCancelled   VisitStatus = "cancelled"
)

type VisitType string

const (
	VisitRegular VisitType = "regular"
	VisitExtra   VisitType = "extra"
)

// OriginType identifies the document that owns a plan selection.
type OriginType string

const (
	OriginQuote    OriginType = "quote"
	OriginContract OriginType = "contract"
)

type TaskKind string

const (
	TaskPredefined TaskKind = "predefined"
	TaskCustom     TaskKind = "custom"
)

type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyOneOff   Frequency = "one_off"
)

// TaskFlag names a per-task override toggled in the plan builder.
type TaskFlag string

const (
	FlagIncluded      TaskFlag = "included"
	FlagVisibleToCrew TaskFlag = "visible_to_crew"
)

var (
	validClientStatuses   = map[ClientStatus]bool{ClientProspect: true, ClientActive: true, ClientInactive: true}
	validQuoteStatuses    = map[QuoteStatus]bool{QuotePending: true, QuoteSent: true, QuoteAccepted: true, QuoteDiscarded: true}
	validContractStatuses = map[ContractStatus]bool{ContractActive: true, ContractSuspended: true, ContractFinished: true, ContractCancelled: true}
	validVisitStatuses    = map[VisitStatus]bool{VisitScheduled: true, VisitInProgress: true, VisitCompleted: true, VisitRescheduled: true, VisitCancelled: true}
	validFrequencies      = map[Frequency]bool{FrequencyWeekly: true, FrequencyBiweekly: true, FrequencyMonthly: true, FrequencyOneOff: true}
	validTaskKinds        = map[TaskKind]bool{TaskPredefined: true, TaskCustom: true}
	validVisitTypes       = map[VisitType]bool{VisitRegular: true, VisitExtra: true}
)

func (s ClientStatus) Valid() bool   { return validClientStatuses[s] }
func (s QuoteStatus) Valid() bool    { return validQuoteStatuses[s] }
func (s ContractStatus) Valid() bool { return validContractStatuses[s] }
func (s VisitStatus) Valid() bool    { return validVisitStatuses[s] }
func (f Frequency) Valid() bool      { return validFrequencies[f] }
func (k TaskKind) Valid() bool       { return validTaskKinds[k] }
func (t VisitType) Valid() bool      { return validVisitTypes[t] }

// ParseQuoteStatus converts user input into a QuoteStatus.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	st := QuoteStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown quote status %q", ErrValidation, s)
	}
	return st, nil
}

// ParseContractStatus converts user input into a ContractStatus.
func ParseContractStatus(s string) (ContractStatus, error) {
	st := ContractStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown contract status %q", ErrValidation, s)
	}
	return st, nil
}

// ParseVisitStatus converts user input into a VisitStatus.
func ParseVisitStatus(s string) (VisitStatus, error) {
	st := VisitStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown visit status %q", ErrValidation, s)
	}
	return st, nil
}

// ParseFrequency accepts the canonical names plus a few aliases.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly", "semanal":
		return FrequencyWeekly, nil
	case "biweekly", "fortnightly", "quincenal":
		return FrequencyBiweekly, nil
	case "monthly", "mensual":
		return FrequencyMonthly, nil
	case "one_off", "once", "puntual":
		return FrequencyOneOff, nil
	}
	return "", fmt.Errorf("%w: unknown frequency %q", ErrValidation, s)
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
	"domingo": time.Sunday, "lunes": time.Monday, "martes": time.Tuesday,
	"miercoles": time.Wednesday, "miércoles": time.Wednesday, "jueves": time.Thursday,
	"viernes": time.Friday, "sabado": time.Saturday, "sábado": time.Saturday,
}

// ParseWeekday accepts English or Spanish day names, case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	if d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return time.Sunday, fmt.Errorf("%w: unknown weekday %q", ErrValidation, s)
}

// WeekdayName returns the lowercase English name used for storage.
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}
