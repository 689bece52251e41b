package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents where a project is in its funding lifecycle
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "DRAFT"
	ProjectStatusActive     ProjectStatus = "ACTIVE"
	ProjectStatusSuccessful ProjectStatus = "SUCCESSFUL"
	ProjectStatusNotFunded  ProjectStatus = "NOT_FUNDED"
	ProjectStatusCanceled   ProjectStatus = "CANCELED"
)

// IsTerminal reports whether no further transitions are possible
func (s ProjectStatus) IsTerminal() bool {
	switch s {
	case ProjectStatusSuccessful, ProjectStatusNotFunded, ProjectStatusCanceled:
		return true
	}
	return false
}

// Currency is the display currency of a project goal
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyCAD Currency = "CAD"
)

var currencyLabels = map[Currency]string{
	CurrencyUSD: "$",
	CurrencyEUR: "€",
	CurrencyCAD: "CAD",
}

// Label returns the symbol shown next to amounts
func (c Currency) Label() string {
	return currencyLabels[c]
}

func (c Currency) IsValid() bool {
	_, ok := currencyLabels[c]
	return ok
}

// DefaultDurationDays is how long a published project collects pledges
const DefaultDurationDays = 60

// TimeUnit is the unit of a TimeRemaining value
type TimeUnit string

const (
	TimeUnitDays     TimeUnit = "days"
	TimeUnitHours    TimeUnit = "hours"
	TimeUnitFinished TimeUnit = "finished"
)

// TimeRemaining is a coarse, human oriented countdown
type TimeRemaining struct {
	Amount int      `json:"amount"`
	Unit   TimeUnit `json:"unit"`
}

// IsFinished reports whether the funding period is over
func (t TimeRemaining) IsFinished() bool {
	return t.Unit == TimeUnitFinished
}

type Project struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Goal         decimal.Decimal `json:"goal"`
	Currency     Currency        `json:"currency"`
	CoverImage   string          `json:"cover_image,omitempty"`
	Status       ProjectStatus   `json:"status"`
	DurationDays int             `json:"duration_days"`
	CreatedBy    uuid.UUID       `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	PublishedOn  *time.Time      `json:"published_on,omitempty"`
}

// NewProject creates a draft project owned by createdBy
func NewProject(createdBy uuid.UUID, title, description string, goal decimal.Decimal, currency Currency, coverImage string) *Project {
	if currency == "" {
		currency = CurrencyUSD
	}
	return &Project{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(title),
		Description:  strings.TrimSpace(description),
		Goal:         goal,
		Currency:     currency,
		CoverImage:   coverImage,
		Status:       ProjectStatusDraft,
		DurationDays: DefaultDurationDays,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now().UTC(),
	}
}

var (
	ErrProjectTitleRequired = &ValidationError{Field: "title", Message: "Project title is required"}
	ErrProjectGoalInvalid   = &ValidationError{Field: "goal", Message: "Project goal must be greater than zero"}
	ErrProjectCurrency      = &ValidationError{Field: "currency", Message: "Unsupported currency"}
	ErrProjectDuration      = &ValidationError{Field: "duration_days", Message: "Project duration must be at least one day"}
	ErrProjectOwnerRequired = &ValidationError{Field: "created_by", Message: "Project owner is required"}
)

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrProjectTitleRequired
	}
	if !p.Goal.IsPositive() {
		return ErrProjectGoalInvalid
	}
	if !p.Currency.IsValid() {
		return ErrProjectCurrency
	}
	if p.DurationDays < 1 {
		return ErrProjectDuration
	}
	if p.CreatedBy == uuid.Nil {
		return ErrProjectOwnerRequired
	}
	return nil
}

func (p *Project) IsDraft() bool {
	return p.Status == ProjectStatusDraft
}

func (p *Project) IsActive() bool {
	return p.Status == ProjectStatusActive
}

// Duration is the length of the funding period
func (p *Project) Duration() time.Duration {
	return time.Duration(p.DurationDays) * 24 * time.Hour
}

// FinishedOn returns the end of the funding period. ok is false while the
// project has never been published.
func (p *Project) FinishedOn() (finishedOn time.Time, ok bool) {
	if p.PublishedOn == nil {
		return time.Time{}, false
	}
	return p.PublishedOn.Add(p.Duration()), true
}

// TimeRemaining reports the time left until FinishedOn relative to now, in whole
// days when at least one day is left, otherwise in whole hours (so less than an
// hour reads as 0 hours). Once the period is over the unit is TimeUnitFinished.
// Unpublished projects report their full duration.
func (p *Project) TimeRemaining(now time.Time) TimeRemaining {
	finishedOn, ok := p.FinishedOn()
	if !ok {
		return TimeRemaining{Amount: p.DurationDays, Unit: TimeUnitDays}
	}

	remaining := finishedOn.Sub(now)
	if remaining <= 0 {
		return TimeRemaining{Amount: 0, Unit: TimeUnitFinished}
	}

	if days := int(remaining / (24 * time.Hour)); days >= 1 {
		return TimeRemaining{Amount: days, Unit: TimeUnitDays}
	}

	return TimeRemaining{Amount: int(remaining / time.Hour), Unit: TimeUnitHours}
}

// Publish opens the project for pledges
func (p *Project) Publish(now time.Time) error {
	if p.Status != ProjectStatusDraft {
		return &TransitionError{From: p.Status, Action: "publish"}
	}
	publishedOn := now.UTC()
	p.Status = ProjectStatusActive
	p.PublishedOn = &publishedOn
	return nil
}

// Cancel stops a draft or active project
func (p *Project) Cancel() error {
	if p.Status.IsTerminal() {
		return &TransitionError{From: p.Status, Action: "cancel"}
	}
	p.Status = ProjectStatusCanceled
	return nil
}

// RefreshStatus settles an active project whose funding period is over:
// SUCCESSFUL when totalPledged reaches the goal, NOT_FUNDED otherwise.
// Every other status is left alone. It reports whether the status changed and
// is safe to call any number of times.
func (p *Project) RefreshStatus(now time.Time, totalPledged decimal.Decimal) bool {
	if p.Status != ProjectStatusActive {
		return false
	}
	if !p.TimeRemaining(now).IsFinished() {
		return false
	}

	if totalPledged.GreaterThanOrEqual(p.Goal) {
		p.Status = ProjectStatusSuccessful
	} else {
		p.Status = ProjectStatusNotFunded
	}
	return true
}

// TotalPledgedAmount sums the pledges that reference this project
func (p *Project) TotalPledgedAmount(pledges []*Pledge) decimal.Decimal {
	total := decimal.Zero
	for _, pledge := range pledges {
		if pledge.ProjectID != p.ID {
			continue
		}
		total = total.Add(pledge.Amount)
	}
	return total
}

var hundred = decimal.NewFromInt(100)

// PercentageFunded is totalPledged / goal * 100
func (p *Project) PercentageFunded(totalPledged decimal.Decimal) decimal.Decimal {
	if !p.Goal.IsPositive() {
		return decimal.Zero
	}
	return totalPledged.Div(p.Goal).Mul(hundred)
}
