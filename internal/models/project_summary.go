package models

import "github.com/shopspring/decimal"

// ProjectSummary is the read model handed to the presentation layer
type ProjectSummary struct {
	Project          *Project        `json:"project"`
	StatusLabel      string          `json:"status_label"`
	CurrencyLabel    string          `json:"currency_label"`
	TotalPledged     decimal.Decimal `json:"total_pledged"`
	PercentageFunded decimal.Decimal `json:"percentage_funded"`
	TimeRemaining    TimeRemaining   `json:"time_remaining"`
	RewardTiers      []*RewardTier   `json:"reward_tiers"`
	BackerCount      int             `json:"backer_count"`
}

// PledgeView is a pledge joined with the title of the backed project
type PledgeView struct {
	Pledge       *Pledge       `json:"pledge"`
	ProjectTitle string        `json:"project_title"`
	Status       ProjectStatus `json:"project_status"`
}
