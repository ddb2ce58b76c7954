package store

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Comp holds compensation details for one application.
type Comp struct {
	Base              int     `json:"base"`
	EquityTotal       int     `json:"equity_total"`
	EquityVestYears   int     `json:"equity_vest_years"`
	EquityAnnual      int     `json:"equity_annual"`
	BonusTargetPct    float64 `json:"bonus_target_pct"`
	BonusAmount       int     `json:"bonus_amount"`
	Level             string  `json:"level"`
	Location          string  `json:"location"`
	Remote            bool    `json:"remote"`
	Notes             string  `json:"notes"`
	TotalCompEstimate int     `json:"total_comp_estimate"`
	UpdatedAt         string  `json:"updated_at"`
}

// Application is one tracked job application.
type Application struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	NextSteps   string `json:"next_steps,omitempty"`
	Contact     string `json:"contact,omitempty"`
	Notes       string `json:"notes,omitempty"`
	AppliedDate string `json:"applied_date,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
	Comp        *Comp  `json:"comp,omitempty"`
}

// closedStatuses end an application's life in the pipeline.
var closedStatuses = map[string]bool{
	"rejected": true,
	"withdrew": true,
	"closed":   true,
	"declined": true,
}

// Active reports whether the application is still live in the pipeline.
func (a *Application) Active() bool {
	return !closedStatuses[strings.ToLower(a.Status)]
}

// PipelineData is the on-disk shape of status.json.
type PipelineData struct {
	Applications []*Application `json:"applications"`
	LastUpdated  string         `json:"last_updated,omitempty"`
}

// Find locates an application by company and role, case-insensitive.
// Falls back to a company-only match so "update FanDuel" works without
// retyping the exact role.
func (d *PipelineData) Find(company, role string) *Application {
	cl, rl := strings.ToLower(company), strings.ToLower(role)
	for _, a := range d.Applications {
		if strings.ToLower(a.Company) == cl && strings.ToLower(a.Role) == rl {
			return a
		}
	}
	for _, a := range d.Applications {
		if strings.ToLower(a.Company) == cl {
			return a
		}
	}
	return nil
}

// Active returns applications that have not been closed out.
func (d *PipelineData) Active() []*Application {
	var out []*Application
	for _, a := range d.Applications {
		if a.Active() {
			out = append(out, a)
		}
	}
	return out
}

// Pipeline is the application tracker backed by status.json.
type Pipeline struct {
	Path string
}

func NewPipeline(path string) *Pipeline {
	return &Pipeline{Path: path}
}

func (p *Pipeline) Load() *PipelineData {
	data := LoadJSON(p.Path, PipelineData{})
	return &data
}

func (p *Pipeline) save(d *PipelineData) error {
	d.LastUpdated = Now()
	if d.Applications == nil {
		d.Applications = []*Application{}
	}
	return SaveJSON(p.Path, d)
}

// Upsert adds or updates an application. Returns "Added" or "Updated".
// Matching is by company+role first, then company alone, so a status
// change never clobbers a different company's entry.
func (p *Pipeline) Upsert(company, role, status, nextSteps, contact, notes string) (string, error) {
	d := p.Load()

	action := "Updated"
	app := d.Find(company, role)
	if app == nil {
		app = &Application{Company: company, AppliedDate: Now()}
		d.Applications = append(d.Applications, app)
		action = "Added"
	}

	app.Role = role
	app.Status = status
	app.NextSteps = nextSteps
	app.Contact = contact
	app.Notes = notes
	app.LastUpdated = Now()

	if err := p.save(d); err != nil {
		return "", err
	}
	return action, nil
}

// CompInput carries the raw compensation figures for SetComp.
type CompInput struct {
	Base            int
	EquityTotal     int
	EquityVestYears int
	BonusTargetPct  float64
	Level           string
	Location        string
	Remote          bool
	Notes           string
}

// SetComp records compensation details on an application, creating a
// placeholder "tracking" entry when the application isn't in the pipeline
// yet. Annual equity is the grant spread over the vest period; the bonus is
// the target percentage of base.
func (p *Pipeline) SetComp(company, role string, in CompInput) (*Application, error) {
	d := p.Load()

	app := d.Find(company, role)
	if app == nil {
		app = &Application{
			Company:     company,
			Role:        role,
			Status:      "tracking",
			AppliedDate: Now(),
			LastUpdated: Now(),
		}
		d.Applications = append(d.Applications, app)
	}

	annualEquity := 0.0
	if in.EquityVestYears > 0 {
		annualEquity = float64(in.EquityTotal) / float64(in.EquityVestYears)
	}
	bonusAmount := 0
	if in.Base > 0 && in.BonusTargetPct > 0 {
		bonusAmount = int(float64(in.Base) * in.BonusTargetPct / 100)
	}
	total := float64(in.Base) + annualEquity + float64(bonusAmount)

	app.Comp = &Comp{
		Base:              in.Base,
		EquityTotal:       in.EquityTotal,
		EquityVestYears:   in.EquityVestYears,
		EquityAnnual:      int(math.Round(annualEquity)),
		BonusTargetPct:    in.BonusTargetPct,
		BonusAmount:       bonusAmount,
		Level:             in.Level,
		Location:          in.Location,
		Remote:            in.Remote,
		Notes:             in.Notes,
		TotalCompEstimate: int(math.Round(total)),
		UpdatedAt:         Now(),
	}
	app.LastUpdated = Now()

	if err := p.save(d); err != nil {
		return nil, err
	}
	return app, nil
}

// WithComp returns applications that have compensation data, sorted by
// total comp estimate descending.
func (d *PipelineData) WithComp() []*Application {
	var out []*Application
	for _, a := range d.Applications {
		if a.Comp != nil {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Comp.TotalCompEstimate > out[j].Comp.TotalCompEstimate
	})
	return out
}

// Summary returns the one-line confirmation label for an application.
func (a *Application) Summary() string {
	return fmt.Sprintf("%s — %s (%s)", a.Company, a.Role, a.Status)
}
