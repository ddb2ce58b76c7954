package mcp

import (
	"context"
	"fmt"
	"strings"

	"jobcontext/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerCompTools() {
	s.mcpServer.AddTool(mcp.NewTool("update_compensation",
		mcp.WithDescription("Record or update compensation details for a tracked application. All dollar figures are annual USD. Creates a 'tracking' pipeline entry if the company isn't in the pipeline yet."),
		mcp.WithString("company", mcp.Required(), mcp.Description("Company name")),
		mcp.WithString("role", mcp.Required(), mcp.Description("Role title")),
		mcp.WithNumber("base", mcp.Description("Base salary, e.g. 180000")),
		mcp.WithNumber("equity_total", mcp.Description("Total equity grant value over the full vest period")),
		mcp.WithNumber("equity_vest_years", mcp.Description("Vest period in years (default 4)")),
		mcp.WithNumber("bonus_target_pct", mcp.Description("Target bonus as a percent of base, e.g. 15")),
		mcp.WithString("level", mcp.Description("Level or band, e.g. 'L5', 'Senior', 'IC3'")),
		mcp.WithString("location", mcp.Description("Office location or 'remote'")),
		mcp.WithBoolean("remote", mcp.Description("Whether the role is remote")),
		mcp.WithString("notes", mcp.Description("Anything else — refresh policy, sign-on, negotiation state")),
	), s.handleUpdateCompensation)

	s.mcpServer.AddTool(mcp.NewTool("get_compensation_comparison",
		mcp.WithDescription("Side-by-side comparison table of all tracked compensation packages, ranked by estimated total comp."),
	), s.handleGetCompensationComparison)
}

func (s *Server) handleUpdateCompensation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}
	role, err := req.RequireString("role")
	if err != nil {
		return errResult("%v", err)
	}

	app, err := s.pipeline.SetComp(company, role, store.CompInput{
		Base:            req.GetInt("base", 0),
		EquityTotal:     req.GetInt("equity_total", 0),
		EquityVestYears: req.GetInt("equity_vest_years", 4),
		BonusTargetPct:  req.GetFloat("bonus_target_pct", 0),
		Level:           req.GetString("level", ""),
		Location:        req.GetString("location", ""),
		Remote:          req.GetBool("remote", false),
		Notes:           req.GetString("notes", ""),
	})
	if err != nil {
		return errResult("failed to save compensation: %v", err)
	}

	c := app.Comp
	return textResult(fmt.Sprintf(
		"✓ Comp updated: %s — %s\n"+
			"  Base: $%s  |  Equity: $%s over %dyr  |  Bonus target: %g%%\n"+
			"  Estimated total comp: $%s/yr",
		app.Company, app.Role,
		commafy(c.Base), commafy(c.EquityTotal), c.EquityVestYears, c.BonusTargetPct,
		commafy(c.TotalCompEstimate)))
}

func (s *Server) handleGetCompensationComparison(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ranked := s.pipeline.Load().WithComp()
	if len(ranked) == 0 {
		return textResult("No compensation data tracked yet.\n" +
			"Use update_compensation(company, role, base=...) to add comp details.")
	}

	rule := strings.Repeat("─", 110)
	lines := []string{
		"═══ COMPENSATION COMPARISON ═══",
		"",
		fmt.Sprintf("%-18s %-30s %-8s %10s %10s %8s %12s  Location",
			"Company", "Role", "Level", "Base", "Eq/yr", "Bonus", "Total"),
		rule,
	}

	for _, app := range ranked {
		c := app.Comp
		loc := c.Location
		if loc == "" {
			loc = "—"
		}
		if c.Remote {
			loc += " (remote)"
		}
		lines = append(lines, fmt.Sprintf("%-18s %-30s %-8s %10s %10s %8s %12s  %s",
			truncate(app.Company, 17),
			truncate(app.Role, 29),
			truncate(orDash(c.Level), 7),
			dollarOrDash(c.Base),
			dollarOrDash(c.EquityAnnual),
			pctOrDash(c.BonusTargetPct),
			dollarOrDash(c.TotalCompEstimate),
			truncate(loc, 20)))
		if c.Notes != "" {
			lines = append(lines, fmt.Sprintf("  %-18s ↳ %s", "", c.Notes))
		}
	}

	plural := "s"
	if len(ranked) == 1 {
		plural = ""
	}
	top := ranked[0]
	lines = append(lines,
		rule,
		"",
		fmt.Sprintf("Tracking %d offer(%s) / package(%s).", len(ranked), plural, plural),
		fmt.Sprintf("Highest total comp: %s — $%s/yr", top.Company, commafy(top.Comp.TotalCompEstimate)))

	return textResult(strings.Join(lines, "\n"))
}

// commafy renders an integer with thousands separators, e.g. 180000 -> "180,000".
func commafy(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func dollarOrDash(n int) string {
	if n == 0 {
		return "—"
	}
	return "$" + commafy(n)
}

func pctOrDash(pct float64) string {
	if pct == 0 {
		return "—"
	}
	return fmt.Sprintf("%g%%", pct)
}
