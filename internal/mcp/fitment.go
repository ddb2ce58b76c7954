package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// strategyOrder keeps the "available options" listing stable.
var strategyOrder = []string{
	"testing", "cloud", "data_engineering", "backend", "fullstack", "ai_innovation", "iot",
}

var strategies = map[string]string{
	"testing": "Lead with JUnit/Mockito/Selenium expertise, 80%+ coverage metrics, TDD practices. " +
		"Feature the 'prevented production defects' story. " +
		"Highlight Karma/Jest for frontend testing.",
	"cloud": "Lead with Azure Container Apps, Terraform IaC, zero-downtime PCF→OCF→Azure migration. " +
		"Emphasize containerization, CI/CD pipelines, and infrastructure-as-code.",
	"data_engineering": "Lead with IBM DataStage, PySpark ETL pipelines, Oracle→PostgreSQL migration. " +
		"Emphasize data modeling, multi-source integration, and warehouse work.",
	"backend": "Lead with microservices architecture, event-driven pub/sub, Spring Boot, " +
		"98% SLA compliance on production forecasting app. " +
		"Emphasize distributed systems debugging, on-call rotation, observability.",
	"fullstack": "Lead with Java/Spring Boot + Angular/TypeScript full ownership. " +
		"Emphasize API design, end-to-end modernization, cross-functional product work.",
	"ai_innovation": "Lead with GitHub Copilot champion story: 35% org adoption, 3.5x target. " +
		"Emphasize technical evangelism, AI tooling adoption, and measurable team impact.",
	"iot": "Lead with IoT Engineering degree, RetrosPiCam project (FastAPI + Raspberry Pi + servo HAT), " +
		"hardware/software integration, and Azure edge/cloud connectivity. " +
		"Tie in LiveVox latency work (2.8ms web, 12.7ms iOS) as embedded-adjacent.",
}

// inferRoleType maps a free-form role title onto a customization strategy key.
func inferRoleType(role string) string {
	rl := strings.ToLower(role)
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(rl, w) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("test", "qa", "quality", "sdet", "automation"):
		return "testing"
	case contains("cloud", "devops", "sre", "platform", "infrastructure", "reliability"):
		return "cloud"
	case contains("data", "etl", "pipeline", "warehouse", "analytics"):
		return "data_engineering"
	case contains("full", "fullstack", "full-stack"):
		return "fullstack"
	case contains("ai", "ml", "machine learning", "llm", "foundation"):
		return "ai_innovation"
	case contains("iot", "embedded", "firmware", "hardware"):
		return "iot"
	default:
		return "backend"
	}
}

func customizationStrategy(roleType string) (string, bool) {
	strategy, ok := strategies[strings.ToLower(roleType)]
	return strategy, ok
}

func (s *Server) registerFitmentTools() {
	s.mcpServer.AddTool(mcp.NewTool("assess_job_fitment",
		mcp.WithDescription("Assemble a job description and the master resume side by side so the fit can be assessed — strengths, gaps, and whether the role is worth pursuing."),
		mcp.WithString("company", mcp.Required(), mcp.Description("Company name")),
		mcp.WithString("role", mcp.Required(), mcp.Description("Role title")),
		mcp.WithString("job_description", mcp.Required(), mcp.Description("Full job description text")),
	), s.handleAssessJobFitment)

	s.mcpServer.AddTool(mcp.NewTool("get_customization_strategy",
		mcp.WithDescription("Get the resume customization strategy for a role type. Options: testing, cloud, data_engineering, backend, fullstack, ai_innovation, iot."),
		mcp.WithString("role_type", mcp.Required(), mcp.Description("Role type key, e.g. 'backend'")),
	), s.handleGetCustomizationStrategy)
}

func (s *Server) handleAssessJobFitment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("company")
	if err != nil {
		return errResult("%v", err)
	}
	role, err := req.RequireString("role")
	if err != nil {
		return errResult("%v", err)
	}
	jd, err := req.RequireString("job_description")
	if err != nil {
		return errResult("%v", err)
	}

	return textResult(fmt.Sprintf(
		"═══ FITMENT ASSESSMENT ═══\n"+
			"Company: %s\n"+
			"Role:    %s\n\n"+
			"──── JOB DESCRIPTION ────\n%s\n\n"+
			"──── MASTER RESUME ────\n%s",
		company, role, jd, s.ws.ReadMasterResume()))
}

func (s *Server) handleGetCustomizationStrategy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	roleType, err := req.RequireString("role_type")
	if err != nil {
		return errResult("%v", err)
	}
	strategy, ok := customizationStrategy(roleType)
	if !ok {
		return textResult(fmt.Sprintf("Unknown role type: '%s'\nAvailable options: %s",
			roleType, strings.Join(strategyOrder, ", ")))
	}
	return textResult(fmt.Sprintf("Strategy for '%s':\n\n%s", roleType, strategy))
}
