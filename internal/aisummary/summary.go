// Package aisummary produces the natural-language synthesis served by the
// ai-summary endpoint. The default generator is a deterministic template
// over the CVE's scores; when an OpenAI key is configured the template
// output is replaced by the model's, falling back to the template on any
// API failure.
package aisummary

import (
	"context"
	"fmt"
	"strings"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/scoring"
)

// Input bundles everything the summarizer reads for one CVE.
type Input struct {
	CVE     string
	Summary string
	Scores  models.ScoreBundle
	Overall float64
	Window  string
}

// Generator builds summaries, optionally via an LLM.
type Generator struct {
	llm *LLMClient
}

// New returns a Generator. An empty apiKey disables the LLM path.
func New(apiKey, model string) *Generator {
	var llm *LLMClient
	if apiKey != "" {
		llm = NewLLMClient(apiKey, model)
	}
	return &Generator{llm: llm}
}

// Summarize returns the summary text for the input. The template path
// cannot fail; LLM failures degrade to the template silently.
func (g *Generator) Summarize(ctx context.Context, in Input) string {
	templated := BuildTemplate(in)
	if g.llm == nil {
		return templated
	}

	out, err := g.llm.Complete(ctx, buildPrompt(in))
	if err != nil || strings.TrimSpace(out) == "" {
		return templated
	}
	return strings.TrimSpace(out)
}

// BuildTemplate renders the deterministic score-driven summary.
func BuildTemplate(in Input) string {
	cvss := scoring.Deref(in.Scores.CVSS)
	epss := scoring.Deref(in.Scores.EPSS)
	kve := scoring.Deref(in.Scores.KVE)
	activity := scoring.Deref(in.Scores.Activity)

	var b strings.Builder

	fmt.Fprintf(&b, "%s is a vulnerability of %s severity.", in.CVE, severityPhrase(cvss))
	if summary := strings.TrimSpace(in.Summary); summary != "" {
		fmt.Fprintf(&b, " Summary: %s", summary)
	}

	fmt.Fprintf(&b,
		" CVSS base score is %.1f, EPSS %.2f, KVE %.1f, activity %.1f, giving a combined score of %.2f.",
		cvss, epss, kve, activity, in.Overall)

	b.WriteString(" " + exploitPhrase(epss))
	b.WriteString(" " + exposurePhrase(kve))
	b.WriteString(" " + activityPhrase(activity))

	return b.String()
}

func severityPhrase(cvss float64) string {
	switch scoring.SeverityBand(cvss) {
	case "critical":
		return "extremely high"
	case "high":
		return "high"
	case "medium":
		return "moderate"
	default:
		return "low"
	}
}

func exploitPhrase(epss float64) string {
	switch {
	case epss >= 0.7:
		return "The likelihood of real-world exploitation is very high."
	case epss >= 0.4:
		return "The likelihood of real-world exploitation is above average."
	case epss > 0:
		return "The likelihood of real-world exploitation is relatively low."
	default:
		return "No EPSS data is available, so exploitation likelihood cannot be estimated."
	}
}

func exposurePhrase(kve float64) string {
	switch {
	case kve >= 8.0:
		return "Internal asset exposure is very high and warrants priority response."
	case kve >= 5.0:
		return "Internal asset exposure is moderate and should be managed."
	case kve > 0:
		return "Internal asset exposure is on the low side."
	default:
		return "No KVE data is available; asset exposure is treated as the default (0)."
	}
}

func activityPhrase(activity float64) string {
	switch {
	case activity >= 7.0:
		return "Recently observed attack activity is brisk."
	case activity >= 3.0:
		return "Some attack activity has been observed recently."
	case activity > 0:
		return "Recent attack activity is nearly absent, though residual risk remains."
	default:
		return "No related attack activity data has been observed."
	}
}

// buildPrompt formats the LLM prompt from the same signals the template
// uses, so both paths describe the same window.
func buildPrompt(in Input) string {
	var p strings.Builder

	p.WriteString("TASK: Write a concise 2-3 sentence risk summary of one CVE for a security dashboard.\n\n")
	fmt.Fprintf(&p, "CVE: %s\n", in.CVE)
	if summary := strings.TrimSpace(in.Summary); summary != "" {
		fmt.Fprintf(&p, "Description: %s\n", summary)
	}
	fmt.Fprintf(&p, "Scoring window: %s\n", in.Window)
	fmt.Fprintf(&p, "CVSS base: %.1f\n", scoring.Deref(in.Scores.CVSS))
	fmt.Fprintf(&p, "EPSS: %.2f\n", scoring.Deref(in.Scores.EPSS))
	fmt.Fprintf(&p, "KVE: %.1f\n", scoring.Deref(in.Scores.KVE))
	fmt.Fprintf(&p, "Activity: %.1f\n", scoring.Deref(in.Scores.Activity))
	fmt.Fprintf(&p, "Combined score: %.2f\n", in.Overall)
	if in.Scores.InKEV {
		p.WriteString("This CVE is in the CISA KEV catalog (actively exploited).\n")
	}
	p.WriteString("\nMention severity, exploitation likelihood, and recommended urgency. Plain prose, no markdown.")

	return p.String()
}
