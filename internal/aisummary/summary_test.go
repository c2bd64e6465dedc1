package aisummary

import (
	"context"
	"strings"
	"testing"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

func ptr(v float64) *float64 { return &v }

func TestBuildTemplate(t *testing.T) {
	in := Input{
		CVE:     "CVE-2021-44228",
		Summary: "Apache Log4j2 JNDI lookup remote code execution",
		Scores: models.ScoreBundle{
			CVSS:     ptr(10.0),
			EPSS:     ptr(0.97),
			KVE:      ptr(9.0),
			Activity: ptr(8.0),
		},
		Overall: 9.92,
		Window:  "7d",
	}

	out := BuildTemplate(in)

	for _, want := range []string{
		"CVE-2021-44228 is a vulnerability of extremely high severity.",
		"Summary: Apache Log4j2 JNDI lookup remote code execution",
		"CVSS base score is 10.0, EPSS 0.97, KVE 9.0, activity 8.0, giving a combined score of 9.92.",
		"The likelihood of real-world exploitation is very high.",
		"Internal asset exposure is very high and warrants priority response.",
		"Recently observed attack activity is brisk.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("template missing %q\nfull: %s", want, out)
		}
	}
}

func TestBuildTemplateAbsentFacets(t *testing.T) {
	out := BuildTemplate(Input{CVE: "CVE-2025-0001", Window: "7d"})

	for _, want := range []string{
		"CVE-2025-0001 is a vulnerability of low severity.",
		"No EPSS data is available",
		"No KVE data is available",
		"No related attack activity data has been observed.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("template missing %q\nfull: %s", want, out)
		}
	}
	if strings.Contains(out, "Summary:") {
		t.Error("empty summary should not be rendered")
	}
}

func TestPhraseThresholds(t *testing.T) {
	exploitTests := []struct {
		epss float64
		want string
	}{
		{0.7, "very high"},
		{0.69, "above average"},
		{0.4, "above average"},
		{0.39, "relatively low"},
		{0.01, "relatively low"},
		{0, "cannot be estimated"},
	}
	for _, tt := range exploitTests {
		if got := exploitPhrase(tt.epss); !strings.Contains(got, tt.want) {
			t.Errorf("exploitPhrase(%v) = %q, want substring %q", tt.epss, got, tt.want)
		}
	}

	exposureTests := []struct {
		kve  float64
		want string
	}{
		{8.0, "very high"},
		{7.9, "moderate"},
		{5.0, "moderate"},
		{4.9, "low side"},
		{0, "No KVE data"},
	}
	for _, tt := range exposureTests {
		if got := exposurePhrase(tt.kve); !strings.Contains(got, tt.want) {
			t.Errorf("exposurePhrase(%v) = %q, want substring %q", tt.kve, got, tt.want)
		}
	}

	activityTests := []struct {
		activity float64
		want     string
	}{
		{7.0, "brisk"},
		{6.9, "Some attack activity"},
		{3.0, "Some attack activity"},
		{2.9, "nearly absent"},
		{0, "No related attack activity"},
	}
	for _, tt := range activityTests {
		if got := activityPhrase(tt.activity); !strings.Contains(got, tt.want) {
			t.Errorf("activityPhrase(%v) = %q, want substring %q", tt.activity, got, tt.want)
		}
	}
}

func TestSummarizeWithoutKeyUsesTemplate(t *testing.T) {
	g := New("", "gpt-4o-mini")
	in := Input{CVE: "CVE-2025-0001", Window: "7d"}

	got := g.Summarize(context.Background(), in)
	if got != BuildTemplate(in) {
		t.Errorf("keyless generator must return the template output, got %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	in := Input{
		CVE:     "CVE-2025-0001",
		Summary: "test flaw",
		Scores:  models.ScoreBundle{CVSS: ptr(9.8), InKEV: true},
		Overall: 5.88,
		Window:  "30d",
	}

	prompt := buildPrompt(in)
	for _, want := range []string{
		"CVE: CVE-2025-0001",
		"Description: test flaw",
		"Scoring window: 30d",
		"CVSS base: 9.8",
		"Combined score: 5.88",
		"CISA KEV catalog",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
