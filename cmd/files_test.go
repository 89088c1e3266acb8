package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meysamhadeli/doctrans/translator/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		Days:     1,
		Since:    time.Now().Add(-24 * time.Hour),
		Eligible: []string{"_documentation/en/sms/intro.md"},
		Decisions: []models.Decision{
			{Path: "_documentation/en/sms/intro.md", Kind: models.KindDocumentation, KindName: "documentation", Eligible: true, Reason: models.ReasonEligible},
			{Path: "_tutorials/en/other.md", Kind: models.KindTutorial, KindName: "tutorial", Reason: models.ReasonNotInTutorialSet},
		},
	}
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), outputText, false, "dracula"))
	assert.Equal(t, "_documentation/en/sms/intro.md\n", buf.String())

	buf.Reset()
	require.NoError(t, writeReport(&buf, sampleReport(), outputText, true, "dracula"))
	assert.Contains(t, buf.String(), "# skipped _tutorials/en/other.md (not-in-tutorial-set)")
	assert.Contains(t, buf.String(), "_documentation/en/sms/intro.md\n")
}

func TestWriteReport_JSON(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, report, outputJSON, false, "dracula"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []any{"_documentation/en/sms/intro.md"}, decoded["eligible"])
	assert.Equal(t, report.Fingerprint(), decoded["fingerprint"])
	assert.NotContains(t, decoded, "decisions")

	buf.Reset()
	require.NoError(t, writeReport(&buf, report, outputJSON, true, "dracula"))
	decoded = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded["decisions"], 2)
	first := decoded["decisions"].([]any)[0].(map[string]any)
	assert.Equal(t, "documentation", first["kind"])
	assert.Len(t, report.Decisions, 2, "report is not modified")
}

func TestWriteReport_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), outputTable, false, "dracula"))
	assert.Contains(t, buf.String(), "Path")
	assert.Contains(t, buf.String(), "_documentation/en/sms/intro.md")
	assert.NotContains(t, buf.String(), "_tutorials/en/other.md")
}

func TestSummaryLine(t *testing.T) {
	line := summaryLine(sampleReport())
	assert.Contains(t, line, "1 of 2 changed files eligible")
	assert.Contains(t, line, "documentation 1")
	assert.Contains(t, line, "tutorials 0")
	assert.Contains(t, line, sampleReport().Fingerprint())
}
