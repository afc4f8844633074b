package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cliResume = `Jane Doe
jane.doe@example.com

Experience
Senior engineer. Built Python services on Docker, cut latency by 40%.

Skills
Python, Docker, PostgreSQL

Education
BSc Computer Science`

	cliJD = "We need a backend engineer with Python, Docker and Kubernetes experience."
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", cliResume)
	jd := writeFile(t, dir, "jd.txt", cliJD)

	out, err := runCLI(t, "analyze", "--resume", resume, "--jd", jd)
	require.NoError(t, err)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.ElementsMatch(t, []string{"python", "docker", "kubernetes"}, result.RequiredSkills)
	assert.ElementsMatch(t, []string{"python", "docker"}, result.MatchedSkills)
	assert.Equal(t, []string{"kubernetes"}, result.MissingSkills)
	assert.Equal(t, 66.67, result.MatchPercentage)
	require.NotNil(t, result.CandidateEmail)
	assert.Equal(t, "jane.doe@example.com", *result.CandidateEmail)
}

func TestAnalyzeCommand_Text(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", cliResume)
	jd := writeFile(t, dir, "jd.txt", cliJD)

	out, err := runCLI(t, "analyze", "-r", resume, "-j", jd, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "RESUME ANALYSIS")
	assert.Contains(t, out, "66.67%")
	assert.Contains(t, out, "MISSING SKILLS")
	assert.Contains(t, out, "kubernetes")
}

func TestAnalyzeCommand_JobDescriptionURL(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><main><p>" + cliJD + "</p></main></body></html>"))
	}))
	defer posting.Close()

	resume := writeFile(t, t.TempDir(), "resume.txt", cliResume)

	out, err := runCLI(t, "analyze", "--resume", resume, "--jd-url", posting.URL, "--allow-private-hosts")
	require.NoError(t, err)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"kubernetes"}, result.MissingSkills)
}

func TestAnalyzeCommand_JobDescriptionURLOnLoopbackRefused(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><main><p>" + cliJD + "</p></main></body></html>"))
	}))
	defer posting.Close()

	resume := writeFile(t, t.TempDir(), "resume.txt", cliResume)

	_, err := runCLI(t, "analyze", "--resume", resume, "--jd-url", posting.URL)
	require.Error(t, err)
	assert.ErrorContains(t, err, "destination not allowed")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", cliResume)
	jd := writeFile(t, dir, "jd.txt", cliJD)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing resume flag", []string{"analyze", "--jd", jd}, "required flag"},
		{"missing jd", []string{"analyze", "--resume", resume}, "either --jd or --jd-url"},
		{"both jd sources", []string{"analyze", "--resume", resume, "--jd", jd, "--jd-url", "https://example.com"}, "mutually exclusive"},
		{"bad format", []string{"analyze", "--resume", resume, "--jd", jd, "--format", "xml"}, "invalid --format"},
		{"resume not found", []string{"analyze", "--resume", filepath.Join(dir, "nope.txt"), "--jd", jd}, "file not found"},
		{"dictionary not found", []string{"analyze", "--resume", resume, "--jd", jd, "--dictionary", filepath.Join(dir, "nope.json")}, "dictionary file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAnalyzeCommand_CustomDictionary(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "skills.json", `{"skills": ["baking", "catering"], "aliases": {"catering": ["events"]}}`)
	resume := writeFile(t, dir, "resume.txt", "Pastry chef. Baking and events for 8 years.")
	jd := writeFile(t, dir, "jd.txt", "Bakery seeks baking and catering lead.")

	out, err := runCLI(t, "analyze", "--resume", resume, "--jd", jd, "--dictionary", dict)
	require.NoError(t, err)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"baking", "catering"}, result.MatchedSkills)
	assert.Equal(t, 100.0, result.MatchPercentage)
}

func TestAnalyzeCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "skills.json", `{"skills": ["kubernetes"]}`)
	cfg := writeFile(t, dir, "config.yaml", "analysis:\n  dictionary_path: "+dict+"\nlogger:\n  level: error\n")
	resume := writeFile(t, dir, "resume.txt", cliResume)
	jd := writeFile(t, dir, "jd.txt", cliJD)

	out, err := runCLI(t, "analyze", "--resume", resume, "--jd", jd, "--config", cfg)
	require.NoError(t, err)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"kubernetes"}, result.RequiredSkills)
}

func TestSkillsListCommand(t *testing.T) {
	out, err := runCLI(t, "skills", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SKILL DICTIONARY")
	assert.Contains(t, out, "• machine learning (ml)")

	out, err = runCLI(t, "skills", "list", "--format", "json")
	require.NoError(t, err)

	var dict struct {
		Skills  []string            `json:"skills"`
		Aliases map[string][]string `json:"aliases"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &dict))
	assert.Contains(t, dict.Skills, "python")
	assert.Equal(t, []string{"ml"}, dict.Aliases["machine learning"])
}

func TestSkillsExtractCommand(t *testing.T) {
	jd := writeFile(t, t.TempDir(), "jd.txt", cliJD)

	out, err := runCLI(t, "skills", "extract", "--jd", jd, "--format", "json")
	require.NoError(t, err)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.ElementsMatch(t, []string{"python", "docker", "kubernetes"}, resp["required_skills"])

	_, err = runCLI(t, "skills", "extract")
	assert.ErrorContains(t, err, "either --jd or --jd-url")
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "config.yaml", "server:\n  port: 70000\n")

	_, err := runCLI(t, "serve", "--config", cfg)
	assert.ErrorContains(t, err, "server.port")
}
