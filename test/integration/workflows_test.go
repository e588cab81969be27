//go:build integration

package integration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// WorkflowTestSuite drives the CLI against a live content API.
type WorkflowTestSuite struct {
	suite.Suite

	config *TestConfig
	runner *CommandRunner
}

// SetupTest gives every test a fresh config file.
func (s *WorkflowTestSuite) SetupTest() {
	s.config = LoadTestConfig()
	s.config.SkipIfMissingConfig(s.T())
	s.runner = NewCommandRunner(s.config, s.T())
}

func (s *WorkflowTestSuite) TestSectionsThenSearchWithinSection() {
	t := s.T()

	stdout, stderr, err := s.runner.Run("sections", "--output", "json")
	require.NoError(t, err, "Failed to list sections: %s", stderr)

	sections := AssertJSONOutput(t, stdout)
	assert.Equal(t, "ok", sections["status"])

	results, ok := sections["results"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, results)

	first, ok := results[0].(map[string]interface{})
	require.True(t, ok)

	sectionID, _ := first["id"].(string)
	require.NotEmpty(t, sectionID)

	stdout, stderr, err = s.runner.Run("search", "--section", sectionID, "--page-size", "3", "--output", "yaml")
	require.NoError(t, err, "Failed to search section %s: %s", sectionID, stderr)

	search := AssertYAMLOutput(t, stdout)
	assert.Equal(t, "ok", search["status"])
}

func (s *WorkflowTestSuite) TestSearchThenFetchItem() {
	t := s.T()

	stdout, stderr, err := s.runner.Run("search", "--page-size", "1", "--order-by", "newest", "--output", "json", "news")
	require.NoError(t, err, "Failed to search: %s", stderr)

	search := AssertJSONOutput(t, stdout)

	results, ok := search["results"].([]interface{})
	require.True(t, ok)

	if len(results) == 0 {
		t.Skip("search returned no results")
	}

	first, ok := results[0].(map[string]interface{})
	require.True(t, ok)

	apiURL, _ := first["api_url"].(string)
	require.NotEmpty(t, apiURL)

	stdout, stderr, err = s.runner.Run("item", apiURL, "--output", "json")
	require.NoError(t, err, "Failed to fetch %s: %s", apiURL, stderr)

	item := AssertJSONOutput(t, stdout)
	assert.NotNil(t, item["content"])
}

func (s *WorkflowTestSuite) TestMissingItem() {
	t := s.T()

	_, stderr, err := s.runner.Run("item", "no/such/item/exists")
	require.Error(t, err)
	assert.Contains(t, stderr, "404")
}

func (s *WorkflowTestSuite) TestConfigPersistsAcrossRuns() {
	t := s.T()

	_, stderr, err := s.runner.Run("config", "set", "output", "json")
	require.NoError(t, err, "Failed to set output: %s", stderr)

	stdout, stderr, err := s.runner.Run("tags", "--type", "keyword", "--page-size", "2")
	require.NoError(t, err, "Failed to list tags: %s", stderr)

	tags := AssertJSONOutput(t, stdout)
	assert.Equal(t, "ok", tags["status"])
}

func (s *WorkflowTestSuite) TestPrintURLMasksKey() {
	t := s.T()

	if s.config.APIKey == "" {
		t.Skip("CONTENTAPI_TEST_API_KEY not set")
	}

	stdout, _, err := s.runner.Run("search", "--print-url", "cats")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, strings.TrimSuffix(s.config.APIURL, "/")+"/search?format=xml&api-key=***"))
	assert.NotContains(t, stdout, s.config.APIKey)
}

func TestWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowTestSuite))
}
