package commands

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const sectionsBody = `<?xml version="1.0" encoding="UTF-8"?>
<response status="ok" user-tier="free">
  <results>
    <section id="technology" web-title="Technology" web-url="https://www.example.test/technology" api-url="https://api.example.test/technology"/>
    <section id="travel" web-title="Travel" web-url="https://www.example.test/travel" api-url="https://api.example.test/travel"/>
  </results>
</response>`

const tagsBody = `<?xml version="1.0" encoding="UTF-8"?>
<response status="ok" user-tier="free" total="1" start-index="1" page-size="10" current-page="1" pages="1">
  <results>
    <tag id="technology/internet" type="keyword" web-title="Internet" web-url="w" api-url="a" section-id="technology" section-name="Technology"/>
  </results>
</response>`

const searchBody = `<?xml version="1.0" encoding="UTF-8"?>
<response status="ok" user-tier="free" total="42" start-index="1" page-size="10" current-page="1" pages="5" order-by="newest">
  <results>
    <content id="technology/2010/mar/05/cats" section-id="technology" section-name="Technology"
             web-publication-date="2010-03-05T10:00:00Z" web-title="Cats online"
             web-url="https://www.example.test/technology/2010/mar/05/cats"
             api-url="https://api.example.test/technology/2010/mar/05/cats"/>
  </results>
  <refinement-groups>
    <refinement-group type="keyword">
      <refinements>
        <refinement count="12" id="technology/internet" display-name="Internet" api-url="a" refined-url="r"/>
      </refinements>
    </refinement-group>
  </refinement-groups>
</response>`

const itemBody = `<?xml version="1.0" encoding="UTF-8"?>
<response status="ok" user-tier="free">
  <content id="technology/2010/mar/05/cats" section-name="Technology" web-title="Cats online"
           web-url="https://www.example.test/technology/2010/mar/05/cats"
           api-url="https://api.example.test/technology/2010/mar/05/cats">
    <fields>
      <field name="headline">Cats online</field>
      <field name="body">&lt;p&gt;Cats &amp;amp; dogs&lt;/p&gt;&lt;p&gt;Second &lt;b&gt;paragraph&lt;/b&gt;&lt;/p&gt;</field>
    </fields>
  </content>
</response>`

// apiServer serves canned bodies keyed by path and records request URLs.
type apiServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
}

func newAPIServer(t *testing.T, bodies map[string]string) *apiServer {
	t.Helper()

	server := &apiServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.mu.Lock()
		server.requests = append(server.requests, r.URL.RequestURI())
		server.mu.Unlock()

		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return server
}

func (s *apiServer) requestURIs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.requests...)
}

// useViper replaces the global viper state for one test.
func useViper(t *testing.T, settings map[string]interface{}) {
	t.Helper()

	viper.Reset()

	for key, value := range settings {
		viper.Set(key, value)
	}

	t.Cleanup(viper.Reset)
}

// executeCommand runs cmd the way the root command does, with usage and
// error printing silenced, and returns what it wrote to stdout.
func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}
