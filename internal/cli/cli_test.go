package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/ntrender/rdf"
)

const sampleNT = `<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .
_:bob <http://xmlns.com/foaf/0.1/name> "Bob"@en .
<http://example.org/alice> <http://xmlns.com/foaf/0.1/knows> _:bob .
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("NTRENDER_ENV", "local")

	var out, errOut bytes.Buffer
	err := New(&out, &errOut).Run(context.Background(), args)
	return out.String(), errOut.String(), err
}

func TestRenderAll(t *testing.T) {
	path := writeFile(t, "people.nt", sampleNT)

	out, _, err := run(t, "render", "--all", path)
	require.NoError(t, err)
	assert.Equal(t,
		"<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> \"Alice\" .\n"+
			"<http://example.org/alice> <http://xmlns.com/foaf/0.1/knows> _:bob .\n"+
			"_:bob <http://xmlns.com/foaf/0.1/name> \"Bob\"@en .\n",
		out)
}

func TestRenderSelectedResources(t *testing.T) {
	path := writeFile(t, "people.nt", sampleNT)

	out, _, err := run(t, "render", "-r", "_:bob", "-r", "<http://example.org/nobody>", "--resource", "http://example.org/alice", "--concurrency", "1", path)
	require.NoError(t, err)
	assert.Equal(t,
		"_:bob <http://xmlns.com/foaf/0.1/name> \"Bob\"@en .\n"+
			"<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> \"Alice\" .\n"+
			"<http://example.org/alice> <http://xmlns.com/foaf/0.1/knows> _:bob .\n",
		out)
}

func TestRenderResourceWithComma(t *testing.T) {
	path := writeFile(t, "places.nt",
		"<http://example.org/Paris,_Texas> <http://xmlns.com/foaf/0.1/name> \"Paris\" .\n")

	out, errOut, err := run(t, "render", "--resource", "http://example.org/Paris,_Texas", path)
	require.NoError(t, err)
	assert.Equal(t, "<http://example.org/Paris,_Texas> <http://xmlns.com/foaf/0.1/name> \"Paris\" .\n", out)
	assert.NotContains(t, errOut, "resource has no statements")
}

func TestRenderFlagErrors(t *testing.T) {
	path := writeFile(t, "people.nt", sampleNT)

	_, errOut, err := run(t, "render", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of --resource or --all")
	assert.Contains(t, errOut, "command failed")

	_, _, err = run(t, "render", "--all", "-r", "_:bob", path)
	require.Error(t, err)

	_, _, err = run(t, "render", "-r", "_:", path)
	require.Error(t, err)
}

func TestRenderUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "blob.bin", "\x00\x01\x02\x03\xff\xfe")

	_, _, err := run(t, "render", "--all", path)
	require.Error(t, err)
	assert.Equal(t, rdf.ErrCodeUnsupportedFormat, rdf.Code(err))

	_, _, err = run(t, "render", "--all", "--format", "turtle", path)
	require.Error(t, err)
	assert.Equal(t, rdf.ErrCodeUnsupportedFormat, rdf.Code(err))
}

func TestRenderDetectsFormatFromContent(t *testing.T) {
	nt := writeFile(t, "people.data", sampleNT)
	out, _, err := run(t, "render", "-r", "_:bob", nt)
	require.NoError(t, err)
	assert.Equal(t, "_:bob <http://xmlns.com/foaf/0.1/name> \"Bob\"@en .\n", out)

	jsonld := writeFile(t, "alice.data", `{"@id": "http://example.org/alice", "http://xmlns.com/foaf/0.1/name": "Alice"}`)
	out, _, err = run(t, "render", "--all", jsonld)
	require.NoError(t, err)
	assert.Equal(t, "<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> \"Alice\" .\n", out)
}

func TestRenderWarnsAboutMissingResources(t *testing.T) {
	path := writeFile(t, "people.nt", sampleNT)

	out, errOut, err := run(t, "render", "-r", "http://example.org/alise", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "resource has no statements")
	assert.Contains(t, errOut, "<http://example.org/alice>")
}

func TestRenderParseError(t *testing.T) {
	path := writeFile(t, "broken.nt", "<http://example.org/s> <http://example.org/p> .\n")

	_, _, err := run(t, "render", "--all", path)
	require.Error(t, err)
	assert.Equal(t, rdf.ErrCodeParseError, rdf.Code(err))
	assert.Contains(t, err.Error(), "broken.nt")
}

func TestRenderJSONLD(t *testing.T) {
	path := writeFile(t, "alice.jsonld", `{
  "@context": {"name": "http://xmlns.com/foaf/0.1/name"},
  "@id": "http://example.org/alice",
  "name": "Alice"
}`)

	out, _, err := run(t, "render", "-r", "http://example.org/alice", path)
	require.NoError(t, err)
	assert.Equal(t, "<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> \"Alice\" .\n", out)
}

func TestRenderWithConfigFile(t *testing.T) {
	data := writeFile(t, "people.txt", sampleNT)
	cfg := writeFile(t, "config.yaml", "input:\n  format: ntriples\nlimits:\n  max_triples: 2\n")

	_, errOut, err := run(t, "--config", cfg, "--env", "prod", "render", "--all", data)
	require.Error(t, err)
	assert.Equal(t, rdf.ErrCodeTripleLimitExceeded, rdf.Code(err))
	assert.Contains(t, errOut, `"msg":"command failed"`)
}

func TestSubjects(t *testing.T) {
	path := writeFile(t, "people.nt", sampleNT)

	out, _, err := run(t, "subjects", path)
	require.NoError(t, err)
	assert.Equal(t, "<http://example.org/alice>\n_:bob\n", out)
}

func TestNode(t *testing.T) {
	out, _, err := run(t, "node", "_:a-b", "http://example.org/a b", "<http://example.org/c>")
	require.NoError(t, err)
	assert.Equal(t, "_:a-b\n<http://example.org/a\\u0020b>\n<http://example.org/c>\n", out)

	_, _, err = run(t, "node", "<>")
	require.Error(t, err)
}

func TestUnknownEnvFlag(t *testing.T) {
	_, _, err := run(t, "--env", "staging", "node", "_:a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown env")
}

func TestParseNode(t *testing.T) {
	testCases := []struct {
		desc string
		raw  string
		want rdf.Term
	}{
		{desc: "blank", raw: "_:x", want: rdf.BlankNode{ID: "x"}},
		{desc: "bracketed iri", raw: " <http://example.org/a> ", want: rdf.NewIRI("http://example.org/a")},
		{desc: "bare iri", raw: "urn:x", want: rdf.NewIRI("urn:x")},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := parseNode(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
