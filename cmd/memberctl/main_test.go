package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	"github.com/dalemusser/memberhub/internal/app/features/members"
	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T) string {
	t.Helper()
	logger := zap.NewNop()
	h := members.NewHandler(memberstore.NewMemory(), uierrors.NewErrorLogger(logger), logger)
	r := chi.NewRouter()
	r.Mount("/api/members", members.Routes(h))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

type outcome struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, url, stdin string, args ...string) outcome {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(append([]string{"-server", url}, args...), strings.NewReader(stdin), &out, &errOut)
	return outcome{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestCLI_Lifecycle(t *testing.T) {
	url := newServer(t)

	res := runCLI(t, url, "", "add", "-name", "Alice", "-dob", "1990-01-01", "-interests", "reading, chess", "-number", "42")
	require.Equal(t, 0, res.code, res.stderr)
	var created struct {
		ID           string   `json:"_id"`
		MemberNumber int64    `json:"memberNumber"`
		Interests    []string `json:"interests"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &created))
	assert.EqualValues(t, 42, created.MemberNumber)
	assert.Equal(t, []string{"reading", "chess"}, created.Interests)

	res = runCLI(t, url, "", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Alice")
	assert.Contains(t, res.stdout, "1990-01-01")
	assert.Contains(t, res.stdout, "reading, chess")

	res = runCLI(t, url, "", "update", "-name", "Alicia", created.ID)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"Alicia"`)
	assert.Contains(t, res.stdout, `"reading"`)

	res = runCLI(t, url, "n\n", "delete", created.ID)
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "cancelled")

	res = runCLI(t, url, "y\n", "delete", created.ID)
	require.Equal(t, 0, res.code, res.stderr)

	res = runCLI(t, url, "", "get", created.ID)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "member not found")
}

func TestCLI_AddDrawsNumber(t *testing.T) {
	url := newServer(t)

	res := runCLI(t, url, "", "add", "-name", "Bob", "-dob", "1985-06-15")
	require.Equal(t, 0, res.code, res.stderr)
	var created struct {
		MemberNumber int64 `json:"memberNumber"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &created))
	assert.GreaterOrEqual(t, created.MemberNumber, int64(0))
	assert.Less(t, created.MemberNumber, int64(1_000_000))
}

func TestCLI_UsageErrors(t *testing.T) {
	url := newServer(t)

	assert.Equal(t, 2, runCLI(t, url, "").code)
	assert.Equal(t, 1, runCLI(t, url, "", "frobnicate").code)
	assert.Equal(t, 1, runCLI(t, url, "", "add", "-name", "x").code)
	assert.Equal(t, 1, runCLI(t, url, "", "get").code)
	assert.Equal(t, 1, runCLI(t, url, "", "update", "-name", "x").code)
}

func TestCLI_ImportExport(t *testing.T) {
	url := newServer(t)

	res := runCLI(t, url, "Alice,1990-01-01,42,reading\nBob,1985-06-15,7\n", "import", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "imported 2 members\n", res.stdout)

	res = runCLI(t, url, "", "export")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "id,name,date_of_birth,member_number,interests\n")
	assert.Contains(t, res.stdout, ",Alice,1990-01-01,42,reading\n")

	res = runCLI(t, url, "Carol,bad-date,1\n", "import", "-")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "line 1")
}
