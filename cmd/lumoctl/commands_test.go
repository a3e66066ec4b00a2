package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumo/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
- id: 1
  title: Robot Arm
  category: Robotics
  budget: {min: 5000, max: 8000}
- id: 2
  title: Smart Mirror
  category: IoT
  price: 6500
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--catalog", path))

	err := cmd.Execute()
	return out.String(), err
}

func TestAskCommand(t *testing.T) {
	t.Run("prints matches", func(t *testing.T) {
		out, err := runCLI(t, "ask", "show", "me", "a", "robot")
		require.NoError(t, err)

		assert.Contains(t, out, "[project_matches]")
		assert.Contains(t, out, "• **Robot Arm** (Robotics) - ₹5000 - ₹8000")
		assert.Contains(t, out, "id=1 score=5")
	})

	t.Run("json output", func(t *testing.T) {
		out, err := runCLI(t, "ask", "hello", "--json")
		require.NoError(t, err)

		var reply domain.ChatReply
		require.NoError(t, json.Unmarshal([]byte(out), &reply))
		assert.Equal(t, domain.IntentGreeting, reply.Intent)
	})

	t.Run("requires a message", func(t *testing.T) {
		_, err := runCLI(t, "ask")
		assert.Error(t, err)
	})
}

func TestProjectsCommand(t *testing.T) {
	out, err := runCLI(t, "projects")
	require.NoError(t, err)

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Smart Mirror")
	assert.Contains(t, out, "₹6,500")
}

func TestProjectsCommand_MissingCatalog(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"projects", "--catalog", filepath.Join(t.TempDir(), "nope.yaml")})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "failed to read catalog file")
}

func TestPriceCommand(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"min": 3000, "max": 4000}`, "₹3000 - ₹4000\n"},
		{`{"min": 3000}`, "From ₹3000\n"},
		{`500`, "₹500\n"},
		{`null`, "Check details\n"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			out, err := runCLI(t, "price", tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
