package punch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunchRequestValidate(t *testing.T) {
	t.Run("valid with explicit phase", func(t *testing.T) {
		req := PunchRequest{Name: " Jane Doe ", Phase: "in", PhaseRequired: true}
		require.NoError(t, req.Validate())
		assert.Equal(t, "Jane Doe", req.Name)
		assert.Equal(t, PhaseIn, req.Phase)
	})

	t.Run("phase optional by default", func(t *testing.T) {
		req := PunchRequest{Name: "Jane Doe"}
		assert.NoError(t, req.Validate())
	})

	t.Run("phase required by ingestion route", func(t *testing.T) {
		req := PunchRequest{Name: "Jane Doe", PhaseRequired: true}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		req := PunchRequest{Name: "   "}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects unknown sentinel name", func(t *testing.T) {
		req := PunchRequest{Name: "Unknown"}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects bad phase", func(t *testing.T) {
		req := PunchRequest{Name: "Jane Doe", Phase: "SIDEWAYS"}
		assert.Error(t, req.Validate())
	})
}

func TestAdminUpdateRequestValidate(t *testing.T) {
	t.Run("defaults phase to IN", func(t *testing.T) {
		req := AdminUpdateRequest{Name: "Jane Doe", Status: "Late"}
		require.NoError(t, req.Validate())
		assert.Equal(t, PhaseIn, req.Phase)
	})

	t.Run("requires name or employee id", func(t *testing.T) {
		req := AdminUpdateRequest{Status: "Late"}
		assert.Error(t, req.Validate())
	})

	t.Run("employee id alone is enough", func(t *testing.T) {
		req := AdminUpdateRequest{EmployeeID: "e-1", Status: "Absent"}
		assert.NoError(t, req.Validate())
	})

	t.Run("auto skips status validation", func(t *testing.T) {
		req := AdminUpdateRequest{Name: "Jane Doe", Auto: true}
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects early on check-in edits", func(t *testing.T) {
		req := AdminUpdateRequest{Name: "Jane Doe", Status: "Early"}
		assert.Error(t, req.Validate())
	})

	t.Run("accepts early on check-out edits", func(t *testing.T) {
		req := AdminUpdateRequest{Name: "Jane Doe", Phase: "out", Status: "Early"}
		require.NoError(t, req.Validate())
		assert.Equal(t, PhaseOut, req.Phase)
	})

	t.Run("rejects late on check-out edits", func(t *testing.T) {
		req := AdminUpdateRequest{Name: "Jane Doe", Phase: "OUT", Status: "Late"}
		assert.Error(t, req.Validate())
	})
}
