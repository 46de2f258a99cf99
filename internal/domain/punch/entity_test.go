package punch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeta(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Meta
	}{
		{
			name: "recognized fields",
			raw:  `{"employee_id":"e-1","reason_name":"Sakit"}`,
			want: Meta{EmployeeID: "e-1", ReasonName: "Sakit"},
		},
		{
			name: "numeric legacy employee id",
			raw:  `{"employee_id":42}`,
			want: Meta{EmployeeID: "42"},
		},
		{
			name: "unknown keys pass through",
			raw:  `{"device":"kiosk-3","employee_id":"e-1"}`,
			want: Meta{EmployeeID: "e-1", Extra: map[string]any{"device": "kiosk-3"}},
		},
		{
			name: "empty payload",
			raw:  "",
			want: Meta{},
		},
		{
			name: "invalid json",
			raw:  "{broken",
			want: Meta{},
		},
		{
			name: "non-object json",
			raw:  `["a","b"]`,
			want: Meta{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ParseMeta([]byte(c.raw)))
		})
	}
}

func TestMetaJSONRoundTrip(t *testing.T) {
	meta := Meta{
		EmployeeID: "e-7",
		ReasonName: "Izin",
		Extra:      map[string]any{"device": "kiosk-1"},
	}

	raw, err := meta.JSON()
	require.NoError(t, err)

	assert.Equal(t, meta, ParseMeta(raw))
}

func TestMetaJSONOmitsEmptyFields(t *testing.T) {
	raw, err := Meta{Extra: map[string]any{"device": "kiosk-1"}}.JSON()
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "employee_id")
	assert.NotContains(t, fields, "reason_name")
	assert.Equal(t, "kiosk-1", fields["device"])
}

func TestMetaIsZero(t *testing.T) {
	assert.True(t, Meta{}.IsZero())
	assert.False(t, Meta{EmployeeID: "e-1"}.IsZero())
	assert.False(t, Meta{ReasonName: "Sakit"}.IsZero())
	assert.False(t, Meta{Extra: map[string]any{"k": "v"}}.IsZero())
}
