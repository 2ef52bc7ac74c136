package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-anniversary/internal/engine"
)

func TestParseMilestone(t *testing.T) {
	tests := []struct {
		label     string
		wantYears int
		wantLabel string
		wantErr   bool
	}{
		{"20 Years", 20, "20 Years", false},
		{"20 Year", 20, "20 Years", false},
		{"1 Year", 1, "1 Year", false},
		{"1 Years", 1, "1 Year", false},
		{"  75 years ", 75, "75 Years", false},
		{"-5 Years", 0, "", true},
		{"abc Years", 0, "", true},
		{"0 Years", 0, "", true},
		{"5", 0, "", true},
		{"5 Months", 0, "", true},
		{"5.5 Years", 0, "", true},
		{"", 0, "", true},
		{"99999999999999999999 Years", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			m, err := engine.ParseMilestone(tt.label, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, engine.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYears, m.Years)
			assert.Equal(t, tt.wantLabel, m.Label)
		})
	}
}

func TestParseMilestone_EquivalentForms(t *testing.T) {
	a, err := engine.ParseMilestone("20 Years", nil)
	require.NoError(t, err)
	b, err := engine.ParseMilestone("20 Year", nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewMilestone_CustomRule(t *testing.T) {
	rule := func(years int) string { return "Y" + string(rune('0'+years)) }
	m, err := engine.NewMilestone(5, rule)
	require.NoError(t, err)
	assert.Equal(t, "Y5", m.Label)

	_, err = engine.NewMilestone(-1, rule)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}

func TestCatalog_AddRemove(t *testing.T) {
	c := engine.DefaultCatalog(nil)
	assert.Equal(t, []string{"1 Year", "5 Years", "10 Years", "15 Years", "25 Years", "30 Years", "40 Years", "50 Years"}, c.Labels())

	m, err := c.AddLabel("20 Years")
	require.NoError(t, err)
	assert.Equal(t, 20, m.Years)
	assert.True(t, c.Has(20))

	_, err = c.AddLabel("20 Year")
	assert.ErrorIs(t, err, engine.ErrDuplicateMilestone, "Same integer is a duplicate")
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)

	_, err = c.AddLabel("abc Years")
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	assert.Equal(t, 9, c.Len(), "Rejected labels do not change the catalog")

	removed, err := c.RemoveLabel("1 Years")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, c.Remove(1), "Second removal is a no-op")

	err = c.Add(engine.MilestoneType{Years: 0, Label: "0 Years"})
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}

func TestCatalog_SubsetAndClone(t *testing.T) {
	c := engine.DefaultCatalog(nil)

	sub := c.Subset(10, 5, 99)
	require.Len(t, sub, 2)
	assert.Equal(t, 5, sub[0].Years, "Subset keeps catalog order")
	assert.Equal(t, 10, sub[1].Years)

	clone := c.Clone()
	clone.Remove(5)
	assert.True(t, c.Has(5), "Clone is independent")
}
