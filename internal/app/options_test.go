package app_test

import (
	"bytes"
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-anniversary/internal/app"
	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
)

func TestParseOptions_Full(t *testing.T) {
	args := []string{
		"-debug",
		"-session", "in.json",
		"-csv", "staff.csv",
		"-add", "Ada=2000-02-29",
		"-add", "Bob=2010-03-20",
		"-remove", "Carol",
		"-add-milestone", "20 Years",
		"-remove-milestone", "1 Year",
		"-remove-milestone", "5 Years",
		"-only", "5, 10",
		"-month", "2025-03",
		"-offset", "-2",
		"-export", "out.json",
		"-ics", "out.ics",
		"-lang", "fr",
		"-serve",
	}

	opts, err := app.ParseOptions(args, &bytes.Buffer{})
	require.NoError(t, err)

	assert.True(t, opts.Debug)
	assert.Equal(t, "in.json", opts.SessionPath)
	assert.Equal(t, "staff.csv", opts.CSVPath)
	assert.Equal(t, []engine.Person{
		{Name: "Ada", StartDate: engine.Date(2000, 2, 29)},
		{Name: "Bob", StartDate: engine.Date(2010, 3, 20)},
	}, opts.Add)
	assert.Equal(t, []string{"Carol"}, opts.Remove)
	assert.Equal(t, []string{"20 Years"}, opts.AddMilestones)
	assert.Equal(t, []string{"1 Year", "5 Years"}, opts.RemoveMilestones)
	assert.Equal(t, []int{5, 10}, opts.Only)
	require.NotNil(t, opts.Month)
	assert.Equal(t, engine.Period{Year: 2025, Month: time.March}, *opts.Month)
	assert.Equal(t, -2, opts.Offset)
	assert.Equal(t, "out.json", opts.ExportPath)
	assert.Equal(t, "out.ics", opts.ICSPath)
	assert.Equal(t, "fr", opts.Lang)
	assert.True(t, opts.Serve)
}

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := app.ParseOptions(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Nil(t, opts.Month)
	assert.Empty(t, opts.Add)
	assert.False(t, opts.Serve)
}

func TestParseOptions_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"person without separator", []string{"-add", "Ada"}, config.ErrPersonSpec},
		{"person bad date", []string{"-add", "Ada=someday"}, config.ErrDateParse},
		{"person blank name", []string{"-add", " =2000-01-01"}, config.ErrNameRequired},
		{"bad only", []string{"-only", "5,x"}, config.ErrOnlyParse},
		{"zero only", []string{"-only", "0"}, config.ErrOnlyParse},
		{"empty only", []string{"-only", " , "}, config.ErrOnlyParse},
		{"bad month", []string{"-month", "2025-13"}, config.ErrPeriodParse},
		{"remember without password", []string{"-remember-password", "-user", "hr"}, config.ErrRememberNoUser},
		{"unknown flag", []string{"-nope"}, "not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.ParseOptions(tt.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseOptions_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := app.ParseOptions([]string{"-h"}, &out)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), config.FlagAddMilestone)
}

func TestParsePersonSpec_NameWithSeparator(t *testing.T) {
	p, err := app.ParsePersonSpec("A=B=1999-12-31")
	require.NoError(t, err)
	assert.Equal(t, "A=B", p.Name)
	assert.Equal(t, engine.Date(1999, 12, 31), p.StartDate)
}
