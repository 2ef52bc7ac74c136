package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
)

// Options is the parsed command line of one run.
type Options struct {
	Version bool
	Debug   bool

	ConfigPath  string
	SessionPath string
	CSVPath     string
	VCFPath     string
	URL         string
	User        string
	Password    string
	RememberPwd bool
	Lang        string

	Reset            bool
	Add              []engine.Person
	Remove           []string
	AddMilestones    []string
	RemoveMilestones []string

	Only   []int
	Month  *engine.Period // nil means the current month
	Offset int

	ExportPath string
	ICSPath    string
	Serve      bool
}

// ParseOptions parses args (without the program name). Usage and parse errors go to output.
func ParseOptions(args []string, output io.Writer) (*Options, error) {
	opts := &Options{}
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.BoolVar(&opts.Version, config.FlagVersion, false, config.FlagDescVersion)
	fs.BoolVar(&opts.Debug, config.FlagDebug, false, config.FlagDescDebug)
	fs.StringVar(&opts.ConfigPath, config.FlagConfig, "", config.FlagDescConfig)
	fs.StringVar(&opts.SessionPath, config.FlagSession, "", config.FlagDescSession)
	fs.StringVar(&opts.CSVPath, config.FlagCSV, "", config.FlagDescCSV)
	fs.StringVar(&opts.VCFPath, config.FlagVCF, "", config.FlagDescVCF)
	fs.StringVar(&opts.URL, config.FlagURL, "", config.FlagDescURL)
	fs.StringVar(&opts.User, config.FlagUser, "", config.FlagDescUser)
	fs.StringVar(&opts.Password, config.FlagPassword, "", config.FlagDescPassword)
	fs.BoolVar(&opts.RememberPwd, config.FlagRememberPass, false, config.FlagDescRememberPass)
	fs.StringVar(&opts.Lang, config.FlagLang, "", config.FlagDescLang)
	fs.BoolVar(&opts.Reset, config.FlagReset, false, config.FlagDescReset)
	fs.IntVar(&opts.Offset, config.FlagOffset, 0, config.FlagDescOffset)
	fs.StringVar(&opts.ExportPath, config.FlagExport, "", config.FlagDescExport)
	fs.StringVar(&opts.ICSPath, config.FlagICS, "", config.FlagDescICS)
	fs.BoolVar(&opts.Serve, config.FlagServe, false, config.FlagDescServe)

	fs.Func(config.FlagAdd, config.FlagDescAdd, func(v string) error {
		p, err := ParsePersonSpec(v)
		if err != nil {
			return err
		}
		opts.Add = append(opts.Add, p)
		return nil
	})
	fs.Func(config.FlagRemove, config.FlagDescRemove, func(v string) error {
		opts.Remove = append(opts.Remove, v)
		return nil
	})
	fs.Func(config.FlagAddMilestone, config.FlagDescAddMilestone, func(v string) error {
		opts.AddMilestones = append(opts.AddMilestones, v)
		return nil
	})
	fs.Func(config.FlagRemoveMilestone, config.FlagDescRemoveMilestone, func(v string) error {
		opts.RemoveMilestones = append(opts.RemoveMilestones, v)
		return nil
	})
	fs.Func(config.FlagOnly, config.FlagDescOnly, func(v string) error {
		years, err := ParseYearList(v)
		if err != nil {
			return err
		}
		opts.Only = years
		return nil
	})
	fs.Func(config.FlagMonth, config.FlagDescMonth, func(v string) error {
		p, err := engine.ParsePeriod(v)
		if err != nil {
			return err
		}
		opts.Month = &p
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.RememberPwd && (opts.User == "" || opts.Password == "") {
		return nil, errors.New(config.ErrRememberNoUser)
	}
	return opts, nil
}

// ParsePersonSpec reads "Name=YYYY-MM-DD". The last separator splits,
// so a name may itself contain '='.
func ParsePersonSpec(value string) (engine.Person, error) {
	i := strings.LastIndex(value, config.PersonSeparator)
	if i < 0 {
		return engine.Person{}, fmt.Errorf("%s: %q", config.ErrPersonSpec, value)
	}
	start, err := engine.ParseDate(value[i+1:])
	if err != nil {
		return engine.Person{}, err
	}
	return engine.NewPerson(value[:i], start)
}

// ParseYearList reads "5,10,25" into year counts.
func ParseYearList(value string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(value, config.ListSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s: %q", config.ErrOnlyParse, value)
		}
		years = append(years, n)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("%s: %q", config.ErrOnlyParse, value)
	}
	return years, nil
}
