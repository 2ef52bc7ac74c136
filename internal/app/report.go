package app

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
	"github.com/tartampluch/go-anniversary/internal/locale"
)

const (
	tabMinWidth = 0
	tabWidth    = 8
	tabPadding  = 2
	tabPadChar  = ' '
)

// WriteReport prints the month's anniversaries as an aligned table.
// people is the roster size, used to tell "nobody tracked" from "nothing this month".
func WriteReport(w io.Writer, tr *locale.Translator, period engine.Period, people int, events []engine.AnniversaryEvent) error {
	if _, err := fmt.Fprintln(w, tr.ReportTitle(period.Display())); err != nil {
		return err
	}

	if people == 0 {
		_, err := fmt.Fprintln(w, tr.Msg(config.TKeyReportNoPeople, config.FallbackReportNoPeop))
		return err
	}
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, tr.Msg(config.TKeyReportEmpty, config.FallbackReportEmpty))
		return err
	}

	tw := tabwriter.NewWriter(w, tabMinWidth, tabWidth, tabPadding, tabPadChar, 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		tr.Msg(config.TKeyColName, config.ColumnName),
		tr.Msg(config.TKeyColDate, config.ColumnAnnivDate),
		tr.Msg(config.TKeyColType, config.ColumnAnnivType),
		tr.Msg(config.TKeyColYears, config.ColumnYears),
	)
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Name,
			e.AnniversaryDate.Format(config.DateFormatDisplay),
			tr.MilestoneLabel(e.Years),
			strconv.Itoa(e.Years),
		)
	}
	return tw.Flush()
}
