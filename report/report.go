package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/gofrs/uuid"

	"github.com/spread-lab/prefspread/config"
	"github.com/spread-lab/prefspread/eventhandlers/statistics"
	"github.com/spread-lab/prefspread/scanner"
)

const summaryTmpl = `run id: {{.RunID}}
generated: {{.Generated.Format "2006-01-02 15:04:05"}}
{{- if .Statistics}}
strategy: {{.Statistics.StrategyName}}{{with .Statistics.StrategyNickname}} ({{.}}){{end}}
period: {{.Statistics.StartDate.Format "2006-01-02"}} to {{.Statistics.EndDate.Format "2006-01-02"}}
events: {{.Statistics.Results.TotalEvents}} transactions: {{.Statistics.Results.TotalTransactions}} round trips: {{.Statistics.Results.RoundTrips}}
pnl: {{.Statistics.Results.TotalPNL.Round 2}} fees: {{.Statistics.Results.TotalFees.Round 2}} traded value: {{.Statistics.Results.TotalTradedValue.Round 2}}
total return: {{printf "%.4f" .Statistics.Results.TotalReturnPercent}}%
sharpe: {{printf "%.4f" .Statistics.Results.SharpeRatio}} sortino: {{printf "%.4f" .Statistics.Results.SortinoRatio}} calmar: {{printf "%.4f" .Statistics.Results.CalmarRatio}} cagr: {{printf "%.4f" .Statistics.Results.CompoundAnnualGrowthRate}}
max drawdown: {{.Statistics.Results.MaxDrawdown.DrawdownPercent.Round 4}}%
period win rate: {{printf "%.4f" .Statistics.Results.PeriodWinRate}} trade win rate: {{printf "%.4f" .Statistics.Results.TradeWinRate}} turnover: {{printf "%.4f" .Statistics.Results.Turnover}}
{{- end}}
{{- if .Scan}}
universe: {{.Scan.Nickname}}
pairs ranked: {{len .Scan.Pairs}} skipped: {{.Scan.Skipped}}
{{- range .Scan.Pairs}}
{{.Leg1}}/{{.Leg2}} score {{printf "%.4f" .Score}} corr {{printf "%.4f" .Correlation}} z {{printf "%.4f" .ZScore}}{{if .AtMax}} at high, {{.Suggested}}{{end}}{{if .AtMin}} at low, {{.Suggested}}{{end}}
{{- end}}
{{- end}}
`

// New readies a report for a completed backtest run
func New(cfg *config.Config, stats *statistics.Statistic, outputPath string) (*Data, error) {
	if stats == nil {
		return nil, errNothingToReport
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Data{
		RunID:      id,
		Generated:  time.Now(),
		Config:     cfg,
		Statistics: stats,
		OutputPath: outputPath,
	}, nil
}

// NewScan readies a report for a completed universe scan
func NewScan(scan *scanner.Results, outputPath string) (*Data, error) {
	if scan == nil {
		return nil, errNothingToReport
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Data{
		RunID:      id,
		Generated:  time.Now(),
		Scan:       scan,
		OutputPath: outputPath,
	}, nil
}

// GenerateReport writes the full run data as json under the output path
// so the run can be inspected or replayed later. Returns the file written
func (d *Data) GenerateReport() (string, error) {
	if d.Statistics == nil && d.Scan == nil {
		return "", errNothingToReport
	}
	if d.OutputPath == "" {
		d.OutputPath = "results"
	}
	err := os.MkdirAll(d.OutputPath, 0o770)
	if err != nil {
		return "", err
	}
	contents, err := json.MarshalIndent(d, "", " ")
	if err != nil {
		return "", err
	}
	target := filepath.Join(d.OutputPath, fmt.Sprintf("%v.json", d.RunID))
	err = os.WriteFile(target, contents, 0o770)
	if err != nil {
		return "", err
	}
	return target, nil
}

// WriteSummary renders the short human readable summary of the run
func (d *Data) WriteSummary(w io.Writer) error {
	if w == nil {
		return errNilWriter
	}
	if d.Statistics == nil && d.Scan == nil {
		return errNothingToReport
	}
	tmpl, err := template.New("summary").Parse(summaryTmpl)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, d)
}
