package report

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

//go:embed templates/report.html
var reportTemplate string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"kg": func(v float64) string {
		return formatFloat(v, 4)
	},
	"fixed2": func(v float64) string {
		return formatFloat(v, 2)
	},
}).Parse(reportTemplate))

type htmlSeverity struct {
	Name  types.Severity
	Count int
}

type htmlData struct {
	Report            *model.AnalysisReport
	Severities        []htmlSeverity
	Languages         []nameCount
	Breakdown         []categoryAmount
	Recommendations   []Recommendation
	Comprehensive     bool
	SmartphoneCharges float64
	KmDriven          float64
}

func renderHTML(w io.Writer, report *model.AnalysisReport, _ *renderConfig) error {
	data := htmlData{
		Report:            report,
		Recommendations:   Recommendations(report),
		Comprehensive:     report.Detail.AtLeast(types.DetailComprehensive),
		SmartphoneCharges: smartphoneCharges(report.Emissions.TotalKgCO2e),
		KmDriven:          kmDriven(report.Emissions.TotalKgCO2e),
	}
	for _, s := range types.Severities {
		data.Severities = append(data.Severities, htmlSeverity{Name: s, Count: report.Summary.BySeverity[s]})
	}
	if data.Comprehensive {
		data.Languages = sortedCounts(report.Metrics.Languages)
		data.Breakdown = sortedBreakdown(report.Emissions)
	}

	if err := htmlTemplate.Execute(w, data); err != nil {
		return goerr.Wrap(err, "failed to execute HTML template")
	}
	return nil
}
