package spmmeta

import "buildreport/internal/report"

// Parse reduces SPM-metadata output to a unified report.Result, dispatching
// to the appropriate sub-command parser.
func Parse(input string) report.Result {
	switch classify(input) {
	case cmdDumpPackage:
		return parseDumpPackage(input)
	case cmdShowDependencies:
		return parseShowDependencies(input)
	case cmdResolve, cmdUpdate:
		return parseResolveUpdate(input)
	case cmdDescribe:
		return parseDescribe(input)
	default:
		res := report.New(report.FormatSPM)
		res.Status = report.StatusUnknown
		return res
	}
}
