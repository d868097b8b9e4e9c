package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/insilichem/pychimera/internal/config"
	"github.com/insilichem/pychimera/internal/doctor"
	"github.com/insilichem/pychimera/internal/interp"
	"github.com/insilichem/pychimera/internal/locate"
	"github.com/insilichem/pychimera/internal/messages"
)

// doctor reports whether a headless run could start, without relaunching.
func (l *launcher) doctor(ctx context.Context) error {
	out := l.stdout
	_, _ = fmt.Fprintf(out, messages.DoctorHeaderFmt, l.plat.Name)

	results, cfg := doctor.CheckConfig(l.paths)
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := l.useConfig(cfg); err != nil {
		results = append(results, doctor.Result{
			Status:         doctor.StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorEnvFileFailedFmt, err),
			Recommendation: messages.DoctorEnvFileRecommend,
		})
	}
	results = append(results, doctor.CheckSentinels(l.env)...)

	resolver, err := l.resolver()
	if err != nil {
		results = append(results, doctor.Result{
			Status:         doctor.StatusFail,
			CheckName:      messages.DoctorCheckNameInstall,
			Message:        fmt.Sprintf(messages.DoctorInstallFailFmt, err),
			Recommendation: messages.DoctorConfigLoadRecommend,
		})
	} else {
		installResults, candidates := doctor.CheckInstall(ctx, resolver)
		results = append(results, installResults...)
		if len(candidates) > 0 {
			root := locate.SelectRoot(candidates, true)
			finder := interp.Finder{Sys: interpSystem, Platform: l.plat}
			results = append(results, doctor.CheckLayout(root)...)
			results = append(results, doctor.CheckInitModule(root, l.plat))
			results = append(results, doctor.CheckInterpreter(ctx, finder, l.pythonRequest(root)))
		}
	}

	for _, r := range results {
		printResult(out, r)
	}
	if doctor.HasFailure(results) {
		_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
		return fmt.Errorf(messages.DoctorFailureError)
	}
	_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
	return nil
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	for i, line := range strings.Split(recommendation, "\n") {
		switch {
		case i == 0:
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
		case line == "":
			_, _ = fmt.Fprintln(out, strings.TrimRight(messages.DoctorRecommendationIndent, " "))
		default:
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
		}
	}
}
