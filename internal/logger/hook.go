// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const componentField = "component"

// sinkTarget pairs a sink with the formatter chosen for it.
type sinkTarget struct {
	sink      Sink
	formatter Formatter
}

// sinkHook renders every event zerolog lets through into a Record and hands
// it to each target. The event itself is discarded, so the message reaches
// the sinks exactly as it was logged.
type sinkHook struct {
	component string
	now       func() time.Time
	targets   []sinkTarget
	errOutput io.Writer
}

var _ zerolog.Hook = sinkHook{}

func (h sinkHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Discard()

	severity, ok := severityFromZerolog(level)
	if !ok {
		return
	}
	record := Record{
		Time:      h.now(),
		Component: h.component,
		Severity:  severity,
		Message:   msg,
	}

	for _, target := range h.targets {
		if err := target.sink.Write(target.formatter.Format(record)); err != nil {
			fmt.Fprintf(h.errOutput, "%s: writing record to %s sink: %s\n", h.component, target.sink.Kind(), err)
		}
	}
}

func newSinkHook(component string, now func() time.Time, sinks []Sink, formatterFor func(Sink) Formatter) sinkHook {
	targets := make([]sinkTarget, 0, len(sinks))
	for _, sink := range sinks {
		targets = append(targets, sinkTarget{sink: sink, formatter: formatterFor(sink)})
	}
	return sinkHook{
		component: component,
		now:       now,
		targets:   targets,
		errOutput: os.Stderr,
	}
}
