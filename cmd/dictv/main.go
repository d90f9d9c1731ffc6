// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/kozlovskilab/dictschema"
)

func usage() {
	fmt.Fprintln(os.Stderr, "dictv [OPTIONS] <schema> [<doc>]...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	pflag.PrintDefaults()
}

func main() {
	strict := pflag.Bool("strict", true, "fail on type mismatch instead of coercing")
	backtrack := pflag.Bool("backtrack", false, "compile regexes with a backtracking engine (lookarounds, backreferences)")
	dateFormat := pflag.String("date-format", "", "default format of datetime values")
	logLevel := pflag.String("log-level", "warn", "log level: debug, info, warn or error")
	logFormat := pflag.String("log-format", "text", "log format: text or json")
	pflag.Usage = usage
	pflag.Parse()
	if pflag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	logger, err := newLogger(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	descriptor, err := dictschema.LoadDescriptor(pflag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	c := dictschema.NewCompiler()
	if *backtrack {
		c.CompileRegex = dictschema.BacktrackRegexp
	}
	c.DefaultDateFormat = *dateFormat
	sch, err := c.Compile(descriptor)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("schema compiled", slog.String("path", pflag.Arg(0)), slog.String("type", sch.Type().String()))

	vd := dictschema.New(dictschema.WithStrictMode(*strict), dictschema.WithLogger(logger))
	failed := false
	for _, f := range pflag.Args()[1:] {
		doc, err := dictschema.LoadFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error in reading %q. reason:\n%v\n", f, err)
			failed = true
			continue
		}
		if _, err := vd.Validate(doc, sch); err != nil {
			fmt.Fprintf(os.Stderr, "%q does not conform to the schema specified. reason:\n%#v\n", f, err)
			failed = true
			continue
		}
		logger.Info("document valid", slog.String("path", f))
	}
	if failed {
		os.Exit(1)
	}
}

func newLogger(level, format string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: l}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be %q or %q", format, "text", "json")
	}
}
