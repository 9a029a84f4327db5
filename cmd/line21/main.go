/*
DESCRIPTION
  line21 decodes CEA-608 (Line 21) closed captions from a raw grayscale
  video frame stream, producing one or more of: SRT, SCC, plain-text,
  HTML, a raw byte-pair dump, and an XDS packet log.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package line21 is a command line decoder for CEA-608 closed captions.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/line21/frame"
	"github.com/ausocean/line21/pipeline"
	"github.com/ausocean/line21/pipeline/config"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration.
const (
	logPath      = "line21.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

const pkg = "line21: "

func main() {
	showVersion := flag.Bool("version", false, "show version")
	input := flag.String("input", "", "path to raw grayscale frame stream (default: stdin)")
	width := flag.Int("width", 720, "frame width in pixels")
	height := flag.Int("height", 480, "frame height in scanlines")
	startLine := flag.Int("start-line", 19, "first scanline searched for a caption preamble")
	searchLines := flag.Int("search-lines", 4, "number of scanlines searched from start-line")
	formats := flag.String("formats", "srt", "comma-separated output formats: srt,scc,txt,html,raw,xds")
	outDir := flag.String("out", ".", "directory output files are written to")
	lockThreshold := flag.Int("field-lock-threshold", 3, "consistent observations required to lock a row's field")
	shutdownTimeout := flag.Duration("shutdown-timeout", 5*time.Second, "max time to wait for sinks to drain on shutdown")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)
	log.Info("starting line21", "version", version)

	fmts, err := parseFormats(*formats)
	if err != nil {
		log.Fatal(pkg+"bad -formats value", "error", err.Error())
	}

	cfg := config.Config{
		Width:              *width,
		Height:             *height,
		StartLine:          *startLine,
		SearchLines:        *searchLines,
		Formats:            fmts,
		OutputDir:          *outDir,
		FieldLockThreshold: *lockThreshold,
		ShutdownTimeout:    *shutdownTimeout,
		Logger:             log,
	}

	dec, err := pipeline.New(cfg)
	if err != nil {
		log.Fatal(pkg+"could not create pipeline", "error", err.Error())
	}

	r := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal(pkg+"could not open input", "error", err.Error())
		}
		defer f.Close()
		r = f
	}
	src := frame.NewPipeSource(r, *width, *height)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		log.Info("received interrupt, shutting down")
		cancel()
	}()

	log.Debug("beginning decode")
	if err := dec.Run(ctx, src); err != nil && err != context.Canceled {
		log.Fatal(pkg+"decode failed", "error", err.Error())
	}
	log.Info("finished decode")
}

func parseFormats(s string) ([]config.Format, error) {
	var out []config.Format
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, err := config.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no formats given")
	}
	return out, nil
}
