package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/arzzra/sdpbw/pkg/metrics"
	"github.com/arzzra/sdpbw/pkg/report"
	"github.com/arzzra/sdpbw/pkg/uplink"
	"github.com/sirupsen/logrus"
)

const logLevelEnv = "SDPBW_LOG_LEVEL"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run выполняет один анализ и возвращает код завершения
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("sdpbw", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		format      = flags.String("format", string(report.FormatText), "Output format: text, sdp")
		metricsFile = flags.String("metrics-file", "", "Write Prometheus metrics to this file after the run")
		logLevel    = flags.String("log-level", logrus.WarnLevel.String(), "Log level (env "+logLevelEnv+")")
		strictZero  = flags.Bool("strict-zero", false, "Treat explicit b=RS:0 / b=RR:0 as set")
	)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: sdpbw [flags] <filename>")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 1
	}

	logger, err := newLogger(stderr, *logLevel, flagSet(flags, "log-level"))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	outputFormat, err := report.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	renderer, err := report.NewRenderer(outputFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var collector *metrics.Collector
	if *metricsFile != "" {
		collector = metrics.NewCollector(metrics.DefaultConfig())
		defer func() {
			if err := collector.WriteTextfile(*metricsFile); err != nil {
				logger.WithError(err).WithField("path", *metricsFile).Error("не удалось записать метрики")
			}
		}()
	}

	config := uplink.DefaultConfig()
	config.Logger = logger
	config.Parser.Logger = logger
	config.Metrics = collector
	config.Bandwidth.ZeroMeansAbsent = !*strictZero

	analyzer, err := uplink.NewAnalyzer(config)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	result, err := analyzer.AnalyzeFile(context.Background(), flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger.WithFields(logrus.Fields{
		"lines":    result.Stats.Lines,
		"misses":   result.Stats.Misses,
		"orphaned": result.Stats.Orphaned,
	}).Debug("анализ завершен")

	if err := renderer.Render(stdout, result.Flows); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newLogger создает logrus логгер; переменная окружения используется,
// только если флаг не задан явно
func newLogger(out io.Writer, level string, explicit bool) (*logrus.Logger, error) {
	if env := os.Getenv(logLevelEnv); env != "" && !explicit {
		level = env
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger, nil
}

func flagSet(flags *flag.FlagSet, name string) bool {
	found := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
