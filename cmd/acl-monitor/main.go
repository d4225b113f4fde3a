package main

import (
	"net"
	"os"
	"strconv"
	"time"

	"code.cloudfoundry.org/acl"
	cmdflags "code.cloudfoundry.org/acl/cmd/flags"
	"code.cloudfoundry.org/acl/logging"
	"code.cloudfoundry.org/acl/logx"
	"code.cloudfoundry.org/acl/monitor"
	"code.cloudfoundry.org/clock"
	"github.com/cactus/go-statsd-client/statsd"
	flags "github.com/jessevdk/go-flags"
)

type options struct {
	StatsD statsDOptions `group:"StatsD" namespace:"statsd"`

	Logger cmdflags.LagerFlag

	Frequency  time.Duration `long:"frequency" description:"Frequency with which the probe is run" default:"5s"`
	Timeout    time.Duration `long:"timeout" description:"Time after which the probe will cancel a run" default:"10s"`
	MaxLatency time.Duration `long:"max-latency" description:"Decision latency above which a run is counted incorrect" default:"100ms"`
}

type statsDOptions struct {
	Hostname string `long:"hostname" description:"Hostname used to connect to StatsD server" required:"true"`
	Port     int    `long:"port" description:"Port used to connect to StatsD server" required:"true"`
}

func main() {
	parserOpts := &options{}
	parser := flags.NewParser(parserOpts, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		os.Exit(1)
	}

	logger := parserOpts.Logger.Logger("acl-monitor")

	logger.Debug(starting)
	defer logger.Debug(finished)

	statsDAddr := net.JoinHostPort(parserOpts.StatsD.Hostname, strconv.Itoa(parserOpts.StatsD.Port))
	statsDClient, err := statsd.NewBufferedClient(statsDAddr, "", 0, 0)
	if err != nil {
		logger.Error(failedToConnectToStatsD, err, logx.Data{Key: "addr", Value: statsDAddr})
		os.Exit(1)
	}
	defer statsDClient.Close()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	securityLogger := logging.NewCEFLogger(
		os.Stdout,
		"cloud_foundry",
		"acl",
		"0.0.1",
		logging.Hostname(hostname),
	)

	engine := acl.New(
		acl.WithLogger(logger.WithName("engine")),
		acl.WithSecurityLogger(securityLogger),
	)

	probe := monitor.NewProbe(engine, monitor.WithMaxLatency(parserOpts.MaxLatency))

	probeHistogram := monitor.NewThreadSafeHistogram(
		ProbeHistogramWindow,
		0,
		time.Minute,
		3,
	)
	statter := &monitor.Statter{
		Statter:   statsDClient,
		Histogram: probeHistogram,
	}

	RunProbeWithFrequency(
		logger.WithName("probe"),
		probe,
		statter,
		clock.NewClock(),
		parserOpts.Frequency,
		parserOpts.Timeout,
	)
}
