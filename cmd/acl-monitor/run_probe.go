package main

import (
	"context"
	"sync"
	"time"

	"code.cloudfoundry.org/acl/logx"
	"code.cloudfoundry.org/acl/monitor"
	"code.cloudfoundry.org/clock"
	uuid "github.com/satori/go.uuid"
)

const (
	ProbeHistogramWindow      = 5 // Minutes
	ProbeHistogramRefreshTime = 1 * time.Minute
)

func RunProbeWithFrequency(
	logger logx.Logger,
	probe *monitor.Probe,
	statter monitor.ProbeStatter,
	c clock.Clock,
	probeFrequency,
	probeTimeout time.Duration,
) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()

		for range c.NewTicker(ProbeHistogramRefreshTime).C() {
			statter.Rotate()
		}
	}()

	go func() {
		defer wg.Done()

		for range c.NewTicker(probeFrequency).C() {
			recordProbeResults(logger, probe, statter, probeTimeout)
		}
	}()

	wg.Wait()
}

func recordProbeResults(
	logger logx.Logger,
	probe *monitor.Probe,
	statter monitor.ProbeStatter,
	timeout time.Duration,
) {
	uniqueSuffix := uuid.NewV4().String()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	defer func() {
		if err := probe.Cleanup(ctx, logger.WithName("cleanup"), uniqueSuffix); err != nil {
			logger.Error(failedToCleanupProbe, err)
		}
	}()

	if err := probe.Setup(ctx, logger.WithName("setup"), uniqueSuffix); err != nil {
		logger.Error(failedToSetupProbe, err)
		statter.SendFailedProbe(logger.WithName("metrics"))
		return
	}

	correct, durations, err := probe.Run(ctx, logger.WithName("run"), uniqueSuffix)

	metricsLogger := logger.WithName("metrics")

	switch {
	case err != nil:
		logger.Error(failedToRunProbe, err)
		statter.SendFailedProbe(metricsLogger)
	case !correct:
		statter.SendIncorrectProbe(metricsLogger)
	default:
		for _, d := range durations {
			statter.RecordProbeDuration(metricsLogger, d)
		}
		statter.SendCorrectProbe(metricsLogger)
	}

	statter.SendStats(metricsLogger)
}
