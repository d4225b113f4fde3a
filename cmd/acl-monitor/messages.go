package main

const (
	starting = "starting"
	finished = "finished"

	failedToConnectToStatsD = "failed-to-connect-to-statsd"
	failedToSetupProbe      = "failed-to-setup-probe"
	failedToRunProbe        = "failed-to-run-probe"
	failedToCleanupProbe    = "failed-to-cleanup-probe"
)
