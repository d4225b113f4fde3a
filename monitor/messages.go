package monitor

const (
	starting = "starting"
	finished = "finished"

	incorrectResponse  = "incorrect-response"
	exceededMaxLatency = "exceeded-max-latency"

	failedToAddGroup        = "failed-to-add-group"
	failedToAddUser         = "failed-to-add-user"
	failedToAllowPermission = "failed-to-allow-permission"
	failedToDeleteGroup     = "failed-to-delete-group"
	failedToDeleteUser      = "failed-to-delete-user"

	failedToSendMetric           = "failed-to-send-metric"
	failedToRecordHistogramValue = "failed-to-record-histogram-value"
)
