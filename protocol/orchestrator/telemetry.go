package orchestrator

import "time"

// Telemetry is the process-scoped communication and timing summary of one
// interpolation run, the explicit-value analogue of the source's
// TOTAL_SEND_BYTES / TOTAL_RECV_BYTES / TOTAL_RUN_TIME / MAX_COMPUTE_TIME
// environment variables.
type Telemetry struct {
	TotalSendBytes int64
	TotalRecvBytes int64
	SendRounds     int
	RecvRounds     int
	TotalRunTime   time.Duration
	MaxComputeTime time.Duration
}

func (t *Telemetry) absorb(bytesSent, bytesRecv int64, sendRounds, recvRounds int, runtime time.Duration) {
	t.TotalSendBytes += bytesSent
	t.TotalRecvBytes += bytesRecv
	t.SendRounds += sendRounds
	t.RecvRounds += recvRounds
	if runtime > t.MaxComputeTime {
		t.MaxComputeTime = runtime
	}
}
