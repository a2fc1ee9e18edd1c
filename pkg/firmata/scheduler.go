// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package firmata

// Scheduler sub-commands, per spec.md §4.5.
const (
	SchedulerCreate    = 0
	SchedulerDelete    = 1
	SchedulerAddTo     = 2
	SchedulerDelay     = 3
	SchedulerSchedule  = 4
	SchedulerQueryAll  = 5
	SchedulerQueryOne  = 6
	SchedulerReset     = 7
	SchedulerError     = 8
	SchedulerQueryAllReply = 9
	SchedulerQueryOneReply = 10
)

// SchedulerCreateTask reserves a task slot of taskLen bytes under id.
func (s *Session) SchedulerCreateTask(id byte, taskLen uint16) []byte {
	lsb, msb := pack14(int(taskLen))
	return s.EncodeSysexCommand("SCHEDULER_DATA", SchedulerCreate, id, lsb, msb)
}

// SchedulerDeleteTask removes the task identified by id.
func (s *Session) SchedulerDeleteTask(id byte) []byte {
	return s.EncodeSysexCommand("SCHEDULER_DATA", SchedulerDelete, id)
}

// SchedulerAddToTask appends raw message bytes to task id's stored
// body, double-7-bit encoded as an arbitrary byte payload.
func (s *Session) SchedulerAddToTask(id byte, message []byte) []byte {
	payload := append([]byte{SchedulerAddTo, id}, doubleSevenBitEncode(message)...)
	return s.EncodeSysexCommand("SCHEDULER_DATA", payload...)
}

// SchedulerDelayMs delays the scheduler's next task dispatch globally.
func (s *Session) SchedulerDelayMs(ms uint32) []byte {
	payload := append([]byte{SchedulerDelay}, pack7LE(ms)...)
	return s.EncodeSysexCommand("SCHEDULER_DATA", payload...)
}

// SchedulerScheduleTask schedules task id to run after delayMs.
func (s *Session) SchedulerScheduleTask(id byte, delayMs uint32) []byte {
	payload := append([]byte{SchedulerSchedule, id}, pack7LE(delayMs)...)
	return s.EncodeSysexCommand("SCHEDULER_DATA", payload...)
}

// SchedulerQueryAllTasks requests the id list of every scheduled task.
func (s *Session) SchedulerQueryAllTasks() []byte {
	return s.EncodeSysexCommand("SCHEDULER_DATA", SchedulerQueryAll)
}

// SchedulerQueryTask requests the full state of task id.
func (s *Session) SchedulerQueryTask(id byte) []byte {
	return s.EncodeSysexCommand("SCHEDULER_DATA", SchedulerQueryOne, id)
}

// SchedulerResetAll clears every scheduled task.
func (s *Session) SchedulerResetAll() []byte {
	return s.EncodeSysexCommand("SCHEDULER_DATA", SchedulerReset)
}

// SchedulerTask is one task's state, decoded from a QUERY_ONE_REPLY.
type SchedulerTask struct {
	ID       byte
	TimeMs   uint32
	Len      uint16
	Position uint16
	Messages []byte
}

// SchedulerReply is the decoded payload of a scheduler reply sub-command.
type SchedulerReply struct {
	Subcmd byte
	IDs    []byte // SchedulerQueryAllReply: every known task id.
	Task   *SchedulerTask
}

func (s *Session) decodeScheduler(body []byte) SchedulerReply {
	r := SchedulerReply{}
	if len(body) == 0 {
		return r
	}
	r.Subcmd = body[0]
	rest := body[1:]

	switch r.Subcmd {
	case SchedulerQueryAllReply:
		r.IDs = append([]byte(nil), rest...)

	case SchedulerQueryOneReply:
		if len(rest) == 0 {
			return r
		}
		id := rest[0]
		if len(rest) == 1 {
			// Short form: task id with no body, e.g. an unknown id.
			r.Task = &SchedulerTask{ID: id}
			return r
		}
		// unpacked is the plain 8-bit byte block recovered by unpack7,
		// not a further 7-bit-packed quantity: time_ms/len/position are
		// ordinary little-endian integers over these bytes.
		unpacked := unpack7(rest[1:])
		task := &SchedulerTask{ID: id}
		if len(unpacked) >= 4 {
			task.TimeMs = uint32(unpacked[0]) | uint32(unpacked[1])<<8 |
				uint32(unpacked[2])<<16 | uint32(unpacked[3])<<24
		}
		if len(unpacked) >= 6 {
			task.Len = uint16(unpacked[4]) | uint16(unpacked[5])<<8
		}
		if len(unpacked) >= 8 {
			task.Position = uint16(unpacked[6]) | uint16(unpacked[7])<<8
		}
		if len(unpacked) > 8 {
			task.Messages = unpacked[8:]
		}
		r.Task = task

	default:
		// SchedulerError and anything else: leave the raw body in Task
		// unset, callers distinguish by Subcmd.
	}

	return r
}
