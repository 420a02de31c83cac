package timer

// Notification texts for each transition.
const (
	MessageStart         = "Time to focus!"
	MessagePause         = "Pomodoro paused."
	MessageResume        = "Resuming pomodoro."
	MessageWorkDone      = "Time for a break!"
	MessageShortBreakEnd = "Break is over. Time to focus!"
	MessageLongBreakEnd  = "Long break is over. Time to get back to it!"
	MessageReset         = "Reset timer."
)
