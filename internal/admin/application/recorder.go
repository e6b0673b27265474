package application

// Transition kinds reported to the Recorder.
const (
	TransitionPause   = "pause"
	TransitionResume  = "resume"
	TransitionExpire  = "expire"
	TransitionBlock   = "block"
	TransitionUnblock = "unblock"
)

// Recorder receives operational counters from the availability use-cases.
type Recorder interface {
	Transition(kind string)
	Decision(open bool)
	WriteBackFailed()
	CacheHit()
	CacheMiss()
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) Transition(string) {}
func (NopRecorder) Decision(bool) {}
func (NopRecorder) WriteBackFailed() {}
func (NopRecorder) CacheHit() {}
func (NopRecorder) CacheMiss() {}
