package user

// Capabilities is the caller's capability set resolved by the permission
// gate. The core consumes these booleans as-is and never recomputes them
// from role or membership state.
type Capabilities struct {
	CanUploadBeats   bool
	CanCreateStudios bool
	CanAcceptJobs    bool
	IsProducer       bool
}
