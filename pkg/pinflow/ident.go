package pinflow

import "sync/atomic"

// InputSetID uniquely identifies an input set for the process lifetime.
type InputSetID uint64

// OutputSetID uniquely identifies an output set for the process lifetime.
type OutputSetID uint64

// setIDCounter is shared by every input and output set constructor in the
// process, independent of which System the set belongs to. IDs are never
// reset and never reused, so a handle remains a valid identifier even
// after its target is gone or its System is dropped.
var setIDCounter atomic.Uint64

func nextInputSetID() InputSetID {
	return InputSetID(setIDCounter.Add(1))
}

func nextOutputSetID() OutputSetID {
	return OutputSetID(setIDCounter.Add(1))
}
