package machine

import (
	"fmt"

	"iulia/interpreter-go/pkg/runtime"
)

// memoryCap bounds linear memory; test programs never come close, and the
// cap turns a corrupt offset into an engine error instead of an OOM.
const memoryCap = 1 << 24

// State is the machine state shared by reference across every activation
// of one run: linear byte memory, 256-bit-keyed storage, call data, and a
// trace of effectful instructions.
type State struct {
	memory   []byte
	storage  map[runtime.Value]runtime.Value
	callData []byte
	trace    []string

	caller    runtime.Value
	callValue runtime.Value
	address   runtime.Value
}

func NewState() *State {
	return &State{
		storage: make(map[runtime.Value]runtime.Value),
	}
}

// SetCallData installs the input data visible to calldataload/calldatasize.
func (s *State) SetCallData(data []byte) {
	s.callData = append([]byte(nil), data...)
}

// SetCaller installs the value returned by the caller instruction.
func (s *State) SetCaller(v runtime.Value) { s.caller = v }

// SetCallValue installs the value returned by the callvalue instruction.
func (s *State) SetCallValue(v runtime.Value) { s.callValue = v }

// SetAddress installs the value returned by the address instruction.
func (s *State) SetAddress(v runtime.Value) { s.address = v }

// StorageAt reads one storage slot (zero when never written).
func (s *State) StorageAt(key runtime.Value) runtime.Value {
	return s.storage[key]
}

// Storage returns a copy of all written slots.
func (s *State) Storage() map[runtime.Value]runtime.Value {
	out := make(map[runtime.Value]runtime.Value, len(s.storage))
	for key, value := range s.storage {
		out[key] = value
	}
	return out
}

// Trace returns the effectful-instruction log in execution order.
func (s *State) Trace() []string {
	return append([]string(nil), s.trace...)
}

// MemorySize returns the current extent of linear memory in bytes.
func (s *State) MemorySize() uint64 {
	return uint64(len(s.memory))
}

func (s *State) logTrace(format string, args ...any) {
	s.trace = append(s.trace, fmt.Sprintf(format, args...))
}

// memorySlice grows memory to cover [offset, offset+size) and returns the
// backing slice for it.
func (s *State) memorySlice(offset runtime.Value, size uint64) ([]byte, error) {
	if !offset.IsUint64() || size > memoryCap || offset.Uint64() > memoryCap-size {
		return nil, fmt.Errorf("machine: memory access at %s+%d out of bounds", offset.Hex(), size)
	}
	end := offset.Uint64() + size
	if end > uint64(len(s.memory)) {
		grown := make([]byte, end)
		copy(grown, s.memory)
		s.memory = grown
	}
	return s.memory[offset.Uint64():end], nil
}

func (s *State) callDataWord(offset runtime.Value) runtime.Value {
	var word [32]byte
	if offset.IsUint64() {
		start := offset.Uint64()
		for i := uint64(0); i < 32; i++ {
			if start+i < uint64(len(s.callData)) {
				word[i] = s.callData[start+i]
			}
		}
	}
	var v runtime.Value
	v.SetBytes(word[:])
	return v
}
