package machine

import (
	"fmt"

	"golang.org/x/crypto/sha3"

	"iulia/interpreter-go/pkg/runtime"
)

// Engine is the reference primitive-instruction engine: EVM-flavoured
// operations over 256-bit values and a shared State. It satisfies the
// interpreter's InstructionEngine interface.
type Engine struct {
	state *State
}

func NewEngine(state *State) *Engine {
	return &Engine{state: state}
}

// State exposes the shared machine state for inspection after a run.
func (e *Engine) State() *State {
	return e.state
}

// Eval executes one instruction with already-evaluated arguments. The
// argument slice is never retained. Instructions without a result return
// the zero value.
func (e *Engine) Eval(instruction string, args []runtime.Value) (runtime.Value, error) {
	switch instruction {
	case "add":
		return e.binary(instruction, args, (*runtime.Value).Add)
	case "sub":
		return e.binary(instruction, args, (*runtime.Value).Sub)
	case "mul":
		return e.binary(instruction, args, (*runtime.Value).Mul)
	case "div":
		return e.binary(instruction, args, (*runtime.Value).Div)
	case "sdiv":
		return e.binary(instruction, args, (*runtime.Value).SDiv)
	case "mod":
		return e.binary(instruction, args, (*runtime.Value).Mod)
	case "smod":
		return e.binary(instruction, args, (*runtime.Value).SMod)
	case "exp":
		return e.binary(instruction, args, (*runtime.Value).Exp)
	case "addmod":
		if err := expectArgs(instruction, args, 3); err != nil {
			return runtime.Value{}, err
		}
		var out runtime.Value
		out.AddMod(&args[0], &args[1], &args[2])
		return out, nil
	case "mulmod":
		if err := expectArgs(instruction, args, 3); err != nil {
			return runtime.Value{}, err
		}
		var out runtime.Value
		out.MulMod(&args[0], &args[1], &args[2])
		return out, nil
	case "lt":
		return e.compare(instruction, args, func(x, y *runtime.Value) bool { return x.Lt(y) })
	case "gt":
		return e.compare(instruction, args, func(x, y *runtime.Value) bool { return x.Gt(y) })
	case "slt":
		return e.compare(instruction, args, func(x, y *runtime.Value) bool { return x.Slt(y) })
	case "sgt":
		return e.compare(instruction, args, func(x, y *runtime.Value) bool { return x.Sgt(y) })
	case "eq":
		return e.compare(instruction, args, func(x, y *runtime.Value) bool { return x.Eq(y) })
	case "iszero":
		if err := expectArgs(instruction, args, 1); err != nil {
			return runtime.Value{}, err
		}
		return boolValue(args[0].IsZero()), nil
	case "and":
		return e.binary(instruction, args, (*runtime.Value).And)
	case "or":
		return e.binary(instruction, args, (*runtime.Value).Or)
	case "xor":
		return e.binary(instruction, args, (*runtime.Value).Xor)
	case "not":
		if err := expectArgs(instruction, args, 1); err != nil {
			return runtime.Value{}, err
		}
		var out runtime.Value
		out.Not(&args[0])
		return out, nil
	case "byte":
		if err := expectArgs(instruction, args, 2); err != nil {
			return runtime.Value{}, err
		}
		var out runtime.Value
		out.Set(&args[1])
		out.Byte(&args[0])
		return out, nil
	case "shl":
		return e.shift(instruction, args, func(value *runtime.Value, n uint) { value.Lsh(value, n) })
	case "shr":
		return e.shift(instruction, args, func(value *runtime.Value, n uint) { value.Rsh(value, n) })
	case "keccak256":
		return e.keccak256(args)
	case "mload":
		return e.mload(args)
	case "mstore":
		return runtime.Value{}, e.mstore(args)
	case "mstore8":
		return runtime.Value{}, e.mstore8(args)
	case "msize":
		if err := expectArgs(instruction, args, 0); err != nil {
			return runtime.Value{}, err
		}
		return runtime.NewValue(e.state.MemorySize()), nil
	case "sload":
		if err := expectArgs(instruction, args, 1); err != nil {
			return runtime.Value{}, err
		}
		return e.state.StorageAt(args[0]), nil
	case "sstore":
		if err := expectArgs(instruction, args, 2); err != nil {
			return runtime.Value{}, err
		}
		e.state.storage[args[0]] = args[1]
		e.state.logTrace("sstore(%s, %s)", args[0].Hex(), args[1].Hex())
		return runtime.Value{}, nil
	case "calldataload":
		if err := expectArgs(instruction, args, 1); err != nil {
			return runtime.Value{}, err
		}
		return e.state.callDataWord(args[0]), nil
	case "calldatasize":
		if err := expectArgs(instruction, args, 0); err != nil {
			return runtime.Value{}, err
		}
		return runtime.NewValue(uint64(len(e.state.callData))), nil
	case "caller":
		if err := expectArgs(instruction, args, 0); err != nil {
			return runtime.Value{}, err
		}
		return e.state.caller, nil
	case "callvalue":
		if err := expectArgs(instruction, args, 0); err != nil {
			return runtime.Value{}, err
		}
		return e.state.callValue, nil
	case "address":
		if err := expectArgs(instruction, args, 0); err != nil {
			return runtime.Value{}, err
		}
		return e.state.address, nil
	case "pop":
		if err := expectArgs(instruction, args, 1); err != nil {
			return runtime.Value{}, err
		}
		return runtime.Value{}, nil
	case "log0", "log1", "log2", "log3", "log4":
		return runtime.Value{}, e.log(instruction, args)
	default:
		return runtime.Value{}, fmt.Errorf("machine: unknown instruction %q", instruction)
	}
}

func (e *Engine) binary(instruction string, args []runtime.Value, op func(z, x, y *runtime.Value) *runtime.Value) (runtime.Value, error) {
	if err := expectArgs(instruction, args, 2); err != nil {
		return runtime.Value{}, err
	}
	var out runtime.Value
	op(&out, &args[0], &args[1])
	return out, nil
}

func (e *Engine) compare(instruction string, args []runtime.Value, op func(x, y *runtime.Value) bool) (runtime.Value, error) {
	if err := expectArgs(instruction, args, 2); err != nil {
		return runtime.Value{}, err
	}
	return boolValue(op(&args[0], &args[1])), nil
}

func (e *Engine) shift(instruction string, args []runtime.Value, op func(value *runtime.Value, n uint)) (runtime.Value, error) {
	if err := expectArgs(instruction, args, 2); err != nil {
		return runtime.Value{}, err
	}
	if !args[0].LtUint64(256) {
		return runtime.Value{}, nil
	}
	var out runtime.Value
	out.Set(&args[1])
	op(&out, uint(args[0].Uint64()))
	return out, nil
}

func (e *Engine) keccak256(args []runtime.Value) (runtime.Value, error) {
	if err := expectArgs("keccak256", args, 2); err != nil {
		return runtime.Value{}, err
	}
	if !args[1].IsUint64() {
		return runtime.Value{}, fmt.Errorf("machine: keccak256 size %s out of range", args[1].Hex())
	}
	data, err := e.state.memorySlice(args[0], args[1].Uint64())
	if err != nil {
		return runtime.Value{}, err
	}
	hash := sha3.NewLegacyKeccak256()
	hash.Write(data)
	var out runtime.Value
	out.SetBytes(hash.Sum(nil))
	return out, nil
}

func (e *Engine) mload(args []runtime.Value) (runtime.Value, error) {
	if err := expectArgs("mload", args, 1); err != nil {
		return runtime.Value{}, err
	}
	word, err := e.state.memorySlice(args[0], 32)
	if err != nil {
		return runtime.Value{}, err
	}
	var out runtime.Value
	out.SetBytes(word)
	return out, nil
}

func (e *Engine) mstore(args []runtime.Value) error {
	if err := expectArgs("mstore", args, 2); err != nil {
		return err
	}
	word, err := e.state.memorySlice(args[0], 32)
	if err != nil {
		return err
	}
	bytes32 := args[1].Bytes32()
	copy(word, bytes32[:])
	return nil
}

func (e *Engine) mstore8(args []runtime.Value) error {
	if err := expectArgs("mstore8", args, 2); err != nil {
		return err
	}
	cell, err := e.state.memorySlice(args[0], 1)
	if err != nil {
		return err
	}
	cell[0] = byte(args[1].Uint64() & 0xff)
	return nil
}

func (e *Engine) log(instruction string, args []runtime.Value) error {
	topics := int(instruction[3] - '0')
	if err := expectArgs(instruction, args, 2+topics); err != nil {
		return err
	}
	entry := instruction + "("
	for idx := range args {
		if idx > 0 {
			entry += ", "
		}
		entry += args[idx].Hex()
	}
	e.state.logTrace("%s)", entry)
	return nil
}

func expectArgs(instruction string, args []runtime.Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("machine: %s expects %d arguments, got %d", instruction, n, len(args))
	}
	return nil
}

func boolValue(b bool) runtime.Value {
	if b {
		return runtime.NewValue(1)
	}
	return runtime.Value{}
}
