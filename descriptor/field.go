package descriptor

import "fmt"

// Field identifies a descriptor setting.
type Field uint8

const (
	// Output selects whether the output is cleared before writing.
	Output Field = iota
	// Mask selects structural complement of the mask.
	Mask
	// Input0 selects transpose of the first input.
	Input0
	// Input1 selects transpose of the second input.
	Input1
	// Mode is the layout hint.
	Mode
	// TA is a tile-size hint.
	TA
	// TB is a tile-size hint.
	TB
	// NT is the number of threads per block.
	NT
	// Direction is the traversal direction hint.
	Direction
	// LoadBalance is the load-balancing strategy.
	LoadBalance
	// Precision is the floating-point precision hint in bits.
	Precision
	// Debug enables trace logging.
	Debug

	numFields
)

var fieldNames = [numFields]string{
	Output:      "output",
	Mask:        "mask",
	Input0:      "input0",
	Input1:      "input1",
	Mode:        "mode",
	TA:          "ta",
	TB:          "tb",
	NT:          "nt",
	Direction:   "direction",
	LoadBalance: "load_balance",
	Precision:   "precision",
	Debug:       "debug",
}

func (f Field) String() string {
	if f >= numFields {
		return fmt.Sprintf("field(%d)", uint8(f))
	}
	return fieldNames[f]
}

// Value is a descriptor setting. Numeric fields hold the number itself.
type Value int

// Enumerated values. They are negative so they never collide with numeric settings.
const (
	Default Value = -(iota + 1)
	Replace
	SCMP
	Transpose
	FixedRow
	FixedCol
	MergePath
	Push
	Pull
	PushPull
	Apspie
	TWC
	On
)

var valueNames = map[Value]string{
	Default:   "default",
	Replace:   "replace",
	SCMP:      "scmp",
	Transpose: "transpose",
	FixedRow:  "fixed_row",
	FixedCol:  "fixed_col",
	MergePath: "merge_path",
	Push:      "push",
	Pull:      "pull",
	PushPull:  "push_pull",
	Apspie:    "apspie",
	TWC:       "twc",
	On:        "on",
}

func (v Value) String() string {
	if name, ok := valueNames[v]; ok {
		return name
	}
	return fmt.Sprintf("%d", int(v))
}
