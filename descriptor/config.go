package descriptor

import "fmt"

// Config is the typed store behind a Descriptor.
type Config struct {
	Output      Value // Default or Replace
	Mask        Value // Default or SCMP
	Input0      Value // Default or Transpose
	Input1      Value // Default or Transpose
	Mode        Value // FixedRow, FixedCol or MergePath
	TA          int
	TB          int
	NT          int // threads per block
	Direction   Value // Push, Pull or PushPull
	LoadBalance Value // Apspie, TWC or MergePath
	Precision   int   // 16, 32 or 64
	Debug       bool
}

// DefaultConfig returns the default descriptor settings.
func DefaultConfig() Config {
	return Config{
		Output:      Default,
		Mask:        Default,
		Input0:      Default,
		Input1:      Default,
		Mode:        FixedRow,
		TA:          32,
		TB:          32,
		NT:          128,
		Direction:   PushPull,
		LoadBalance: Apspie,
		Precision:   16,
	}
}

// Validate checks every field against its domain.
func (c Config) Validate() error {
	for f := Field(0); f < numFields; f++ {
		if err := validate(f, c.get(f)); err != nil {
			return err
		}
	}
	return nil
}

func validate(f Field, v Value) error {
	ok := false
	switch f {
	case Output:
		ok = v == Default || v == Replace
	case Mask:
		ok = v == Default || v == SCMP
	case Input0, Input1:
		ok = v == Default || v == Transpose
	case Mode:
		ok = v == FixedRow || v == FixedCol || v == MergePath
	case TA, TB, NT:
		ok = v > 0
	case Direction:
		ok = v == Push || v == Pull || v == PushPull
	case LoadBalance:
		ok = v == Apspie || v == TWC || v == MergePath
	case Precision:
		ok = v == 16 || v == 32 || v == 64
	case Debug:
		ok = v == Default || v == On
	default:
		return fmt.Errorf("%w: %s", ErrInvalidField, f)
	}
	if !ok {
		return fmt.Errorf("%w: %s for field %s", ErrInvalidValue, v, f)
	}
	return nil
}

func (c Config) get(f Field) Value {
	switch f {
	case Output:
		return c.Output
	case Mask:
		return c.Mask
	case Input0:
		return c.Input0
	case Input1:
		return c.Input1
	case Mode:
		return c.Mode
	case TA:
		return Value(c.TA)
	case TB:
		return Value(c.TB)
	case NT:
		return Value(c.NT)
	case Direction:
		return c.Direction
	case LoadBalance:
		return c.LoadBalance
	case Precision:
		return Value(c.Precision)
	case Debug:
		if c.Debug {
			return On
		}
		return Default
	}
	return 0
}

func (c *Config) set(f Field, v Value) {
	switch f {
	case Output:
		c.Output = v
	case Mask:
		c.Mask = v
	case Input0:
		c.Input0 = v
	case Input1:
		c.Input1 = v
	case Mode:
		c.Mode = v
	case TA:
		c.TA = int(v)
	case TB:
		c.TB = int(v)
	case NT:
		c.NT = int(v)
	case Direction:
		c.Direction = v
	case LoadBalance:
		c.LoadBalance = v
	case Precision:
		c.Precision = int(v)
	case Debug:
		c.Debug = v == On
	}
}
