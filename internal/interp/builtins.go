package interp

import "time"

// registerBuiltins installs the global native functions every Lox program
// starts with.
func registerBuiltins(globals *Environment) {
	globals.Define("clock", &NativeFunction{
		Name: "clock",
		Args: 0,
		Fn: func(it *Interpreter, args []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / float64(time.Millisecond)), nil
		},
	})
	globals.Define("stringify", &NativeFunction{
		Name: "stringify",
		Args: 1,
		Fn: func(it *Interpreter, args []Value) (Value, error) {
			return String(Stringify(args[0])), nil
		},
	})
}
