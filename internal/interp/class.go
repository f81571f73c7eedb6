package interp

import (
	"fmt"

	"github.com/golox-lang/golox/internal/lexer"
)

// Class is a Lox class: a name, an optional superclass, and its own methods.
// Calling a Class value constructs an Instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Type() string   { return "class" }
func (c *Class) String() string { return c.Name }

// FindMethod looks up a method by name, walking up the superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the constructor's arity: the `init` method's, or 0 if the class
// declares none.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance, running its `init` method (if any) with
// args bound to this new instance.
func (c *Class) Call(it *Interpreter, args []Value) (Value, error) {
	instance := &Instance{class: c, fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(it, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is an object: a class pointer plus its own field bindings.
type Instance struct {
	class  *Class
	fields map[string]Value
}

func (i *Instance) Type() string   { return "instance" }
func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.class.Name) }

// Get resolves a property access: an instance's own fields shadow its
// class's methods, which are bound to this instance on the way out so
// `obj.method` is itself a valid, callable value.
func (i *Instance) Get(name lexer.Token) (Value, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if method := i.class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(i), nil
	}
	return nil, &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined property '%s'.", name.Lexeme)}
}

// Set assigns a field on the instance, creating it if it doesn't exist yet.
// Lox has no field declarations: any assignment to obj.x defines x.
func (i *Instance) Set(name lexer.Token, value Value) {
	i.fields[name.Lexeme] = value
}
