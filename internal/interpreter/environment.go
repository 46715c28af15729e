package interpreter

import (
	"sort"

	"github.com/cookable-lang/cookable/internal/ast"
)

// Environment holds the interpreter's global tables. There is a single flat
// scope: assignments anywhere write the same variable table.
type Environment interface {
	Lookup(name string) (Value, bool)
	Assign(name string, value Value)
	Variables() []string

	Function(name string) (*ast.Function, bool)
	DefineFunction(fn *ast.Function)

	HasClass(name string) bool
	Method(className, method string) (*ast.Function, bool)
	DefineClass(class *ast.Class)

	// Allocate creates an instance with empty field storage.
	Allocate(className string) Instance
	Field(inst Instance, name string) (Value, bool)
	SetField(inst Instance, name string, value Value) bool
}

type classDef struct {
	name    string
	methods map[string]*ast.Function
}

type object struct {
	className string
	fields    map[string]Value
}

// GlobalEnvironment is the default Environment.
type GlobalEnvironment struct {
	variables map[string]Value
	functions map[string]*ast.Function
	classes   map[string]*classDef
	instances map[uint64]*object
	nextID    uint64
}

// NewGlobalEnvironment creates an empty environment.
func NewGlobalEnvironment() *GlobalEnvironment {
	return &GlobalEnvironment{
		variables: make(map[string]Value),
		functions: make(map[string]*ast.Function),
		classes:   make(map[string]*classDef),
		instances: make(map[uint64]*object),
	}
}

func (e *GlobalEnvironment) Lookup(name string) (Value, bool) {
	v, ok := e.variables[name]
	return v, ok
}

func (e *GlobalEnvironment) Assign(name string, value Value) {
	e.variables[name] = value
}

// Variables returns the bound variable names in sorted order.
func (e *GlobalEnvironment) Variables() []string {
	names := make([]string, 0, len(e.variables))
	for name := range e.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *GlobalEnvironment) Function(name string) (*ast.Function, bool) {
	fn, ok := e.functions[name]
	return fn, ok
}

// DefineFunction registers fn, replacing any earlier definition.
func (e *GlobalEnvironment) DefineFunction(fn *ast.Function) {
	e.functions[fn.Name] = fn
}

func (e *GlobalEnvironment) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

func (e *GlobalEnvironment) Method(className, method string) (*ast.Function, bool) {
	class, ok := e.classes[className]
	if !ok {
		return nil, false
	}
	fn, ok := class.methods[method]
	return fn, ok
}

// DefineClass registers class, replacing any earlier definition. Instances
// already allocated keep their class name and see the new methods.
func (e *GlobalEnvironment) DefineClass(class *ast.Class) {
	def := &classDef{name: class.Name, methods: make(map[string]*ast.Function, len(class.Methods))}
	for _, m := range class.Methods {
		def.methods[m.Name] = m
	}
	e.classes[class.Name] = def
}

func (e *GlobalEnvironment) Allocate(className string) Instance {
	e.nextID++
	e.instances[e.nextID] = &object{className: className, fields: make(map[string]Value)}
	return Instance{ClassName: className, ID: e.nextID}
}

func (e *GlobalEnvironment) Field(inst Instance, name string) (Value, bool) {
	obj, ok := e.instances[inst.ID]
	if !ok {
		return nil, false
	}
	v, ok := obj.fields[name]
	return v, ok
}

func (e *GlobalEnvironment) SetField(inst Instance, name string, value Value) bool {
	obj, ok := e.instances[inst.ID]
	if !ok {
		return false
	}
	obj.fields[name] = value
	return true
}
