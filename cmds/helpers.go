package cmds

import "strings"

// Var defines name to set the returned value, and name+"." to reset it.
func Var[T any](name string, desc ...string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}).Desc(strings.Join(desc, " ")))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}).Desc("reset " + name))
	return &value
}

// Switch defines name to turn the returned value on, and "!"+name to turn it off.
func Switch(name string, desc ...string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}).Desc(strings.Join(desc, " ")))
	Define("!"+name, Func(func() {
		value = false
	}).Desc("unset " + name))
	return &value
}

// Collect defines name to append to the returned slice on every use.
func Collect[T any](name string, desc ...string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}).Desc(strings.Join(desc, " ")))
	return &value
}
