// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

// ExplicitString is a string option that remembers whether it was given on
// the command line.  The network option uses it so a name passed explicitly
// conflicts with a network flag while the default does not.
type ExplicitString struct {
	Value string
	set   bool
}

// NewExplicitString returns an option holding defaultValue that has not been
// explicitly set.
func NewExplicitString(defaultValue string) *ExplicitString {
	return &ExplicitString{Value: defaultValue}
}

// ExplicitlySet reports whether the option was parsed from the command line.
func (e *ExplicitString) ExplicitlySet() bool {
	return e.set
}

func (e *ExplicitString) String() string {
	return e.Value
}

// MarshalFlag satisfies the flags.Marshaler interface.
func (e *ExplicitString) MarshalFlag() (string, error) {
	return e.Value, nil
}

// UnmarshalFlag satisfies the flags.Unmarshaler interface.
func (e *ExplicitString) UnmarshalFlag(value string) error {
	e.Value = value
	e.set = true
	return nil
}
