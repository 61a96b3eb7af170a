/*
Package dsl provides a fluent builder for rotor machine configurations.

It is the programmatic counterpart of a YAML or JSON configuration file and
is handy in tests and when a key setting is computed rather than stored.

Example usage:

	cfg, err := dsl.New("daily-key").
		Rotor("I").At('A').Notch('Z').
		Rotor("II").
		Rotor("III").
		Reflector("B").
		Plug('A', 'B').
		Plug('C', 'D').
		Build()
	if err != nil {
		log.Fatal(err)
	}

	machine, err := enigma.New(cfg)
*/
package dsl
