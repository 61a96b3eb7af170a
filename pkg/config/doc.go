/*
Package config loads and validates rotor machine configurations.

A configuration lists the rotors (index 0 is the rightmost, fastest rotor), the
reflector and the plugboard pairs. Files may be JSON or YAML:

	rotors:
	  - wiring: EKMFLGDQVZNTOWYHXUSPAIBRCJ
	    notch: Z
	  - { name: II, start: C }
	  - III
	reflector: B
	plugboard: [AB, [C, D]]

Rotors and reflectors can reference the historical presets by name. Validation
is eager: Load and Parse build every component once, so a Config that loads
successfully always yields a working machine.
*/
package config
