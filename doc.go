/*
Package enigma simulates an electromechanical rotor cipher machine.

A machine is an ordered set of rotors (index 0 is the rightmost, fastest
rotor), a reflector and a plugboard. Every letter steps the rotors first and
then travels through the plugboard, forward through the rotors, into the
reflector, backward through the rotors and through the plugboard again.
Characters outside A-Z pass through untouched and do not step the rotors.

Because the reflector is an involution without fixed points, a machine that
starts from the same settings turns ciphertext back into plaintext, and no
letter is ever encoded to itself.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/enigma"
		"github.com/aretw0/enigma/pkg/config"
	)

	func main() {
		m, err := enigma.New(config.Default())
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(m.EncodeMessage("HELLO WORLD")) // MFNDZ AAFZV
		fmt.Println(m.Positions())                  // [10 0 0]
	}

Configurations can be loaded from YAML or JSON with Open, or assembled with the
fluent builder in pkg/dsl. Long-lived, shared machines are handled by
pkg/session, which persists rotor positions between calls.
*/
package enigma
