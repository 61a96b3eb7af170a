/*
Package domain contains the core components of the rotor cipher machine.

It defines the fixed alphabet and the three substitution units the machine is
assembled from. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Rotor: Position-dependent substitution with forward/backward transforms and a notch.
  - Reflector: Fixed involution turning the forward signal path into the backward one.
  - Plugboard: Symmetric letter swaps applied before and after the rotor stack.
  - Snapshot: The persisted rotor positions of a session.

Every constructor validates eagerly. Once a component exists, all of its
operations are total over the 26 letters.
*/
package domain
