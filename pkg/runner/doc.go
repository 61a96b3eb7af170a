/*
Package runner implements the interactive shell loop and input hygiene shared by
every adapter.

The Runner reads lines, encodes them with an enigma.Machine and prints the
result. Lines starting with ':' are commands (:pos, :trace X, :reset,
:describe, :help, :quit). With WithSession the rotor positions are stored after
every line so that the next shell continues where this one stopped, and with
WithConfigUpdates the machine is rebuilt when the configuration file changes.

SanitizeInput is used by the HTTP and MCP adapters too.

# Usage

	m, _ := enigma.New(config.Default())
	r := runner.NewRunner(
		runner.WithIO(os.Stdin, os.Stdout),
		runner.WithHeadless(!runner.IsTerminal(os.Stdin)),
	)

	if err := r.Run(ctx, m); err != nil {
		log.Fatal(err)
	}
*/
package runner
