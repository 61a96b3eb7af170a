package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/internal/presentation/graph"
	"github.com/aretw0/enigma/pkg/config"
)

func TestGenerateMermaid(t *testing.T) {
	m, err := enigma.New(config.Default())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	tr, ok := m.Trace('H')
	if !ok {
		t.Fatal("Trace('H') reported a non-letter")
	}

	out := graph.GenerateMermaid(tr)

	contains := []string{
		"graph LR",
		"key((\"Key H\"))",
		"lamp((\"Lamp M\"))",
		"plug_in[/\"Plugboard\"/]",
		"fwd_0[[\"Rotor 0 (B)\"]]",
		"bwd_2[[\"Rotor 2 (A)\"]]",
		"reflector{{\"Reflector\"}}",
		"key -- \"H\" --> plug_in",
		"fwd_2 -- \"E\" --> reflector",
		"reflector -- \"Q\" --> bwd_2",
		"plug_out -- \"M\" --> lamp",
	}
	for _, s := range contains {
		if !strings.Contains(out, s) {
			t.Errorf("Expected output to contain %q\nGot:\n%s", s, out)
		}
	}

	// Key, plugboard in, 3 forward, reflector, 3 backward, plugboard out, lamp.
	if got := strings.Count(out, " --> "); got != 10 {
		t.Errorf("Expected 10 edges, got %d", got)
	}
}
