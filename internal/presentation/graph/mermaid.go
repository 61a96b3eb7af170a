package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/enigma/internal/runtime"
	"github.com/aretw0/enigma/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of one letter's signal path.
// Shapes follow the hardware:
// - Key and lamp: ((Circle))
// - Plugboard: [/Parallelogram/]
// - Rotor: [[Subroutine]], labelled with its window letter
// - Reflector: {{Hexagon}}
// Edges carry the letter travelling on that wire.
func GenerateMermaid(tr runtime.Trace) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	nodes := []string{"key"}
	sb.WriteString(fmt.Sprintf("    key((\"Key %c\"))\n", tr.Input))

	for _, s := range tr.Stages {
		id := stageID(s)
		nodes = append(nodes, id)
		sb.WriteString(fmt.Sprintf("    %s%s\n", id, stageShape(s, tr.Positions)))
	}

	nodes = append(nodes, "lamp")
	sb.WriteString(fmt.Sprintf("    lamp((\"Lamp %c\"))\n", tr.Output))

	// The letter on each edge is the one leaving the source node.
	letters := make([]rune, 0, len(tr.Stages)+1)
	letters = append(letters, tr.Input)
	for _, s := range tr.Stages {
		letters = append(letters, s.Letter)
	}
	for i := 0; i+1 < len(nodes); i++ {
		sb.WriteString(fmt.Sprintf("    %s -- \"%c\" --> %s\n", nodes[i], letters[i], nodes[i+1]))
	}

	sb.WriteString("\n    %% Styles\n")
	sb.WriteString("    classDef io fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef reflector fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    class key,lamp io;\n")
	sb.WriteString("    class reflector reflector;\n")

	return sb.String()
}

func stageID(s runtime.Stage) string {
	switch s.Kind {
	case runtime.StageForward:
		return fmt.Sprintf("fwd_%d", s.Index)
	case runtime.StageBackward:
		return fmt.Sprintf("bwd_%d", s.Index)
	case runtime.StageReflector:
		return "reflector"
	case runtime.StagePlugboardIn:
		return "plug_in"
	default:
		return "plug_out"
	}
}

func stageShape(s runtime.Stage, positions []int) string {
	switch s.Kind {
	case runtime.StageForward, runtime.StageBackward:
		window := '?'
		if s.Index >= 0 && s.Index < len(positions) {
			window = domain.LetterAt(positions[s.Index])
		}
		return fmt.Sprintf("[[\"Rotor %d (%c)\"]]", s.Index, window)
	case runtime.StageReflector:
		return "{{\"Reflector\"}}"
	default:
		return "[/\"Plugboard\"/]"
	}
}
