package config

// RotorPreset is the wiring and notch of a historical rotor.
type RotorPreset struct {
	Wiring string
	Notch  string
}

// Rotors are the Wehrmacht/Kriegsmarine rotors. VI-VIII carry two notches
// (Z and M) on the real hardware; the machine model has one, so Z is used.
var Rotors = map[string]RotorPreset{
	"I":    {Wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", Notch: "Q"},
	"II":   {Wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE", Notch: "E"},
	"III":  {Wiring: "BDFHJLCPRTXVZNYEIWGAKMUSQO", Notch: "V"},
	"IV":   {Wiring: "ESOVPZJAYQUIRHXLNFTGKDCMWB", Notch: "J"},
	"V":    {Wiring: "VZBRGITYUPSDNHLXAWMJQOFECK", Notch: "Z"},
	"VI":   {Wiring: "JPGVOUMFYQBENHZRDKASXLICTW", Notch: "Z"},
	"VII":  {Wiring: "NZJHGRCXMYSWBOUFAIVLPEKQDT", Notch: "Z"},
	"VIII": {Wiring: "FKQHTLXOCBJSPDZRAMEWNIUYGV", Notch: "Z"},
}

// Reflectors are the historical wide reflectors.
var Reflectors = map[string]string{
	"A": "EJMZALYXVBWFCRQUONTSPIKHGD",
	"B": "YRUHQSLDPXNGOKMIEBFZCWVJAT",
	"C": "FVPJIAOYEDRZXWGCTKUQSBNMHL",
}

// Default returns the reference configuration: rotors I, II and III with the
// notches Z, E and V, all at position 0, reflector B and plugboard AB CD.
func Default() *Config {
	return &Config{
		Name: "default",
		Rotors: []RotorSpec{
			{Name: "I", Wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", Notch: "Z"},
			{Name: "II", Wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE", Notch: "E"},
			{Name: "III", Wiring: "BDFHJLCPRTXVZNYEIWGAKMUSQO", Notch: "V"},
		},
		Reflector: ReflectorSpec{Name: "B", Wiring: Reflectors["B"]},
		Plugboard: []string{"AB", "CD"},
	}
}
