package enigma

// Version is the library and CLI version.
const Version = "0.4.0"
