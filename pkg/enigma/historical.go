package enigma

import (
	"github.com/coredds/enigma-breaker/internal/reflector"
	"github.com/coredds/enigma-breaker/internal/rotor"
	"github.com/coredds/enigma-breaker/pkg/config"
)

// NewWehrmachtConfiguration returns a Configuration for the standard
// three-rotor Wehrmacht/Luftwaffe Enigma I, with all ring settings and
// rotor positions at their zero/A default.
func NewWehrmachtConfiguration(reflectorKind reflector.Kind, rotors [3]rotor.Kind) config.Configuration {
	return config.Configuration{
		Reflector: reflectorKind,
		Rotors:    []rotor.Kind{rotors[2], rotors[1], rotors[0]},
		Rings:     []int{1, 1, 1},
		Positions: []rune{'A', 'A', 'A'},
	}
}

// NewKriegsmarineConfiguration returns a Configuration for the four-rotor
// M4 Naval Enigma, pairing a thin reflector with a thin fourth rotor
// (Beta or Gamma) in the leftmost slot, ring settings and positions at
// their zero/A default.
func NewKriegsmarineConfiguration(reflectorKind reflector.Kind, rotors [3]rotor.Kind, thin rotor.Kind) config.Configuration {
	return config.Configuration{
		Reflector: reflectorKind,
		Rotors:    []rotor.Kind{rotors[2], rotors[1], rotors[0], thin},
		Rings:     []int{1, 1, 1, 1},
		Positions: []rune{'A', 'A', 'A', 'A'},
	}
}
