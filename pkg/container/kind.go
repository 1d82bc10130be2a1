package container

import "fmt"

// Kind is the lifecycle of a registration.
type Kind uint8

const (
	// Transient calls the factory on every resolution.
	Transient Kind = iota + 1
	// Singleton calls the factory once and caches the value.
	Singleton
	// Instance holds a value built by the caller.
	Instance
	// Alias redirects resolution to another identifier or class.
	Alias
)

func (k Kind) String() string {
	switch k {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	case Instance:
		return "instance"
	case Alias:
		return "alias"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}
