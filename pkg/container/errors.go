package container

import "github.com/webcore/framework/pkg/errors"

var newContainerCode = errors.WithPrefix("CONTAINER")

var (
	ErrDuplicateRegistration  = newContainerCode().New("container item {{.id}} already exists")
	ErrInvalidRegistration    = newContainerCode().New("{{.missing}} of item {{.id}} with kind {{.kind}} is nil")
	ErrNullInstance           = newContainerCode().New("instance of item {{.id}} is nil")
	ErrNullProducedInstance   = newContainerCode().New("item {{.id}} of kind {{.kind}} produced a nil instance")
	ErrNotInstantiable        = newContainerCode().New("class {{.id}} is not instantiable")
	ErrUnresolvableDependency = newContainerCode().New("parameter {{.param}} ({{.type}}) of class {{.class}} {{.reason}}")
	ErrUnknownKind            = newContainerCode().New("item {{.id}} of kind {{.kind}} is not instantiable")
	ErrNotAnAlias             = newContainerCode().New("item {{.id}} of kind {{.kind}} doesn't have a class name")
	ErrCircularDependency     = newContainerCode().New("circular dependency detected: {{.chain}}")
	ErrNotFound               = newContainerCode().New("no binding or class named {{.id}}")
	ErrInvalidConcrete        = newContainerCode().New("cannot bind {{.id}} to {{.concrete}}: expected a factory or a class name")
	ErrInvalidClass           = newContainerCode().New("cannot declare class {{.class}}: {{.reason}}")
	ErrDuplicateClass         = newContainerCode().New("class {{.id}} is already declared")
	ErrConstructorFailed      = newContainerCode().New("constructor of class {{.id}} failed")
	ErrTypeMismatch           = newContainerCode().New("item {{.id}} resolved to {{.got}}, expected {{.want}}")
)
