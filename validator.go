package dictschema

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mohae/deepcopy"
)

// Validator validates values against compiled schemas. It holds only
// immutable options, so one Validator may be shared by concurrent callers
// validating independent values.
type Validator struct {
	strict bool
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithStrictMode controls coercion. In strict mode (the default) any type
// mismatch fails; otherwise a canonical coercion is attempted first.
func WithStrictMode(strict bool) Option {
	return func(v *Validator) {
		v.strict = strict
	}
}

// WithLogger sets the logger receiving debug records for coercions and
// pass-through values. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// New returns a strict Validator that logs nothing.
func New(opts ...Option) *Validator {
	v := &Validator{
		strict: true,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate validates value against s and returns the normalized value.
//
// value is deep-copied first; coercions and defaults are applied to the
// copy, never to the caller's value.
//
// It returns *ValidationError when value does not conform to s, and
// *UnknownTypeError when s, or one of its sub-schemas, has no Params.
func (vd *Validator) Validate(value any, s *Schema) (any, error) {
	if s == nil {
		return nil, &UnknownTypeError{}
	}
	return vd.validate(deepcopy.Copy(value), s, "")
}

// Validate compiles descriptor and validates value against it. See
// Compiler.Compile for the descriptor shape.
func Validate(value any, descriptor map[string]any, opts ...Option) (any, error) {
	s, err := Compile(descriptor)
	if err != nil {
		return nil, err
	}
	return New(opts...).Validate(value, s)
}

// validate dispatches v to the validator selected by s.Params.
// Errors are returned unwrapped.
func (vd *Validator) validate(v any, s *Schema, vloc string) (any, error) {
	switch p := s.Params.(type) {
	case *StringParams:
		return vd.validateString(v, s, p, vloc)
	case *IntegerParams:
		return vd.validateInteger(v, s, p, vloc)
	case *FloatParams:
		return vd.validateFloat(v, s, p, vloc)
	case *NumberParams:
		return vd.validateNumber(v, s, p, vloc)
	case *BooleanParams:
		return vd.validateBoolean(v, s, p, vloc)
	case *DatetimeParams:
		return vd.validateDatetime(v, s, p, vloc)
	case *ObjectIDParams:
		return vd.validateObjectID(v, s, p, vloc)
	case *ObjectParams:
		return vd.validateObject(v, s, p, vloc)
	case *ArrayParams:
		return vd.validateArray(v, s, p, vloc)
	case *FileParams:
		return vd.validateFile(v, s, vloc)
	case nil:
		return nil, &UnknownTypeError{Location: s.Location}
	default:
		return nil, &UnknownTypeError{Location: s.Location, Type: fmt.Sprintf("%T", p)}
	}
}

func (vd *Validator) coerced(vloc string, t Type, from, to any) {
	vd.logger.Debug("value coerced",
		slog.String("path", absPtr(vloc)),
		slog.String("type", t.String()),
		slog.String("from", fmt.Sprintf("%T", from)),
		slog.String("to", fmt.Sprintf("%T", to)),
	)
}
