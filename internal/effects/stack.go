package effects

import (
	"encoding/json"
	"errors"
	"fmt"

	"vxtimeline/internal/vxerr"
)

// Stack is the ordered list of effects on a clip, applied first to last.
type Stack []Effect

type envelope struct {
	Type   Kind            `json:"type"`
	Params json.RawMessage `json:"params"`
}

// Names lists the effect labels in stack order.
func (s Stack) Names() []string {
	names := make([]string, len(s))
	for i, e := range s {
		names[i] = e.Name()
	}
	return names
}

// Validate checks every effect and joins the failures.
func (s Stack) Validate() error {
	var errs []error
	for i, e := range s {
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("effect %d (%s): %w", i, e.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Clone deep-copies every effect.
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	out := make(Stack, len(s))
	for i, e := range s {
		switch v := e.(type) {
		case *Transform:
			c := *v
			out[i] = &c
		case *Opacity:
			c := *v
			out[i] = &c
		case *ColorCorrect:
			c := *v
			out[i] = &c
		case *Blur:
			c := *v
			out[i] = &c
		default:
			out[i] = e
		}
	}
	return out
}

func (s Stack) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	envs := make([]envelope, 0, len(s))
	for _, e := range s {
		params, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		envs = append(envs, envelope{Type: e.Kind(), Params: params})
	}
	return json.Marshal(envs)
}

func (s *Stack) UnmarshalJSON(data []byte) error {
	var envs []envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return vxerr.Wrap(vxerr.DomainEffect, err, "decode effect stack")
	}
	if envs == nil {
		*s = nil
		return nil
	}

	out := make(Stack, 0, len(envs))
	for _, env := range envs {
		e, err := New(env.Type)
		if err != nil {
			return err
		}
		if len(env.Params) > 0 {
			if err := json.Unmarshal(env.Params, e); err != nil {
				return vxerr.Wrap(vxerr.DomainEffect, err, "decode %s params", env.Type)
			}
		}
		out = append(out, e)
	}
	*s = out
	return nil
}
