package cli

import (
	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/spf13/pflag"
)

// triStateValue adapts domain.TriState to pflag.Value so weekday flags can
// be passed as --mon yes, --thu no, --sat skip.
type triStateValue struct {
	target *domain.TriState
}

var _ pflag.Value = (*triStateValue)(nil)

func newTriStateValue(target *domain.TriState) *triStateValue {
	return &triStateValue{target: target}
}

func (v *triStateValue) String() string {
	if v.target == nil {
		return domain.TriIgnored.String()
	}
	return v.target.String()
}

func (v *triStateValue) Set(s string) error {
	t, err := domain.ParseTriState(s)
	if err != nil {
		return err
	}
	*v.target = t
	return nil
}

func (v *triStateValue) Type() string {
	return "yes|no|skip"
}
