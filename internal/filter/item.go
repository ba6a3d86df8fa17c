package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/idilsaglam/shoplist/internal/model"
)

// Predicate is a compiled item filter, e.g. `!checked && text contains "Milch"`.
//
// Variables available to the expression:
//
//	text      string  item text
//	checked   bool    item is ticked off
//	createdAt int     creation time, Unix milliseconds
//	now       int     evaluation time, Unix milliseconds
type Predicate struct {
	src     string
	program *vm.Program
	now     func() time.Time
}

func env(it model.Item, now time.Time) map[string]any {
	return map[string]any{
		"text":      it.Text,
		"checked":   it.Checked,
		"createdAt": it.CreatedAt,
		"now":       now.UnixMilli(),
	}
}

// Compile parses src. An empty src matches every item.
func Compile(src string) (*Predicate, error) {
	p := &Predicate{src: strings.TrimSpace(src), now: time.Now}
	if p.src == "" {
		return p, nil
	}
	program, err := expr.Compile(p.src, expr.Env(env(model.Item{}, time.Time{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", p.src, err)
	}
	p.program = program
	return p, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.src }

// Match evaluates the predicate for one item.
func (p *Predicate) Match(it model.Item) (bool, error) {
	if p == nil || p.program == nil {
		return true, nil
	}
	out, err := expr.Run(p.program, env(it, p.now()))
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", p.src, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Apply keeps the items that match, in order.
func (p *Predicate) Apply(items []model.Item) ([]model.Item, error) {
	if p == nil || p.program == nil {
		return items, nil
	}
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		ok, err := p.Match(it)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}
