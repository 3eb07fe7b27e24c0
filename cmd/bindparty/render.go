package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/delaneyj/bindparty/dom"
	"github.com/delaneyj/bindparty/internal/config"
)

func render(ctx context.Context, cmd *cli.Command) error {
	p, err := load(cmd, nil)
	if err != nil {
		return err
	}

	for _, kv := range cmd.StringSlice(setKey) {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--%s %q: want key=value", setKey, kv)
		}
		if err := p.vm.Set(key, config.ParseScalar(value)); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}

	for _, sv := range cmd.StringSlice(inputKey) {
		node, value, err := p.target(inputKey, sv)
		if err != nil {
			return err
		}
		if err := node.Input(value); err != nil {
			return fmt.Errorf("input %s: %w", sv, err)
		}
	}

	for _, st := range cmd.StringSlice(eventKey) {
		node, typ, err := p.target(eventKey, st)
		if err != nil {
			return err
		}
		if err := node.DispatchEvent(dom.Event{Type: typ}); err != nil {
			return fmt.Errorf("event %s: %w", st, err)
		}
	}

	if err := dom.Render(cmd.Root().Writer, p.doc); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.Root().Writer)
	return err
}

// target resolves a selector=value flag to its node.
func (p *project) target(flag, arg string) (*dom.Node, string, error) {
	sel, value, ok := strings.Cut(arg, "=")
	if !ok {
		return nil, "", fmt.Errorf("--%s %q: want selector=value", flag, arg)
	}
	node, err := p.doc.QuerySelector(sel)
	if err != nil {
		return nil, "", err
	}
	if node == nil {
		return nil, "", fmt.Errorf("--%s: no element matches %q", flag, sel)
	}
	return node, value, nil
}
