package main

import (
	"context"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/delaneyj/bindparty/compile"
)

func bindings(ctx context.Context, cmd *cli.Command) error {
	var rows [][]string
	onBind := func(b compile.Binding) {
		attr := b.Attr
		if attr == "" {
			attr = "{{ }}"
		}
		rows = append(rows, []string{b.Node.Path(), b.Kind.String(), attr, b.Expr})
	}
	if _, err := load(cmd, onBind); err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.Root().Writer)
	table.SetHeader([]string{"node", "kind", "attribute", "expression"})
	table.AppendBulk(rows)
	table.Render()
	return nil
}
