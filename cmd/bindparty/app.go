package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/delaneyj/bindparty/compile"
	"github.com/delaneyj/bindparty/dom"
	"github.com/delaneyj/bindparty/internal/config"
	"github.com/delaneyj/bindparty/internal/logging"
	"github.com/delaneyj/bindparty/reactive"
	"github.com/delaneyj/bindparty/vm"
)

type project struct {
	doc *dom.Node
	vm  *vm.VM
}

// loadConfig reads the project file and applies the command-line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String(configKey)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Template != "" && path != "" && !filepath.IsAbs(cfg.Template) {
		cfg.Template = filepath.Join(filepath.Dir(path), cfg.Template)
	}

	if cmd.IsSet(templateKey) {
		cfg.Template = cmd.String(templateKey)
	}
	if cmd.IsSet(elKey) {
		cfg.El = cmd.String(elKey)
	}
	if cmd.IsSet(logLevelKey) {
		cfg.LogLevel = cmd.String(logLevelKey)
	}
	if cmd.IsSet(dataKey) {
		data, err := config.LoadData(cmd.String(dataKey))
		if err != nil {
			return nil, err
		}
		cfg.Data = data
	}
	if cfg.Template == "" {
		return nil, fmt.Errorf("no template: pass --%s or set template in the project file", templateKey)
	}
	if cfg.Data == nil {
		cfg.Data = reactive.Fields{}
	}
	return cfg, nil
}

func load(cmd *cli.Command, onBind func(compile.Binding)) (*project, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cmd.Root().ErrWriter, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.Template)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Template, err)
	}

	v, err := vm.New(vm.Options{
		Data:            cfg.Data,
		Methods:         declarativeMethods(cfg.Methods),
		El:              cfg.El,
		Document:        doc,
		Logger:          logger,
		DirectivePrefix: cfg.DirectivePrefix,
		EventPrefix:     cfg.EventPrefix,
		OnBind:          onBind,
	})
	if err != nil {
		return nil, err
	}
	return &project{doc: doc, vm: v}, nil
}

// declarativeMethods turns each configured method into a handler that
// assigns its fields in order.
func declarativeMethods(methods map[string]reactive.Fields) map[string]vm.Method {
	out := make(map[string]vm.Method, len(methods))
	for name, assignments := range methods {
		name, assignments := name, assignments
		out[name] = func(v *vm.VM, e dom.Event) error {
			for _, a := range assignments {
				if err := v.Set(a.Key, a.Value); err != nil {
					return fmt.Errorf("method %s: set %s: %w", name, a.Key, err)
				}
			}
			return nil
		}
	}
	return out
}
