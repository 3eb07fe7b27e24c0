package vm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/bindparty/compile"
	"github.com/delaneyj/bindparty/dom"
	"github.com/delaneyj/bindparty/reactive"
)

var ErrInvalidData = errors.New("data must be a map[string]any, reactive.Fields or *reactive.Object")

// Method is an event handler with the VM as its receiver.
type Method func(vm *VM, e dom.Event) error

type Options struct {
	// Data is observed and its keys are exposed on the VM.
	Data    any
	Methods map[string]Method

	// El selects the host node inside Document. Root, when set, is used
	// as the host directly.
	El       string
	Document *dom.Node
	Root     *dom.Node

	Context *reactive.ReactiveContext
	Logger  *slog.Logger

	DirectivePrefix string
	EventPrefix     string
	OnBind          func(compile.Binding)
}

// VM observes its data, proxies the data keys onto itself and compiles its
// host node against itself.
type VM struct {
	options Options
	data    *reactive.Object
	logger  *slog.Logger

	// proxied holds the data keys present at construction
	proxied mapset.Set[string]
	own     map[string]any
}

func New(opts Options) (*VM, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rc := opts.Context
	if rc == nil {
		rc = reactive.NewReactiveContext(logger)
	}

	data := reactive.Observe(rc, opts.Data)
	if data == nil {
		return nil, fmt.Errorf("%w, got %T", ErrInvalidData, opts.Data)
	}

	vm := &VM{
		options: opts,
		data:    data,
		logger:  logger,
		proxied: mapset.NewThreadUnsafeSet[string](),
		own:     map[string]any{},
	}
	proxy(vm)

	host, err := vm.host()
	if err != nil {
		return nil, err
	}
	if host == nil {
		logger.Warn("host element not found, nothing compiled", slog.String("el", opts.El))
		return vm, nil
	}

	c := compile.New(compile.Options{
		DirectivePrefix: opts.DirectivePrefix,
		EventPrefix:     opts.EventPrefix,
		Logger:          logger,
		OnBind:          opts.OnBind,
	})
	if err := c.Compile(host, vm); err != nil {
		return nil, fmt.Errorf("compile %s: %w", host.Path(), err)
	}
	return vm, nil
}

func (vm *VM) host() (*dom.Node, error) {
	if vm.options.Root != nil {
		return vm.options.Root, nil
	}
	if vm.options.Document == nil || vm.options.El == "" {
		return nil, nil
	}
	host, err := vm.options.Document.QuerySelector(vm.options.El)
	if err != nil {
		return nil, fmt.Errorf("locate host: %w", err)
	}
	return host, nil
}

// proxy exposes every data key present now on the VM itself.
func proxy(vm *VM) {
	for _, key := range vm.data.Keys() {
		vm.proxied.Add(key)
	}
}

func (vm *VM) Context() *reactive.ReactiveContext {
	return vm.data.Context()
}

// Get reads a proxied data key, or a value stored on the VM itself.
func (vm *VM) Get(key string) any {
	if vm.proxied.Contains(key) {
		return vm.data.Get(key)
	}
	return vm.own[key]
}

// Set writes through to the data for proxied keys. Other keys are stored on
// the VM without reactivity.
func (vm *VM) Set(key string, value any) error {
	if vm.proxied.Contains(key) {
		return vm.data.Set(key, value)
	}
	vm.own[key] = value
	return nil
}

// Method returns the named method bound to vm.
func (vm *VM) Method(name string) (dom.Listener, bool) {
	m, ok := vm.options.Methods[name]
	if !ok || m == nil {
		return nil, false
	}
	return func(e dom.Event) error {
		return m(vm, e)
	}, true
}

func (vm *VM) Data() *reactive.Object {
	return vm.data
}

func (vm *VM) Options() Options {
	return vm.options
}

// Proxied reports whether key is exposed on the VM.
func (vm *VM) Proxied(key string) bool {
	return vm.proxied.Contains(key)
}
