package component

import (
	"fmt"
	"sort"

	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/strcase"
)

// Instance is a mounted component. Destroy releases whatever the instance
// subscribed to; Detach calls it exactly once.
type Instance interface {
	Destroy() error
}

// InstanceFunc adapts a teardown function to Instance.
type InstanceFunc func() error

// Destroy calls f.
func (f InstanceFunc) Destroy() error {
	if f == nil {
		return nil
	}
	return f()
}

// Nop is an Instance with nothing to tear down.
var Nop Instance = InstanceFunc(nil)

// Constructor builds an instance for the mount element el.
type Constructor func(el *dom.Node, props Props) Instance

// Entry is a registry entry. The two implementations are Class, for
// component constructors, and Handler, for plain handler records carrying
// an alias and default props.
type Entry interface {
	resolve(name string) (ctor Constructor, key string, props Props, ok bool)
}

type classEntry struct {
	ctor Constructor
}

// Class registers a component constructor. The instance key is the
// lower-camel form of the registry name.
func Class(ctor Constructor) Entry {
	return classEntry{ctor: ctor}
}

func (c classEntry) resolve(name string) (Constructor, string, Props, bool) {
	if c.ctor == nil {
		return nil, "", nil, false
	}
	return c.ctor, strcase.Uncapitalize(name), Props{}, true
}

// Handler registers a plain handler function. Key, when set, replaces the
// default instance key; Props are passed to the handler as defaults that the
// element's data-attributes override.
type Handler struct {
	Key     string
	Handler Constructor
	Props   Props
}

func (h Handler) resolve(name string) (Constructor, string, Props, bool) {
	if h.Handler == nil {
		return nil, "", nil, false
	}
	key := strcase.Uncapitalize(name)
	if h.Key != "" {
		key = h.Key
	}
	return h.Handler, key, h.Props.Clone(), true
}

// Registry maps mount names to entries.
type Registry map[string]Entry

// Instances maps instance keys to the instances attached under them, in
// document order.
type Instances map[string][]Instance

// First returns the first instance stored under key.
func (in Instances) First(key string) Instance {
	if list := in[key]; len(list) > 0 {
		return list[0]
	}
	return nil
}

// All returns every instance stored under key.
func (in Instances) All(key string) []Instance {
	return in[key]
}

// Len returns the total number of instances.
func (in Instances) Len() int {
	n := 0
	for _, list := range in {
		n += len(list)
	}
	return n
}

// Keys returns the instance keys in lexical order.
func (in Instances) Keys() []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Attach instantiates a component for every mount point below root whose
// name resolves in registry. Mount points with unknown names or malformed
// entries are skipped. root itself is never mounted.
func Attach(registry Registry, root *dom.Node, opts ...Option) Instances {
	o := buildOptions(opts)
	instances := Instances{}
	if root == nil {
		return instances
	}

	for _, el := range dom.QueryAll(root, o.markers.componentSelector()) {
		name := o.markers.componentName(el)
		entry := registry[name]
		if name == "" || entry == nil {
			o.skip(name, "not registered")
			continue
		}

		ctor, key, props, ok := entry.resolve(name)
		if !ok {
			o.skip(name, "malformed entry")
			continue
		}

		inst := ctor(el, props)
		if inst == nil {
			o.skip(name, "constructor returned nil")
			continue
		}

		switch o.policy {
		case PolicyOverwrite:
			instances[key] = []Instance{inst}
		default:
			instances[key] = append(instances[key], inst)
		}

		if o.hooks.OnAttach != nil {
			o.hooks.OnAttach(key, name, inst)
		}
	}

	o.logger.Debug("component: attached", "keys", len(instances), "instances", instances.Len())
	return instances
}

func (o options) skip(name, reason string) {
	o.logger.Debug("component: mount point skipped", "name", name, "reason", reason)
	if o.hooks.OnSkip != nil {
		o.hooks.OnSkip(name, reason)
	}
}

// Detach destroys every instance and removes every key from instances.
// Errors and panics raised by Destroy are swallowed.
func Detach(instances Instances, opts ...Option) {
	o := buildOptions(opts)

	for _, key := range instances.Keys() {
		for _, inst := range instances[key] {
			err := destroy(inst)
			if err != nil {
				o.logger.Debug("component: destroy failed", "key", key, "error", err)
			}
			if o.hooks.OnDestroy != nil {
				o.hooks.OnDestroy(key, err)
			}
		}
		delete(instances, key)
	}
}

func destroy(inst Instance) (err error) {
	if inst == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("component: destroy panicked: %v", r)
		}
	}()
	return inst.Destroy()
}
