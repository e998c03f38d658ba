package bluez

import (
	"context"
	"sort"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	busName  = "org.bluez"
	rootPath = dbus.ObjectPath("/")

	objectManagerIface    = "org.freedesktop.DBus.ObjectManager"
	getManagedObjectsCall = objectManagerIface + ".GetManagedObjects"

	adapterIface = "org.bluez.Adapter1"
	deviceIface  = "org.bluez.Device1"
)

// Interfaces maps an interface name to its property set
type Interfaces = map[string]map[string]dbus.Variant

// ManagedObjects is the reply of ObjectManager.GetManagedObjects
type ManagedObjects = map[dbus.ObjectPath]Interfaces

// ObjectSource fetches the BlueZ object tree.
// The system bus implementation lives in bus_linux.go; tests supply fakes.
type ObjectSource interface {
	ManagedObjects(ctx context.Context) (ManagedObjects, error)
}

// ObjectSourceFunc adapts a function to the ObjectSource interface
type ObjectSourceFunc func(ctx context.Context) (ManagedObjects, error)

func (f ObjectSourceFunc) ManagedObjects(ctx context.Context) (ManagedObjects, error) {
	return f(ctx)
}

// objectIndex keeps the managed objects in lexical path order so adapter
// selection and device iteration are stable between calls.
type objectIndex struct {
	objects *orderedmap.OrderedMap[dbus.ObjectPath, Interfaces]
}

func newObjectIndex(objs ManagedObjects) *objectIndex {
	paths := make([]string, 0, len(objs))
	for p := range objs {
		paths = append(paths, string(p))
	}
	sort.Strings(paths)

	om := orderedmap.New[dbus.ObjectPath, Interfaces](len(paths))
	for _, p := range paths {
		om.Set(dbus.ObjectPath(p), objs[dbus.ObjectPath(p)])
	}
	return &objectIndex{objects: om}
}

// adapters returns the paths of all objects implementing Adapter1
func (ix *objectIndex) adapters() []dbus.ObjectPath {
	var out []dbus.ObjectPath
	for pair := ix.objects.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := pair.Value[adapterIface]; ok {
			out = append(out, pair.Key)
		}
	}
	return out
}

// adapterProps returns the Adapter1 properties of path
func (ix *objectIndex) adapterProps(path dbus.ObjectPath) (map[string]dbus.Variant, bool) {
	ifaces, ok := ix.objects.Get(path)
	if !ok {
		return nil, false
	}
	props, ok := ifaces[adapterIface]
	return props, ok
}

// bondedDevices returns the Device1 objects of the given adapter that are bonded
func (ix *objectIndex) bondedDevices(adapter dbus.ObjectPath) []*bondedDevice {
	var out []*bondedDevice
	for pair := ix.objects.Oldest(); pair != nil; pair = pair.Next() {
		props, ok := pair.Value[deviceIface]
		if !ok {
			continue
		}
		if owner, _ := objectPathProp(props, "Adapter"); owner != adapter {
			continue
		}
		if !isBonded(props) {
			continue
		}
		out = append(out, &bondedDevice{path: pair.Key, props: props})
	}
	return out
}

// matchAdapter finds the adapter named by name, which is either a full object
// path or its last element (e.g. "hci1"). An empty name selects the first adapter.
func matchAdapter(adapters []dbus.ObjectPath, name string) (dbus.ObjectPath, bool) {
	if len(adapters) == 0 {
		return "", false
	}
	if name == "" {
		return adapters[0], true
	}
	for _, p := range adapters {
		if string(p) == name || lastElement(p) == name {
			return p, true
		}
	}
	return "", false
}

func lastElement(p dbus.ObjectPath) string {
	s := string(p)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// isBonded prefers the Bonded property (BlueZ 5.66+) and falls back to Paired
func isBonded(props map[string]dbus.Variant) bool {
	if _, ok := props["Bonded"]; ok {
		return boolProp(props, "Bonded")
	}
	return boolProp(props, "Paired")
}

func stringProp(props map[string]dbus.Variant, key string) string {
	v, ok := props[key]
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}

func boolProp(props map[string]dbus.Variant, key string) bool {
	v, ok := props[key]
	if !ok {
		return false
	}
	b, _ := v.Value().(bool)
	return b
}

func objectPathProp(props map[string]dbus.Variant, key string) (dbus.ObjectPath, bool) {
	v, ok := props[key]
	if !ok {
		return "", false
	}
	p, ok := v.Value().(dbus.ObjectPath)
	return p, ok
}

func uuidsProp(props map[string]dbus.Variant) ([]uuid.UUID, []string) {
	v, ok := props["UUIDs"]
	if !ok {
		return nil, nil
	}
	raw, _ := v.Value().([]string)

	var (
		parsed  []uuid.UUID
		invalid []string
	)
	for _, s := range raw {
		u, err := uuid.Parse(s)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}
		parsed = append(parsed, u)
	}
	return parsed, invalid
}
