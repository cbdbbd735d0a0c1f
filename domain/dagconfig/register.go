package dagconfig

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrDuplicateNet describes an error where the parameters for a network
// could not be set due to the network already being a standard
// network or previously-registered into this package.
var ErrDuplicateNet = errors.New("duplicate network")

var (
	registeredNets      = make(map[string]*Params)
	registeredNetsMutex sync.RWMutex
)

// Register registers the network parameters for a network. This may error
// with ErrDuplicateNet if the network is already registered (either due to a
// previous Register call, or the network being one of the default networks).
func Register(params *Params) error {
	registeredNetsMutex.Lock()
	defer registeredNetsMutex.Unlock()

	if _, ok := registeredNets[params.Name]; ok {
		return errors.Wrapf(ErrDuplicateNet, "network %s", params.Name)
	}
	registeredNets[params.Name] = params
	log.Debugf("Registered network %s", params.Name)
	return nil
}

// ParamsByName returns the registered parameters of the named network.
func ParamsByName(name string) (*Params, bool) {
	registeredNetsMutex.RLock()
	defer registeredNetsMutex.RUnlock()

	params, ok := registeredNets[name]
	return params, ok
}

// mustRegister performs the same function as Register except it panics if there
// is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
	mustRegister(&SimnetParams)
	mustRegister(&DevnetParams)
}
