package codec

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/stewi1014/multienc/encio"
)

// The preloaded subset of the multicodec table.
const (
	Identity   Codec = 0x00
	Sha2_256   Codec = 0x12
	Sha2_512   Codec = 0x13
	Blake3     Codec = 0x1e
	Multihash  Codec = 0x31
	Varsig     Codec = 0x34
	Cbor       Codec = 0x51
	Raw        Codec = 0x55
	DagPb      Codec = 0x70
	DagCbor    Codec = 0x71
	Libp2pKey  Codec = 0x72
	Ed25519Pub Codec = 0xed
	DagJSON    Codec = 0x0129
	JSON       Codec = 0x0200
	Multikey   Codec = 0x123a
)

func init() {
	err := Register(
		Entry{Identity, "identity"},
		Entry{Sha2_256, "sha2-256"},
		Entry{Sha2_512, "sha2-512"},
		Entry{Blake3, "blake3"},
		Entry{Multihash, "multihash"},
		Entry{Varsig, "varsig"},
		Entry{Cbor, "cbor"},
		Entry{Raw, "raw"},
		Entry{DagPb, "dag-pb"},
		Entry{DagCbor, "dag-cbor"},
		Entry{Libp2pKey, "libp2p-key"},
		Entry{Ed25519Pub, "ed25519-pub"},
		Entry{DagJSON, "dag-json"},
		Entry{JSON, "json"},
		Entry{Multikey, "multikey"},
	)

	if err != nil {
		panic(err)
	}
}

// Entry is a codec and its name.
type Entry struct {
	Code Codec
	Name string
}

var (
	mutex  sync.RWMutex
	byCode = make(map[Codec]string)
	byName = make(map[string]Codec)
)

// ErrAlreadyRegistered is returned by Register if one or more of the given codes or names has already been registered.
// It is wrapped.
var ErrAlreadyRegistered = errors.New("already registered")

// Register names codecs so they print by name and can be found with Lookup.
// Entries that collide with an existing code or name are skipped and reported together.
func Register(entries ...Entry) error {
	mutex.Lock()
	defer mutex.Unlock()

	var errMsg string
	for _, e := range entries {
		if !register(e) {
			if len(errMsg) > 0 {
				errMsg += ", "
			}
			errMsg += fmt.Sprintf("%v (0x%x)", e.Name, uint64(e.Code))
			continue
		}
	}

	if errMsg != "" {
		return fmt.Errorf("%w: %v", ErrAlreadyRegistered, errMsg)
	}
	return nil
}

// register registers the entry, returning false if its code or name was previously registered.
func register(e Entry) bool {
	if _, ok := byCode[e.Code]; ok {
		return false
	}
	if _, ok := byName[e.Name]; ok {
		return false
	}
	byCode[e.Code] = e.Name
	byName[e.Name] = e.Code
	return true
}

func nameOf(c Codec) (string, bool) {
	mutex.RLock()
	defer mutex.RUnlock()
	name, ok := byCode[c]
	return name, ok
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	mutex.RLock()
	defer mutex.RUnlock()
	c, ok := byName[name]
	if !ok {
		return 0, encio.NewError(encio.ErrUnknownSigil, fmt.Sprintf("no codec named %q", name), 0)
	}
	return c, nil
}

// Registered returns every registered entry, ordered by code.
func Registered() []Entry {
	mutex.RLock()
	entries := make([]Entry, 0, len(byCode))
	for code, name := range byCode {
		entries = append(entries, Entry{code, name})
	}
	mutex.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries
}
